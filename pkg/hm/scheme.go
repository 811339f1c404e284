package hm

import (
	"fmt"
	"slices"
	"strings"
)

// Scheme is a type universally closed over a set of type variables,
// supporting let-polymorphism.
type Scheme struct {
	tvs []TypeVariable
	t   Type
}

// NewScheme creates a new type scheme.
func NewScheme(tvs []TypeVariable, t Type) *Scheme {
	return &Scheme{tvs: tvs, t: t}
}

// Type returns the underlying type and whether the scheme is monomorphic.
func (s *Scheme) Type() (Type, bool) {
	return s.t, len(s.tvs) == 0
}

// TypeVars returns the quantified type variables.
func (s *Scheme) TypeVars() []TypeVariable {
	return s.tvs
}

// Sort returns the sort of the scheme's body.
func (s *Scheme) Sort() Sort {
	return s.t.Sort()
}

// Apply applies a substitution to the scheme. Quantified variables are
// bound and shadow any bindings for them in the substitution.
func (s *Scheme) Apply(subs Subs) Substitutable {
	filtered := make(Subs, len(subs))
	for tv, t := range subs {
		if !slices.Contains(s.tvs, tv) {
			filtered[tv] = t
		}
	}
	return &Scheme{
		tvs: s.tvs,
		t:   s.t.Apply(filtered).(Type),
	}
}

// FreeTypeVar returns the free type variables of the scheme: those of the
// body minus the quantified set.
func (s *Scheme) FreeTypeVar() TypeVarSet {
	ftvs := s.t.FreeTypeVar().Union(nil)
	for _, tv := range s.tvs {
		delete(ftvs, tv)
	}
	return ftvs
}

// Eq reports structural equality of two schemes.
func (s *Scheme) Eq(other *Scheme) bool {
	if other == nil || len(s.tvs) != len(other.tvs) {
		return false
	}
	for i, tv := range s.tvs {
		if tv != other.tvs[i] {
			return false
		}
	}
	return s.t.Eq(other.t)
}

// Clone creates a copy of the scheme.
func (s *Scheme) Clone() *Scheme {
	tvs := make([]TypeVariable, len(s.tvs))
	copy(tvs, s.tvs)
	return &Scheme{tvs: tvs, t: s.t}
}

// Normalize canonically renames the scheme's variables, in order of first
// occurrence in the body, to a, b, c and so on. Each renamed variable keeps
// its sort. A body variable outside the quantified set is a generalization
// bug and yields a NormalizeError.
func (s *Scheme) Normalize() error {
	ord := freeVarsOrdered(s.t)
	for _, tv := range ord {
		if !slices.Contains(s.tvs, tv) {
			return NormalizeError{Var: tv}
		}
	}
	fresh := make([]TypeVariable, len(ord))
	for i, tv := range ord {
		fresh[i] = TVar(varName(i), tv.sort)
	}
	t, err := s.t.Normalize(ord, fresh)
	if err != nil {
		return err
	}
	s.tvs = fresh
	s.t = t
	return nil
}

// String renders the scheme as "forall a b. t", or just the body when
// nothing is quantified.
func (s *Scheme) String() string {
	if len(s.tvs) == 0 {
		return s.t.String()
	}
	names := make([]string, len(s.tvs))
	for i, tv := range s.tvs {
		names[i] = tv.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), s.t)
}
