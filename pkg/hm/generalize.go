package hm

import "fmt"

// Generalize closes t into a scheme by quantifying over the type variables
// free in t but not free in the context, in order of first occurrence.
func Generalize(ctx Context, t Type) *Scheme {
	ctxFree := ctx.FreeTypeVar()
	var tvs []TypeVariable
	for _, tv := range freeVarsOrdered(t) {
		if !ctxFree.Contains(tv) {
			tvs = append(tvs, tv)
		}
	}
	return NewScheme(tvs, t)
}

// Instantiate replaces every quantified variable of the scheme with a fresh
// variable of the same sort.
func Instantiate(fresher Fresher, scheme *Scheme) Type {
	if len(scheme.tvs) == 0 {
		return scheme.t
	}
	subs := make(Subs, len(scheme.tvs))
	for _, tv := range scheme.tvs {
		subs[tv] = fresher.Fresh(tv.sort)
	}
	return scheme.t.Apply(subs).(Type)
}

// Fresher generates fresh type variables of a requested sort.
type Fresher interface {
	Fresh(Sort) TypeVariable
}

// CountingFresher mints variables from a monotone counter, rendered
// a..z, a1..z1 and so on. One fresher belongs to one inference run.
type CountingFresher struct {
	count int
}

func NewCountingFresher() *CountingFresher {
	return &CountingFresher{}
}

func (f *CountingFresher) Fresh(sort Sort) TypeVariable {
	name := varName(f.count)
	f.count++
	return TVar(name, sort)
}

func varName(n int) string {
	letter := rune('a' + n%26)
	if n < 26 {
		return string(letter)
	}
	return fmt.Sprintf("%c%d", letter, n/26)
}

// freeVarsOrdered walks t collecting its free variables in first-occurrence
// order, crossing sort boundaries at the wrapper nodes.
func freeVarsOrdered(t Type) []TypeVariable {
	var out []TypeVariable
	seen := NewTypeVarSet()
	var walk func(Type)
	walk = func(t Type) {
		if tv, ok := t.(TypeVariable); ok {
			if !seen.Contains(tv) {
				seen.Add(tv)
				out = append(out, tv)
			}
			return
		}
		for _, child := range t.Types() {
			walk(child)
		}
	}
	walk(t)
	return out
}
