package hm

import "fmt"

// Constraint is a required equality between two type terms.
type Constraint struct {
	a, b Type
}

func NewConstraint(a, b Type) Constraint {
	return Constraint{a: a, b: b}
}

func (c Constraint) Apply(subs Subs) Substitutable {
	return Constraint{
		a: c.a.Apply(subs).(Type),
		b: c.b.Apply(subs).(Type),
	}
}

func (c Constraint) FreeTypeVar() TypeVarSet {
	return c.a.FreeTypeVar().Union(c.b.FreeTypeVar())
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s ~ %s", c.a, c.b)
}

// Constraints is the list collected by the generator and consumed by Solve.
type Constraints []Constraint

func (cs Constraints) Apply(subs Subs) Substitutable {
	result := make(Constraints, len(cs))
	for i, c := range cs {
		result[i] = c.Apply(subs).(Constraint)
	}
	return result
}

func (cs Constraints) FreeTypeVar() TypeVarSet {
	var ftvs TypeVarSet
	for _, c := range cs {
		ftvs = ftvs.Union(c.FreeTypeVar())
	}
	return ftvs
}

// Solve processes the constraints as a worklist: unify the head, apply the
// resulting substitution to the remainder, compose it onto the accumulator
// with the newer bindings winning, repeat. An empty list yields the
// identity substitution.
func Solve(cs Constraints) (Subs, error) {
	subs := NewSubs()
	for len(cs) > 0 {
		c := cs[0]
		cs = cs[1:]
		s, err := Unify(c.a, c.b)
		if err != nil {
			return nil, err
		}
		cs = cs.Apply(s).(Constraints)
		subs = subs.Compose(s)
	}
	return subs, nil
}
