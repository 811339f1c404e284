package hm

// Subs represents a substitution mapping from type variables to types.
// A well-formed substitution only ever maps a variable to a term of the
// variable's own sort; bindVar enforces this at construction time.
type Subs map[TypeVariable]Type

// NewSubs creates a new, empty (identity) substitution.
func NewSubs() Subs {
	return make(Subs)
}

// Apply applies the substitution to a type.
func (s Subs) Apply(t Type) Type {
	return t.Apply(s).(Type)
}

// Compose composes the receiver (older) with newer. The older bindings have
// newer applied through them before the union is taken, and newer bindings
// win on conflicting keys.
func (s Subs) Compose(newer Subs) Subs {
	result := make(Subs, len(s)+len(newer))
	for tv, t := range s {
		result[tv] = t.Apply(newer).(Type)
	}
	for tv, t := range newer {
		result[tv] = t
	}
	return result
}

// Add adds a substitution mapping and returns the updated substitution.
func (s Subs) Add(tv TypeVariable, t Type) Subs {
	s[tv] = t
	return s
}

// Get gets the type bound to a type variable.
func (s Subs) Get(tv TypeVariable) (Type, bool) {
	t, exists := s[tv]
	return t, exists
}

// Clone creates a copy of the substitution.
func (s Subs) Clone() Subs {
	result := make(Subs, len(s))
	for tv, t := range s {
		result[tv] = t
	}
	return result
}
