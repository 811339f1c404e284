package hm

// TypeVarSet represents a set of type variables. The zero value is an empty
// set; read operations are safe on it.
type TypeVarSet map[TypeVariable]bool

// NewTypeVarSet creates a new TypeVarSet.
func NewTypeVarSet(tvs ...TypeVariable) TypeVarSet {
	set := make(TypeVarSet, len(tvs))
	for _, tv := range tvs {
		set[tv] = true
	}
	return set
}

// Union returns the union of two TypeVarSets.
func (tvs TypeVarSet) Union(other TypeVarSet) TypeVarSet {
	result := make(TypeVarSet, len(tvs)+len(other))
	for tv := range tvs {
		result[tv] = true
	}
	for tv := range other {
		result[tv] = true
	}
	return result
}

// Contains checks if a type variable is in the set.
func (tvs TypeVarSet) Contains(tv TypeVariable) bool {
	return tvs[tv]
}

// Add adds a type variable to the set.
func (tvs TypeVarSet) Add(tv TypeVariable) {
	tvs[tv] = true
}

// Remove removes a type variable from the set.
func (tvs TypeVarSet) Remove(tv TypeVariable) {
	delete(tvs, tv)
}

// Len returns the number of variables in the set.
func (tvs TypeVarSet) Len() int {
	return len(tvs)
}
