package hm

import (
	"github.com/benbjohnson/immutable"
)

var emptySchemes = immutable.NewSortedMap(nil)

// Context is the typing context: a persistent mapping from names to
// schemes. Every operation returns a new Context; the generator threads
// contexts through sub-expressions and never mutates one in place. The zero
// value is an empty context.
type Context struct {
	m *immutable.SortedMap
}

// NewContext creates an empty typing context.
func NewContext() Context {
	return Context{m: emptySchemes}
}

func (c Context) schemes() *immutable.SortedMap {
	if c.m == nil {
		return emptySchemes
	}
	return c.m
}

// Extend binds name to scheme, replacing any previous binding.
func (c Context) Extend(name string, scheme *Scheme) Context {
	return Context{m: c.schemes().Set(name, scheme)}
}

// Remove unbinds name. Removing an absent name is a no-op.
func (c Context) Remove(name string) Context {
	return Context{m: c.schemes().Delete(name)}
}

// SchemeOf looks up the scheme bound to name.
func (c Context) SchemeOf(name string) (*Scheme, bool) {
	v, ok := c.schemes().Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Scheme), true
}

// Contains reports whether name is bound.
func (c Context) Contains(name string) bool {
	_, ok := c.schemes().Get(name)
	return ok
}

// Intersect keeps only the names bound in both contexts, with the
// receiver's schemes. This is the conservative merge for constructs where
// exactly one of two sub-evaluations runs: a resource consumed on either
// path is treated as consumed on both.
func (c Context) Intersect(other Context) Context {
	result := emptySchemes
	iter := c.schemes().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if other.Contains(k.(string)) {
			result = result.Set(k, v)
		}
	}
	return Context{m: result}
}

// Apply applies a substitution to every scheme in the context.
func (c Context) Apply(subs Subs) Context {
	result := emptySchemes
	iter := c.schemes().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		result = result.Set(k, v.(*Scheme).Apply(subs).(*Scheme))
	}
	return Context{m: result}
}

// FreeTypeVar returns the union of the free variables of every scheme.
func (c Context) FreeTypeVar() TypeVarSet {
	ftvs := NewTypeVarSet()
	iter := c.schemes().Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		for tv := range v.(*Scheme).FreeTypeVar() {
			ftvs.Add(tv)
		}
	}
	return ftvs
}

// Names returns the bound names in sorted order.
func (c Context) Names() []string {
	names := make([]string, 0, c.Len())
	iter := c.schemes().Iterator()
	for !iter.Done() {
		k, _ := iter.Next()
		names = append(names, k.(string))
	}
	return names
}

// Len returns the number of bindings.
func (c Context) Len() int {
	return c.schemes().Len()
}

// Eq reports whether two contexts bind the same names to structurally equal
// schemes.
func (c Context) Eq(other Context) bool {
	if c.Len() != other.Len() {
		return false
	}
	iter := c.schemes().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		o, ok := other.SchemeOf(k.(string))
		if !ok || !v.(*Scheme).Eq(o) {
			return false
		}
	}
	return true
}
