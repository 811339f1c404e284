package hm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRenamesInOrder(t *testing.T) {
	x := TVar("c3", SortValue)
	y := TVar("b9", SortValue)
	sch := NewScheme([]TypeVariable{y, x}, NewArrow(x, NewArrow(y, x)))

	require.NoError(t, sch.Normalize())
	assert.Equal(t, "forall a b. a -> b -> a", sch.String())
}

func TestNormalizePreservesSorts(t *testing.T) {
	s := TVar("s9", SortSession)
	sch := NewScheme([]TypeVariable{s}, NewReadChan(s))

	require.NoError(t, sch.Normalize())
	tvs := sch.TypeVars()
	require.Len(t, tvs, 1)
	assert.Equal(t, SortSession, tvs[0].Sort())
	assert.Equal(t, "a", tvs[0].Name())
}

func TestNormalizeUnquantifiedVarIsInternal(t *testing.T) {
	free := TVar("x", SortValue)
	sch := NewScheme(nil, NewList(free))

	err := sch.Normalize()
	require.Error(t, err)
	assert.True(t, IsInternal(err), "an escaped variable is an invariant violation, not a user diagnostic")
}

func TestSchemeClone(t *testing.T) {
	z := TVar("z4", SortValue)
	orig := NewScheme([]TypeVariable{z}, NewArrow(z, z))

	clone := orig.Clone()
	assert.True(t, orig.Eq(clone))

	require.NoError(t, clone.Normalize())
	assert.Equal(t, "forall a. a -> a", clone.String())

	tvs := orig.TypeVars()
	require.Len(t, tvs, 1)
	assert.Equal(t, "z4", tvs[0].Name(), "normalizing a clone must not rename the original")
}

func TestInstantiateFreshPerUse(t *testing.T) {
	a := TVar("a", SortValue)
	sch := NewScheme([]TypeVariable{a}, NewArrow(a, a))
	fresh := NewCountingFresher()

	t1 := Instantiate(fresh, sch)
	t2 := Instantiate(fresh, sch)
	assert.False(t, t1.Eq(t2), "each use site gets its own variables")

	subs, err := Unify(t1, t2)
	require.NoError(t, err)
	assert.True(t, t1.Apply(subs).(Type).Eq(t2.Apply(subs).(Type)))
}

func TestInstantiatePreservesSort(t *testing.T) {
	r := TVar("r", SortResource)
	sch := NewScheme([]TypeVariable{r}, r)

	got := Instantiate(NewCountingFresher(), sch)
	assert.Equal(t, SortResource, got.Sort())
}

func TestInstantiateMonomorphic(t *testing.T) {
	sch := NewScheme(nil, Int)
	assert.True(t, Instantiate(NewCountingFresher(), sch).Eq(Int))
}

func TestGeneralizeClosesOverAmbient(t *testing.T) {
	a := TVar("a", SortValue)
	b := TVar("b", SortValue)
	ctx := NewContext().Extend("outer", NewScheme(nil, a))

	sch := Generalize(ctx, NewArrow(a, b))
	assert.Equal(t, []TypeVariable{b}, sch.TypeVars(), "variables free in the context stay free")
}

func TestFresherNames(t *testing.T) {
	fresh := NewCountingFresher()
	first := fresh.Fresh(SortValue)
	assert.Equal(t, "a", first.Name())

	var last TypeVariable
	for i := 1; i < 27; i++ {
		last = fresh.Fresh(SortValue)
	}
	assert.Equal(t, "a1", last.Name(), "names roll over after z")
}
