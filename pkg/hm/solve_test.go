package hm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveEmpty(t *testing.T) {
	subs, err := Solve(nil)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSolveChain(t *testing.T) {
	a := TVar("a", SortValue)
	b := TVar("b", SortValue)

	subs, err := Solve(Constraints{
		NewConstraint(a, Int),
		NewConstraint(b, a),
	})
	require.NoError(t, err)

	ta, _ := subs.Get(a)
	tb, _ := subs.Get(b)
	assert.True(t, ta.Eq(Int))
	assert.True(t, tb.Eq(Int))
}

func TestSolveIdempotence(t *testing.T) {
	a := TVar("a", SortValue)
	b := TVar("b", SortValue)
	s := TVar("s", SortSession)

	target := NewArrow(a, NewTuple(SortValue, b, NewWriteChan(s)))
	subs, err := Solve(Constraints{
		NewConstraint(a, NewList(b)),
		NewConstraint(b, Int),
		NewConstraint(s, SessInt),
	})
	require.NoError(t, err)

	once := target.Apply(subs).(Type)
	twice := once.Apply(subs).(Type)
	assert.True(t, once.Eq(twice), "applying a solved substitution must be idempotent: %s vs %s", once, twice)
}

func TestSolveConflict(t *testing.T) {
	a := TVar("a", SortValue)
	_, err := Solve(Constraints{
		NewConstraint(a, Int),
		NewConstraint(a, Bool),
	})
	require.Error(t, err)
}

func TestComposePrecedence(t *testing.T) {
	a := TVar("a", SortValue)
	b := TVar("b", SortValue)

	older := Subs{a: NewList(b)}
	newer := Subs{b: Int}
	composed := older.Compose(newer)

	ta, _ := composed.Get(a)
	assert.True(t, ta.Eq(NewList(Int)), "newer must apply through older images")

	conflictOlder := Subs{a: Int}
	conflictNewer := Subs{a: Bool}
	got, _ := conflictOlder.Compose(conflictNewer).Get(a)
	assert.True(t, got.Eq(Bool), "newer bindings win on conflicting keys")
}

func TestSubsAdd(t *testing.T) {
	a := TVar("a", SortValue)
	s := NewSubs().Add(a, Int)

	got, ok := s.Get(a)
	require.True(t, ok)
	assert.True(t, got.Eq(Int))
}

func TestSubsClone(t *testing.T) {
	a := TVar("a", SortValue)
	b := TVar("b", SortValue)
	orig := Subs{a: Int}

	clone := orig.Clone()
	clone.Add(b, Bool)

	_, ok := orig.Get(b)
	assert.False(t, ok, "writes to a clone must not leak into the original")
	got, ok := clone.Get(a)
	require.True(t, ok)
	assert.True(t, got.Eq(Int))
}
