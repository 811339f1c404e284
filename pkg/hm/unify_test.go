package hm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyVarBinding(t *testing.T) {
	a := TVar("a", SortValue)
	subs, err := Unify(a, Int)
	require.NoError(t, err)
	got, ok := subs.Get(a)
	require.True(t, ok)
	assert.True(t, got.Eq(Int))
}

func TestUnifySortMismatch(t *testing.T) {
	_, err := Unify(Int, NewBang(Int))
	require.Error(t, err)
	var ue UnificationError
	require.True(t, errors.As(err, &ue))
	assert.Contains(t, ue.Error(), "value")
	assert.Contains(t, ue.Error(), "resource")
}

func TestUnifyVarSortMismatch(t *testing.T) {
	// a value variable never binds to a session term, even through dispatch
	rv := TVar("r", SortResource)
	_, err := Unify(rv, NewBang(Int))
	require.NoError(t, err)

	_, err = Unify(TVar("a", SortValue), SessInt)
	require.Error(t, err)
}

func TestUnifyOccursCheck(t *testing.T) {
	a := TVar("a", SortValue)

	for _, tt := range []Type{
		NewArrow(a, Int),
		NewArrow(Int, a),
		NewList(a),
		NewTuple(SortValue, Int, a),
	} {
		_, err := Unify(a, tt)
		require.Error(t, err, "unifying a with %s", tt)
		var ie InfiniteTypeError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, a, ie.Var)
	}
}

func TestUnifySelfBinding(t *testing.T) {
	a := TVar("a", SortValue)
	subs, err := Unify(a, a)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestUnifyTupleArity(t *testing.T) {
	_, err := Unify(
		NewTuple(SortValue, Int, Int),
		NewTuple(SortValue, Int),
	)
	require.Error(t, err)
	var me UnificationMismatchError
	require.True(t, errors.As(err, &me))
}

func TestUnifyArrowCrossSortDomain(t *testing.T) {
	s := TVar("s", SortSession)
	rv := TVar("r", SortResource)

	subs, err := Unify(
		NewArrow(NewReadChan(s), Int),
		NewArrow(rv, Int),
	)
	require.NoError(t, err)
	got, ok := subs.Get(rv)
	require.True(t, ok)
	assert.True(t, got.Eq(NewReadChan(s)))
}

func TestUnifyChannelPayload(t *testing.T) {
	s := TVar("s", SortSession)
	subs, err := Unify(NewWriteChan(s), NewWriteChan(SessInt))
	require.NoError(t, err)
	got, ok := subs.Get(s)
	require.True(t, ok)
	assert.True(t, got.Eq(SessInt))
}

func TestUnifyDelegatedPayload(t *testing.T) {
	// channel payloads unify structurally, including tupled delegation shapes
	s := TVar("s", SortSession)
	subs, err := Unify(
		NewSend(NewTuple(SortSession, SessInt, s)),
		NewSend(NewTuple(SortSession, SessInt, SessBool)),
	)
	require.NoError(t, err)
	got, ok := subs.Get(s)
	require.True(t, ok)
	assert.True(t, got.Eq(SessBool))
}

func TestUnifyBang(t *testing.T) {
	a := TVar("a", SortValue)
	subs, err := Unify(NewBang(Int), NewBang(a))
	require.NoError(t, err)
	got, ok := subs.Get(a)
	require.True(t, ok)
	assert.True(t, got.Eq(Int))
}

func TestUnifyReadWriteEndsDiffer(t *testing.T) {
	s := TVar("s", SortSession)
	_, err := Unify(NewReadChan(s), NewBang(Int))
	require.Error(t, err)
}

func TestUnifyApp(t *testing.T) {
	a := TVar("a", SortValue)
	subs, err := Unify(NewApp("Maybe", a), NewApp("Maybe", Int))
	require.NoError(t, err)
	got, ok := subs.Get(a)
	require.True(t, ok)
	assert.True(t, got.Eq(Int))

	_, err = Unify(NewApp("Maybe", Int), NewApp("Either", Int))
	require.Error(t, err)
}
