package rill

import (
	"github.com/rill-lang/rill/pkg/hm"
)

// Op identifies a built-in operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	OpConcat
	OpCons
	OpNeg
	OpNot
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpConcat:
		return "++"
	case OpCons:
		return "::"
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// binOpSignature returns the operator's type as a curried arrow. Equality
// and cons are polymorphic; they instantiate a fresh variable per use site.
func binOpSignature(fresh hm.Fresher, op Op) (hm.Type, bool) {
	intBin := hm.NewArrow(hm.Int, hm.NewArrow(hm.Int, hm.Int))
	intCmp := hm.NewArrow(hm.Int, hm.NewArrow(hm.Int, hm.Bool))
	boolBin := hm.NewArrow(hm.Bool, hm.NewArrow(hm.Bool, hm.Bool))

	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return intBin, true
	case OpLt, OpLe, OpGt, OpGe:
		return intCmp, true
	case OpAnd, OpOr:
		return boolBin, true
	case OpConcat:
		return hm.NewArrow(hm.String, hm.NewArrow(hm.String, hm.String)), true
	case OpEq, OpNe:
		a := fresh.Fresh(hm.SortValue)
		return hm.NewArrow(a, hm.NewArrow(a, hm.Bool)), true
	case OpCons:
		a := fresh.Fresh(hm.SortValue)
		return hm.NewArrow(a, hm.NewArrow(hm.NewList(a), hm.NewList(a))), true
	default:
		return nil, false
	}
}

func unOpSignature(op Op) (hm.Type, bool) {
	switch op {
	case OpNeg:
		return hm.NewArrow(hm.Int, hm.Int), true
	case OpNot:
		return hm.NewArrow(hm.Bool, hm.Bool), true
	default:
		return nil, false
	}
}
