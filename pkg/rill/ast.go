package rill

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is an expression of the checked language. The set of implementations
// is closed; the generator switches exhaustively over it.
type Expr interface {
	fmt.Stringer
	isExpr()
}

// Var references a name in the typing context. Referencing a resource-sorted
// name consumes it.
type Var struct {
	Name string
}

func (Var) isExpr()          {}
func (e Var) String() string { return e.Name }

type IntLit struct {
	Value int64
}

func (IntLit) isExpr()          {}
func (e IntLit) String() string { return strconv.FormatInt(e.Value, 10) }

type BoolLit struct {
	Value bool
}

func (BoolLit) isExpr()          {}
func (e BoolLit) String() string { return strconv.FormatBool(e.Value) }

type StringLit struct {
	Value string
}

func (StringLit) isExpr()          {}
func (e StringLit) String() string { return strconv.Quote(e.Value) }

type UnitLit struct{}

func (UnitLit) isExpr()        {}
func (UnitLit) String() string { return "()" }

// TagLit is an uninterpreted label literal.
type TagLit struct {
	Name string
}

func (TagLit) isExpr()          {}
func (e TagLit) String() string { return "'" + e.Name }

// Lam is a single-parameter abstraction. A Linear parameter is bound at a
// fresh resource-sorted variable and is consumed by use.
type Lam struct {
	Param  string
	Linear bool
	Body   Expr
}

func (Lam) isExpr() {}
func (e Lam) String() string {
	if e.Linear {
		return fmt.Sprintf("\\%s -o %s", e.Param, e.Body)
	}
	return fmt.Sprintf("\\%s -> %s", e.Param, e.Body)
}

// Call applies a function to one argument.
type Call struct {
	Fn  Expr
	Arg Expr
}

func (Call) isExpr() {}
func (e Call) String() string {
	arg := e.Arg.String()
	if _, ok := e.Arg.(Call); ok {
		arg = "(" + arg + ")"
	}
	return fmt.Sprintf("%s %s", e.Fn, arg)
}

type TupleExpr struct {
	Elems []Expr
}

func (TupleExpr) isExpr() {}
func (e TupleExpr) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type ListExpr struct {
	Elems []Expr
}

func (ListExpr) isExpr() {}
func (e ListExpr) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type BinOp struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (BinOp) isExpr() {}
func (e BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

type UnOp struct {
	Op   Op
	Expr Expr
}

func (UnOp) isExpr() {}
func (e UnOp) String() string {
	return fmt.Sprintf("%s%s", e.Op, e.Expr)
}

type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (If) isExpr() {}
func (e If) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else)
}

// Let binds a pattern to an expression within a body, with
// let-polymorphism: the binding's constraints are solved locally and its
// types generalized against the substituted outer context.
type Let struct {
	Pat   Pattern
	Bound Expr
	Body  Expr
}

func (Let) isExpr() {}
func (e Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", e.Pat, e.Bound, e.Body)
}

// NewChan is channel restriction: it introduces a linear read end and a
// shareable write end over one shared payload type, scoped to Body.
type NewChan struct {
	ReadName  string
	WriteName string
	Body      Expr
}

func (NewChan) isExpr() {}
func (e NewChan) String() string {
	return fmt.Sprintf("new (%s, %s) in %s", e.ReadName, e.WriteName, e.Body)
}

// SendExpr writes Msg to the write end Chan.
type SendExpr struct {
	Msg  Expr
	Chan Expr
}

func (SendExpr) isExpr() {}
func (e SendExpr) String() string {
	return fmt.Sprintf("wr %s %s", e.Msg, e.Chan)
}

// RecvExpr reads from the read end Chan, consuming it.
type RecvExpr struct {
	Chan Expr
}

func (RecvExpr) isExpr() {}
func (e RecvExpr) String() string {
	return fmt.Sprintf("rd %s", e.Chan)
}

// Promote marks a value as a linear, once-available resource.
type Promote struct {
	Expr Expr
}

func (Promote) isExpr() {}
func (e Promote) String() string {
	return fmt.Sprintf("promote %s", e.Expr)
}

// Fork runs Left concurrently and continues as Right. The checker threads
// Left's residual context into Right, so the two branches can never consume
// the same resource.
type Fork struct {
	Left  Expr
	Right Expr
}

func (Fork) isExpr() {}
func (e Fork) String() string {
	return fmt.Sprintf("fork %s %s", e.Left, e.Right)
}

// Choice is external choice between two alternatives; exactly one runs.
type Choice struct {
	Left  Expr
	Right Expr
}

func (Choice) isExpr() {}
func (e Choice) String() string {
	return fmt.Sprintf("(%s <+> %s)", e.Left, e.Right)
}

// Arm is one branch of a Match. Guard may be nil.
type Arm struct {
	Pat   Pattern
	Guard Expr
	Body  Expr
}

func (a Arm) String() string {
	if a.Guard != nil {
		return fmt.Sprintf("%s when %s => %s", a.Pat, a.Guard, a.Body)
	}
	return fmt.Sprintf("%s => %s", a.Pat, a.Body)
}

type Match struct {
	Scrut Expr
	Arms  []Arm
}

func (Match) isExpr() {}
func (e Match) String() string {
	parts := make([]string, len(e.Arms))
	for i, a := range e.Arms {
		parts[i] = a.String()
	}
	return fmt.Sprintf("match %s { %s }", e.Scrut, strings.Join(parts, " | "))
}

// CtorExpr builds a value of a declared custom (sum) type. Only the
// constructor's declared result type is consulted; arguments are inferred
// for context threading but not validated against a signature.
type CtorExpr struct {
	Name string
	Args []Expr
}

func (CtorExpr) isExpr() {}
func (e CtorExpr) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	parts := make([]string, len(e.Args)+1)
	parts[0] = e.Name
	for i, a := range e.Args {
		parts[i+1] = a.String()
	}
	return strings.Join(parts, " ")
}
