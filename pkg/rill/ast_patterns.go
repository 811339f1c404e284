package rill

import (
	"fmt"
	"strings"
)

// Pattern is a pattern of the checked language, closed like Expr.
type Pattern interface {
	fmt.Stringer
	isPattern()
}

// PVar binds a name. A Linear pattern variable binds at a fresh
// resource-sorted type.
type PVar struct {
	Name   string
	Linear bool
}

func (PVar) isPattern() {}
func (p PVar) String() string {
	if p.Linear {
		return "&" + p.Name
	}
	return p.Name
}

type PWild struct{}

func (PWild) isPattern()     {}
func (PWild) String() string { return "_" }

// PLit matches a literal; the subject must have the literal's type.
type PLit struct {
	Lit Expr
}

func (PLit) isPattern()       {}
func (p PLit) String() string { return p.Lit.String() }

type PTuple struct {
	Elems []Pattern
}

func (PTuple) isPattern() {}
func (p PTuple) String() string {
	parts := make([]string, len(p.Elems))
	for i, el := range p.Elems {
		parts[i] = el.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// PCons destructures a list into head and tail.
type PCons struct {
	Head Pattern
	Tail Pattern
}

func (PCons) isPattern() {}
func (p PCons) String() string {
	return fmt.Sprintf("(%s :: %s)", p.Head, p.Tail)
}

// PCtor matches a declared constructor. Like CtorExpr, only the declared
// result type is consulted.
type PCtor struct {
	Name string
	Args []Pattern
}

func (PCtor) isPattern() {}
func (p PCtor) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	parts := make([]string, len(p.Args)+1)
	parts[0] = p.Name
	for i, a := range p.Args {
		parts[i+1] = a.String()
	}
	return strings.Join(parts, " ")
}

// PBang matches a promoted value, binding its payload at value sort.
type PBang struct {
	Inner Pattern
}

func (PBang) isPattern() {}
func (p PBang) String() string {
	return fmt.Sprintf("!%s", p.Inner)
}
