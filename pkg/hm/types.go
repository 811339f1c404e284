package hm

import (
	"fmt"
	"strings"
)

// Sort partitions the type algebra. Value types are unrestricted, resource
// types are consumed at most once, and session types describe the payload
// carried over channels.
type Sort uint8

const (
	SortValue Sort = iota
	SortResource
	SortSession
)

func (s Sort) String() string {
	switch s {
	case SortValue:
		return "value"
	case SortResource:
		return "resource"
	case SortSession:
		return "session"
	default:
		return fmt.Sprintf("Sort(%d)", uint8(s))
	}
}

// Substitutable is any type that can have substitutions applied and knows
// its free type variables.
type Substitutable interface {
	Apply(Subs) Substitutable
	FreeTypeVar() TypeVarSet
}

// Type is the interface implemented by every term of the algebra.
// The set of implementations is closed; functions over types switch
// exhaustively on them.
type Type interface {
	Substitutable
	Sort() Sort
	Eq(Type) bool
	Types() Types
	Normalize(k, v []TypeVariable) (Type, error)
	fmt.Stringer
}

// Types represents a slice of types.
type Types []Type

// TypeVariable is an opaque identifier belonging to exactly one sort.
// A variable only ever unifies with terms of its own sort.
type TypeVariable struct {
	name string
	sort Sort
}

// TVar constructs a type variable with an explicit sort.
func TVar(name string, sort Sort) TypeVariable {
	return TypeVariable{name: name, sort: sort}
}

func (tv TypeVariable) Name() string { return tv.name }

func (tv TypeVariable) Sort() Sort { return tv.sort }

func (tv TypeVariable) Apply(subs Subs) Substitutable {
	if t, ok := subs[tv]; ok {
		return t
	}
	return tv
}

func (tv TypeVariable) FreeTypeVar() TypeVarSet {
	return NewTypeVarSet(tv)
}

func (tv TypeVariable) Types() Types { return nil }

func (tv TypeVariable) Normalize(k, v []TypeVariable) (Type, error) {
	for i := range k {
		if k[i] == tv {
			return v[i], nil
		}
	}
	return nil, NormalizeError{Var: tv}
}

func (tv TypeVariable) Eq(other Type) bool {
	if ot, ok := other.(TypeVariable); ok {
		return tv == ot
	}
	return false
}

func (tv TypeVariable) String() string { return tv.name }

// Const is a value-sorted base type.
type Const string

const (
	Int    Const = "Int"
	Bool   Const = "Bool"
	String Const = "String"
	Unit   Const = "Unit"
	Tag    Const = "Tag"
)

func (c Const) Apply(Subs) Substitutable { return c }

func (c Const) FreeTypeVar() TypeVarSet { return nil }

func (c Const) Sort() Sort { return SortValue }

func (c Const) Types() Types { return nil }

func (c Const) Normalize(k, v []TypeVariable) (Type, error) { return c, nil }

func (c Const) Eq(other Type) bool {
	oc, ok := other.(Const)
	return ok && oc == c
}

func (c Const) String() string { return string(c) }

// SessConst is a session-sorted base constant describing a primitive
// channel payload.
type SessConst string

const (
	SessInt    SessConst = "Int"
	SessBool   SessConst = "Bool"
	SessString SessConst = "String"
	SessUnit   SessConst = "Unit"
)

func (c SessConst) Apply(Subs) Substitutable { return c }

func (c SessConst) FreeTypeVar() TypeVarSet { return nil }

func (c SessConst) Sort() Sort { return SortSession }

func (c SessConst) Types() Types { return nil }

func (c SessConst) Normalize(k, v []TypeVariable) (Type, error) { return c, nil }

func (c SessConst) Eq(other Type) bool {
	oc, ok := other.(SessConst)
	return ok && oc == c
}

func (c SessConst) String() string { return string(c) }

// Tuple is a product type. Its elements all belong to the tuple's own sort;
// value, resource, and session tuples share this representation.
type Tuple struct {
	sort  Sort
	elems Types
}

func NewTuple(sort Sort, elems ...Type) *Tuple {
	return &Tuple{sort: sort, elems: elems}
}

func (t *Tuple) Apply(subs Subs) Substitutable {
	elems := make(Types, len(t.elems))
	for i, e := range t.elems {
		elems[i] = e.Apply(subs).(Type)
	}
	return &Tuple{sort: t.sort, elems: elems}
}

func (t *Tuple) FreeTypeVar() TypeVarSet {
	var ftvs TypeVarSet
	for _, e := range t.elems {
		ftvs = ftvs.Union(e.FreeTypeVar())
	}
	return ftvs
}

func (t *Tuple) Sort() Sort { return t.sort }

func (t *Tuple) Types() Types { return t.elems }

func (t *Tuple) Normalize(k, v []TypeVariable) (Type, error) {
	elems := make(Types, len(t.elems))
	for i, e := range t.elems {
		n, err := e.Normalize(k, v)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	return &Tuple{sort: t.sort, elems: elems}, nil
}

func (t *Tuple) Eq(other Type) bool {
	ot, ok := other.(*Tuple)
	if !ok || ot.sort != t.sort || len(ot.elems) != len(t.elems) {
		return false
	}
	for i, e := range t.elems {
		if !e.Eq(ot.elems[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Arrow is a value-sorted function type. The domain may be value- or
// resource-sorted; the codomain is a full Type.
type Arrow struct {
	dom Type
	ret Type
}

func NewArrow(dom, ret Type) *Arrow {
	return &Arrow{dom: dom, ret: ret}
}

func (t *Arrow) Dom() Type { return t.dom }

func (t *Arrow) Ret() Type { return t.ret }

func (t *Arrow) Apply(subs Subs) Substitutable {
	return &Arrow{
		dom: t.dom.Apply(subs).(Type),
		ret: t.ret.Apply(subs).(Type),
	}
}

func (t *Arrow) FreeTypeVar() TypeVarSet {
	return t.dom.FreeTypeVar().Union(t.ret.FreeTypeVar())
}

func (t *Arrow) Sort() Sort { return SortValue }

func (t *Arrow) Types() Types { return Types{t.dom, t.ret} }

func (t *Arrow) Normalize(k, v []TypeVariable) (Type, error) {
	dom, err := t.dom.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	ret, err := t.ret.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &Arrow{dom: dom, ret: ret}, nil
}

func (t *Arrow) Eq(other Type) bool {
	if ot, ok := other.(*Arrow); ok {
		return t.dom.Eq(ot.dom) && t.ret.Eq(ot.ret)
	}
	return false
}

func (t *Arrow) String() string {
	dom := t.dom.String()
	if _, ok := t.dom.(*Arrow); ok {
		dom = "(" + dom + ")"
	}
	return fmt.Sprintf("%s -> %s", dom, t.ret)
}

// List is a value-sorted homogeneous list type.
type List struct {
	elem Type
}

func NewList(elem Type) *List { return &List{elem: elem} }

func (t *List) Elem() Type { return t.elem }

func (t *List) Apply(subs Subs) Substitutable {
	return &List{elem: t.elem.Apply(subs).(Type)}
}

func (t *List) FreeTypeVar() TypeVarSet { return t.elem.FreeTypeVar() }

func (t *List) Sort() Sort { return SortValue }

func (t *List) Types() Types { return Types{t.elem} }

func (t *List) Normalize(k, v []TypeVariable) (Type, error) {
	elem, err := t.elem.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &List{elem: elem}, nil
}

func (t *List) Eq(other Type) bool {
	if ot, ok := other.(*List); ok {
		return t.elem.Eq(ot.elem)
	}
	return false
}

func (t *List) String() string { return fmt.Sprintf("[%s]", t.elem) }

// WriteChan is the value-sorted write end of a channel. Write ends are
// freely shareable; only read ends are linear.
type WriteChan struct {
	elem Type
}

func NewWriteChan(elem Type) *WriteChan { return &WriteChan{elem: elem} }

func (t *WriteChan) Elem() Type { return t.elem }

func (t *WriteChan) Apply(subs Subs) Substitutable {
	return &WriteChan{elem: t.elem.Apply(subs).(Type)}
}

func (t *WriteChan) FreeTypeVar() TypeVarSet { return t.elem.FreeTypeVar() }

func (t *WriteChan) Sort() Sort { return SortValue }

func (t *WriteChan) Types() Types { return Types{t.elem} }

func (t *WriteChan) Normalize(k, v []TypeVariable) (Type, error) {
	elem, err := t.elem.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &WriteChan{elem: elem}, nil
}

func (t *WriteChan) Eq(other Type) bool {
	if ot, ok := other.(*WriteChan); ok {
		return t.elem.Eq(ot.elem)
	}
	return false
}

func (t *WriteChan) String() string { return fmt.Sprintf("Wr %s", t.elem) }

// ReadChan is the resource-sorted read end of a channel. Looking up a name
// bound to a ReadChan consumes it.
type ReadChan struct {
	elem Type
}

func NewReadChan(elem Type) *ReadChan { return &ReadChan{elem: elem} }

func (t *ReadChan) Elem() Type { return t.elem }

func (t *ReadChan) Apply(subs Subs) Substitutable {
	return &ReadChan{elem: t.elem.Apply(subs).(Type)}
}

func (t *ReadChan) FreeTypeVar() TypeVarSet { return t.elem.FreeTypeVar() }

func (t *ReadChan) Sort() Sort { return SortResource }

func (t *ReadChan) Types() Types { return Types{t.elem} }

func (t *ReadChan) Normalize(k, v []TypeVariable) (Type, error) {
	elem, err := t.elem.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &ReadChan{elem: elem}, nil
}

func (t *ReadChan) Eq(other Type) bool {
	if ot, ok := other.(*ReadChan); ok {
		return t.elem.Eq(ot.elem)
	}
	return false
}

func (t *ReadChan) String() string { return fmt.Sprintf("Rd %s", t.elem) }

// Send is the value-sorted wrapper around a session element, the type of a
// message in flight. Carrying a channel inside a Send is how delegation is
// expressed.
type Send struct {
	elem Type
}

func NewSend(elem Type) *Send { return &Send{elem: elem} }

func (t *Send) Elem() Type { return t.elem }

func (t *Send) Apply(subs Subs) Substitutable {
	return &Send{elem: t.elem.Apply(subs).(Type)}
}

func (t *Send) FreeTypeVar() TypeVarSet { return t.elem.FreeTypeVar() }

func (t *Send) Sort() Sort { return SortValue }

func (t *Send) Types() Types { return Types{t.elem} }

func (t *Send) Normalize(k, v []TypeVariable) (Type, error) {
	elem, err := t.elem.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &Send{elem: elem}, nil
}

func (t *Send) Eq(other Type) bool {
	if ot, ok := other.(*Send); ok {
		return t.elem.Eq(ot.elem)
	}
	return false
}

func (t *Send) String() string { return fmt.Sprintf("Send %s", t.elem) }

// Bang is the resource-sorted promotion of a value type: a value made
// available exactly once.
type Bang struct {
	inner Type
}

func NewBang(inner Type) *Bang { return &Bang{inner: inner} }

func (t *Bang) Inner() Type { return t.inner }

func (t *Bang) Apply(subs Subs) Substitutable {
	return &Bang{inner: t.inner.Apply(subs).(Type)}
}

func (t *Bang) FreeTypeVar() TypeVarSet { return t.inner.FreeTypeVar() }

func (t *Bang) Sort() Sort { return SortResource }

func (t *Bang) Types() Types { return Types{t.inner} }

func (t *Bang) Normalize(k, v []TypeVariable) (Type, error) {
	inner, err := t.inner.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &Bang{inner: inner}, nil
}

func (t *Bang) Eq(other Type) bool {
	if ot, ok := other.(*Bang); ok {
		return t.inner.Eq(ot.inner)
	}
	return false
}

func (t *Bang) String() string { return fmt.Sprintf("!%s", t.inner) }

// App is the application of a named custom (sum) type constructor to
// value-sorted arguments.
type App struct {
	name string
	args Types
}

func NewApp(name string, args ...Type) *App {
	return &App{name: name, args: args}
}

func (t *App) Name() string { return t.name }

func (t *App) Args() Types { return t.args }

func (t *App) Apply(subs Subs) Substitutable {
	args := make(Types, len(t.args))
	for i, a := range t.args {
		args[i] = a.Apply(subs).(Type)
	}
	return &App{name: t.name, args: args}
}

func (t *App) FreeTypeVar() TypeVarSet {
	var ftvs TypeVarSet
	for _, a := range t.args {
		ftvs = ftvs.Union(a.FreeTypeVar())
	}
	return ftvs
}

func (t *App) Sort() Sort { return SortValue }

func (t *App) Types() Types { return t.args }

func (t *App) Normalize(k, v []TypeVariable) (Type, error) {
	args := make(Types, len(t.args))
	for i, a := range t.args {
		n, err := a.Normalize(k, v)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return &App{name: t.name, args: args}, nil
}

func (t *App) Eq(other Type) bool {
	ot, ok := other.(*App)
	if !ok || ot.name != t.name || len(ot.args) != len(t.args) {
		return false
	}
	for i, a := range t.args {
		if !a.Eq(ot.args[i]) {
			return false
		}
	}
	return true
}

func (t *App) String() string {
	if len(t.args) == 0 {
		return t.name
	}
	parts := make([]string, len(t.args)+1)
	parts[0] = t.name
	for i, a := range t.args {
		s := a.String()
		if _, arrow := a.(*Arrow); arrow {
			s = "(" + s + ")"
		}
		parts[i+1] = s
	}
	return strings.Join(parts, " ")
}
