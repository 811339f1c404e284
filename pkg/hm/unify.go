package hm

// Unify attempts to make two types equal, returning the substitution that
// does so. Terms of different sorts never unify; within a sort, dispatch
// goes to that sort's unifier.
func Unify(t1, t2 Type) (Subs, error) {
	if t1.Sort() != t2.Sort() {
		return nil, UnificationError{A: t1, B: t2}
	}
	switch t1.Sort() {
	case SortResource:
		return unifyResource(t1, t2)
	case SortSession:
		return unifySession(t1, t2)
	default:
		return unifyValue(t1, t2)
	}
}

func unifyValue(t1, t2 Type) (Subs, error) {
	if t1.Eq(t2) {
		return NewSubs(), nil
	}
	if tv, ok := t1.(TypeVariable); ok {
		return bindVar(tv, t2)
	}
	if tv, ok := t2.(TypeVariable); ok {
		return bindVar(tv, t1)
	}

	switch a := t1.(type) {
	case *Arrow:
		b, ok := t2.(*Arrow)
		if !ok {
			break
		}
		// domains may live in either sort; re-dispatch
		s1, err := Unify(a.dom, b.dom)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(a.ret.Apply(s1).(Type), b.ret.Apply(s1).(Type))
		if err != nil {
			return nil, err
		}
		return s1.Compose(s2), nil
	case *Tuple:
		b, ok := t2.(*Tuple)
		if !ok {
			break
		}
		return unifyMany(a.elems, b.elems)
	case *List:
		b, ok := t2.(*List)
		if !ok {
			break
		}
		return unifyValue(a.elem, b.elem)
	case *WriteChan:
		b, ok := t2.(*WriteChan)
		if !ok {
			break
		}
		return unifySession(a.elem, b.elem)
	case *Send:
		b, ok := t2.(*Send)
		if !ok {
			break
		}
		return unifySession(a.elem, b.elem)
	case *App:
		b, ok := t2.(*App)
		if !ok || a.name != b.name {
			break
		}
		return unifyMany(a.args, b.args)
	}
	return nil, UnificationError{A: t1, B: t2}
}

func unifyResource(t1, t2 Type) (Subs, error) {
	if t1.Eq(t2) {
		return NewSubs(), nil
	}
	if tv, ok := t1.(TypeVariable); ok {
		return bindVar(tv, t2)
	}
	if tv, ok := t2.(TypeVariable); ok {
		return bindVar(tv, t1)
	}

	switch a := t1.(type) {
	case *Tuple:
		b, ok := t2.(*Tuple)
		if !ok {
			break
		}
		return unifyMany(a.elems, b.elems)
	case *ReadChan:
		b, ok := t2.(*ReadChan)
		if !ok {
			break
		}
		return unifySession(a.elem, b.elem)
	case *Bang:
		b, ok := t2.(*Bang)
		if !ok {
			break
		}
		return unifyValue(a.inner, b.inner)
	}
	return nil, UnificationError{A: t1, B: t2}
}

func unifySession(t1, t2 Type) (Subs, error) {
	if t1.Eq(t2) {
		return NewSubs(), nil
	}
	if tv, ok := t1.(TypeVariable); ok {
		return bindVar(tv, t2)
	}
	if tv, ok := t2.(TypeVariable); ok {
		return bindVar(tv, t1)
	}

	if a, ok := t1.(*Tuple); ok {
		if b, ok := t2.(*Tuple); ok {
			return unifyMany(a.elems, b.elems)
		}
	}
	return nil, UnificationError{A: t1, B: t2}
}

// unifyMany unifies two type lists pairwise, threading the accumulated
// substitution through later pairs.
func unifyMany(ts1, ts2 Types) (Subs, error) {
	if len(ts1) != len(ts2) {
		return nil, UnificationMismatchError{A: ts1, B: ts2}
	}
	subs := NewSubs()
	for i := range ts1 {
		s, err := Unify(ts1[i].Apply(subs).(Type), ts2[i].Apply(subs).(Type))
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	return subs, nil
}

// bindVar binds a type variable to a type of the same sort, after the
// occurs-check.
func bindVar(tv TypeVariable, t Type) (Subs, error) {
	if ot, ok := t.(TypeVariable); ok && tv == ot {
		return NewSubs(), nil
	}
	if tv.sort != t.Sort() {
		return nil, UnificationError{A: tv, B: t}
	}
	if t.FreeTypeVar().Contains(tv) {
		return nil, InfiniteTypeError{Var: tv, T: t}
	}
	return Subs{tv: t}, nil
}
