package rill

import (
	"github.com/pkg/errors"

	"github.com/rill-lang/rill/pkg/hm"
)

// Decl is one top-level declaration.
type Decl struct {
	Name string
	Body Expr
}

// Infer type-checks a single expression against ctx, returning its closed,
// normalized scheme.
func Infer(ctx hm.Context, e Expr) (*hm.Scheme, error) {
	sch, _, err := InferResidual(ctx, e)
	return sch, err
}

// InferResidual is Infer but also reports the residual context: ctx minus
// every linear resource the expression consumed, with the final
// substitution applied.
func InferResidual(ctx hm.Context, e Expr) (*hm.Scheme, hm.Context, error) {
	inf := &inferer{fresh: hm.NewCountingFresher()}
	t, cs, residual, err := inf.infer(ctx, e)
	if err != nil {
		return nil, ctx, err
	}
	subs, err := hm.Solve(cs)
	if err != nil {
		return nil, ctx, err
	}
	sch, err := closeOver(t.Apply(subs).(hm.Type))
	if err != nil {
		return nil, ctx, err
	}
	return sch, residual.Apply(subs), nil
}

// InferTop processes declarations left to right, extending the context with
// each declaration's scheme. The first failure aborts; no partial context
// is returned.
func InferTop(ctx hm.Context, decls []Decl) (hm.Context, error) {
	for _, d := range decls {
		sch, residual, err := InferResidual(ctx, d.Body)
		if err != nil {
			return hm.Context{}, errors.Wrapf(err, "in declaration %q", d.Name)
		}
		ctx = residual.Extend(d.Name, sch)
	}
	return ctx, nil
}

// DeclareCtor registers a constructor's declared result type. Constructor
// use sites instantiate this scheme directly; argument shapes are not
// validated against a signature.
func DeclareCtor(ctx hm.Context, name string, scheme *hm.Scheme) hm.Context {
	return ctx.Extend(name, scheme)
}

func closeOver(t hm.Type) (*hm.Scheme, error) {
	sch := hm.Generalize(hm.NewContext(), t)
	if err := sch.Normalize(); err != nil {
		return nil, err
	}
	return sch, nil
}

type inferer struct {
	fresh *hm.CountingFresher
}

// saved remembers a binding so a scope can be popped without losing an
// outer binding it shadowed.
type saved struct {
	name string
	old  *hm.Scheme
	had  bool
}

func shadow(ctx hm.Context, name string) saved {
	old, had := ctx.SchemeOf(name)
	return saved{name: name, old: old, had: had}
}

func (s saved) pop(ctx hm.Context) hm.Context {
	ctx = ctx.Remove(s.name)
	if s.had {
		ctx = ctx.Extend(s.name, s.old)
	}
	return ctx
}

// infer walks e producing its type, the collected equality constraints, and
// the residual context. Contexts thread left to right: each sub-expression
// receives the context produced by its left sibling.
func (inf *inferer) infer(ctx hm.Context, e Expr) (hm.Type, hm.Constraints, hm.Context, error) {
	switch e := e.(type) {
	case Var:
		sch, ok := ctx.SchemeOf(e.Name)
		if !ok {
			return nil, nil, ctx, hm.UnboundVariableError{Name: e.Name}
		}
		t := hm.Instantiate(inf.fresh, sch)
		if t.Sort() == hm.SortResource {
			ctx = ctx.Remove(e.Name)
		}
		return t, nil, ctx, nil

	case IntLit:
		return hm.Int, nil, ctx, nil
	case BoolLit:
		return hm.Bool, nil, ctx, nil
	case StringLit:
		return hm.String, nil, ctx, nil
	case UnitLit:
		return hm.Unit, nil, ctx, nil
	case TagLit:
		return hm.Tag, nil, ctx, nil

	case Lam:
		sort := hm.SortValue
		if e.Linear {
			sort = hm.SortResource
		}
		tv := inf.fresh.Fresh(sort)
		sv := shadow(ctx, e.Param)
		bodyCtx := ctx.Extend(e.Param, hm.NewScheme(nil, tv))
		tb, cs, ctx1, err := inf.infer(bodyCtx, e.Body)
		if err != nil {
			return nil, nil, ctx, err
		}
		return hm.NewArrow(tv, tb), cs, sv.pop(ctx1), nil

	case Call:
		tf, c1, ctx1, err := inf.infer(ctx, e.Fn)
		if err != nil {
			return nil, nil, ctx, err
		}
		ta, c2, ctx2, err := inf.infer(ctx1, e.Arg)
		if err != nil {
			return nil, nil, ctx, err
		}
		tv := inf.fresh.Fresh(hm.SortValue)
		cs := append(c1, c2...)
		cs = append(cs, hm.NewConstraint(tf, hm.NewArrow(ta, tv)))
		return tv, cs, ctx2, nil

	case TupleExpr:
		var (
			cs    hm.Constraints
			elems hm.Types
		)
		cur := ctx
		for _, el := range e.Elems {
			t, c, next, err := inf.infer(cur, el)
			if err != nil {
				return nil, nil, ctx, err
			}
			cs = append(cs, c...)
			elems = append(elems, t)
			cur = next
		}
		sort, err := commonSort(elems)
		if err != nil {
			return nil, nil, ctx, errors.Wrap(err, "in tuple")
		}
		return hm.NewTuple(sort, elems...), cs, cur, nil

	case ListExpr:
		if len(e.Elems) == 0 {
			tv := inf.fresh.Fresh(hm.SortValue)
			return hm.NewList(tv), nil, ctx, nil
		}
		var cs hm.Constraints
		cur := ctx
		var head hm.Type
		for i, el := range e.Elems {
			t, c, next, err := inf.infer(cur, el)
			if err != nil {
				return nil, nil, ctx, err
			}
			cs = append(cs, c...)
			if i == 0 {
				head = t
			} else {
				cs = append(cs, hm.NewConstraint(t, head))
			}
			cur = next
		}
		return hm.NewList(head), cs, cur, nil

	case BinOp:
		t1, c1, ctx1, err := inf.infer(ctx, e.Left)
		if err != nil {
			return nil, nil, ctx, err
		}
		t2, c2, ctx2, err := inf.infer(ctx1, e.Right)
		if err != nil {
			return nil, nil, ctx, err
		}
		sig, ok := binOpSignature(inf.fresh, e.Op)
		if !ok {
			return nil, nil, ctx, errors.Errorf("operator %s is not binary", e.Op)
		}
		tv := inf.fresh.Fresh(hm.SortValue)
		cs := append(c1, c2...)
		cs = append(cs, hm.NewConstraint(hm.NewArrow(t1, hm.NewArrow(t2, tv)), sig))
		return tv, cs, ctx2, nil

	case UnOp:
		t1, c1, ctx1, err := inf.infer(ctx, e.Expr)
		if err != nil {
			return nil, nil, ctx, err
		}
		sig, ok := unOpSignature(e.Op)
		if !ok {
			return nil, nil, ctx, errors.Errorf("operator %s is not unary", e.Op)
		}
		tv := inf.fresh.Fresh(hm.SortValue)
		cs := append(c1, hm.NewConstraint(hm.NewArrow(t1, tv), sig))
		return tv, cs, ctx1, nil

	case If:
		tc, c1, ctx1, err := inf.infer(ctx, e.Cond)
		if err != nil {
			return nil, nil, ctx, err
		}
		// both arms see the post-condition context; their residuals merge
		// by intersection
		tt, c2, ctxT, err := inf.infer(ctx1, e.Then)
		if err != nil {
			return nil, nil, ctx, err
		}
		te, c3, ctxE, err := inf.infer(ctx1, e.Else)
		if err != nil {
			return nil, nil, ctx, err
		}
		cs := append(c1, c2...)
		cs = append(cs, c3...)
		cs = append(cs, hm.NewConstraint(tc, hm.Bool), hm.NewConstraint(tt, te))
		return tt, cs, ctxT.Intersect(ctxE), nil

	case Let:
		_, c1, binds, ctx1, err := inf.inferPattern(ctx, e.Pat, e.Bound)
		if err != nil {
			return nil, nil, ctx, err
		}
		subs, err := hm.Solve(c1)
		if err != nil {
			return nil, nil, ctx, errors.Wrapf(err, "in binding %s", e.Pat)
		}
		outer := ctx1.Apply(subs)
		bodyCtx := outer
		pops := make([]saved, len(binds))
		for i, b := range binds {
			pops[i] = shadow(bodyCtx, b.name)
			sch := hm.Generalize(outer, b.t.Apply(subs).(hm.Type))
			bodyCtx = bodyCtx.Extend(b.name, sch)
		}
		t2, c2, ctx2, err := inf.infer(bodyCtx, e.Body)
		if err != nil {
			return nil, nil, ctx, err
		}
		for i := len(pops) - 1; i >= 0; i-- {
			ctx2 = pops[i].pop(ctx2)
		}
		return t2, append(c1, c2...), ctx2, nil

	case NewChan:
		s := inf.fresh.Fresh(hm.SortSession)
		svR := shadow(ctx, e.ReadName)
		svW := shadow(ctx, e.WriteName)
		bodyCtx := ctx.
			Extend(e.ReadName, hm.NewScheme(nil, hm.NewReadChan(s))).
			Extend(e.WriteName, hm.NewScheme(nil, hm.NewWriteChan(s)))
		t, cs, ctx1, err := inf.infer(bodyCtx, e.Body)
		if err != nil {
			return nil, nil, ctx, err
		}
		return t, cs, svR.pop(svW.pop(ctx1)), nil

	case SendExpr:
		tm, c1, ctx1, err := inf.infer(ctx, e.Msg)
		if err != nil {
			return nil, nil, ctx, err
		}
		tc, c2, ctx2, err := inf.infer(ctx1, e.Chan)
		if err != nil {
			return nil, nil, ctx, err
		}
		s := inf.fresh.Fresh(hm.SortSession)
		cs := append(c1, c2...)
		cs = append(cs,
			hm.NewConstraint(tm, hm.NewSend(s)),
			hm.NewConstraint(tc, hm.NewWriteChan(s)),
		)
		return hm.Unit, cs, ctx2, nil

	case RecvExpr:
		tc, c1, ctx1, err := inf.infer(ctx, e.Chan)
		if err != nil {
			return nil, nil, ctx, err
		}
		s := inf.fresh.Fresh(hm.SortSession)
		cs := append(c1, hm.NewConstraint(tc, hm.NewReadChan(s)))
		return hm.NewSend(s), cs, ctx1, nil

	case Promote:
		t, cs, ctx1, err := inf.infer(ctx, e.Expr)
		if err != nil {
			return nil, nil, ctx, err
		}
		if t.Sort() != hm.SortValue {
			return nil, nil, ctx, hm.Modef("cannot promote %s-sorted %s", t.Sort(), t)
		}
		return hm.NewBang(t), cs, ctx1, nil

	case Fork:
		// the forked branch's type is discarded; its residual context
		// serializes resource consumption between the branches
		_, c1, ctx1, err := inf.infer(ctx, e.Left)
		if err != nil {
			return nil, nil, ctx, err
		}
		t2, c2, ctx2, err := inf.infer(ctx1, e.Right)
		if err != nil {
			return nil, nil, ctx, err
		}
		return t2, append(c1, c2...), ctx2, nil

	case Choice:
		t1, c1, ctxL, err := inf.infer(ctx, e.Left)
		if err != nil {
			return nil, nil, ctx, err
		}
		t2, c2, ctxR, err := inf.infer(ctx, e.Right)
		if err != nil {
			return nil, nil, ctx, err
		}
		if t1.Sort() != t2.Sort() {
			return nil, nil, ctx, hm.Modef(
				"choice alternatives disagree: %s is %s-sorted but %s is %s-sorted",
				t1, t1.Sort(), t2, t2.Sort(),
			)
		}
		cs := append(c1, c2...)
		cs = append(cs, hm.NewConstraint(t1, t2))
		return t1, cs, ctxL.Intersect(ctxR), nil

	case Match:
		return inf.inferMatch(ctx, e)

	case CtorExpr:
		sch, ok := ctx.SchemeOf(e.Name)
		if !ok {
			return nil, nil, ctx, hm.UnboundVariableError{Name: e.Name}
		}
		t := hm.Instantiate(inf.fresh, sch)
		// arguments thread the context but are not checked against a
		// declared signature
		var cs hm.Constraints
		cur := ctx
		for _, a := range e.Args {
			_, c, next, err := inf.infer(cur, a)
			if err != nil {
				return nil, nil, ctx, err
			}
			cs = append(cs, c...)
			cur = next
		}
		return t, cs, cur, nil

	default:
		return nil, nil, ctx, errors.Errorf("expression of type %T is unhandled", e)
	}
}

// inferMatch checks every arm against the same incoming context and merges
// the arm residuals by intersection, the same conservative rule as
// conditionals and external choice.
func (inf *inferer) inferMatch(ctx hm.Context, e Match) (hm.Type, hm.Constraints, hm.Context, error) {
	if len(e.Arms) == 0 {
		return nil, nil, ctx, errors.New("match with no arms")
	}

	var (
		cs     hm.Constraints
		resT   hm.Type
		resCtx hm.Context
	)
	for i, arm := range e.Arms {
		_, pc, binds, armCtx, err := inf.inferPattern(ctx, arm.Pat, e.Scrut)
		if err != nil {
			return nil, nil, ctx, err
		}
		subs, err := hm.Solve(pc)
		if err != nil {
			return nil, nil, ctx, errors.Wrapf(err, "in pattern %s", arm.Pat)
		}
		armCtx = armCtx.Apply(subs)
		outer := armCtx
		pops := make([]saved, len(binds))
		for j, b := range binds {
			pops[j] = shadow(armCtx, b.name)
			sch := hm.Generalize(outer, b.t.Apply(subs).(hm.Type))
			armCtx = armCtx.Extend(b.name, sch)
		}
		cs = append(cs, pc...)

		if arm.Guard != nil {
			tg, gc, guardCtx, err := inf.infer(armCtx, arm.Guard)
			if err != nil {
				return nil, nil, ctx, err
			}
			cs = append(cs, gc...)
			cs = append(cs, hm.NewConstraint(tg, hm.Bool))
			armCtx = guardCtx
		}

		tb, bc, bodyCtx, err := inf.infer(armCtx, arm.Body)
		if err != nil {
			return nil, nil, ctx, err
		}
		cs = append(cs, bc...)
		for j := len(pops) - 1; j >= 0; j-- {
			bodyCtx = pops[j].pop(bodyCtx)
		}

		if i == 0 {
			resT = tb
			resCtx = bodyCtx
		} else {
			cs = append(cs, hm.NewConstraint(resT, tb))
			resCtx = resCtx.Intersect(bodyCtx)
		}
	}
	return resT, cs, resCtx, nil
}

type binding struct {
	name string
	t    hm.Type
}

// inferPattern infers a pattern's type, bindings, and constraints. With a
// non-nil subject it also infers the subject under ctx and constrains the
// pattern's type to the subject's; resources the subject consumes are
// absent from the returned context.
func (inf *inferer) inferPattern(ctx hm.Context, pat Pattern, subject Expr) (hm.Type, hm.Constraints, []binding, hm.Context, error) {
	tp, cs, binds, err := inf.patternType(ctx, pat)
	if err != nil {
		return nil, nil, nil, ctx, err
	}
	if subject == nil {
		return tp, cs, binds, ctx, nil
	}
	ts, sc, ctx1, err := inf.infer(ctx, subject)
	if err != nil {
		return nil, nil, nil, ctx, err
	}
	cs = append(cs, sc...)
	cs = append(cs, hm.NewConstraint(tp, ts))
	return tp, cs, binds, ctx1, nil
}

func (inf *inferer) patternType(ctx hm.Context, pat Pattern) (hm.Type, hm.Constraints, []binding, error) {
	switch p := pat.(type) {
	case PVar:
		sort := hm.SortValue
		if p.Linear {
			sort = hm.SortResource
		}
		tv := inf.fresh.Fresh(sort)
		return tv, nil, []binding{{name: p.Name, t: tv}}, nil

	case PWild:
		tv := inf.fresh.Fresh(hm.SortValue)
		return tv, nil, nil, nil

	case PLit:
		switch p.Lit.(type) {
		case IntLit:
			return hm.Int, nil, nil, nil
		case BoolLit:
			return hm.Bool, nil, nil, nil
		case StringLit:
			return hm.String, nil, nil, nil
		case UnitLit:
			return hm.Unit, nil, nil, nil
		case TagLit:
			return hm.Tag, nil, nil, nil
		default:
			return nil, nil, nil, errors.Errorf("%s is not a literal pattern", p.Lit)
		}

	case PTuple:
		var (
			cs    hm.Constraints
			elems hm.Types
			binds []binding
		)
		for _, el := range p.Elems {
			t, c, b, err := inf.patternType(ctx, el)
			if err != nil {
				return nil, nil, nil, err
			}
			cs = append(cs, c...)
			elems = append(elems, t)
			binds = append(binds, b...)
		}
		sort, err := commonSort(elems)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "in tuple pattern")
		}
		return hm.NewTuple(sort, elems...), cs, binds, nil

	case PCons:
		th, c1, b1, err := inf.patternType(ctx, p.Head)
		if err != nil {
			return nil, nil, nil, err
		}
		tt, c2, b2, err := inf.patternType(ctx, p.Tail)
		if err != nil {
			return nil, nil, nil, err
		}
		cs := append(c1, c2...)
		cs = append(cs, hm.NewConstraint(tt, hm.NewList(th)))
		return hm.NewList(th), cs, append(b1, b2...), nil

	case PCtor:
		sch, ok := ctx.SchemeOf(p.Name)
		if !ok {
			return nil, nil, nil, hm.UnboundVariableError{Name: p.Name}
		}
		t := hm.Instantiate(inf.fresh, sch)
		var (
			cs    hm.Constraints
			binds []binding
		)
		for _, a := range p.Args {
			_, c, b, err := inf.patternType(ctx, a)
			if err != nil {
				return nil, nil, nil, err
			}
			cs = append(cs, c...)
			binds = append(binds, b...)
		}
		return t, cs, binds, nil

	case PBang:
		ti, cs, binds, err := inf.patternType(ctx, p.Inner)
		if err != nil {
			return nil, nil, nil, err
		}
		if ti.Sort() != hm.SortValue {
			return nil, nil, nil, hm.Modef("bang pattern over %s-sorted %s", ti.Sort(), ti)
		}
		return hm.NewBang(ti), cs, binds, nil

	default:
		return nil, nil, nil, errors.Errorf("pattern of type %T is unhandled", pat)
	}
}

// commonSort returns the shared sort of a tuple's element types. Session
// elements cannot occur in expression position, so only value and resource
// mixes are reported.
func commonSort(ts hm.Types) (hm.Sort, error) {
	if len(ts) == 0 {
		return hm.SortValue, nil
	}
	sort := ts[0].Sort()
	for _, t := range ts[1:] {
		if t.Sort() != sort {
			return 0, hm.Modef("%s is %s-sorted alongside %s-sorted elements", t, t.Sort(), sort)
		}
	}
	return sort, nil
}
