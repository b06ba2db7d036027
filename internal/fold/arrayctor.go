package fold

import (
	"fconst/internal/diag"
	"fconst/internal/expr"
)

// foldArrayConstructor folds each item in order, flattening a nested
// ArrayConstructor item (one with no unfolded ImpliedDo left in it) and
// executing an ImpliedDo item by iterating its body once per trip,
// substituting the loop variable through Context.ImpliedDoValue.
//
// If any item's bounds are not constant, or a zero stride is seen, the whole
// constructor is left unreduced — per-item partial folding would produce a
// tree mixing folded and unfolded items in a way the shape computation
// cannot make sense of.
func foldArrayConstructor(ctx *Context, a *expr.ArrayConstructor) expr.Expr {
	items := make([]expr.Expr, 0, len(a.Items))
	for _, item := range a.Items {
		switch v := item.(type) {
		case *expr.ImpliedDo:
			folded, ok := foldImpliedDoItem(ctx, v)
			if !ok {
				return a
			}
			items = append(items, folded...)
		default:
			folded := Rewrite(ctx, item)
			if fc, ok := folded.(*expr.ArrayConstructor); ok && isFlatConstantConstructor(fc) {
				items = append(items, fc.Items...)
				continue
			}
			if _, ok := folded.(*expr.Constant); !ok {
				return a
			}
			items = append(items, folded)
		}
	}
	return &expr.ArrayConstructor{Type: a.Type, Items: items, Loc: a.Loc}
}

// foldImpliedDoItem executes one implied-DO's trip count, pushing/popping
// the loop variable for every trip — including ones abandoned partway
// through, so an error in the body never leaves the stack unbalanced.
func foldImpliedDoItem(ctx *Context, d *expr.ImpliedDo) ([]expr.Expr, bool) {
	lower, lok := constInt64(Rewrite(ctx, d.Start))
	upper, uok := constInt64(Rewrite(ctx, d.End))
	stride := int64(1)
	if d.Stride != nil {
		s, sok := constInt64(Rewrite(ctx, d.Stride))
		if !sok {
			return nil, false
		}
		stride = s
	}
	if !lok || !uok || stride == 0 {
		if stride == 0 {
			reportWarn(ctx, diag.ShapeImpliedDoZeroStep, d.Loc, "implied-DO has a zero stride")
		}
		return nil, false
	}
	if _, active := ctx.ImpliedDoValue(d.Variable); active {
		report(ctx, diag.ShapeImpliedDoDuplName, d.Loc, "implied-DO index name is not distinct along the active nest")
		return nil, false
	}

	var out []expr.Expr
	ok := true
	current := lower
	for (stride > 0 && current <= upper) || (stride < 0 && current >= upper) {
		ctx.pushImpliedDo(d.Variable, current)
		for _, item := range d.Items {
			folded := Rewrite(ctx, item)
			if fc, isArr := folded.(*expr.ArrayConstructor); isArr && isFlatConstantConstructor(fc) {
				out = append(out, fc.Items...)
				continue
			}
			if _, isConst := folded.(*expr.Constant); !isConst {
				ok = false
			} else {
				out = append(out, folded)
			}
		}
		ctx.popImpliedDo()
		if !ok {
			return nil, false
		}
		current += stride
	}
	return out, true
}

func constInt64(e expr.Expr) (int64, bool) {
	c, ok := e.(*expr.Constant)
	if !ok {
		return 0, false
	}
	return c.Value.Integer.Int64()
}

// isFlatConstantConstructor reports whether every item of fc is itself a
// scalar Constant — the shape this function linearizes nested array
// constructors and broadcast operands down to.
func isFlatConstantConstructor(fc *expr.ArrayConstructor) bool {
	for _, it := range fc.Items {
		if _, ok := it.(*expr.Constant); !ok {
			return false
		}
	}
	return true
}

// linearize reduces e to a flat slice of scalar Constants if e is either a
// scalar Constant (a one-element broadcast source) or a fully-constant
// ArrayConstructor (Parentheses around one is transparent for this purpose,
// matching spec.md's broadcasting rule — though never for expr.Equal). It
// returns ok=false for anything else, including an ArrayConstructor still
// holding an unfolded item.
func linearize(e expr.Expr) ([]expr.Expr, bool) {
	if op, isOp := e.(*expr.Operation); isOp && op.Op == expr.OpParentheses {
		return linearize(op.Left)
	}
	switch v := e.(type) {
	case *expr.Constant:
		return []expr.Expr{v}, true
	case *expr.ArrayConstructor:
		if isFlatConstantConstructor(v) {
			return v.Items, true
		}
	}
	return nil, false
}

// tryBroadcast lifts a unary or binary scalar operator across an array
// operand elementwise. It declines (ok=false) whenever neither operand is
// rank>0 — the caller falls through to the ordinary scalar path in that
// case — and whenever a rank>0 operand fails to linearize to an
// all-constant list.
func tryBroadcast(ctx *Context, o *expr.Operation, left, right expr.Expr) (expr.Expr, bool) {
	leftIsArray := left != nil && left.Rank() > 0
	rightIsArray := right != nil && right.Rank() > 0
	if !leftIsArray && !rightIsArray {
		return nil, false
	}

	if o.Right == nil {
		items, ok := linearize(left)
		if !ok {
			return nil, false
		}
		out := make([]expr.Expr, len(items))
		for i, it := range items {
			out[i] = foldScalarOperation(ctx, unaryAt(o, it), it, nil)
		}
		return &expr.ArrayConstructor{Type: o.Type, Items: out, Loc: o.Loc}, true
	}

	leftItems, leftOk := linearize(left)
	rightItems, rightOk := linearize(right)
	if !leftOk || !rightOk {
		return nil, false
	}

	switch {
	case leftIsArray && rightIsArray:
		if len(leftItems) != len(rightItems) {
			report(ctx, diag.ShapeNotConformable, o.Loc, "arguments in elemental intrinsic function are not conformable")
			return rebuild(o, left, right), true
		}
		out := make([]expr.Expr, len(leftItems))
		for i := range leftItems {
			out[i] = foldScalarOperation(ctx, o, leftItems[i], rightItems[i])
		}
		return &expr.ArrayConstructor{Type: o.Type, Items: out, Loc: o.Loc}, true
	case leftIsArray:
		scalar := rightItems[0]
		out := make([]expr.Expr, len(leftItems))
		for i := range leftItems {
			out[i] = foldScalarOperation(ctx, o, leftItems[i], scalar)
		}
		return &expr.ArrayConstructor{Type: o.Type, Items: out, Loc: o.Loc}, true
	default: // rightIsArray
		scalar := leftItems[0]
		out := make([]expr.Expr, len(rightItems))
		for i := range rightItems {
			out[i] = foldScalarOperation(ctx, o, scalar, rightItems[i])
		}
		return &expr.ArrayConstructor{Type: o.Type, Items: out, Loc: o.Loc}, true
	}
}

// unaryAt rebuilds o around a single linearized element. o.Type already
// names the per-element result type — ArrayConstructor.Type is documented
// as the element type, and Operation carries no separate array-of type.
func unaryAt(o *expr.Operation, left expr.Expr) *expr.Operation {
	return &expr.Operation{Type: o.Type, Op: o.Op, Part: o.Part, Loc: o.Loc, Left: left}
}
