package fold

import (
	"fmt"

	"fconst/internal/bignum"
	"fconst/internal/diag"
	"fconst/internal/expr"
	"fconst/internal/numeric"
	"fconst/internal/source"
	"fconst/internal/types"
)

func kindOf(t types.SomeType, fallback int) int {
	if t.IsTyped {
		return t.Type().Kind
	}
	return fallback
}

// IntegerLiteral builds a scalar INTEGER constant at t's kind (or the
// default INTEGER kind if t is typeless), used wherever the driver
// synthesizes a fresh constant rather than reducing an existing node (an
// implied-DO index substitution, a SIZE/SHAPE result, ...).
func IntegerLiteral(v int64, t types.SomeType, loc source.Span) *expr.Constant {
	return expr.IntegerConstant(bignum.IntFromInt64(v), kindOf(t, types.DefaultKind(types.CategoryInteger)), loc)
}

func logicalLiteral(v bool, loc source.Span) *expr.Constant {
	return expr.LogicalConstant(v, types.LogicalResultKind, loc)
}

// asConstant reports whether e carries a constant scalar value, looking
// through a Parentheses wrapper (Fold((2+3)) stays a distinct Parentheses
// node per spec.md's equality rule, but arithmetic consuming that node as an
// operand still sees the value it wraps).
func asConstant(e expr.Expr) (*expr.Constant, bool) {
	if op, ok := e.(*expr.Operation); ok && op.Op == expr.OpParentheses {
		return asConstant(op.Left)
	}
	c, ok := e.(*expr.Constant)
	return c, ok
}

func report(ctx *Context, code diag.Code, span source.Span, format string, args ...any) {
	if ctx.Reporter == nil {
		return
	}
	diag.ReportError(ctx.Reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func reportWarn(ctx *Context, code diag.Code, span source.Span, format string, args ...any) {
	if ctx.Reporter == nil {
		return
	}
	diag.ReportWarning(ctx.Reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

// realByteWidth reads a SomeType's kind as the mantissa table key
// internal/numeric's real kernel expects.
func realByteWidth(t types.SomeType) int { return t.Type().Kind }

func orderingFromRel(rel expr.RelOp, ord numeric.Ordering) bool {
	switch rel {
	case expr.RelLT:
		return ord == numeric.Less
	case expr.RelLE:
		return ord == numeric.Less || ord == numeric.Equal
	case expr.RelEQ:
		return ord == numeric.Equal
	case expr.RelNE:
		return ord != numeric.Equal
	case expr.RelGE:
		return ord == numeric.Greater || ord == numeric.Equal
	case expr.RelGT:
		return ord == numeric.Greater
	default:
		return false
	}
}

func orderingFromRealOrdering(rel expr.RelOp, ord numeric.RealOrdering) bool {
	switch rel {
	case expr.RelLT:
		return ord == numeric.RealLess
	case expr.RelLE:
		return ord == numeric.RealLess || ord == numeric.RealEqual
	case expr.RelEQ:
		return ord == numeric.RealEqual
	case expr.RelNE:
		return ord != numeric.RealEqual
	case expr.RelGE:
		return ord == numeric.RealGreater || ord == numeric.RealEqual
	case expr.RelGT:
		return ord == numeric.RealGreater
	default:
		return false
	}
}
