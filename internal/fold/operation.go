package fold

import (
	"strings"

	"fconst/internal/bignum"
	"fconst/internal/diag"
	"fconst/internal/expr"
	"fconst/internal/numeric"
	"fconst/internal/source"
	"fconst/internal/types"
)

// foldOperation folds every operand bottom-up, then attempts reduction of
// the operator itself. Array broadcasting is tried before the scalar
// reduction, since a rank>0 operand never reduces through the scalar path
// below.
func foldOperation(ctx *Context, o *expr.Operation) expr.Expr {
	left := Rewrite(ctx, o.Left)
	var right expr.Expr
	if o.Right != nil {
		right = Rewrite(ctx, o.Right)
	}

	if o.Op == expr.OpParentheses {
		return &expr.Operation{Type: o.Type, Op: expr.OpParentheses, Left: left, Loc: o.Loc}
	}

	if broadcast, ok := tryBroadcast(ctx, o, left, right); ok {
		return broadcast
	}

	return foldScalarOperation(ctx, o, left, right)
}

// foldScalarOperation reduces o assuming neither operand needs elementwise
// lifting — both are scalar, or broadcasting declined because an array
// operand didn't linearize to an all-constant constructor.
func foldScalarOperation(ctx *Context, o *expr.Operation, left, right expr.Expr) expr.Expr {
	lc, lok := asConstant(left)

	switch o.Op {
	case expr.OpNegate:
		if !lok {
			return rebuild(o, left, right)
		}
		return foldNegate(ctx, o, lc)
	case expr.OpNot:
		if !lok {
			return rebuild(o, left, right)
		}
		return logicalLiteral(!lc.Value.Logical, o.Loc)
	case expr.OpComplexComponent:
		if !lok {
			return rebuild(o, left, right)
		}
		v := numeric.RealPart(lc.Value.Complex)
		if o.Part == expr.PartImag {
			v = numeric.ImagPart(lc.Value.Complex)
		}
		return expr.RealConstant(v, kindOf(o.Type, types.DefaultKind(types.CategoryReal)), o.Loc)
	case expr.OpSetLength:
		if !lok {
			return rebuild(o, left, right)
		}
		return foldSetLength(o, lc)
	}

	rc, rok := asConstant(right)
	if !lok || !rok {
		return rebuild(o, left, right)
	}

	switch o.Op {
	case expr.OpAdd, expr.OpSubtract, expr.OpMultiply, expr.OpDivide, expr.OpPower, expr.OpRealToIntPower:
		return foldArithmetic(ctx, o, lc, rc)
	case expr.OpExtremum:
		return foldExtremum(ctx, o, lc, rc)
	case expr.OpComplexConstructor:
		return foldComplexConstructor(ctx, o, lc, rc)
	case expr.OpConcat:
		return expr.CharacterConstant(lc.Value.Character+rc.Value.Character, kindOf(o.Type, 1), o.Loc)
	case expr.OpLogicalAnd:
		return logicalLiteral(lc.Value.Logical && rc.Value.Logical, o.Loc)
	case expr.OpLogicalOr:
		return logicalLiteral(lc.Value.Logical || rc.Value.Logical, o.Loc)
	case expr.OpLogicalEqv:
		return logicalLiteral(lc.Value.Logical == rc.Value.Logical, o.Loc)
	case expr.OpLogicalNeqv:
		return logicalLiteral(lc.Value.Logical != rc.Value.Logical, o.Loc)
	case expr.OpRelational:
		return foldRelational(ctx, o, lc, rc)
	default:
		return rebuild(o, left, right)
	}
}

func rebuild(o *expr.Operation, left, right expr.Expr) expr.Expr {
	return &expr.Operation{Type: o.Type, Op: o.Op, Rel: o.Rel, Part: o.Part, Extremum: o.Extremum, Left: left, Right: right, Loc: o.Loc}
}

func foldNegate(ctx *Context, o *expr.Operation, lc *expr.Constant) expr.Expr {
	switch lc.Type.Category() {
	case types.CategoryInteger:
		w := lc.Type.Type().Kind
		res := numeric.Negate(lc.Value.Integer, w)
		if res.Overflow {
			report(ctx, diag.IntNegOverflow, o.Loc, "INTEGER(%d) negation overflowed", w)
		}
		return expr.IntegerConstant(res.Value, w, o.Loc)
	case types.CategoryReal:
		return expr.RealConstant(numeric.NegateReal(lc.Value.Real), lc.Type.Type().Kind, o.Loc)
	case types.CategoryComplex:
		v := numeric.NegateComplex(lc.Value.Complex)
		return &expr.Constant{Type: o.Type, Value: expr.ConstantValue{Complex: v}, Loc: o.Loc}
	default:
		Internalf("fold: Negate applied to non-numeric operand %s", lc.Type.Type())
		return nil
	}
}

func foldSetLength(o *expr.Operation, lc *expr.Constant) expr.Expr {
	want, ok := o.Type.Type().CharLen.ConstLen()
	if !ok {
		return lc
	}
	runes := []rune(lc.Value.Character)
	switch {
	case int64(len(runes)) == want:
		return lc
	case int64(len(runes)) > want:
		runes = runes[:want]
	default:
		runes = append(runes, []rune(strings.Repeat(" ", int(want-int64(len(runes)))))...)
	}
	return expr.CharacterConstant(string(runes), kindOf(lc.Type, 1), o.Loc)
}

// foldArithmetic dispatches Add/Subtract/Multiply/Divide/Power/RealToIntPower
// to internal/numeric's per-category kernel and reports whichever hazard
// flag the kernel raised.
func foldArithmetic(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	switch lc.Type.Category() {
	case types.CategoryInteger:
		return foldIntegerArithmetic(ctx, o, lc, rc)
	case types.CategoryReal:
		return foldRealArithmetic(ctx, o, lc, rc)
	case types.CategoryComplex:
		return foldComplexArithmetic(ctx, o, lc, rc)
	default:
		Internalf("fold: arithmetic operator applied to non-numeric operand %s", lc.Type.Type())
		return nil
	}
}

func foldIntegerArithmetic(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	w := kindOf(o.Type, lc.Type.Type().Kind)
	switch o.Op {
	case expr.OpAdd:
		res := numeric.AddSigned(lc.Value.Integer, rc.Value.Integer, w)
		if res.Overflow {
			report(ctx, diag.IntAddOverflow, o.Loc, "INTEGER(%d) addition overflowed", w)
		}
		return expr.IntegerConstant(res.Value, w, o.Loc)
	case expr.OpSubtract:
		res := numeric.SubtractSigned(lc.Value.Integer, rc.Value.Integer, w)
		if res.Overflow {
			report(ctx, diag.IntSubOverflow, o.Loc, "INTEGER(%d) subtraction overflowed", w)
		}
		return expr.IntegerConstant(res.Value, w, o.Loc)
	case expr.OpMultiply:
		res := numeric.MultiplySigned(lc.Value.Integer, rc.Value.Integer, w)
		if res.Overflow {
			report(ctx, diag.IntMulOverflow, o.Loc, "INTEGER(%d) multiplication overflowed", w)
		}
		return expr.IntegerConstant(res.Value, w, o.Loc)
	case expr.OpDivide:
		res := numeric.DivideSigned(lc.Value.Integer, rc.Value.Integer, w)
		if res.DivByZero {
			report(ctx, diag.IntDivByZero, o.Loc, "INTEGER(%d) division by zero", w)
			return rebuild(o, lc, rc)
		}
		if res.Overflow {
			report(ctx, diag.IntDivOverflow, o.Loc, "INTEGER(%d) division overflowed", w)
		}
		return expr.IntegerConstant(res.Quotient, w, o.Loc)
	case expr.OpPower:
		res := numeric.Power(lc.Value.Integer, rc.Value.Integer, w)
		if res.DivByZero {
			report(ctx, diag.IntPowZeroToNeg, o.Loc, "INTEGER(%d) zero raised to a negative power", w)
			return rebuild(o, lc, rc)
		}
		if res.ZeroToZero {
			report(ctx, diag.IntPowZeroToZero, o.Loc, "INTEGER(%d) 0**0 is not defined", w)
		}
		if res.Overflow {
			report(ctx, diag.IntPowOverflow, o.Loc, "INTEGER(%d) exponentiation overflowed", w)
		}
		return expr.IntegerConstant(res.Value, w, o.Loc)
	default:
		Internalf("fold: unexpected integer arithmetic operator %d", o.Op)
		return nil
	}
}

func foldRealArithmetic(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	w := kindOf(o.Type, lc.Type.Type().Kind)
	var res numeric.RealResult
	switch o.Op {
	case expr.OpAdd:
		res = numeric.Add(lc.Value.Real, rc.Value.Real, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpSubtract:
		res = numeric.Subtract(lc.Value.Real, rc.Value.Real, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpMultiply:
		res = numeric.Multiply(lc.Value.Real, rc.Value.Real, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpDivide:
		res = numeric.Divide(lc.Value.Real, rc.Value.Real, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpRealToIntPower:
		n, ok := rc.Value.Integer.Int64()
		if !ok {
			return rebuild(o, lc, rc)
		}
		return realIntPower(ctx, o, lc.Value.Real, n, w)
	default:
		Internalf("fold: unexpected real arithmetic operator %d", o.Op)
		return nil
	}
	reportRealFlags(ctx, o.Loc, w, res.Flags)
	return expr.RealConstant(res.Value, w, o.Loc)
}

// realIntPower folds REAL**INTEGER by repeated squaring, mirroring
// numeric.PowerComplex — never routed through LOG/EXP, since that would make
// an exact integer power inexact.
func realIntPower(ctx *Context, o *expr.Operation, base bignum.BigFloat, n int64, w int) expr.Expr {
	neg := n < 0
	mag := n
	if neg {
		mag = -mag
	}
	one, _ := bignum.FloatFromInt(bignum.IntFromInt64(1), mustRealPrecision(w))
	result := one
	sq := base
	var flags numeric.RealFlags
	for m := mag; m > 0; m >>= 1 {
		if m&1 == 1 {
			r := numeric.Multiply(result, sq, w, ctx.Rounding, ctx.FlushSubnormal)
			result, flags = r.Value, mergeRealFlags(flags, r.Flags)
		}
		if m > 1 {
			r := numeric.Multiply(sq, sq, w, ctx.Rounding, ctx.FlushSubnormal)
			sq, flags = r.Value, mergeRealFlags(flags, r.Flags)
		}
	}
	if neg {
		r := numeric.Divide(one, result, w, ctx.Rounding, ctx.FlushSubnormal)
		result = r.Value
		flags = mergeRealFlags(flags, r.Flags)
	}
	reportRealFlags(ctx, o.Loc, w, flags)
	return expr.RealConstant(result, w, o.Loc)
}

func mustRealPrecision(byteWidth int) int {
	info, ok := numeric.KindInfo(byteWidth)
	if !ok {
		return 53
	}
	return info.PrecisionBits
}

func mergeRealFlags(a, b numeric.RealFlags) numeric.RealFlags {
	return numeric.RealFlags{
		Overflow:        a.Overflow || b.Overflow,
		Underflow:       a.Underflow || b.Underflow,
		Inexact:         a.Inexact || b.Inexact,
		InvalidArgument: a.InvalidArgument || b.InvalidArgument,
		DivideByZero:    a.DivideByZero || b.DivideByZero,
	}
}

// reportRealFlags surfaces whichever IEEE exception flags a Real kernel call
// raised. Overflow/DivideByZero/InvalidArgument are reported as errors since
// they mark a result a programmer is unlikely to have intended; Underflow is
// a warning, since a flushed-to-zero subnormal is still a usable value.
func reportRealFlags(ctx *Context, loc source.Span, w int, f numeric.RealFlags) {
	if f.DivideByZero {
		report(ctx, diag.RealDivByZero, loc, "REAL(%d) division by zero", w)
	}
	if f.Overflow {
		report(ctx, diag.RealOverflow, loc, "REAL(%d) arithmetic overflowed", w)
	}
	if f.InvalidArgument {
		report(ctx, diag.RealInvalid, loc, "REAL(%d) arithmetic produced an invalid result", w)
	}
	if f.Underflow {
		reportWarn(ctx, diag.RealUnderflow, loc, "REAL(%d) arithmetic underflowed", w)
	}
}

func foldComplexArithmetic(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	w := kindOf(o.Type, lc.Type.Type().Kind)
	var res numeric.ComplexResult
	switch o.Op {
	case expr.OpAdd:
		res = numeric.AddComplex(lc.Value.Complex, rc.Value.Complex, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpSubtract:
		res = numeric.SubtractComplex(lc.Value.Complex, rc.Value.Complex, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpMultiply:
		res = numeric.MultiplyComplex(lc.Value.Complex, rc.Value.Complex, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpDivide:
		res = numeric.DivideComplex(lc.Value.Complex, rc.Value.Complex, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpRealToIntPower:
		n, ok := rc.Value.Integer.Int64()
		if !ok {
			return rebuild(o, lc, rc)
		}
		res = numeric.PowerComplex(lc.Value.Complex, n, w, ctx.Rounding, ctx.FlushSubnormal)
	case expr.OpPower:
		return rebuild(o, lc, rc)
	default:
		Internalf("fold: unexpected complex arithmetic operator %d", o.Op)
		return nil
	}
	if res.Flags.DivideByZero {
		report(ctx, diag.ComplexInfo, o.Loc, "COMPLEX(%d) division by zero", w)
	}
	if res.Flags.Overflow {
		report(ctx, diag.ComplexInfo, o.Loc, "COMPLEX(%d) arithmetic overflowed", w)
	}
	return &expr.Constant{Type: o.Type, Value: expr.ConstantValue{Complex: res.Value}, Loc: o.Loc}
}

func foldComplexConstructor(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	w := kindOf(o.Type, lc.Type.Type().Kind)
	res := numeric.ComplexConstructor(lc.Value.Real, rc.Value.Real, w, ctx.Rounding, ctx.FlushSubnormal)
	return &expr.Constant{Type: o.Type, Value: expr.ConstantValue{Complex: res.Value}, Loc: o.Loc}
}

func foldExtremum(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	switch lc.Type.Category() {
	case types.CategoryInteger:
		ord := numeric.CompareSigned(lc.Value.Integer, rc.Value.Integer)
		if pickMax(o.Extremum, ord) {
			return lc
		}
		return rc
	case types.CategoryReal:
		ord := numeric.CompareReal(lc.Value.Real, rc.Value.Real)
		// An unordered (NaN) comparison keeps the left operand, matching the
		// common Fortran processor convention of treating MAX/MIN(NaN, x) as x
		// not being selected over a defined value unless it is also NaN.
		switch o.Extremum {
		case expr.ExtremumMax:
			if ord == numeric.RealLess {
				return rc
			}
			return lc
		default:
			if ord == numeric.RealGreater {
				return rc
			}
			return lc
		}
	case types.CategoryCharacter:
		if pickMaxString(o.Extremum, lc.Value.Character, rc.Value.Character) {
			return lc
		}
		return rc
	default:
		Internalf("fold: MAX/MIN applied to non-ordered operand %s", lc.Type.Type())
		return nil
	}
}

func pickMax(which expr.ExtremumKind, ord numeric.Ordering) bool {
	if which == expr.ExtremumMax {
		return ord != numeric.Less
	}
	return ord != numeric.Greater
}

func pickMaxString(which expr.ExtremumKind, a, b string) bool {
	if which == expr.ExtremumMax {
		return a >= b
	}
	return a <= b
}

func foldRelational(ctx *Context, o *expr.Operation, lc, rc *expr.Constant) expr.Expr {
	switch lc.Type.Category() {
	case types.CategoryInteger:
		return logicalLiteral(orderingFromRel(o.Rel, numeric.CompareSigned(lc.Value.Integer, rc.Value.Integer)), o.Loc)
	case types.CategoryReal:
		return logicalLiteral(orderingFromRealOrdering(o.Rel, numeric.CompareReal(lc.Value.Real, rc.Value.Real)), o.Loc)
	case types.CategoryCharacter:
		return logicalLiteral(stringRelation(o.Rel, lc.Value.Character, rc.Value.Character), o.Loc)
	case types.CategoryComplex:
		eq := lc.Value.Complex.Re.Cmp(rc.Value.Complex.Re) == 0 && lc.Value.Complex.Im.Cmp(rc.Value.Complex.Im) == 0
		switch o.Rel {
		case expr.RelEQ:
			return logicalLiteral(eq, o.Loc)
		case expr.RelNE:
			return logicalLiteral(!eq, o.Loc)
		default:
			Internalf("fold: ordering relation applied to COMPLEX operands")
			return nil
		}
	default:
		Internalf("fold: relational operator applied to unordered operand %s", lc.Type.Type())
		return nil
	}
}

func stringRelation(rel expr.RelOp, a, b string) bool {
	switch rel {
	case expr.RelLT:
		return a < b
	case expr.RelLE:
		return a <= b
	case expr.RelEQ:
		return a == b
	case expr.RelNE:
		return a != b
	case expr.RelGE:
		return a >= b
	case expr.RelGT:
		return a > b
	default:
		return false
	}
}
