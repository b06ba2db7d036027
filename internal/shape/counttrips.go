package shape

import (
	"fconst/internal/bignum"
	"fconst/internal/expr"
	"fconst/internal/source"
	"fconst/internal/types"
)

// CountTrips computes a DO-like triplet's iteration count:
// MAX((upper - lower + stride) / stride, 0), Fortran's own trip-count
// formula (13.9.2.1.3), shared between this package's array-constructor
// sizing and the fold package's own implied-DO execution so the two never
// disagree on how many iterations a triplet performs. stride == nil means a
// stride of 1. A non-constant operand yields (nil, false) rather than
// guessing.
func CountTrips(lower, upper, stride expr.Expr) (*ExtentExpr, bool) {
	lo, ok := constInt(lower)
	if !ok {
		return nil, false
	}
	hi, ok := constInt(upper)
	if !ok {
		return nil, false
	}
	st := bignum.IntFromInt64(1)
	if stride != nil {
		st, ok = constInt(stride)
		if !ok {
			return nil, false
		}
	}
	if st.IsZero() {
		return nil, false
	}

	diff, err := bignum.IntSub(hi, lo)
	if err != nil {
		return nil, false
	}
	sum, err := bignum.IntAdd(diff, st)
	if err != nil {
		return nil, false
	}
	trips, _, err := bignum.IntDivMod(sum, st)
	if err != nil {
		return nil, false
	}
	if trips.Neg {
		trips = bignum.IntZero()
	}
	v, ok := trips.Int64()
	if !ok {
		return nil, false
	}
	return &ExtentExpr{E: expr.IntegerConstant(trips, types.SubscriptIntegerKind, source.Span{})}, v >= 0
}

func constInt(e expr.Expr) (bignum.BigInt, bool) {
	c, ok := e.(*expr.Constant)
	if !ok || c.Type.Category() != types.CategoryInteger {
		return bignum.BigInt{}, false
	}
	return c.Value.Integer, true
}
