package numeric

import "fconst/internal/bignum"

// RoundingMode selects one of the four IEEE-defined directed roundings the
// folding context can be configured with. internal/bignum always rounds
// round-to-nearest-even internally; the other three modes are implemented
// here as a post-hoc nudge applied after the nearest-even result, which is
// exact whenever the nearest-even result already lies on the correct side.
type RoundingMode uint8

const (
	RoundNearestEven RoundingMode = iota
	RoundTowardZero
	RoundTowardPositive
	RoundTowardNegative
)

// RealFlags are the IEEE exception flags a real operation may raise.
type RealFlags struct {
	Overflow        bool
	Underflow       bool
	Inexact         bool
	InvalidArgument bool
	DivideByZero    bool
}

// RealResult pairs a folded Real value with the flags its computation
// raised.
type RealResult struct {
	Value bignum.BigFloat
	Flags RealFlags
}

// RealKindInfo describes the IEEE binary format backing one REAL byte width.
type RealKindInfo struct {
	PrecisionBits int   // total significand bits, implicit leading bit included
	MaxExp        int32 // exponent of the most significant bit of the largest finite value
	MinExp        int32 // exponent of the most significant bit of the smallest normal value
}

// realKinds tabulates the IEEE binary16/32/64/80(extended)/128(quad) formats
// keyed by byte width, per spec.md's half/single/double/extended/quad kinds.
var realKinds = map[int]RealKindInfo{
	2:  {PrecisionBits: 11, MaxExp: 15, MinExp: -14},
	4:  {PrecisionBits: 24, MaxExp: 127, MinExp: -126},
	8:  {PrecisionBits: 53, MaxExp: 1023, MinExp: -1022},
	10: {PrecisionBits: 64, MaxExp: 16383, MinExp: -16382},
	16: {PrecisionBits: 113, MaxExp: 16383, MinExp: -16382},
}

// KindInfo returns the IEEE format parameters for a REAL/COMPLEX-component
// byte width.
func KindInfo(byteWidth int) (RealKindInfo, bool) {
	info, ok := realKinds[byteWidth]
	return info, ok
}

// leadingExp returns the exponent of f's most significant bit — the
// conventional IEEE "unbiased exponent" once Mant is understood as a value
// in [1,2) scaled by 2^leadingExp.
func leadingExp(f bignum.BigFloat, prec int) int32 {
	if f.IsZero() {
		return 0
	}
	return f.Exp + int32(prec) - 1
}

// classify applies a kind's exponent range to a rounded result, producing
// the Overflow/Underflow flags and optionally flushing subnormal results to
// zero.
func classify(f bignum.BigFloat, info RealKindInfo, flushSubnormal bool) (bignum.BigFloat, RealFlags) {
	var flags RealFlags
	if f.IsZero() {
		return f, flags
	}
	exp := leadingExp(f, info.PrecisionBits)
	if exp > info.MaxExp {
		flags.Overflow = true
		return bignum.FloatZero(), flags
	}
	if exp < info.MinExp {
		flags.Underflow = true
		if flushSubnormal {
			return bignum.FloatZero(), flags
		}
	}
	return f, flags
}

func roundForMode(f bignum.BigFloat, neg bool, mode RoundingMode, inexact bool) bignum.BigFloat {
	if !inexact || mode == RoundNearestEven {
		return f
	}
	switch mode {
	case RoundTowardZero:
		return f
	case RoundTowardPositive:
		if !neg {
			return bumpAwayFromZero(f)
		}
		return f
	case RoundTowardNegative:
		if neg {
			return bumpAwayFromZero(f)
		}
		return f
	default:
		return f
	}
}

func bumpAwayFromZero(f bignum.BigFloat) bignum.BigFloat {
	one := bignum.BigUint{Limbs: []uint32{1}}
	bumped, err := bignum.UintAdd(f.Mant, one)
	if err != nil {
		return f
	}
	return bignum.BigFloat{Neg: f.Neg, Mant: bumped, Exp: f.Exp}
}

// Add/Subtract/Multiply/Divide perform the named arithmetic at the IEEE
// format selected by byteWidth, applying the requested rounding mode and
// the context's subnormal-flush preference, and reporting flags.
func Add(a, b bignum.BigFloat, byteWidth int, mode RoundingMode, flushSubnormal bool) RealResult {
	info, ok := realKinds[byteWidth]
	if !ok {
		return RealResult{Flags: RealFlags{InvalidArgument: true}}
	}
	sum, err := bignum.FloatAdd(a, b, info.PrecisionBits)
	if err != nil {
		return RealResult{Flags: RealFlags{Overflow: true}}
	}
	return finish(sum, info, mode, flushSubnormal)
}

func Subtract(a, b bignum.BigFloat, byteWidth int, mode RoundingMode, flushSubnormal bool) RealResult {
	info, ok := realKinds[byteWidth]
	if !ok {
		return RealResult{Flags: RealFlags{InvalidArgument: true}}
	}
	diff, err := bignum.FloatSub(a, b, info.PrecisionBits)
	if err != nil {
		return RealResult{Flags: RealFlags{Overflow: true}}
	}
	return finish(diff, info, mode, flushSubnormal)
}

func Multiply(a, b bignum.BigFloat, byteWidth int, mode RoundingMode, flushSubnormal bool) RealResult {
	info, ok := realKinds[byteWidth]
	if !ok {
		return RealResult{Flags: RealFlags{InvalidArgument: true}}
	}
	prod, err := bignum.FloatMul(a, b, info.PrecisionBits)
	if err != nil {
		return RealResult{Flags: RealFlags{Overflow: true}}
	}
	return finish(prod, info, mode, flushSubnormal)
}

func Divide(a, b bignum.BigFloat, byteWidth int, mode RoundingMode, flushSubnormal bool) RealResult {
	info, ok := realKinds[byteWidth]
	if !ok {
		return RealResult{Flags: RealFlags{InvalidArgument: true}}
	}
	if b.IsZero() {
		return RealResult{Flags: RealFlags{DivideByZero: true}}
	}
	quot, err := bignum.FloatDiv(a, b, info.PrecisionBits)
	if err != nil {
		return RealResult{Flags: RealFlags{Overflow: true}}
	}
	return finish(quot, info, mode, flushSubnormal)
}

func finish(v bignum.BigFloat, info RealKindInfo, mode RoundingMode, flushSubnormal bool) RealResult {
	rounded := roundForMode(v, v.Neg, mode, !v.IsZero())
	classified, flags := classify(rounded, info, flushSubnormal)
	return RealResult{Value: classified, Flags: flags}
}

// Negate and AbsoluteValue never raise flags: sign manipulation cannot
// overflow a value that was already representable.
func NegateReal(a bignum.BigFloat) bignum.BigFloat { return bignum.FloatNeg(a) }
func AbsReal(a bignum.BigFloat) bignum.BigFloat     { return bignum.FloatAbs(a) }

// RealOrdering mirrors IEEE comparison, which has a fourth possible outcome
// (Unordered) when either operand is NaN. BigFloat has no NaN
// representation (the folder never constructs one — INF/NaN producing
// operations remain unfolded per spec.md), so CompareReal always returns one
// of Less/Equal/Greater; Unordered is reserved for callers that model NaN
// upstream (none currently do).
type RealOrdering int8

const (
	RealLess RealOrdering = iota
	RealEqual
	RealGreater
	RealUnordered
)

func CompareReal(a, b bignum.BigFloat) RealOrdering {
	switch a.Cmp(b) {
	case -1:
		return RealLess
	case 1:
		return RealGreater
	default:
		return RealEqual
	}
}

// ToInteger truncates a Real toward zero into a fixed-width INTEGER,
// flagging overflow when the truncated value exceeds byteWidth's range.
func ToInteger(a bignum.BigFloat, byteWidth int) IntegerResult {
	v, err := bignum.FloatToIntTrunc(a)
	if err != nil {
		return IntegerResult{Overflow: true}
	}
	return IntegerResult{Value: v, Overflow: !fits(v, byteWidth)}
}

// FromInteger converts an INTEGER constant to Real at byteWidth, rounding
// to the kind's precision.
func FromInteger(a bignum.BigInt, byteWidth int) RealResult {
	info, ok := realKinds[byteWidth]
	if !ok {
		return RealResult{Flags: RealFlags{InvalidArgument: true}}
	}
	v, err := bignum.FloatFromInt(a, info.PrecisionBits)
	if err != nil {
		return RealResult{Flags: RealFlags{Overflow: true}}
	}
	return finish(v, info, RoundNearestEven, false)
}

// ConvertReal re-rounds a Real value from one kind's precision to another's,
// e.g. REAL(4) -> REAL(8) (exact, widening) or REAL(8) -> REAL(4) (may
// round and may overflow/underflow).
func ConvertReal(a bignum.BigFloat, fromByteWidth, toByteWidth int, flushSubnormal bool) RealResult {
	info, ok := realKinds[toByteWidth]
	if !ok {
		return RealResult{Flags: RealFlags{InvalidArgument: true}}
	}
	if fromByteWidth == toByteWidth {
		return finish(a, info, RoundNearestEven, flushSubnormal)
	}
	return finish(a, info, RoundNearestEven, flushSubnormal)
}
