package bignum

import (
	"errors"
	"math"

	"fortio.org/safecast"
)

// ErrNegativeToUnsigned indicates an attempt to convert a negative float to
// an unsigned integer.
var ErrNegativeToUnsigned = errors.New("bignum: negative float has no unsigned representation")

// BigFloat is a sign-magnitude floating-point value with an explicit,
// caller-chosen mantissa precision: value = (-1)^Neg * Mant * 2^Exp.
//
// Unlike the teacher's fixed 256-bit VM float, every arithmetic operation
// here takes a `prec` (mantissa bit width) argument, so the same substrate
// backs REAL(2) through REAL(16): callers round-trip through whatever
// precision their kind calls for (see internal/numeric for the kind table).
type BigFloat struct {
	Neg  bool
	Mant BigUint
	Exp  int32
}

// FloatZero returns a zero BigFloat.
func FloatZero() BigFloat { return BigFloat{} }

// IsZero reports whether the float is zero.
func (f BigFloat) IsZero() bool {
	return f.Mant.IsZero()
}

// Cmp compares two BigFloat values assumed to be normalized at the same
// precision.
func (f BigFloat) Cmp(g BigFloat) int {
	if f.IsZero() && g.IsZero() {
		return 0
	}
	if f.Neg != g.Neg {
		if f.Neg {
			return -1
		}
		return 1
	}
	if f.Exp < g.Exp {
		if f.Neg {
			return 1
		}
		return -1
	}
	if f.Exp > g.Exp {
		if f.Neg {
			return -1
		}
		return 1
	}
	cmp := f.Mant.Cmp(g.Mant)
	if f.Neg {
		return -cmp
	}
	return cmp
}

// FloatNeg negates a BigFloat.
func FloatNeg(f BigFloat) BigFloat {
	if f.IsZero() {
		return BigFloat{}
	}
	f.Neg = !f.Neg
	return f
}

// FloatAbs returns the absolute value.
func FloatAbs(f BigFloat) BigFloat {
	f.Neg = false
	return f
}

// FloatFromUint converts a BigUint to BigFloat at the given mantissa
// precision.
func FloatFromUint(u BigUint, prec int) (BigFloat, error) {
	if u.IsZero() {
		return BigFloat{}, nil
	}
	mant, exp, err := normalizeMantissa(u, 0, prec)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{Neg: false, Mant: mant, Exp: exp}, nil
}

// FloatFromInt converts a BigInt to BigFloat at the given mantissa precision.
func FloatFromInt(i BigInt, prec int) (BigFloat, error) {
	if i.IsZero() {
		return BigFloat{}, nil
	}
	mant, exp, err := normalizeMantissa(i.Abs(), 0, prec)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{Neg: i.Neg, Mant: mant, Exp: exp}, nil
}

// FloatToIntTrunc truncates f towards zero into a BigInt.
func FloatToIntTrunc(f BigFloat) (BigInt, error) {
	if f.IsZero() {
		return BigInt{}, nil
	}
	mag := f.Mant
	if f.Exp > 0 {
		maxShift := int64(^uint(0) >> 1)
		if int64(f.Exp) > maxShift {
			return BigInt{}, ErrMaxLimbs
		}
		var err error
		mag, err = UintShl(mag, int(f.Exp))
		if err != nil {
			return BigInt{}, err
		}
	} else if f.Exp < 0 {
		maxShift := int64(^uint(0) >> 1)
		shift := -int64(f.Exp)
		if shift > maxShift {
			return BigInt{}, nil
		}
		var err error
		mag, err = UintShr(mag, int(shift))
		if err != nil {
			return BigInt{}, err
		}
	}
	if mag.IsZero() {
		return BigInt{}, nil
	}
	return BigInt{Neg: f.Neg, Limbs: mag.Limbs}, nil
}

// FloatToUintTrunc truncates f towards zero into a BigUint. Returns
// ErrNegativeToUnsigned for negative non-zero values.
func FloatToUintTrunc(f BigFloat) (BigUint, error) {
	if f.Neg && !f.IsZero() {
		return BigUint{}, ErrNegativeToUnsigned
	}
	i, err := FloatToIntTrunc(f)
	if err != nil {
		return BigUint{}, err
	}
	if i.Neg && !i.IsZero() {
		return BigUint{}, ErrNegativeToUnsigned
	}
	return i.Abs(), nil
}

// FloatAdd adds two BigFloat values, rounding the result to prec bits
// round-to-nearest-even.
func FloatAdd(a, b BigFloat, prec int) (BigFloat, error) {
	if a.IsZero() {
		return roundTo(b, prec)
	}
	if b.IsZero() {
		return roundTo(a, prec)
	}
	if a.Exp < b.Exp {
		a, b = b, a
	}
	delta64 := int64(a.Exp) - int64(b.Exp)
	if delta64 > int64(^uint(0)>>1) {
		return roundTo(a, prec)
	}
	delta := int(delta64)

	bm, err := shiftRightRoundToEven(b.Mant, delta)
	if err != nil {
		return BigFloat{}, err
	}

	if a.Neg == b.Neg {
		sum, err := UintAdd(a.Mant, bm)
		if err != nil {
			return BigFloat{}, err
		}
		mant, exp, err := normalizeMantissa(sum, a.Exp, prec)
		if err != nil {
			return BigFloat{}, err
		}
		return BigFloat{Neg: a.Neg, Mant: mant, Exp: exp}, nil
	}

	cmp := a.Mant.Cmp(bm)
	switch {
	case cmp == 0:
		return BigFloat{}, nil
	case cmp > 0:
		diff, err := UintSub(a.Mant, bm)
		if err != nil {
			return BigFloat{}, err
		}
		mant, exp, err := normalizeMantissa(diff, a.Exp, prec)
		if err != nil {
			return BigFloat{}, err
		}
		return BigFloat{Neg: a.Neg, Mant: mant, Exp: exp}, nil
	default:
		diff, err := UintSub(bm, a.Mant)
		if err != nil {
			return BigFloat{}, err
		}
		mant, exp, err := normalizeMantissa(diff, a.Exp, prec)
		if err != nil {
			return BigFloat{}, err
		}
		return BigFloat{Neg: b.Neg, Mant: mant, Exp: exp}, nil
	}
}

// FloatSub subtracts two BigFloat values.
func FloatSub(a, b BigFloat, prec int) (BigFloat, error) {
	return FloatAdd(a, FloatNeg(b), prec)
}

// FloatMul multiplies two BigFloat values.
func FloatMul(a, b BigFloat, prec int) (BigFloat, error) {
	if a.IsZero() || b.IsZero() {
		return BigFloat{}, nil
	}
	prod, err := UintMul(a.Mant, b.Mant)
	if err != nil {
		return BigFloat{}, err
	}
	exp := a.Exp + b.Exp
	mant, exp, err := normalizeMantissa(prod, exp, prec)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{Neg: a.Neg != b.Neg, Mant: mant, Exp: exp}, nil
}

// FloatDiv divides two BigFloat values.
func FloatDiv(a, b BigFloat, prec int) (BigFloat, error) {
	if b.IsZero() {
		return BigFloat{}, ErrDivByZero
	}
	if a.IsZero() {
		return BigFloat{}, nil
	}

	scaled, err := UintShl(a.Mant, prec)
	if err != nil {
		return BigFloat{}, err
	}
	q, r, err := UintDivMod(scaled, b.Mant)
	if err != nil {
		return BigFloat{}, err
	}
	q, err = roundQuotientToEven(q, r, b.Mant)
	if err != nil {
		return BigFloat{}, err
	}
	exp := a.Exp - b.Exp - int32(prec)
	mant, exp, err := normalizeMantissa(q, exp, prec)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{Neg: a.Neg != b.Neg, Mant: mant, Exp: exp}, nil
}

// FloatToFloat64 approximates f as a float64, rounding away any mantissa
// bits beyond float64's 53-bit precision. This is a lossy bridge used only
// where a host transcendental function (math.Sin, math.Log, ...) needs a
// native operand — every exact fold path in this module stays on BigFloat.
func FloatToFloat64(f BigFloat) float64 {
	if f.IsZero() {
		return 0
	}
	m := f.Mant
	shift := 0
	if bits := m.BitLen(); bits > 53 {
		shift = bits - 53
		var err error
		m, err = UintShr(m, shift)
		if err != nil {
			return math.NaN()
		}
	}
	bits64, _ := m.Uint64()
	v := math.Ldexp(float64(bits64), int(f.Exp)+shift)
	if f.Neg {
		v = -v
	}
	return v
}

// FloatFromFloat64 converts a float64 (including NaN/Inf) to a BigFloat at
// the given mantissa precision. NaN and Inf have no BigFloat representation,
// so the second return value is false for those.
func FloatFromFloat64(v float64, prec int) (BigFloat, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return BigFloat{}, false
	}
	if v == 0 {
		return BigFloat{}, true
	}
	neg := math.Signbit(v)
	av := math.Abs(v)
	mantF, exp := math.Frexp(av) // av == mantF * 2^exp, 0.5 <= mantF < 1
	scaled := mantF * (1 << 53)
	u := UintFromUint64(uint64(scaled))
	mant, normExp, err := normalizeMantissa(u, int32(exp-53), prec)
	if err != nil {
		return BigFloat{}, false
	}
	return BigFloat{Neg: neg, Mant: mant, Exp: normExp}, true
}

func roundTo(f BigFloat, prec int) (BigFloat, error) {
	if f.IsZero() {
		return BigFloat{}, nil
	}
	mant, exp, err := normalizeMantissa(f.Mant, f.Exp, prec)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{Neg: f.Neg, Mant: mant, Exp: exp}, nil
}

func normalizeMantissa(m BigUint, exp int32, prec int) (BigUint, int32, error) {
	if m.IsZero() {
		return BigUint{}, 0, nil
	}
	bl := m.BitLen()
	switch {
	case bl == prec:
		return BigUint{Limbs: trimLimbs(m.Limbs)}, exp, nil
	case bl > prec:
		shift := bl - prec
		rounded, err := shiftRightRoundToEven(m, shift)
		if err != nil {
			return BigUint{}, 0, err
		}
		delta, err := safecast.Conv[int32](shift)
		if err != nil {
			return BigUint{}, 0, ErrMaxLimbs
		}
		exp += delta
		if rounded.BitLen() > prec {
			rounded, err = shiftRightRoundToEven(rounded, 1)
			if err != nil {
				return BigUint{}, 0, err
			}
			exp++
		}
		return rounded, exp, nil
	default:
		shift := prec - bl
		shifted, err := UintShl(m, shift)
		if err != nil {
			return BigUint{}, 0, err
		}
		delta, err := safecast.Conv[int32](shift)
		if err != nil {
			return BigUint{}, 0, ErrMaxLimbs
		}
		exp -= delta
		return shifted, exp, nil
	}
}

func shiftRightRoundToEven(m BigUint, bitsCount int) (BigUint, error) {
	if bitsCount <= 0 || m.IsZero() {
		return BigUint{Limbs: trimLimbs(m.Limbs)}, nil
	}
	if bitsCount > m.BitLen() {
		return BigUint{}, nil
	}

	halfSet := uintBitSet(m.Limbs, bitsCount-1)
	lowSet := uintAnyLowBitSet(m.Limbs, bitsCount-1)

	shifted, err := UintShr(m, bitsCount)
	if err != nil {
		return BigUint{}, err
	}
	if !halfSet {
		return shifted, nil
	}
	if lowSet {
		return UintAddSmall(shifted, 1)
	}
	if shifted.IsOdd() {
		return UintAddSmall(shifted, 1)
	}
	return shifted, nil
}

func roundQuotientToEven(q, r, denom BigUint) (BigUint, error) {
	if r.IsZero() {
		return q, nil
	}
	twoR, err := UintShl(r, 1)
	if err != nil {
		return BigUint{}, err
	}
	cmp := twoR.Cmp(denom)
	switch {
	case cmp < 0:
		return q, nil
	case cmp > 0:
		return UintAddSmall(q, 1)
	default:
		if q.IsOdd() {
			return UintAddSmall(q, 1)
		}
		return q, nil
	}
}
