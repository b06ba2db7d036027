// Package numeric implements the fixed-width signed integer, IEEE-style
// real, complex, and BOZ kernels that the folding driver calls once both
// operands of an arithmetic node have reduced to constants. Every kernel
// reports the same shape the teacher's VM evaluator uses: a value paired
// with boolean/flag fields describing overflow, division by zero, and
// similar hazards, rather than a Go error — the folder turns flags into
// diagnostics, it never aborts on them.
package numeric

import "fconst/internal/bignum"

// IntegerResult is the outcome of a checked signed-integer operation.
type IntegerResult struct {
	Value    bignum.BigInt
	Overflow bool
}

// DivModResult is the outcome of DivideSigned.
type DivModResult struct {
	Quotient  bignum.BigInt
	Remainder bignum.BigInt
	DivByZero bool
	Overflow  bool
}

// PowerResult is the outcome of Power.
type PowerResult struct {
	Value      bignum.BigInt
	ZeroToZero bool
	DivByZero  bool
	Overflow   bool
}

// Ordering mirrors a three-way comparison result.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func widthBits(byteWidth int) int { return byteWidth * 8 }

func fits(v bignum.BigInt, byteWidth int) bool {
	return v.FitsSignedBits(widthBits(byteWidth))
}

// AddSigned adds two INTEGER(byteWidth) values, flagging overflow against
// the declared kind's signed range. Like SubtractSigned and MultiplySigned,
// it returns an overflowing result wrapped to its two's-complement value at
// byteWidth.
func AddSigned(a, b bignum.BigInt, byteWidth int) IntegerResult {
	v, err := bignum.IntAdd(a, b)
	if err != nil {
		return IntegerResult{Overflow: true}
	}
	return IntegerResult{Value: truncateToWidth(v, widthBits(byteWidth)), Overflow: !fits(v, byteWidth)}
}

// SubtractSigned subtracts b from a at byteWidth, flagging overflow.
func SubtractSigned(a, b bignum.BigInt, byteWidth int) IntegerResult {
	v, err := bignum.IntSub(a, b)
	if err != nil {
		return IntegerResult{Overflow: true}
	}
	return IntegerResult{Value: truncateToWidth(v, widthBits(byteWidth)), Overflow: !fits(v, byteWidth)}
}

// MultiplySigned multiplies a and b at byteWidth, flagging overflow.
func MultiplySigned(a, b bignum.BigInt, byteWidth int) IntegerResult {
	v, err := bignum.IntMul(a, b)
	if err != nil {
		return IntegerResult{Overflow: true}
	}
	return IntegerResult{Value: truncateToWidth(v, widthBits(byteWidth)), Overflow: !fits(v, byteWidth)}
}

// Negate returns -a at byteWidth. Overflow occurs only for the most
// negative representable value (e.g. negating INT8's -128).
func Negate(a bignum.BigInt, byteWidth int) IntegerResult {
	v := a.Negated()
	return IntegerResult{Value: v, Overflow: !fits(v, byteWidth)}
}

// AbsoluteValue returns |a| at byteWidth, flagging overflow for the most
// negative value (whose magnitude has no positive representation).
func AbsoluteValue(a bignum.BigInt, byteWidth int) IntegerResult {
	v := bignum.BigInt{Neg: false, Limbs: a.Abs().Limbs}
	return IntegerResult{Value: v, Overflow: !fits(v, byteWidth)}
}

// DivideSigned performs truncating division with remainder. Overflow is
// flagged only for INT_MIN / -1, the one case whose exact quotient exceeds
// the signed range.
func DivideSigned(a, b bignum.BigInt, byteWidth int) DivModResult {
	if b.IsZero() {
		return DivModResult{DivByZero: true}
	}
	q, r, err := bignum.IntDivMod(a, b)
	if err != nil {
		return DivModResult{DivByZero: true}
	}
	return DivModResult{Quotient: q, Remainder: r, Overflow: !fits(q, byteWidth)}
}

// Power raises base to a non-negative or negative integer exponent.
// Negative exponents with |base| > 1 yield 0 after truncating division;
// base == 0 with a negative exponent is DivByZero; 0**0 is flagged
// ZeroToZero (Fortran diagnoses it separately from ordinary overflow).
func Power(base bignum.BigInt, exponent bignum.BigInt, byteWidth int) PowerResult {
	expV, ok := exponent.Int64()
	if !ok {
		return PowerResult{Overflow: true}
	}
	if base.IsZero() {
		switch {
		case expV == 0:
			return PowerResult{Value: bignum.IntFromInt64(1), ZeroToZero: true}
		case expV < 0:
			return PowerResult{DivByZero: true}
		default:
			return PowerResult{Value: bignum.IntZero()}
		}
	}
	if expV < 0 {
		mag := base.Abs()
		if mag.Cmp(bignum.UintFromUint64(1)) == 0 {
			// +-1 raised to a negative power is +-1.
			v, _ := bignum.IntPow(base, uint64(-expV)%2)
			return PowerResult{Value: v}
		}
		return PowerResult{Value: bignum.IntZero()}
	}
	v, err := bignum.IntPow(base, uint64(expV))
	if err != nil {
		return PowerResult{Overflow: true}
	}
	return PowerResult{Value: v, Overflow: !fits(v, byteWidth)}
}

// CompareSigned orders two INTEGER values.
func CompareSigned(a, b bignum.BigInt) Ordering {
	switch c := a.Cmp(b); {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// ConvertSigned converts a value from one signed width to another.
// Narrower-to-wider conversions are always exact; wider-to-narrower
// conversions flag overflow when the value falls outside the target range.
func ConvertSigned(a bignum.BigInt, toByteWidth int) IntegerResult {
	return IntegerResult{Value: a, Overflow: !fits(a, toByteWidth)}
}
