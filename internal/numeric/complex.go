package numeric

import "fconst/internal/bignum"

// ComplexValue is a pair of Real components sharing one byte width. Folding
// never represents COMPLEX as Go's native complex128: kinds 2/10/16 have no
// native complex counterpart, and keeping a single BigFloat representation
// for every kind, as Real does, avoids a parallel native/synthesized split.
type ComplexValue struct {
	Re, Im bignum.BigFloat
}

// ComplexResult pairs a folded ComplexValue with the union of flags its
// component operations raised.
type ComplexResult struct {
	Value ComplexValue
	Flags RealFlags
}

func mergeFlags(a, b RealFlags) RealFlags {
	return RealFlags{
		Overflow:        a.Overflow || b.Overflow,
		Underflow:       a.Underflow || b.Underflow,
		Inexact:         a.Inexact || b.Inexact,
		InvalidArgument: a.InvalidArgument || b.InvalidArgument,
		DivideByZero:    a.DivideByZero || b.DivideByZero,
	}
}

// AddComplex, SubtractComplex fold piecewise: each component is an
// independent Real addition/subtraction at the shared kind.
func AddComplex(a, b ComplexValue, byteWidth int, mode RoundingMode, flushSubnormal bool) ComplexResult {
	re := Add(a.Re, b.Re, byteWidth, mode, flushSubnormal)
	im := Add(a.Im, b.Im, byteWidth, mode, flushSubnormal)
	return ComplexResult{Value: ComplexValue{Re: re.Value, Im: im.Value}, Flags: mergeFlags(re.Flags, im.Flags)}
}

func SubtractComplex(a, b ComplexValue, byteWidth int, mode RoundingMode, flushSubnormal bool) ComplexResult {
	re := Subtract(a.Re, b.Re, byteWidth, mode, flushSubnormal)
	im := Subtract(a.Im, b.Im, byteWidth, mode, flushSubnormal)
	return ComplexResult{Value: ComplexValue{Re: re.Value, Im: im.Value}, Flags: mergeFlags(re.Flags, im.Flags)}
}

// NegateComplex negates both components; like NegateReal this never raises
// flags.
func NegateComplex(a ComplexValue) ComplexValue {
	return ComplexValue{Re: NegateReal(a.Re), Im: NegateReal(a.Im)}
}

// ConjugateComplex implements CONJG: negates the imaginary component only.
func ConjugateComplex(a ComplexValue) ComplexValue {
	return ComplexValue{Re: a.Re, Im: NegateReal(a.Im)}
}

// MultiplyComplex uses the standard (ac-bd) + (ad+bc)i identity. Each of the
// four products and the final subtraction and addition is an ordinary Real
// operation rounded at the shared kind, and the flags of all six are merged.
func MultiplyComplex(a, b ComplexValue, byteWidth int, mode RoundingMode, flushSubnormal bool) ComplexResult {
	ac := Multiply(a.Re, b.Re, byteWidth, mode, flushSubnormal)
	bd := Multiply(a.Im, b.Im, byteWidth, mode, flushSubnormal)
	ad := Multiply(a.Re, b.Im, byteWidth, mode, flushSubnormal)
	bc := Multiply(a.Im, b.Re, byteWidth, mode, flushSubnormal)
	re := Subtract(ac.Value, bd.Value, byteWidth, mode, flushSubnormal)
	im := Add(ad.Value, bc.Value, byteWidth, mode, flushSubnormal)
	flags := mergeFlags(mergeFlags(ac.Flags, bd.Flags), mergeFlags(ad.Flags, bc.Flags))
	flags = mergeFlags(flags, mergeFlags(re.Flags, im.Flags))
	return ComplexResult{Value: ComplexValue{Re: re.Value, Im: im.Value}, Flags: flags}
}

// DivideComplex implements complex division via the conjugate identity:
// (a+bi)/(c+di) = ((ac+bd) + (bc-ad)i) / (c^2+d^2).
func DivideComplex(a, b ComplexValue, byteWidth int, mode RoundingMode, flushSubnormal bool) ComplexResult {
	denom := Add(
		Multiply(b.Re, b.Re, byteWidth, mode, flushSubnormal).Value,
		Multiply(b.Im, b.Im, byteWidth, mode, flushSubnormal).Value,
		byteWidth, mode, flushSubnormal,
	)
	if denom.Value.IsZero() {
		return ComplexResult{Flags: RealFlags{DivideByZero: true}}
	}
	acbd := Add(
		Multiply(a.Re, b.Re, byteWidth, mode, flushSubnormal).Value,
		Multiply(a.Im, b.Im, byteWidth, mode, flushSubnormal).Value,
		byteWidth, mode, flushSubnormal,
	)
	bcad := Subtract(
		Multiply(a.Im, b.Re, byteWidth, mode, flushSubnormal).Value,
		Multiply(a.Re, b.Im, byteWidth, mode, flushSubnormal).Value,
		byteWidth, mode, flushSubnormal,
	)
	re := Divide(acbd.Value, denom.Value, byteWidth, mode, flushSubnormal)
	im := Divide(bcad.Value, denom.Value, byteWidth, mode, flushSubnormal)
	flags := mergeFlags(denom.Flags, mergeFlags(acbd.Flags, bcad.Flags))
	flags = mergeFlags(flags, mergeFlags(re.Flags, im.Flags))
	return ComplexResult{Value: ComplexValue{Re: re.Value, Im: im.Value}, Flags: flags}
}

// PowerComplex implements integer exponentiation of a complex base by
// repeated squaring through MultiplyComplex; a negative exponent takes the
// reciprocal of the positive power through DivideComplex. Only
// COMPLEX**INTEGER is folded: internal/fold leaves COMPLEX**COMPLEX and
// COMPLEX**REAL unfolded, since they need host transcendentals.
func PowerComplex(base ComplexValue, exponent int64, byteWidth int, mode RoundingMode, flushSubnormal bool) ComplexResult {
	if exponent == 0 {
		one, _ := bignum.FloatFromInt(bignum.IntFromInt64(1), mustPrecision(byteWidth))
		return ComplexResult{Value: ComplexValue{Re: one, Im: bignum.FloatZero()}}
	}
	neg := exponent < 0
	n := exponent
	if neg {
		n = -n
	}
	result := base
	sq := base
	var flags RealFlags
	for m := n - 1; m > 0; m >>= 1 {
		if m&1 == 1 {
			r := MultiplyComplex(result, sq, byteWidth, mode, flushSubnormal)
			result, flags = r.Value, mergeFlags(flags, r.Flags)
		}
		if m > 1 {
			r := MultiplyComplex(sq, sq, byteWidth, mode, flushSubnormal)
			sq, flags = r.Value, mergeFlags(flags, r.Flags)
		}
	}
	if !neg {
		return ComplexResult{Value: result, Flags: flags}
	}
	one, _ := bignum.FloatFromInt(bignum.IntFromInt64(1), mustPrecision(byteWidth))
	inv := DivideComplex(ComplexValue{Re: one, Im: bignum.FloatZero()}, result, byteWidth, mode, flushSubnormal)
	return ComplexResult{Value: inv.Value, Flags: mergeFlags(flags, inv.Flags)}
}

// ComplexConstructor implements CMPLX(x, y): assembles a ComplexValue from
// two Real components, rounding each into the target kind.
func ComplexConstructor(re, im bignum.BigFloat, byteWidth int, mode RoundingMode, flushSubnormal bool) ComplexResult {
	r := finish(re, realKindInfoOrZero(byteWidth), mode, flushSubnormal)
	i := finish(im, realKindInfoOrZero(byteWidth), mode, flushSubnormal)
	return ComplexResult{Value: ComplexValue{Re: r.Value, Im: i.Value}, Flags: mergeFlags(r.Flags, i.Flags)}
}

// RealPart and ImagPart implement the intrinsic functions REAL(z) and
// AIMAG(z), the "ComplexComponent" operation kind.
func RealPart(a ComplexValue) bignum.BigFloat { return a.Re }
func ImagPart(a ComplexValue) bignum.BigFloat { return a.Im }

func realKindInfoOrZero(byteWidth int) RealKindInfo {
	info := realKinds[byteWidth]
	return info
}

func mustPrecision(byteWidth int) int {
	return realKinds[byteWidth].PrecisionBits
}
