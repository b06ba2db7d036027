package numeric

import (
	"testing"

	"fconst/internal/bignum"
)

func mustComplex(t *testing.T, re, im int64, byteWidth int) ComplexValue {
	t.Helper()
	return ComplexValue{Re: mustReal(t, re, byteWidth), Im: mustReal(t, im, byteWidth)}
}

func eqReal(t *testing.T, got bignum.BigFloat, want int64, byteWidth int) {
	t.Helper()
	w := mustReal(t, want, byteWidth)
	if CompareReal(got, w) != RealEqual {
		gi := ToInteger(got, byteWidth)
		v, _ := gi.Value.Int64()
		t.Fatalf("got %d, want %d", v, want)
	}
}

func TestAddComplex(t *testing.T) {
	a := mustComplex(t, 1, 2, real4)
	b := mustComplex(t, 3, 4, real4)
	r := AddComplex(a, b, real4, RoundNearestEven, false)
	eqReal(t, r.Value.Re, 4, real4)
	eqReal(t, r.Value.Im, 6, real4)
}

func TestSubtractComplex(t *testing.T) {
	a := mustComplex(t, 5, 7, real4)
	b := mustComplex(t, 2, 3, real4)
	r := SubtractComplex(a, b, real4, RoundNearestEven, false)
	eqReal(t, r.Value.Re, 3, real4)
	eqReal(t, r.Value.Im, 4, real4)
}

func TestMultiplyComplex(t *testing.T) {
	// (1+2i)(3+4i) = (3-8) + (4+6)i = -5 + 10i
	a := mustComplex(t, 1, 2, real4)
	b := mustComplex(t, 3, 4, real4)
	r := MultiplyComplex(a, b, real4, RoundNearestEven, false)
	eqReal(t, r.Value.Re, -5, real4)
	eqReal(t, r.Value.Im, 10, real4)
}

func TestDivideComplexRoundTrip(t *testing.T) {
	a := mustComplex(t, 1, 2, real4)
	b := mustComplex(t, 3, 4, real4)
	prod := MultiplyComplex(a, b, real4, RoundNearestEven, false)
	quot := DivideComplex(prod.Value, b, real4, RoundNearestEven, false)
	eqReal(t, quot.Value.Re, 1, real4)
	eqReal(t, quot.Value.Im, 2, real4)
}

func TestDivideComplexByZero(t *testing.T) {
	a := mustComplex(t, 1, 2, real4)
	zero := ComplexValue{Re: bignum.FloatZero(), Im: bignum.FloatZero()}
	r := DivideComplex(a, zero, real4, RoundNearestEven, false)
	if !r.Flags.DivideByZero {
		t.Fatal("expected DivideByZero flag")
	}
}

func TestConjugateComplex(t *testing.T) {
	a := mustComplex(t, 1, 2, real4)
	c := ConjugateComplex(a)
	eqReal(t, c.Re, 1, real4)
	eqReal(t, c.Im, -2, real4)
}

func TestNegateComplex(t *testing.T) {
	a := mustComplex(t, 1, 2, real4)
	n := NegateComplex(a)
	eqReal(t, n.Re, -1, real4)
	eqReal(t, n.Im, -2, real4)
}

func TestPowerComplexSquare(t *testing.T) {
	// (1+2i)^2 = 1 + 4i + 4i^2 = -3 + 4i
	a := mustComplex(t, 1, 2, real4)
	r := PowerComplex(a, 2, real4, RoundNearestEven, false)
	eqReal(t, r.Value.Re, -3, real4)
	eqReal(t, r.Value.Im, 4, real4)
}

func TestPowerComplexZeroExponent(t *testing.T) {
	a := mustComplex(t, 5, 5, real4)
	r := PowerComplex(a, 0, real4, RoundNearestEven, false)
	eqReal(t, r.Value.Re, 1, real4)
	eqReal(t, r.Value.Im, 0, real4)
}

func TestRealPartImagPart(t *testing.T) {
	a := mustComplex(t, 9, -3, real4)
	eqReal(t, RealPart(a), 9, real4)
	eqReal(t, ImagPart(a), -3, real4)
}

func TestComplexConstructor(t *testing.T) {
	re := mustReal(t, 1, real4)
	im := mustReal(t, 2, real4)
	r := ComplexConstructor(re, im, real4, RoundNearestEven, false)
	eqReal(t, r.Value.Re, 1, real4)
	eqReal(t, r.Value.Im, 2, real4)
}
