package numeric

import (
	"testing"

	"fconst/internal/bignum"
)

func i64(v int64) bignum.BigInt { return bignum.IntFromInt64(v) }

func TestAddSignedOverflow(t *testing.T) {
	r := AddSigned(i64(127), i64(1), 1)
	if !r.Overflow {
		t.Fatal("127+1 should overflow INTEGER(1)")
	}
}

func TestAddSignedInRange(t *testing.T) {
	r := AddSigned(i64(100), i64(27), 1)
	if r.Overflow {
		t.Fatal("100+27 should not overflow INTEGER(1)")
	}
	v, _ := r.Value.Int64()
	if v != 127 {
		t.Fatalf("got %d, want 127", v)
	}
}

func TestSubtractSignedUnderflow(t *testing.T) {
	r := SubtractSigned(i64(-128), i64(1), 1)
	if !r.Overflow {
		t.Fatal("-128-1 should overflow INTEGER(1)")
	}
}

func TestMultiplySignedOverflow(t *testing.T) {
	r := MultiplySigned(i64(100), i64(100), 1)
	if !r.Overflow {
		t.Fatal("100*100 should overflow INTEGER(1)")
	}
}

func TestNegateMostNegativeOverflows(t *testing.T) {
	r := Negate(i64(-128), 1)
	if !r.Overflow {
		t.Fatal("negating INT8's -128 should overflow")
	}
}

func TestNegateOrdinary(t *testing.T) {
	r := Negate(i64(5), 1)
	v, _ := r.Value.Int64()
	if r.Overflow || v != -5 {
		t.Fatalf("Negate(5) = %d, overflow=%v, want -5", v, r.Overflow)
	}
}

func TestAbsoluteValueMostNegativeOverflows(t *testing.T) {
	r := AbsoluteValue(i64(-128), 1)
	if !r.Overflow {
		t.Fatal("ABS(-128) should overflow INTEGER(1)")
	}
}

func TestDivideSignedTruncatesTowardZero(t *testing.T) {
	r := DivideSigned(i64(-7), i64(2), 4)
	q, _ := r.Quotient.Int64()
	rem, _ := r.Remainder.Int64()
	if q != -3 || rem != -1 {
		t.Fatalf("-7/2 = %d rem %d, want -3 rem -1", q, rem)
	}
}

func TestDivideSignedByZero(t *testing.T) {
	r := DivideSigned(i64(5), i64(0), 4)
	if !r.DivByZero {
		t.Fatal("expected DivByZero flag")
	}
}

func TestPowerZeroToZero(t *testing.T) {
	r := Power(i64(0), i64(0), 4)
	if !r.ZeroToZero {
		t.Fatal("expected ZeroToZero flag for 0**0")
	}
}

func TestPowerZeroToNegativeIsDivByZero(t *testing.T) {
	r := Power(i64(0), i64(-1), 4)
	if !r.DivByZero {
		t.Fatal("expected DivByZero for 0**(-1)")
	}
}

func TestPowerNegativeExponentMagnitudeGreaterThanOne(t *testing.T) {
	r := Power(i64(2), i64(-3), 4)
	v, _ := r.Value.Int64()
	if v != 0 {
		t.Fatalf("2**(-3) should truncate to 0, got %d", v)
	}
}

func TestPowerNegativeOneOddNegativeExponent(t *testing.T) {
	r := Power(i64(-1), i64(-3), 4)
	v, _ := r.Value.Int64()
	if v != -1 {
		t.Fatalf("(-1)**(-3) = %d, want -1", v)
	}
}

func TestPowerPositive(t *testing.T) {
	r := Power(i64(3), i64(5), 8)
	v, _ := r.Value.Int64()
	if r.Overflow || v != 243 {
		t.Fatalf("3**5 = %d, overflow=%v, want 243", v, r.Overflow)
	}
}

func TestCompareSigned(t *testing.T) {
	if CompareSigned(i64(1), i64(2)) != Less {
		t.Fatal("1 should compare Less than 2")
	}
	if CompareSigned(i64(2), i64(2)) != Equal {
		t.Fatal("2 should compare Equal to 2")
	}
	if CompareSigned(i64(3), i64(2)) != Greater {
		t.Fatal("3 should compare Greater than 2")
	}
}

func TestConvertSignedNarrowingOverflow(t *testing.T) {
	r := ConvertSigned(i64(200), 1)
	if !r.Overflow {
		t.Fatal("200 does not fit in INTEGER(1)")
	}
}

func TestConvertSignedWideningIsExact(t *testing.T) {
	r := ConvertSigned(i64(200), 4)
	if r.Overflow {
		t.Fatal("200 fits comfortably in INTEGER(4)")
	}
}
