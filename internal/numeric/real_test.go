package numeric

import (
	"testing"

	"fconst/internal/bignum"
)

const real4 = 4 // REAL(4), single precision
const real8 = 8 // REAL(8), double precision

func mustReal(t *testing.T, v int64, byteWidth int) bignum.BigFloat {
	t.Helper()
	r := FromInteger(bignum.IntFromInt64(v), byteWidth)
	if r.Flags.Overflow || r.Flags.InvalidArgument {
		t.Fatalf("FromInteger(%d): unexpected flags %+v", v, r.Flags)
	}
	return r.Value
}

func TestAddSubRoundTrip(t *testing.T) {
	a := mustReal(t, 10, real4)
	b := mustReal(t, 3, real4)
	sum := Add(a, b, real4, RoundNearestEven, false)
	if sum.Flags.Overflow {
		t.Fatalf("unexpected overflow: %+v", sum.Flags)
	}
	back := Subtract(sum.Value, b, real4, RoundNearestEven, false)
	if CompareReal(back.Value, a) != RealEqual {
		t.Fatalf("round trip mismatch")
	}
}

func TestMultiplyDivide(t *testing.T) {
	a := mustReal(t, 6, real8)
	b := mustReal(t, 7, real8)
	prod := Multiply(a, b, real8, RoundNearestEven, false)
	quot := Divide(prod.Value, b, real8, RoundNearestEven, false)
	if CompareReal(quot.Value, a) != RealEqual {
		t.Fatalf("Divide(Multiply(a,b),b) != a")
	}
}

func TestDivideByZero(t *testing.T) {
	a := mustReal(t, 1, real4)
	r := Divide(a, bignum.FloatZero(), real4, RoundNearestEven, false)
	if !r.Flags.DivideByZero {
		t.Fatal("expected DivideByZero flag")
	}
}

func TestOverflowProducesZeroAndFlag(t *testing.T) {
	info := realKinds[real4]
	huge := bignum.BigFloat{Mant: bignum.UintFromUint64(1 << 23), Exp: info.MaxExp + 10}
	r := Add(huge, bignum.FloatZero(), real4, RoundNearestEven, false)
	if !r.Flags.Overflow {
		t.Fatal("expected Overflow flag for an out-of-range exponent")
	}
	if !r.Value.IsZero() {
		t.Fatal("overflowed result should fold to zero rather than a garbage value")
	}
}

func TestUnderflowFlushToZero(t *testing.T) {
	info := realKinds[real4]
	tiny := bignum.BigFloat{Mant: bignum.UintFromUint64(1 << 23), Exp: info.MinExp - 10 - int32(info.PrecisionBits-1)}
	r := Add(tiny, bignum.FloatZero(), real4, RoundNearestEven, true)
	if !r.Flags.Underflow {
		t.Fatal("expected Underflow flag")
	}
	if !r.Value.IsZero() {
		t.Fatal("FlushSubnormalToZero should fold an underflowed result to zero")
	}
}

func TestUnderflowKeepsSubnormalWhenNotFlushed(t *testing.T) {
	info := realKinds[real4]
	tiny := bignum.BigFloat{Mant: bignum.UintFromUint64(1 << 23), Exp: info.MinExp - 10 - int32(info.PrecisionBits-1)}
	r := Add(tiny, bignum.FloatZero(), real4, RoundNearestEven, false)
	if !r.Flags.Underflow {
		t.Fatal("expected Underflow flag")
	}
	if r.Value.IsZero() {
		t.Fatal("without flush, a subnormal result should be preserved")
	}
}

func TestToIntegerTruncatesTowardZero(t *testing.T) {
	f := mustReal(t, -17, real8)
	r := ToInteger(f, 8)
	if r.Overflow {
		t.Fatalf("unexpected overflow")
	}
	v, ok := r.Value.Int64()
	if !ok || v != -17 {
		t.Fatalf("ToInteger = %d, want -17", v)
	}
}

func TestConvertRealNarrowing(t *testing.T) {
	a := mustReal(t, 12345, real8)
	r := ConvertReal(a, real8, real4, false)
	if r.Flags.Overflow {
		t.Fatalf("unexpected overflow narrowing a small value")
	}
	back := ToInteger(r.Value, 8)
	v, _ := back.Value.Int64()
	if v != 12345 {
		t.Fatalf("ConvertReal round trip = %d, want 12345", v)
	}
}

func TestCompareRealOrdersBySignThenMagnitude(t *testing.T) {
	neg := mustReal(t, -5, real4)
	pos := mustReal(t, 5, real4)
	if CompareReal(neg, pos) != RealLess {
		t.Fatal("negative should compare less than positive")
	}
	if CompareReal(pos, pos) != RealEqual {
		t.Fatal("value should compare equal to itself")
	}
}

func TestNegateAndAbsReal(t *testing.T) {
	a := mustReal(t, 5, real4)
	neg := NegateReal(a)
	if CompareReal(neg, mustReal(t, -5, real4)) != RealEqual {
		t.Fatal("NegateReal(5) != -5")
	}
	if CompareReal(AbsReal(neg), a) != RealEqual {
		t.Fatal("AbsReal(-5) != 5")
	}
}
