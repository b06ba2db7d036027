package bignum

import "testing"

func TestIntAndOrXor(t *testing.T) {
	a := IntFromInt64(0b1100)
	b := IntFromInt64(0b1010)

	and, err := IntAnd(a, b)
	if err != nil {
		t.Fatalf("IntAnd: %v", err)
	}
	if v, _ := and.Int64(); v != 0b1000 {
		t.Fatalf("IntAnd = %d, want %d", v, 0b1000)
	}

	or, err := IntOr(a, b)
	if err != nil {
		t.Fatalf("IntOr: %v", err)
	}
	if v, _ := or.Int64(); v != 0b1110 {
		t.Fatalf("IntOr = %d, want %d", v, 0b1110)
	}

	xor, err := IntXor(a, b)
	if err != nil {
		t.Fatalf("IntXor: %v", err)
	}
	if v, _ := xor.Int64(); v != 0b0110 {
		t.Fatalf("IntXor = %d, want %d", v, 0b0110)
	}
}

func TestIntShlShr(t *testing.T) {
	a := IntFromInt64(-4)
	shl, err := IntShl(a, 2)
	if err != nil {
		t.Fatalf("IntShl: %v", err)
	}
	if v, _ := shl.Int64(); v != -16 {
		t.Fatalf("IntShl(-4,2) = %d, want -16", v)
	}
	shr, err := IntShr(IntFromInt64(-16), 2)
	if err != nil {
		t.Fatalf("IntShr: %v", err)
	}
	if v, _ := shr.Int64(); v != -4 {
		t.Fatalf("IntShr(-16,2) = %d, want -4", v)
	}
}

func TestShiftLogicalWidthNegativeCountIsLogicalRightShift(t *testing.T) {
	// ISHFT(-1, -4) on a 32-bit kind: arithmetic -1 is all-ones; a logical
	// right shift by 4 clears the top 4 bits rather than sign-extending.
	a := IntFromInt64(-1)
	got, err := ShiftLogicalWidth(a, -4, 32)
	if err != nil {
		t.Fatalf("ShiftLogicalWidth: %v", err)
	}
	want := IntFromInt64(0x0FFFFFFF)
	if got.Cmp(want) != 0 {
		gv, _ := got.Int64()
		t.Fatalf("ShiftLogicalWidth(-1,-4,32) = %d, want %d", gv, 0x0FFFFFFF)
	}
}

func TestShiftLogicalWidthOutOfRangeIsZero(t *testing.T) {
	got, err := ShiftLogicalWidth(IntFromInt64(1), 32, 32)
	if err != nil {
		t.Fatalf("ShiftLogicalWidth: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero for full-width shift, got %v", got)
	}
}

func TestRotateWidthRoundTrip(t *testing.T) {
	a := IntFromInt64(0x1)
	rotated, err := RotateWidth(a, 4, 8)
	if err != nil {
		t.Fatalf("RotateWidth: %v", err)
	}
	want := IntFromInt64(0x10)
	if rotated.Cmp(want) != 0 {
		v, _ := rotated.Int64()
		t.Fatalf("RotateWidth(1,4,8) = %d, want 16", v)
	}
	back, err := RotateWidth(rotated, -4, 8)
	if err != nil {
		t.Fatalf("RotateWidth back: %v", err)
	}
	if back.Cmp(a) != 0 {
		v, _ := back.Int64()
		t.Fatalf("RotateWidth round trip = %d, want 1", v)
	}
}

func TestRotateWidthFullPeriodIsIdentity(t *testing.T) {
	a := IntFromInt64(0x5A)
	got, err := RotateWidth(a, 8, 8)
	if err != nil {
		t.Fatalf("RotateWidth: %v", err)
	}
	if got.Cmp(a) != 0 {
		t.Fatal("rotating by the full width should be the identity")
	}
}
