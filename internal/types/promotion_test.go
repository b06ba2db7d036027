package types

import "testing"

func TestPromoteOperandsIntegerVsReal(t *testing.T) {
	i := Make(CategoryInteger, 8)
	r := Make(CategoryReal, 4)
	got, ok := PromoteOperands(i, r)
	if !ok {
		t.Fatal("expected promotion to succeed")
	}
	if got.Category != CategoryReal {
		t.Fatalf("expected REAL result, got %v", got)
	}
	if got.Kind != 8 {
		t.Fatalf("expected the wider operand's kind (8) to survive, got %d", got.Kind)
	}
}

func TestPromoteOperandsSameCategoryPicksWiderKind(t *testing.T) {
	a := Make(CategoryInteger, 2)
	b := Make(CategoryInteger, 8)
	got, ok := PromoteOperands(a, b)
	if !ok || got.Kind != 8 {
		t.Fatalf("expected INTEGER(8), got %v ok=%v", got, ok)
	}
}

func TestPromoteOperandsRealVsComplex(t *testing.T) {
	r := Make(CategoryReal, 8)
	c := Make(CategoryComplex, 4)
	got, ok := PromoteOperands(r, c)
	if !ok || got.Category != CategoryComplex {
		t.Fatalf("expected COMPLEX result, got %v ok=%v", got, ok)
	}
}

func TestPromoteOperandsRejectsNonNumeric(t *testing.T) {
	l := Make(CategoryLogical, 4)
	i := Make(CategoryInteger, 4)
	if _, ok := PromoteOperands(l, i); ok {
		t.Fatal("LOGICAL should not participate in numeric promotion")
	}
}

func TestRelationalOperandTypeRejectsMixedCharacterKind(t *testing.T) {
	a := MakeCharacter(1, ConstLen(3))
	b := Make(CategoryInteger, 4)
	if _, ok := RelationalOperandType(a, b); ok {
		t.Fatal("CHARACTER should not compare against INTEGER")
	}
}

func TestRelationalOperandTypeAllowsMixedNumeric(t *testing.T) {
	a := Make(CategoryInteger, 4)
	b := Make(CategoryReal, 8)
	got, ok := RelationalOperandType(a, b)
	if !ok || got.Category != CategoryReal {
		t.Fatalf("expected REAL comparison type, got %v ok=%v", got, ok)
	}
}
