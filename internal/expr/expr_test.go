package expr

import (
	"testing"

	"fconst/internal/bignum"
	"fconst/internal/source"
)

func TestIntegerConstantConstLen(t *testing.T) {
	c := IntegerConstant(bignum.IntFromInt64(5), 8, source.Span{})
	v, ok := c.ConstLen()
	if !ok || v != 5 {
		t.Fatalf("ConstLen() = %d,%v want 5,true", v, ok)
	}
}

func TestIntegerConstantConstLenRejectsNegative(t *testing.T) {
	c := IntegerConstant(bignum.IntFromInt64(-1), 8, source.Span{})
	if _, ok := c.ConstLen(); ok {
		t.Fatal("a negative INTEGER constant should not be a valid length")
	}
}

func TestCharacterConstantLengthMatchesRuneCount(t *testing.T) {
	c := CharacterConstant("hello", 1, source.Span{})
	l, ok := c.Type.Type().CharLen.ConstLen()
	if !ok || l != 5 {
		t.Fatalf("CharLen = %d,%v want 5,true", l, ok)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	inner := IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{})
	op := &Operation{Op: OpNegate, Left: inner}
	clone := op.Clone().(*Operation)
	cloneInner := clone.Left.(*Constant)
	cloneInner.Value.Integer = bignum.IntFromInt64(99)
	if inner.Value.Integer.Cmp(bignum.IntFromInt64(1)) != 0 {
		t.Fatal("mutating a clone's subtree mutated the original")
	}
}

func TestEqualParenthesesNotTransparent(t *testing.T) {
	inner := IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{})
	grouped := &Operation{Op: OpParentheses, Left: inner}
	if Equal(grouped, inner) {
		t.Fatal("a parenthesized expression must not equal its bare contents")
	}
}

func TestEqualStructuralComparison(t *testing.T) {
	a := &Operation{Op: OpAdd,
		Left:  IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{}),
		Right: IntegerConstant(bignum.IntFromInt64(2), 4, source.Span{}),
	}
	b := &Operation{Op: OpAdd,
		Left:  IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{}),
		Right: IntegerConstant(bignum.IntFromInt64(2), 4, source.Span{}),
	}
	if !Equal(a, b) {
		t.Fatal("structurally identical trees should be Equal")
	}
	c := &Operation{Op: OpAdd,
		Left:  IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{}),
		Right: IntegerConstant(bignum.IntFromInt64(3), 4, source.Span{}),
	}
	if Equal(a, c) {
		t.Fatal("trees differing in a leaf constant should not be Equal")
	}
}

func TestDesignatorRankCountsOnlyNonIndexSubscripts(t *testing.T) {
	d := &Designator{
		SymbolName: "a",
		DeclRank:   2,
		Subscripts: []Subscript{
			{Kind: SubscriptIndex, Index: IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{})},
			{Kind: SubscriptTriplet},
		},
	}
	if d.Rank() != 1 {
		t.Fatalf("Rank() = %d, want 1", d.Rank())
	}
}

func TestArrayConstructorRankIsAlwaysOne(t *testing.T) {
	a := &ArrayConstructor{Items: []Expr{IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{})}}
	if a.Rank() != 1 {
		t.Fatal("ArrayConstructor.Rank() must always be 1")
	}
}

func TestImpliedDoClonePreservesStructure(t *testing.T) {
	id := &ImpliedDo{
		Variable: "i",
		Start:    IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{}),
		End:      IntegerConstant(bignum.IntFromInt64(3), 4, source.Span{}),
		Items:    []Expr{&Designator{SymbolName: "i"}},
	}
	clone := id.Clone().(*ImpliedDo)
	if !Equal(id, clone) {
		t.Fatal("Clone() should produce a structurally-equal tree")
	}
}

func TestStructureConstructorNeverCollapsesToConstant(t *testing.T) {
	sc := &StructureConstructor{
		Type: IntegerConstant(bignum.IntFromInt64(0), 4, source.Span{}).Type,
		Components: []StructureComponent{
			{Name: "x", Value: IntegerConstant(bignum.IntFromInt64(1), 4, source.Span{})},
		},
	}
	if sc.Rank() != 0 {
		t.Fatalf("Rank() = %d, want 0", sc.Rank())
	}
	if _, ok := Expr(sc).(*Constant); ok {
		t.Fatal("a StructureConstructor must never type-assert as *Constant")
	}
}
