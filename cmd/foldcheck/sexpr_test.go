package main

import (
	"testing"

	"fconst/internal/diag"
	"fconst/internal/expr"
	"fconst/internal/fold"
	"fconst/internal/source"
)

func mustFold(t *testing.T, text string) (expr.Expr, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	e, err := ParseExprText(fs, "<test>", text)
	if err != nil {
		t.Fatalf("ParseExprText(%q): %v", text, err)
	}
	bag := diag.NewBag(16)
	ctx := fold.NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	return fold.Rewrite(ctx, e), bag
}

func TestParseArithmeticChain(t *testing.T) {
	got, bag := mustFold(t, "(* (paren (+ 2 3)) 4)")
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != 20 {
		t.Fatalf("got %d, want 20", v)
	}
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", bag.Len())
	}
}

func TestParseIntegerOverflow(t *testing.T) {
	got, bag := mustFold(t, "(+ 2147483647 1)")
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != -2147483648 {
		t.Fatalf("got %d, want INT_MIN(4)", v)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
}

func TestParseRealDivideByZero(t *testing.T) {
	_, bag := mustFold(t, "(/ 1.0 0.0)")
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
}

func TestParseRelationalAndLogical(t *testing.T) {
	got, _ := mustFold(t, "(and (lt 1 2) (gt 3 2))")
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	if !c.Value.Logical {
		t.Fatalf("expected .true., got .false.")
	}
}

func TestParseCharacterConcat(t *testing.T) {
	got, _ := mustFold(t, `(concat "foo" "bar")`)
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	if c.Value.Character != "foobar" {
		t.Fatalf("got %q, want %q", c.Value.Character, "foobar")
	}
}

func TestParseArrayPlusArray(t *testing.T) {
	got, _ := mustFold(t, "(+ (array 1 2 3) (array 10 20 30))")
	ac, ok := got.(*expr.ArrayConstructor)
	if !ok {
		t.Fatalf("expected *expr.ArrayConstructor, got %T", got)
	}
	want := []int64{11, 22, 33}
	if len(ac.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(ac.Items), len(want))
	}
	for i, item := range ac.Items {
		c := item.(*expr.Constant)
		v, _ := c.Value.Integer.Int64()
		if v != want[i] {
			t.Fatalf("item %d: got %d, want %d", i, v, want[i])
		}
	}
}

func TestParseImpliedDoTimesScalar(t *testing.T) {
	got, _ := mustFold(t, "(* (array (do i 1 5 i)) 2)")
	ac, ok := got.(*expr.ArrayConstructor)
	if !ok {
		t.Fatalf("expected *expr.ArrayConstructor, got %T", got)
	}
	want := []int64{2, 4, 6, 8, 10}
	if len(ac.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(ac.Items), len(want))
	}
	for i, item := range ac.Items {
		c := item.(*expr.Constant)
		v, _ := c.Value.Integer.Int64()
		if v != want[i] {
			t.Fatalf("item %d: got %d, want %d", i, v, want[i])
		}
	}
}

func TestParseIandWithBOZ(t *testing.T) {
	got, _ := mustFold(t, `(call "iand" x'FF' 255)`)
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != 255 {
		t.Fatalf("got %d, want 255", v)
	}
}

func TestParseSizeOfArray(t *testing.T) {
	got, _ := mustFold(t, `(call "size" (array 10 20 30))`)
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	fs := source.NewFileSet()
	if _, err := ParseExprText(fs, "<test>", "1 2"); err == nil {
		t.Fatalf("expected an error for trailing input")
	}
}

func TestParseRejectsUnknownForm(t *testing.T) {
	fs := source.NewFileSet()
	if _, err := ParseExprText(fs, "<test>", "(frobnicate 1 2)"); err == nil {
		t.Fatalf("expected an error for an unknown form")
	}
}
