package fold

import (
	"testing"

	"fconst/internal/bignum"
	"fconst/internal/diag"
	"fconst/internal/expr"
	"fconst/internal/numeric"
	"fconst/internal/source"
	"fconst/internal/types"
)

func mulOp(t types.SomeType, left, right expr.Expr) *expr.Operation {
	return &expr.Operation{Type: t, Op: expr.OpMultiply, Left: left, Right: right}
}

// Scenario 1: (2+3)*4 folds to 20 with no diagnostics.
func TestScenarioArithmeticChain(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	inner := &expr.Operation{Type: intType(4), Op: expr.OpParentheses, Left: addOp(intType(4), intConst(2, 4), intConst(3, 4))}
	e := mulOp(intType(4), inner, intConst(4, 4))
	got := Rewrite(ctx, e)
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

// Scenario 2: INT_MAX(4) + 1 overflows and wraps to INT_MIN(4), with
// exactly one diagnostic mentioning the kind.
func TestScenarioIntegerOverflow(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	intMax := expr.IntegerConstant(bignum.IntFromInt64(2147483647), 4, source.Span{})
	e := addOp(intType(4), intMax, intConst(1, 4))
	got := Rewrite(ctx, e)
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != -2147483648 {
		t.Fatalf("got %d, want INT_MIN(4)", v)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
}

// Scenario 3: elementwise array + array.
func TestScenarioArrayPlusArray(t *testing.T) {
	ctx := newTestContext()
	left := &expr.ArrayConstructor{Type: intType(4), Items: []expr.Expr{intConst(1, 4), intConst(2, 4), intConst(3, 4)}}
	right := &expr.ArrayConstructor{Type: intType(4), Items: []expr.Expr{intConst(10, 4), intConst(20, 4), intConst(30, 4)}}
	e := addOp(intType(4), left, right)
	got := Rewrite(ctx, e)
	ac, ok := got.(*expr.ArrayConstructor)
	if !ok {
		t.Fatalf("expected *expr.ArrayConstructor, got %T", got)
	}
	want := []int64{11, 22, 33}
	for i, item := range ac.Items {
		c := item.(*expr.Constant)
		v, _ := c.Value.Integer.Int64()
		if v != want[i] {
			t.Fatalf("item %d: got %d, want %d", i, v, want[i])
		}
	}
}

// Scenario 4: size([10,20,30]) folds to 3.
func TestScenarioSizeOfArrayConstructor(t *testing.T) {
	ctx := newTestContext()
	arr := &expr.ArrayConstructor{Type: intType(4), Items: []expr.Expr{intConst(10, 4), intConst(20, 4), intConst(30, 4)}}
	e := &expr.FunctionRef{Type: intType(types.SubscriptIntegerKind), Name: "size", Args: []expr.Expr{arr}}
	got := Rewrite(ctx, e)
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
}

// Scenario 5: iand(BOZ"FF", 255_T) converts the BOZ literal to T first.
func TestScenarioIandWithBOZ(t *testing.T) {
	ctx := newTestContext()
	boz := &expr.Constant{Type: types.TypelessBOZ(), Value: expr.ConstantValue{Boz: numeric.BozFromBits(bignum.UintFromUint64(0xFF))}}
	e := &expr.FunctionRef{Type: intType(4), Name: "iand", Args: []expr.Expr{boz, intConst(255, 4)}}
	got := Rewrite(ctx, e)
	c, ok := got.(*expr.Constant)
	if !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	v, _ := c.Value.Integer.Int64()
	if v != 255 {
		t.Fatalf("got %d, want 255", v)
	}
}

// Scenario 6: [(i, i=1,5)] * 2 folds to [2,4,6,8,10].
func TestScenarioImpliedDoTimesScalar(t *testing.T) {
	ctx := newTestContext()
	impliedDo := &expr.ImpliedDo{
		Type:     intType(4),
		Variable: "i",
		Start:    intConst(1, 4),
		End:      intConst(5, 4),
		Items:    []expr.Expr{&expr.Designator{Type: intType(4), SymbolName: "i"}},
	}
	arr := &expr.ArrayConstructor{Type: intType(4), Items: []expr.Expr{impliedDo}}
	e := mulOp(intType(4), arr, intConst(2, 4))
	got := Rewrite(ctx, e)
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

// Scenario 7: REAL(kind=4, BOZ) where the BOZ literal exceeds 32 bits
// reports a truncation diagnostic.
func TestScenarioRealFromOversizedBOZ(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	wide, err := bignum.UintShl(bignum.UintFromUint64(1), 40)
	if err != nil {
		t.Fatalf("UintShl: %v", err)
	}
	boz := &expr.Constant{Type: types.TypelessBOZ(), Value: expr.ConstantValue{Boz: numeric.BozFromBits(wide)}}
	e := &expr.FunctionRef{Type: realType(4), Name: "real", Args: []expr.Expr{boz}}
	Rewrite(ctx, e)
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
}

// Scenario 8: 1.0/0.0 folds to +Inf with one DivideByZero diagnostic.
func TestScenarioRealDivideByZero(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	one := expr.RealConstant(mustOne(t), 4, source.Span{})
	zero := expr.RealConstant(bignum.FloatZero(), 4, source.Span{})
	e := &expr.Operation{Type: realType(4), Op: expr.OpDivide, Left: one, Right: zero}
	got := Rewrite(ctx, e)
	if _, ok := got.(*expr.Constant); !ok {
		t.Fatalf("expected *expr.Constant, got %T", got)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
}

func mustOne(t *testing.T) bignum.BigFloat {
	t.Helper()
	v, err := bignum.FloatFromInt(bignum.IntFromInt64(1), 24)
	if err != nil {
		t.Fatalf("FloatFromInt: %v", err)
	}
	return v
}

// A non-conformant binary array operation reports exactly one
// "not conformable" diagnostic and leaves the node unreduced.
func TestNonConformableArrayOperationLeftUnreduced(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	left := &expr.ArrayConstructor{Type: intType(4), Items: []expr.Expr{intConst(1, 4), intConst(2, 4)}}
	right := &expr.ArrayConstructor{Type: intType(4), Items: []expr.Expr{intConst(1, 4), intConst(2, 4), intConst(3, 4)}}
	e := addOp(intType(4), left, right)
	got := Rewrite(ctx, e)
	if _, ok := got.(*expr.Constant); ok {
		t.Fatalf("expected an unreduced node, got a folded Constant")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
}

// Invoking an unsupported host transcendental produces exactly one
// "cannot be folded on host" diagnostic and leaves the call unreduced.
func TestUnsupportedHostTranscendentalDiagnoses(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	arg := expr.RealConstant(mustOne(t), 4, source.Span{})
	e := &expr.FunctionRef{Type: realType(4), Name: "sin", Args: []expr.Expr{arg}}
	got := Rewrite(ctx, e)
	if _, ok := got.(*expr.Constant); ok {
		t.Fatalf("expected an unreduced node since no Host is bound, got a folded Constant")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
}

// An entirely unrecognized function name declines silently: no diagnostic,
// since it may legitimately be an external function call.
func TestUnrecognizedNameDeclinesSilently(t *testing.T) {
	bag := diag.NewBag(16)
	ctx := NewContext(diag.BagReporter{Bag: bag}, nil, nil)
	arg := intConst(1, 4)
	e := &expr.FunctionRef{Type: intType(4), Name: "my_external_func", Args: []expr.Expr{arg}}
	got := Rewrite(ctx, e)
	if _, ok := got.(*expr.Constant); ok {
		t.Fatalf("expected an unreduced node, got a folded Constant")
	}
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics for an unrecognized name, got %d", bag.Len())
	}
}
