// Package expr implements the owned expression tree that a folding context
// rewrites in place: one node per constant, reference, intrinsic operation,
// array or structure constructor. Every node is reachable through exactly one
// Go pointer — there is no arena, no shared subtree, and Clone() always
// produces an independent copy, mirroring the exclusive-ownership semantics
// Fortran expression rewriting assumes (an array constructor's folded items
// never alias the unfolded items they replaced).
package expr

import (
	"fconst/internal/bignum"
	"fconst/internal/numeric"
	"fconst/internal/source"
	"fconst/internal/types"
)

// Expr is implemented by every expression node. isExpr is unexported so the
// set of node kinds is closed to this package.
type Expr interface {
	ResultType() types.SomeType
	Rank() int
	Span() source.Span
	Clone() Expr
	isExpr()
}

// ConstantValue holds the one payload field that applies to a Constant's
// category; the others stay zero. A tagged union would cost an extra
// discriminant field that Constant.Type.Category() already supplies.
type ConstantValue struct {
	Integer   bignum.BigInt
	Real      bignum.BigFloat
	Complex   numeric.ComplexValue
	Character string
	Logical   bool
	Boz       numeric.BozValue
}

// Constant is a fully-reduced scalar literal value. Folding never produces
// rank>0 Constant nodes — array-valued constant
// results stay expressed as a folded ArrayConstructor, per the invariant that
// Constant is always scalar.
type Constant struct {
	Type  types.SomeType
	Value ConstantValue
	Loc   source.Span
}

func (c *Constant) ResultType() types.SomeType { return c.Type }
func (c *Constant) Rank() int                  { return 0 }
func (c *Constant) Span() source.Span          { return c.Loc }
func (c *Constant) isExpr()                    {}

func (c *Constant) Clone() Expr {
	clone := *c
	clone.Value.Integer = c.Value.Integer.Clone()
	return &clone
}

// ConstLen implements types.LenExpr: an Integer-category Constant is a valid
// CHARACTER length expression whenever it is non-negative.
func (c *Constant) ConstLen() (int64, bool) {
	if c.Type.Category() != types.CategoryInteger {
		return 0, false
	}
	v, ok := c.Value.Integer.Int64()
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// IntegerConstant builds a scalar INTEGER constant — a convenience used
// throughout the fold package and its tests.
func IntegerConstant(v bignum.BigInt, kind int, loc source.Span) *Constant {
	return &Constant{Type: types.Typed(types.Make(types.CategoryInteger, kind)), Value: ConstantValue{Integer: v}, Loc: loc}
}

// RealConstant builds a scalar REAL constant.
func RealConstant(v bignum.BigFloat, kind int, loc source.Span) *Constant {
	return &Constant{Type: types.Typed(types.Make(types.CategoryReal, kind)), Value: ConstantValue{Real: v}, Loc: loc}
}

// LogicalConstant builds a scalar LOGICAL constant.
func LogicalConstant(v bool, kind int, loc source.Span) *Constant {
	return &Constant{Type: types.Typed(types.Make(types.CategoryLogical, kind)), Value: ConstantValue{Logical: v}, Loc: loc}
}

// CharacterConstant builds a scalar CHARACTER constant whose length is the
// string's own rune count.
func CharacterConstant(v string, kind int, loc source.Span) *Constant {
	length := types.ConstLen(int64(len([]rune(v))))
	return &Constant{Type: types.Typed(types.MakeCharacter(kind, length)), Value: ConstantValue{Character: v}, Loc: loc}
}
