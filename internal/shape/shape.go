// Package shape computes an expression's array shape — the per-dimension
// extent list — without evaluating the expression, the way flang's
// evaluate/shape.h derives a DynamicType's extents from an Expr's static
// structure. internal/fold consults this package to decide whether SIZE,
// UBOUND, array-constructor folding, and elementwise broadcasting have enough
// static information to reduce, and to know how many elements an array
// constructor must linearize.
package shape

import (
	"fconst/internal/bignum"
	"fconst/internal/expr"
	"fconst/internal/source"
	"fconst/internal/types"
)

// ExtentExpr is one dimension's extent, symbolic until its operand
// expression folds to a non-negative INTEGER constant.
type ExtentExpr struct {
	E expr.Expr
}

// ConstExtent returns the extent as a known non-negative count, if E has
// already folded to a non-negative INTEGER constant.
func (e *ExtentExpr) ConstExtent() (int64, bool) {
	if e == nil || e.E == nil {
		return 0, false
	}
	c, ok := e.E.(*expr.Constant)
	if !ok || c.Type.Category() != types.CategoryInteger {
		return 0, false
	}
	v, ok := c.ConstLen()
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

func constExtent(n int64) *ExtentExpr {
	return &ExtentExpr{E: expr.IntegerConstant(bignum.IntFromInt64(n), types.SubscriptIntegerKind, source.Span{})}
}

// Shape is an expression's per-dimension extent list. A nil element means
// that one dimension's extent is not known at fold time (e.g. it depends on
// an unresolved assumed-shape bound or a non-constant subscript bound); the
// Shape itself is still valid at the rank it reports — only that dimension's
// extent is opaque. GetShape's second return value, not a nil Shape, is what
// signals that the rank itself could not be determined.
type Shape []*ExtentExpr

// Scalar is the shape of any rank-0 expression.
var Scalar = Shape{}

// DeclaredShapeProvider supplies a named entity's declared shape, e.g. a
// symbol table's view of a variable's array bounds. internal/shape takes
// this as a narrow interface rather than importing internal/symbols
// directly, since internal/symbols.FortranSymbol has a shape.Shape field — the
// dependency already runs the other way and importing symbols here would
// cycle.
type DeclaredShapeProvider interface {
	DeclaredShape(name string) (Shape, bool)
}

// GetShape derives e's shape without evaluating it.
//
//   - A scalar Constant, a rank-0 Designator/Operation/FunctionRef, and a
//     StructureConstructor (derived types have no array shape of their own
//     representation here) all yield Scalar.
//   - A Designator with subscripts narrows the declared shape: each
//     SubscriptIndex dimension drops out, each SubscriptTriplet dimension's
//     extent becomes CountTrips(lower, upper, stride), each SubscriptVector
//     dimension's extent becomes the vector subscript's own element count.
//   - An Operation's shape is its right operand's shape when that operand
//     is non-scalar, otherwise its left operand's. (Operation.Rank() checks
//     the left operand first; for conformable operands the rank agrees.)
//   - An ArrayConstructor is always rank-1; its single extent is the sum of
//     each item's contribution: a scalar item contributes 1, an ImpliedDo
//     item contributes its body's item count times its trip count.
func GetShape(dsp DeclaredShapeProvider, e expr.Expr) (Shape, bool) {
	if e == nil {
		return nil, false
	}
	switch v := e.(type) {
	case *expr.Constant:
		return Scalar, true
	case *expr.Designator:
		return designatorShape(dsp, v)
	case *expr.FunctionRef:
		if v.Rank() == 0 {
			return Scalar, true
		}
		return nil, false
	case *expr.Operation:
		if v.Rank() == 0 {
			return Scalar, true
		}
		if v.Right != nil && v.Right.Rank() > 0 {
			return GetShape(dsp, v.Right)
		}
		if v.Left != nil {
			return GetShape(dsp, v.Left)
		}
		return nil, false
	case *expr.ArrayConstructor:
		return arrayConstructorShape(dsp, v)
	case *expr.StructureConstructor:
		return Scalar, true
	default:
		return nil, false
	}
}

func designatorShape(dsp DeclaredShapeProvider, d *expr.Designator) (Shape, bool) {
	if len(d.Subscripts) == 0 {
		if d.DeclRank == 0 {
			return Scalar, true
		}
		return dsp.DeclaredShape(d.SymbolName)
	}
	if _, ok := dsp.DeclaredShape(d.SymbolName); !ok {
		return nil, false
	}
	out := make(Shape, 0, len(d.Subscripts))
	for _, s := range d.Subscripts {
		switch s.Kind {
		case expr.SubscriptIndex:
			continue
		case expr.SubscriptTriplet:
			trips, ok := CountTrips(s.Lower, s.Upper, s.Stride)
			if !ok {
				out = append(out, nil)
				continue
			}
			out = append(out, trips)
		case expr.SubscriptVector:
			vecShape, ok := GetShape(dsp, s.Vector)
			if !ok || len(vecShape) == 0 {
				out = append(out, nil)
				continue
			}
			out = append(out, vecShape[0])
		}
	}
	return out, true
}

func arrayConstructorShape(dsp DeclaredShapeProvider, a *expr.ArrayConstructor) (Shape, bool) {
	total := int64(0)
	for _, item := range a.Items {
		switch v := item.(type) {
		case *expr.ImpliedDo:
			trips, ok := CountTrips(v.Start, v.End, v.Stride)
			count, hasCount := trips.ConstExtent()
			if !ok || !hasCount {
				return nil, false
			}
			total += count * int64(len(v.Items))
		default:
			total++
		}
	}
	return Shape{constExtent(total)}, true
}
