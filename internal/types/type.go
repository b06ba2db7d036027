package types

import "strconv"

// LenExpr abstracts a CHARACTER length expression without internal/types
// importing internal/expr (which itself imports internal/types for operand
// typing) — expr.Expr implements this interface for its Integer-category
// nodes.
type LenExpr interface {
	// ConstLen returns the length as a compile-time constant, if the
	// underlying expression has already been folded to one.
	ConstLen() (int64, bool)
}

// ConstLen is a constant, already-known CHARACTER length — the common case
// once a designator's declared length or a literal's length has been folded.
type ConstLen int64

// ConstLen implements LenExpr.
func (c ConstLen) ConstLen() (int64, bool) { return int64(c), true }

// Type is a category/kind pair; Character additionally carries a length.
// Derived additionally carries the derived-type name, which identifies the
// internal/symbols.DerivedTypeSpec the fold context resolves components
// against — Type itself stays free of a dependency on internal/symbols.
type Type struct {
	Category    Category
	Kind        int
	CharLen     LenExpr // only meaningful when Category == CategoryCharacter
	DerivedName string  // only meaningful when Category == CategoryDerived
}

// Invalid is the zero Type, used as a sentinel for "no type" / failed typing.
var Invalid = Type{}

// IsValid reports whether t names a real category.
func (t Type) IsValid() bool {
	return t.Category != CategoryInvalid
}

// Make constructs a Type for a non-Character category.
func Make(cat Category, kind int) Type {
	return Type{Category: cat, Kind: kind}
}

// MakeCharacter constructs a Character Type with the given length.
func MakeCharacter(kind int, length LenExpr) Type {
	return Type{Category: CategoryCharacter, Kind: kind, CharLen: length}
}

// MakeDerived constructs a Type for a named derived type.
func MakeDerived(name string) Type {
	return Type{Category: CategoryDerived, DerivedName: name}
}

// Equal reports whether two Types describe the same category and kind.
// Character length is not compared: two Character types of equal kind
// compare equal regardless of (possibly unresolved) length, matching
// Fortran's notion of type identity independent of length. Derived types
// compare equal by name.
func (t Type) Equal(u Type) bool {
	if t.Category != u.Category {
		return false
	}
	if t.Category == CategoryDerived {
		return t.DerivedName == u.DerivedName
	}
	return t.Kind == u.Kind
}

// SameKindSize reports whether t and u have the same kind number, which is
// the storage size in bytes for INTEGER, REAL and LOGICAL; a COMPLEX value
// occupies twice its kind, and CHARACTER length is not compared (relevant
// to TRANSFER and BOZ reinterpretation, which care about storage size
// rather than declared type).
func (t Type) SameKindSize(u Type) bool {
	return t.Kind == u.Kind
}

func (t Type) String() string {
	if !t.IsValid() {
		return "<invalid>"
	}
	if t.Category == CategoryDerived {
		return "TYPE(" + t.DerivedName + ")"
	}
	return t.Category.String() + "(" + strconv.Itoa(t.Kind) + ")"
}
