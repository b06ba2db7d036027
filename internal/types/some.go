package types

// SomeKind is a tagged union over the concrete Type<Category,k> values of a
// single category — what GetType() returns once an expression's category is
// known but before the caller needs to switch on kind.
type SomeKind struct {
	Category Category
	Kind     int
	CharLen  LenExpr
}

// Type projects a SomeKind into the underlying Type.
func (s SomeKind) Type() Type {
	return Type{Category: s.Category, Kind: s.Kind, CharLen: s.CharLen}
}

// SomeKindOf wraps a concrete Type as a SomeKind, panicking if it is not a
// member of the given category (a programmer error: callers are expected to
// already know which union arm they're building).
func SomeKindOf(cat Category, t Type) SomeKind {
	if t.Category != cat {
		panic("types: SomeKindOf category mismatch")
	}
	return SomeKind{Category: t.Category, Kind: t.Kind, CharLen: t.CharLen}
}

// Untyped enumerates the typeless expression forms SomeType must also carry:
// BOZ literals, the NULL() pointer constant, and unresolved procedure
// designators/references.
type Untyped uint8

const (
	UntypedNone Untyped = iota
	UntypedBOZLiteral
	UntypedNullPointer
	UntypedProcedure
)

// SomeType is the top-level tagged union over every SomeKind plus the
// typeless cases. GetType() on an expression returns this.
type SomeType struct {
	Kind    SomeKind
	NoKind  Untyped
	IsTyped bool
}

// Typed wraps a concrete Type as a typed SomeType.
func Typed(t Type) SomeType {
	return SomeType{Kind: SomeKindOf(t.Category, t), IsTyped: true}
}

// TypelessBOZ constructs the SomeType for a BOZ literal constant.
func TypelessBOZ() SomeType { return SomeType{NoKind: UntypedBOZLiteral} }

// TypelessNull constructs the SomeType for NULL().
func TypelessNull() SomeType { return SomeType{NoKind: UntypedNullPointer} }

// TypelessProcedure constructs the SomeType for an untyped procedure
// reference.
func TypelessProcedure() SomeType { return SomeType{NoKind: UntypedProcedure} }

// IsTypeless reports whether s carries no Type (BOZ/NULL/procedure).
func (s SomeType) IsTypeless() bool { return !s.IsTyped }

// Type returns the underlying Type, or Invalid if s is typeless.
func (s SomeType) Type() Type {
	if !s.IsTyped {
		return Invalid
	}
	return s.Kind.Type()
}

// Category returns the category of a typed SomeType, or CategoryInvalid for
// a typeless one.
func (s SomeType) Category() Category {
	if !s.IsTyped {
		return CategoryInvalid
	}
	return s.Kind.Category
}
