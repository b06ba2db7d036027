package symbols

import (
	"fconst/internal/expr"
	"fconst/internal/shape"
	"fconst/internal/types"
)

// FortranSymbolKind classifies what kind of entity a FortranSymbol names.
// internal/fold only ever reads this — nothing in this package resolves
// declarations from source, that stays the host compiler's job.
type FortranSymbolKind uint8

const (
	SymbolVariable FortranSymbolKind = iota
	SymbolNamedConstant
	SymbolDerivedTypeComponent
	SymbolIntrinsicFunction
	SymbolExternalFunction
)

// FortranSymbol is the read-only view internal/shape and internal/fold need
// of one named entity: its type, its declared array shape (Scalar for a
// scalar entity), and — for a PARAMETER — the initializer expression whose
// folded Constant becomes the value a Designator referencing it collapses
// to.
//
// This is deliberately a narrower view than the teacher's own Symbol (which
// additionally carries source spans, visibility flags, and a language's
// full declaration-resolution bookkeeping): folding only ever reads a
// symbol's type, shape, and constant initializer, never its scope or
// declaration site.
type FortranSymbol struct {
	Name     string
	Kind     FortranSymbolKind
	Type     types.SomeType
	Shape    shape.Shape
	KindInit expr.Expr // PARAMETER's initializer; nil for a non-constant variable
	Derived  *DerivedTypeSpec
}

// DerivedTypeSpec describes a derived type's components and any parent
// parameterization, for StructureConstructor folding and component-access
// Designator resolution.
type DerivedTypeSpec struct {
	Name          string
	Components    []FortranSymbol
	ParentParams  map[string]expr.Expr
}

// FortranTable is the read-only symbol lookup internal/fold's Context is
// built against. A real host compiler backs it with its own semantic
// analysis; internal/fold never constructs one itself.
type FortranTable interface {
	Lookup(name string) (FortranSymbol, bool)
}

// DeclaredShape implements shape.DeclaredShapeProvider: a FortranTable is
// usable anywhere internal/shape.GetShape needs to resolve a Designator's
// declared bounds.
type DeclaredShapeAdapter struct {
	Table FortranTable
}

func (a DeclaredShapeAdapter) DeclaredShape(name string) (shape.Shape, bool) {
	sym, ok := a.Table.Lookup(name)
	if !ok {
		return nil, false
	}
	return sym.Shape, true
}
