package symbols

import (
	"testing"

	"fconst/internal/bignum"
	"fconst/internal/expr"
	"fconst/internal/shape"
	"fconst/internal/source"
	"fconst/internal/types"
)

type fakeFortranTable map[string]FortranSymbol

func (f fakeFortranTable) Lookup(name string) (FortranSymbol, bool) {
	s, ok := f[name]
	return s, ok
}

func TestDeclaredShapeAdapterResolvesKnownSymbol(t *testing.T) {
	tbl := fakeFortranTable{
		"a": {
			Name:  "a",
			Kind:  SymbolVariable,
			Type:  types.Typed(types.Make(types.CategoryInteger, 4)),
			Shape: shape.Shape{nil},
		},
	}
	adapter := DeclaredShapeAdapter{Table: tbl}
	s, ok := adapter.DeclaredShape("a")
	if !ok || len(s) != 1 {
		t.Fatalf("DeclaredShape(a) = %v,%v want len 1,true", s, ok)
	}
}

func TestDeclaredShapeAdapterUnknownSymbol(t *testing.T) {
	adapter := DeclaredShapeAdapter{Table: fakeFortranTable{}}
	if _, ok := adapter.DeclaredShape("missing"); ok {
		t.Fatal("an unresolved symbol must not produce a declared shape")
	}
}

func TestFortranSymbolCarriesKindInitForParameter(t *testing.T) {
	c := expr.IntegerConstant(bignum.IntFromInt64(42), 4, source.Span{})
	sym := FortranSymbol{
		Name:     "n",
		Kind:     SymbolNamedConstant,
		Type:     types.Typed(types.Make(types.CategoryInteger, 4)),
		KindInit: c,
	}
	got, ok := sym.KindInit.(*expr.Constant)
	if !ok || got.Value.Integer.Cmp(bignum.IntFromInt64(42)) != 0 {
		t.Fatal("KindInit should carry the PARAMETER's folded initializer")
	}
}
