package fold

import (
	"fconst/internal/expr"
)

// Rewrite is the folding driver's entry point: fold every operand
// bottom-up, then attempt reduction of the current node. The result is
// always at least as reduced as e; it is the same node (unchanged) when no
// reduction applies.
func Rewrite(ctx *Context, e expr.Expr) expr.Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case *expr.Constant:
		return v
	case *expr.Designator:
		return foldDesignator(ctx, v)
	case *expr.FunctionRef:
		return foldFunctionRef(ctx, v)
	case *expr.Operation:
		return foldOperation(ctx, v)
	case *expr.ArrayConstructor:
		return foldArrayConstructor(ctx, v)
	case *expr.ImpliedDo:
		// An ImpliedDo only ever appears nested inside an ArrayConstructor's
		// Items; foldArrayConstructor handles it directly rather than
		// dispatching back through Rewrite.
		return v
	case *expr.StructureConstructor:
		return foldStructureConstructor(ctx, v)
	default:
		return e
	}
}

// foldDesignator substitutes a PARAMETER reference with its folded
// initializer, or an implied-DO index variable with its current iteration
// value. Any other designator (a plain variable, an array section, a
// substring of a non-constant) is left opaque — the folder never guesses at
// a variable's runtime value.
func foldDesignator(ctx *Context, d *expr.Designator) expr.Expr {
	if len(d.Subscripts) == 0 && d.Sub == nil {
		if v, ok := ctx.ImpliedDoValue(d.SymbolName); ok {
			return IntegerLiteral(v, d.Type, d.Loc)
		}
		if ctx.Symbols != nil {
			if sym, ok := ctx.Symbols.Lookup(d.SymbolName); ok && sym.KindInit != nil {
				folded := Rewrite(ctx, sym.KindInit.Clone())
				if c, ok := folded.(*expr.Constant); ok {
					out := *c
					out.Loc = d.Loc
					return &out
				}
			}
		}
	}
	return d
}

// foldStructureConstructor folds each component's value in place. The node
// is never collapsed to a Constant, per the design decision recorded on
// expr.StructureConstructor itself: a derived-type value has no scalar
// numeric payload for Constant.Value to carry.
func foldStructureConstructor(ctx *Context, s *expr.StructureConstructor) expr.Expr {
	out := *s
	if s.Components != nil {
		out.Components = make([]expr.StructureComponent, len(s.Components))
		for i, c := range s.Components {
			out.Components[i] = expr.StructureComponent{Name: c.Name, Value: Rewrite(ctx, c.Value)}
		}
	}
	return &out
}
