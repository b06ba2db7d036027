package expr

// Equal reports whether a and b are structurally identical expression
// trees. Parentheses are never transparent: Equal(Operation{Op:
// OpParentheses, Left: x}, x) is false, matching the fold package's
// invariant that a grouped expression is a distinct node from its contents.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Constant:
		bv, ok := b.(*Constant)
		return ok && constantEqual(av, bv)
	case *Designator:
		bv, ok := b.(*Designator)
		return ok && designatorEqual(av, bv)
	case *FunctionRef:
		bv, ok := b.(*FunctionRef)
		return ok && functionRefEqual(av, bv)
	case *Operation:
		bv, ok := b.(*Operation)
		return ok && operationEqual(av, bv)
	case *ArrayConstructor:
		bv, ok := b.(*ArrayConstructor)
		return ok && av.Type.Type().Equal(bv.Type.Type()) && exprSliceEqual(av.Items, bv.Items)
	case *ImpliedDo:
		bv, ok := b.(*ImpliedDo)
		return ok && impliedDoEqual(av, bv)
	case *StructureConstructor:
		bv, ok := b.(*StructureConstructor)
		return ok && structureEqual(av, bv)
	default:
		return false
	}
}

func constantEqual(a, b *Constant) bool {
	if !a.Type.Type().Equal(b.Type.Type()) {
		return false
	}
	return a.Value.Integer.Cmp(b.Value.Integer) == 0 &&
		a.Value.Real.Cmp(b.Value.Real) == 0 &&
		a.Value.Complex.Re.Cmp(b.Value.Complex.Re) == 0 &&
		a.Value.Complex.Im.Cmp(b.Value.Complex.Im) == 0 &&
		a.Value.Character == b.Value.Character &&
		a.Value.Logical == b.Value.Logical
}

func designatorEqual(a, b *Designator) bool {
	if a.SymbolName != b.SymbolName || len(a.Subscripts) != len(b.Subscripts) {
		return false
	}
	for i := range a.Subscripts {
		if !subscriptEqual(a.Subscripts[i], b.Subscripts[i]) {
			return false
		}
	}
	return substringEqual(a.Sub, b.Sub)
}

func subscriptEqual(a, b Subscript) bool {
	if a.Kind != b.Kind {
		return false
	}
	return Equal(a.Index, b.Index) && Equal(a.Lower, b.Lower) && Equal(a.Upper, b.Upper) &&
		Equal(a.Stride, b.Stride) && Equal(a.Vector, b.Vector)
}

func substringEqual(a, b *Substring) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a.Start, b.Start) && Equal(a.End, b.End)
}

func functionRefEqual(a, b *FunctionRef) bool {
	return a.Name == b.Name && exprSliceEqual(a.Args, b.Args)
}

func operationEqual(a, b *Operation) bool {
	if a.Op != b.Op {
		return false
	}
	if a.Op == OpRelational && a.Rel != b.Rel {
		return false
	}
	if a.Op == OpComplexComponent && a.Part != b.Part {
		return false
	}
	if a.Op == OpExtremum && a.Extremum != b.Extremum {
		return false
	}
	return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
}

func impliedDoEqual(a, b *ImpliedDo) bool {
	if a.Variable != b.Variable {
		return false
	}
	return Equal(a.Start, b.Start) && Equal(a.End, b.End) && Equal(a.Stride, b.Stride) && exprSliceEqual(a.Items, b.Items)
}

func structureEqual(a, b *StructureConstructor) bool {
	if !a.Type.Type().Equal(b.Type.Type()) || len(a.Components) != len(b.Components) {
		return false
	}
	for i := range a.Components {
		if a.Components[i].Name != b.Components[i].Name {
			return false
		}
		if !Equal(a.Components[i].Value, b.Components[i].Value) {
			return false
		}
	}
	return true
}

func exprSliceEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
