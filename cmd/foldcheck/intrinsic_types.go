package main

import (
	"strings"

	"fconst/internal/expr"
	"fconst/internal/types"
)

// inferIntrinsicResultType assigns a (call "name" ...) form's static result
// type the way a front end's intrinsic-interface table would, for the names
// internal/fold's evalIntrinsic recognizes. Most of those folders derive
// their working kind from the argument themselves via a typeless fallback
// (see kindOf in internal/fold/helpers.go), so leaving the result typeless
// here is correct more often than guessing a kind — this only pins a kind
// down where the intrinsic's defined result kind does not simply track an
// argument's kind.
func inferIntrinsicResultType(rawName string, args []expr.Expr) types.SomeType {
	name := strings.ToLower(rawName)
	switch name {
	case "size", "shape":
		return types.Typed(types.Make(types.CategoryInteger, types.SubscriptIntegerKind))
	case "kind", "rank", "len", "exponent", "leadz", "trailz", "popcnt", "poppar", "maskl", "maskr":
		return types.Typed(types.Make(types.CategoryInteger, types.DefaultKind(types.CategoryInteger)))
	case "dprod":
		return types.Typed(types.Make(types.CategoryReal, 8))
	case "int":
		return types.Typed(types.Make(types.CategoryInteger, explicitKindArg(args, 1, types.DefaultKind(types.CategoryInteger))))
	case "real":
		return types.Typed(types.Make(types.CategoryReal, explicitKindArg(args, 1, types.DefaultKind(types.CategoryReal))))
	case "cmplx":
		return types.Typed(types.Make(types.CategoryComplex, explicitKindArg(args, 2, types.DefaultKind(types.CategoryReal))))
	case "bge", "bgt", "ble", "blt":
		return types.Typed(types.Make(types.CategoryLogical, types.LogicalResultKind))
	default:
		// abs, dim, iand/ior/ieor, ibclr/ibset, ishft family, dshiftl/
		// dshiftr, merge_bits, aimag, aint, epsilon, conjg, and every host
		// transcendental all carry their result kind from an argument's own
		// kind inside the folder itself (kindOf's fallback path) — a
		// typeless result type lets that fallback do the right thing.
		return types.SomeType{}
	}
}

// explicitKindArg reads args[pos] as an INTEGER literal naming an explicit
// KIND=, falling back to def when that argument is absent or not a
// constant.
func explicitKindArg(args []expr.Expr, pos int, def int) int {
	if pos >= len(args) {
		return def
	}
	c, ok := args[pos].(*expr.Constant)
	if !ok || c.Type.Category() != types.CategoryInteger {
		return def
	}
	n, ok := c.Value.Integer.Int64()
	if !ok {
		return def
	}
	return int(n)
}
