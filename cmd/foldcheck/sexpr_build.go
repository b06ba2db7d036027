package main

import (
	"fmt"

	"fconst/internal/expr"
	"fconst/internal/source"
	"fconst/internal/types"
)

// buildForm constructs the expr.Expr node for one parsed list form, deriving
// each node's static Type the way a real front end's type-checking pass
// would (promotion for arithmetic, fixed LOGICAL for comparisons) so that
// internal/fold sees the same typed tree a compiled program would produce.
func buildForm(head string, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	switch head {
	case "+", "-", "*", "/", "**":
		return buildArithmetic(head, args, loc)
	case "neg":
		return buildUnary(expr.OpNegate, args, loc)
	case "paren":
		return buildUnary(expr.OpParentheses, args, loc)
	case "not":
		return buildUnary(expr.OpNot, args, loc)
	case "and", "or", "eqv", "neqv":
		return buildLogicalBinary(head, args, loc)
	case "lt", "le", "eq", "ne", "ge", "gt":
		return buildRelational(head, args, loc)
	case "max", "min":
		return buildExtremum(head, args, loc)
	case "realpart", "imagpart":
		return buildComplexComponent(head, args, loc)
	case "setlen":
		return buildSetLength(args, loc)
	case "complex":
		return buildComplexConstructor(args, loc)
	case "concat":
		return buildConcat(args, loc)
	case "array":
		return buildArrayConstructor(args, loc)
	case "do":
		return buildImpliedDo(args, loc, false)
	case "doby":
		return buildImpliedDo(args, loc, true)
	case "call":
		return buildCall(args, loc)
	default:
		return nil, fmt.Errorf("foldcheck: unknown form %q", head)
	}
}

func requireArgs(head string, args []expr.Expr, n int) error {
	if len(args) != n {
		return fmt.Errorf("foldcheck: (%s ...) takes %d argument(s), got %d", head, n, len(args))
	}
	return nil
}

func opFor(head string) expr.OperatorKind {
	switch head {
	case "+":
		return expr.OpAdd
	case "-":
		return expr.OpSubtract
	case "*":
		return expr.OpMultiply
	case "/":
		return expr.OpDivide
	case "**":
		return expr.OpPower
	default:
		return 0
	}
}

// buildArithmetic builds +, -, *, /, ** as binary when given two operands,
// or as a unary negation when "-" is given exactly one.
func buildArithmetic(head string, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if head == "-" && len(args) == 1 {
		return buildUnary(expr.OpNegate, args, loc)
	}
	if err := requireArgs(head, args, 2); err != nil {
		return nil, err
	}
	t, ok := types.PromoteOperands(args[0].ResultType().Type(), args[1].ResultType().Type())
	if !ok {
		return nil, fmt.Errorf("foldcheck: (%s ...) operands are not both numeric", head)
	}
	op := opFor(head)
	if op == expr.OpPower && args[1].ResultType().Category() == types.CategoryInteger && args[0].ResultType().Category() != types.CategoryInteger {
		op = expr.OpRealToIntPower
		t = args[0].ResultType().Type()
	}
	return &expr.Operation{Type: types.Typed(t), Op: op, Left: args[0], Right: args[1], Loc: loc}, nil
}

func buildUnary(op expr.OperatorKind, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs(opName(op), args, 1); err != nil {
		return nil, err
	}
	if op == expr.OpNot && args[0].ResultType().Category() != types.CategoryLogical {
		return nil, fmt.Errorf("foldcheck: (not a) operand must be LOGICAL")
	}
	return &expr.Operation{Type: args[0].ResultType(), Op: op, Left: args[0], Loc: loc}, nil
}

func opName(op expr.OperatorKind) string {
	switch op {
	case expr.OpNegate:
		return "neg"
	case expr.OpParentheses:
		return "paren"
	case expr.OpNot:
		return "not"
	default:
		return "op"
	}
}

func logicalOpFor(head string) expr.OperatorKind {
	switch head {
	case "and":
		return expr.OpLogicalAnd
	case "or":
		return expr.OpLogicalOr
	case "eqv":
		return expr.OpLogicalEqv
	default:
		return expr.OpLogicalNeqv
	}
}

func buildLogicalBinary(head string, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs(head, args, 2); err != nil {
		return nil, err
	}
	if args[0].ResultType().Category() != types.CategoryLogical || args[1].ResultType().Category() != types.CategoryLogical {
		return nil, fmt.Errorf("foldcheck: (%s a b) operands must be LOGICAL", head)
	}
	t := types.Typed(types.Make(types.CategoryLogical, types.LogicalResultKind))
	return &expr.Operation{Type: t, Op: logicalOpFor(head), Left: args[0], Right: args[1], Loc: loc}, nil
}

func relFor(head string) expr.RelOp {
	switch head {
	case "lt":
		return expr.RelLT
	case "le":
		return expr.RelLE
	case "eq":
		return expr.RelEQ
	case "ne":
		return expr.RelNE
	case "ge":
		return expr.RelGE
	default:
		return expr.RelGT
	}
}

func buildRelational(head string, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs(head, args, 2); err != nil {
		return nil, err
	}
	if _, ok := types.RelationalOperandType(args[0].ResultType().Type(), args[1].ResultType().Type()); !ok {
		return nil, fmt.Errorf("foldcheck: (%s ...) operands cannot be compared", head)
	}
	t := types.Typed(types.Make(types.CategoryLogical, types.LogicalResultKind))
	return &expr.Operation{Type: t, Op: expr.OpRelational, Rel: relFor(head), Left: args[0], Right: args[1], Loc: loc}, nil
}

func buildExtremum(head string, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs(head, args, 2); err != nil {
		return nil, err
	}
	t, ok := types.PromoteOperands(args[0].ResultType().Type(), args[1].ResultType().Type())
	if !ok {
		return nil, fmt.Errorf("foldcheck: (%s ...) operands are not both numeric", head)
	}
	kind := expr.ExtremumMax
	if head == "min" {
		kind = expr.ExtremumMin
	}
	return &expr.Operation{Type: types.Typed(t), Op: expr.OpExtremum, Extremum: kind, Left: args[0], Right: args[1], Loc: loc}, nil
}

func buildComplexComponent(head string, args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs(head, args, 1); err != nil {
		return nil, err
	}
	argType := args[0].ResultType()
	if argType.Category() != types.CategoryComplex {
		return nil, fmt.Errorf("foldcheck: (%s ...) argument must be COMPLEX", head)
	}
	part := expr.PartReal
	if head == "imagpart" {
		part = expr.PartImag
	}
	t := types.Typed(types.Make(types.CategoryReal, argType.Type().Kind))
	return &expr.Operation{Type: t, Op: expr.OpComplexComponent, Part: part, Left: args[0], Loc: loc}, nil
}

// buildSetLength implements (setlen K str): a CHARACTER designator forced to
// a new declared length K, mirroring OpSetLength's assignment-conversion
// role.
func buildSetLength(args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs("setlen", args, 2); err != nil {
		return nil, err
	}
	lenConst, ok := args[0].(*expr.Constant)
	if !ok || lenConst.Type.Category() != types.CategoryInteger {
		return nil, fmt.Errorf("foldcheck: (setlen K str) K must be an integer literal")
	}
	n, _ := lenConst.Value.Integer.Int64()
	if args[1].ResultType().Category() != types.CategoryCharacter {
		return nil, fmt.Errorf("foldcheck: (setlen K str) str must be CHARACTER")
	}
	kind := args[1].ResultType().Type().Kind
	t := types.Typed(types.MakeCharacter(kind, types.ConstLen(n)))
	return &expr.Operation{Type: t, Op: expr.OpSetLength, Left: args[1], Loc: loc}, nil
}

func buildComplexConstructor(args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs("complex", args, 2); err != nil {
		return nil, err
	}
	for _, a := range args {
		if a.ResultType().Category() != types.CategoryReal && a.ResultType().Category() != types.CategoryInteger {
			return nil, fmt.Errorf("foldcheck: (complex re im) arguments must be REAL or INTEGER")
		}
	}
	kind := types.DefaultKind(types.CategoryReal)
	for _, a := range args {
		if a.ResultType().Category() == types.CategoryReal && a.ResultType().Type().Kind > kind {
			kind = a.ResultType().Type().Kind
		}
	}
	t := types.Typed(types.Make(types.CategoryComplex, kind))
	return &expr.Operation{Type: t, Op: expr.OpComplexConstructor, Left: args[0], Right: args[1], Loc: loc}, nil
}

func buildConcat(args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if err := requireArgs("concat", args, 2); err != nil {
		return nil, err
	}
	if args[0].ResultType().Category() != types.CategoryCharacter || args[1].ResultType().Category() != types.CategoryCharacter {
		return nil, fmt.Errorf("foldcheck: (concat a b) arguments must be CHARACTER")
	}
	kind := args[0].ResultType().Type().Kind
	t := types.Typed(types.MakeCharacter(kind, nil))
	return &expr.Operation{Type: t, Op: expr.OpConcat, Left: args[0], Right: args[1], Loc: loc}, nil
}

func buildArrayConstructor(args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("foldcheck: (array ...) needs at least one item")
	}
	return &expr.ArrayConstructor{Type: args[0].ResultType(), Items: args, Loc: loc}, nil
}

// buildImpliedDo consumes the identPlaceholder parseListBody injected as
// args[0] for the loop variable, then start/end (and, for "doby", an
// explicit stride), then the body items. "do" always steps by 1; "doby"
// names its stride as the 4th argument so the form never needs to guess
// whether a given argument is a stride or the first body item.
func buildImpliedDo(args []expr.Expr, loc source.Span, strided bool) (expr.Expr, error) {
	minArgs := 4
	if strided {
		minArgs = 5
	}
	if len(args) < minArgs {
		return nil, fmt.Errorf("foldcheck: (do var start end item...) / (doby var start end stride item...) needs a variable, bounds, and at least one item")
	}
	ph, ok := args[0].(identPlaceholder)
	if !ok {
		return nil, fmt.Errorf("foldcheck: (do var ...) expects a bare loop-variable name")
	}
	rest := args[1:]
	start, end := rest[0], rest[1]
	var stride expr.Expr
	items := rest[2:]
	if strided {
		stride = items[0]
		items = items[1:]
	}
	return &expr.ImpliedDo{
		Type:     items[0].ResultType(),
		Variable: ph.name,
		Start:    start,
		End:      end,
		Stride:   stride,
		Items:    items,
		Loc:      loc,
	}, nil
}

func buildCall(args []expr.Expr, loc source.Span) (expr.Expr, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("foldcheck: (call \"name\" arg...) needs a function name")
	}
	nameConst, ok := args[0].(*expr.Constant)
	if !ok || nameConst.Type.Category() != types.CategoryCharacter {
		return nil, fmt.Errorf("foldcheck: (call \"name\" ...) name must be a character literal")
	}
	callArgs := args[1:]
	resultType := inferIntrinsicResultType(nameConst.Value.Character, callArgs)
	return &expr.FunctionRef{Type: resultType, Name: nameConst.Value.Character, Args: callArgs, ResultRank: maxRank(callArgs), Loc: loc}, nil
}

func maxRank(args []expr.Expr) int {
	r := 0
	for _, a := range args {
		if a.Rank() > r {
			r = a.Rank()
		}
	}
	return r
}
