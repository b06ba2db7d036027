package main

import (
	"fmt"
	"strconv"
	"strings"

	"fconst/internal/bignum"
	"fconst/internal/expr"
	"fconst/internal/types"
)

// renderExpr renders a (possibly only partially folded) expression tree back
// to text for eval/repl output. Fully-folded leaves print as Fortran literal
// syntax; anything left unfolded (a FunctionRef the host couldn't reduce, a
// Designator with no bound value) prints as its s-expression form so the
// user can see exactly what survived the fold.
func renderExpr(e expr.Expr) string {
	switch n := e.(type) {
	case *expr.Constant:
		return renderConstant(n)
	case *expr.ArrayConstructor:
		items := make([]string, len(n.Items))
		for i, it := range n.Items {
			items[i] = renderExpr(it)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *expr.ImpliedDo:
		parts := make([]string, len(n.Items))
		for i, it := range n.Items {
			parts[i] = renderExpr(it)
		}
		body := strings.Join(parts, ", ")
		if n.Stride != nil {
			return fmt.Sprintf("(%s, %s = %s, %s, %s)", body, n.Variable, renderExpr(n.Start), renderExpr(n.End), renderExpr(n.Stride))
		}
		return fmt.Sprintf("(%s, %s = %s, %s)", body, n.Variable, renderExpr(n.Start), renderExpr(n.End))
	case *expr.Designator:
		return n.SymbolName
	case *expr.FunctionRef:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = renderExpr(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
	case *expr.Operation:
		return renderOperation(n)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func renderOperation(o *expr.Operation) string {
	left := renderExpr(o.Left)
	if o.Right == nil {
		return fmt.Sprintf("(%s %s)", operatorSymbol(o), left)
	}
	right := renderExpr(o.Right)
	return fmt.Sprintf("(%s %s %s)", left, operatorSymbol(o), right)
}

func operatorSymbol(o *expr.Operation) string {
	switch o.Op {
	case expr.OpAdd:
		return "+"
	case expr.OpSubtract:
		return "-"
	case expr.OpMultiply:
		return "*"
	case expr.OpDivide:
		return "/"
	case expr.OpPower, expr.OpRealToIntPower:
		return "**"
	case expr.OpNegate:
		return "-"
	case expr.OpParentheses:
		return "paren"
	case expr.OpNot:
		return ".not."
	case expr.OpConcat:
		return "//"
	case expr.OpLogicalAnd:
		return ".and."
	case expr.OpLogicalOr:
		return ".or."
	case expr.OpLogicalEqv:
		return ".eqv."
	case expr.OpLogicalNeqv:
		return ".neqv."
	case expr.OpExtremum:
		if o.Extremum == expr.ExtremumMax {
			return "max"
		}
		return "min"
	case expr.OpComplexComponent:
		if o.Part == expr.PartReal {
			return "realpart"
		}
		return "imagpart"
	case expr.OpComplexConstructor:
		return "complex"
	case expr.OpSetLength:
		return "setlen"
	case expr.OpRelational:
		return relSymbol(o.Rel)
	default:
		return "?"
	}
}

func relSymbol(r expr.RelOp) string {
	switch r {
	case expr.RelLT:
		return "<"
	case expr.RelLE:
		return "<="
	case expr.RelEQ:
		return "=="
	case expr.RelNE:
		return "/="
	case expr.RelGE:
		return ">="
	default:
		return ">"
	}
}

func renderConstant(c *expr.Constant) string {
	switch c.Type.Category() {
	case types.CategoryInteger:
		return bigIntToDecimal(c.Value.Integer)
	case types.CategoryReal:
		return strconv.FormatFloat(bignum.FloatToFloat64(c.Value.Real), 'g', -1, 64)
	case types.CategoryComplex:
		re := strconv.FormatFloat(bignum.FloatToFloat64(c.Value.Complex.Re), 'g', -1, 64)
		im := strconv.FormatFloat(bignum.FloatToFloat64(c.Value.Complex.Im), 'g', -1, 64)
		return "(" + re + ", " + im + ")"
	case types.CategoryCharacter:
		return `"` + strings.ReplaceAll(c.Value.Character, `"`, `""`) + `"`
	case types.CategoryLogical:
		if c.Value.Logical {
			return ".true."
		}
		return ".false."
	default:
		return "z'" + bigUintToHex(c.Value.Boz.Bits) + "'"
	}
}

// bigIntToDecimal renders an arbitrary-precision BigInt in decimal, using
// repeated division by 1e9 since bignum has no built-in base-10 formatter
// (its own literal parsing goes the other way, base-10 text to bits, via
// UintMulSmall/UintAddSmall in sexpr.go).
func bigIntToDecimal(v bignum.BigInt) string {
	u := v.Abs()
	if u.IsZero() {
		return "0"
	}
	const chunk = 1_000_000_000
	var groups []uint32
	for !u.IsZero() {
		q, r, err := bignum.UintDivModSmall(u, chunk)
		if err != nil {
			return "<overflow>"
		}
		groups = append(groups, r)
		u = q
	}
	var b strings.Builder
	if v.Neg {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "%d", groups[len(groups)-1])
	for i := len(groups) - 2; i >= 0; i-- {
		fmt.Fprintf(&b, "%09d", groups[i])
	}
	return b.String()
}

func bigUintToHex(u bignum.BigUint) string {
	const chunk = 1 << 28
	var nibbleGroups []uint32
	for !u.IsZero() {
		q, r, err := bignum.UintDivModSmall(u, chunk)
		if err != nil {
			return "0"
		}
		nibbleGroups = append(nibbleGroups, r)
		u = q
	}
	if len(nibbleGroups) == 0 {
		return "0"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%x", nibbleGroups[len(nibbleGroups)-1])
	for i := len(nibbleGroups) - 2; i >= 0; i-- {
		fmt.Fprintf(&b, "%07x", nibbleGroups[i])
	}
	return b.String()
}
