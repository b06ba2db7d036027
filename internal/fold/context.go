// Package fold implements the recursive constant-folding driver: Rewrite
// walks an expr.Expr bottom-up, reducing every subexpression that can be
// statically evaluated to a Constant, applying the numeric kernels in
// internal/numeric and internal/bignum and reporting arithmetic hazards
// through internal/diag. This is the core package — every other package
// exists to give it something to fold.
package fold

import (
	"fconst/internal/diag"
	"fconst/internal/hostmath"
	"fconst/internal/numeric"
	"fconst/internal/shape"
	"fconst/internal/symbols"
)

// impliedDoFrame records one active implied-DO's loop variable and its
// current iteration value, pushed before folding the body and popped
// afterward — on every exit path, including one where the body fold itself
// aborted (an error in a loop body must not leave the stack unbalanced).
type impliedDoFrame struct {
	Name    string
	Current int64
}

// Context is the folder's exclusive mutable state for one pass. It is never
// shared across goroutines; a caller folding several independent
// expressions concurrently constructs one Context per goroutine.
type Context struct {
	Reporter       diag.Reporter
	Host           hostmath.Handle
	Symbols        symbols.FortranTable
	Rounding       numeric.RoundingMode
	FlushSubnormal bool

	impliedDo []impliedDoFrame
}

// NewContext builds a Context with the given collaborators. A nil Host
// defaults to hostmath.NopHandle{} (every transcendental call stays
// unreduced); a nil Reporter silently drops diagnostics.
func NewContext(reporter diag.Reporter, host hostmath.Handle, symtab symbols.FortranTable) *Context {
	if host == nil {
		host = hostmath.NopHandle{}
	}
	return &Context{Reporter: reporter, Host: host, Symbols: symtab, Rounding: numeric.RoundNearestEven}
}

func (c *Context) pushImpliedDo(name string, current int64) {
	c.impliedDo = append(c.impliedDo, impliedDoFrame{Name: name, Current: current})
}

func (c *Context) popImpliedDo() {
	c.impliedDo = c.impliedDo[:len(c.impliedDo)-1]
}

// ImpliedDoValue looks up the current iteration value of an active
// implied-DO variable, innermost scope first.
func (c *Context) ImpliedDoValue(name string) (int64, bool) {
	for i := len(c.impliedDo) - 1; i >= 0; i-- {
		if c.impliedDo[i].Name == name {
			return c.impliedDo[i].Current, true
		}
	}
	return 0, false
}

// shapeProvider adapts Context.Symbols to shape.DeclaredShapeProvider.
func (c *Context) shapeProvider() shape.DeclaredShapeProvider {
	if c.Symbols == nil {
		return symbols.DeclaredShapeAdapter{Table: nopTable{}}
	}
	return symbols.DeclaredShapeAdapter{Table: c.Symbols}
}

type nopTable struct{}

func (nopTable) Lookup(name string) (symbols.FortranSymbol, bool) { return symbols.FortranSymbol{}, false }
