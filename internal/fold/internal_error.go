package fold

import "fmt"

// InternalError marks an assertion failure — a type-checker bug surfacing
// at fold time, not user input — distinct from an ordinary diagnostic.
// Nothing in this module recovers it, neither internal/fold nor the CLI, so
// such a panic ends the process.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string { return e.msg }

// Internalf panics with an InternalError. Used only where the expression
// tree's own invariants (e.g. "EXPONENT's argument is REAL") are violated —
// conditions internal/expr's type layer is supposed to rule out before a
// tree ever reaches Rewrite.
func Internalf(format string, args ...any) {
	panic(&InternalError{msg: fmt.Sprintf(format, args...)})
}
