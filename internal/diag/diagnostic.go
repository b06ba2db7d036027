package diag

import (
	"fconst/internal/source"
)

// Note attaches secondary context to a Diagnostic (e.g. "first declared here").
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one textual replacement within a Fix.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested, not automatically applied, remediation for a Diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one message reported through the diagnostic channel, attached
// to the source location of the enclosing expression node per spec.md 6.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// WithFixSuggestion returns a copy of d with fix appended as-is.
func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
