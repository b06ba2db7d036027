// Package diag defines the diagnostic model used by the folding driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced while folding an expression tree: arithmetic overflow, shape
//     non-conformance, unavailable host intrinsics, and the like.
//   - Offer light-weight utilities (Reporter, Bag) that let the numeric
//     kernels, the shape analyzer, and the folding driver emit diagnostics
//     without coupling to concrete storage or formatting layers.
//   - Model fix suggestions (e.g. "widen to INTEGER(8)") as structured edits
//     the CLI can print or apply.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error), severity.go.
//   - Code – compact numeric identifier (codes.go) grouped by kernel/subsystem
//     (integer, real, complex, BOZ, shape, intrinsic dispatch, fold context).
//   - Message – human oriented text, matching the wording in spec.md section 6.
//   - Primary span – the source.Span of the enclosing expression node.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing a possible remediation.
//
// # Emitting diagnostics
//
// The folder uses a diag.Reporter to decouple emission from storage: the
// folding context constructs a ReportBuilder via NewReportBuilder (or the
// helper functions ReportError/ReportWarning/ReportInfo) and chains WithNote /
// WithFixSuggestion before calling Emit. diag.BagReporter aggregates
// diagnostics into a Bag, which supports sorting, deduplication, and a cap on
// total diagnostics per spec.md's external-interface note.
package diag
