package diag

import (
	"testing"

	"fconst/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("testdata/golden/overflow.f90", []byte("A\nB\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     IntAddOverflow,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     RealUnderflow,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
	}

	expected := "error INT1001 testdata/golden/overflow.f90:1:1 first line second\n" +
		"note INT1001 testdata/golden/overflow.f90:2:1 note line\n" +
		"warning REA1102 testdata/golden/overflow.f90:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
