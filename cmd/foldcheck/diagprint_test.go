package main

import (
	"bytes"
	"strings"
	"testing"

	"fconst/internal/diag"
	"fconst/internal/source"
)

func TestParsePrintMode(t *testing.T) {
	cases := map[string]printMode{
		"":       printPretty,
		"pretty": printPretty,
		"PRETTY": printPretty,
		"golden": printGolden,
		"json":   printJSON,
		" json ": printJSON,
	}
	for in, want := range cases {
		got, err := parsePrintMode(in)
		if err != nil {
			t.Fatalf("parsePrintMode(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("parsePrintMode(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParsePrintModeRejectsUnknown(t *testing.T) {
	if _, err := parsePrintMode("xml"); err == nil {
		t.Fatalf("expected an error for an unrecognized format")
	}
}

func TestResolveColorModeExplicit(t *testing.T) {
	if !resolveColorMode("on", nil) {
		t.Fatalf("--color=on should always report true")
	}
	if resolveColorMode("off", nil) {
		t.Fatalf("--color=off should always report false")
	}
}

func TestDiagPrinterGoldenDelegatesToFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte("(+ 1 2)"))
	span := source.Span{File: id, Start: 0, End: 1}

	diags := []diag.Diagnostic{
		{Severity: diag.SevWarning, Code: 1001, Message: "example", Primary: span},
	}

	var buf bytes.Buffer
	p := newDiagPrinter(&buf, fs, printGolden, false, 0)
	if err := p.Print(diags); err != nil {
		t.Fatalf("Print: %v", err)
	}

	want := diag.FormatGoldenDiagnostics(diags, fs, true)
	got := strings.TrimRight(buf.String(), "\n")
	if got != want {
		t.Fatalf("golden output diverged from FormatGoldenDiagnostics:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestDiagPrinterJSONRoundtripsMessage(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<test>", []byte("(+ 1 2)"))
	span := source.Span{File: id, Start: 0, End: 1}

	diags := []diag.Diagnostic{
		{Severity: diag.SevError, Code: 1001, Message: "overflow", Primary: span},
	}

	var buf bytes.Buffer
	p := newDiagPrinter(&buf, fs, printJSON, false, 0)
	if err := p.Print(diags); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), `"overflow"`) {
		t.Fatalf("expected the message in the JSON output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"severity": "ERROR"`) {
		t.Fatalf("expected a severity field in the JSON output, got: %s", buf.String())
	}
}

func TestDiagPrinterPrettyTruncatesAtMaxDiags(t *testing.T) {
	fs := source.NewFileSet()
	diags := make([]diag.Diagnostic, 5)
	for i := range diags {
		diags[i] = diag.Diagnostic{Severity: diag.SevInfo, Code: 1001, Message: "n"}
	}

	var buf bytes.Buffer
	p := newDiagPrinter(&buf, fs, printPretty, false, 2)
	if err := p.Print(diags); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "suppressed") {
		t.Fatalf("expected a suppression note when maxDiags is exceeded, got: %s", buf.String())
	}
}
