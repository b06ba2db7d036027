package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fconst/internal/diag"
	"fconst/internal/source"
)

// printMode selects how diagnostics are rendered.
type printMode int

const (
	printPretty printMode = iota
	printGolden
	printJSON
)

type diagPrinter struct {
	out        io.Writer
	fs         *source.FileSet
	mode       printMode
	color      bool
	maxDiags   int
	errColor   *color.Color
	warnColor  *color.Color
	infoColor  *color.Color
	noteColor  *color.Color
	pathColor  *color.Color
	caretColor *color.Color
}

func newDiagPrinter(out io.Writer, fs *source.FileSet, mode printMode, useColor bool, maxDiags int) *diagPrinter {
	p := &diagPrinter{out: out, fs: fs, mode: mode, color: useColor, maxDiags: maxDiags}
	p.errColor = color.New(color.FgRed, color.Bold)
	p.warnColor = color.New(color.FgYellow, color.Bold)
	p.infoColor = color.New(color.FgCyan)
	p.noteColor = color.New(color.FgHiBlack)
	p.pathColor = color.New(color.FgHiBlack)
	p.caretColor = color.New(color.FgGreen, color.Bold)
	if !useColor {
		color.NoColor = true
	}
	return p
}

// Print renders diags according to p.mode. For printGolden it defers to
// diag.FormatGoldenDiagnostics directly rather than reimplementing its sort
// and formatting rules.
func (p *diagPrinter) Print(diags []diag.Diagnostic) error {
	if p.mode == printGolden {
		rendered := diag.FormatGoldenDiagnostics(diags, p.fs, true)
		if rendered == "" {
			return nil
		}
		_, err := fmt.Fprintln(p.out, rendered)
		return err
	}
	if p.mode == printJSON {
		return p.printJSON(diags)
	}

	shown := diags
	truncated := 0
	if p.maxDiags > 0 && len(shown) > p.maxDiags {
		truncated = len(shown) - p.maxDiags
		shown = shown[:p.maxDiags]
	}

	for i := range shown {
		p.printOne(&shown[i])
	}
	if truncated > 0 {
		p.noteColor.Fprintf(p.out, "... %d more diagnostic(s) suppressed (--max-diagnostics)\n", truncated)
	}
	return nil
}

func (p *diagPrinter) printOne(d *diag.Diagnostic) {
	sevColor, sevLabel := p.severityStyle(d.Severity)
	loc, haveLoc := p.resolve(d.Primary)

	if haveLoc {
		p.pathColor.Fprintf(p.out, "%s:%d:%d: ", loc.path, loc.line, loc.col)
	}
	sevColor.Fprintf(p.out, "%s", sevLabel)
	fmt.Fprintf(p.out, " [%s] %s\n", d.Code.String(), d.Message)

	if haveLoc && loc.text != "" {
		p.printSourceLine(loc, sevColor)
	}

	for _, note := range d.Notes {
		nloc, ok := p.resolve(note.Span)
		if ok {
			p.noteColor.Fprintf(p.out, "  note: %s:%d:%d: %s\n", nloc.path, nloc.line, nloc.col, note.Msg)
		} else {
			p.noteColor.Fprintf(p.out, "  note: %s\n", note.Msg)
		}
	}

	for _, fix := range d.Fixes {
		p.noteColor.Fprintf(p.out, "  fix: %s\n", fix.Title)
	}
}

type diagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *locationJSON `json:"location,omitempty"`
	Notes    []noteJSON    `json:"notes,omitempty"`
}

type locationJSON struct {
	Path string `json:"path"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type noteJSON struct {
	Message  string        `json:"message"`
	Location *locationJSON `json:"location,omitempty"`
}

// printJSON is a self-contained JSON encoder for diagnostics. It does not
// reuse internal/diagfmt/json.go: that file calls FormatPath/BaseDir methods
// that no longer exist on internal/source.FileSet and references a
// diag.ObsTimings code this package's diag.Code set doesn't define, so it is
// stale relative to the rest of this module rather than a drop-in.
func (p *diagPrinter) printJSON(diags []diag.Diagnostic) error {
	out := make([]diagnosticJSON, len(diags))
	for i, d := range diags {
		dj := diagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
		}
		if loc, ok := p.resolve(d.Primary); ok {
			dj.Location = &locationJSON{Path: loc.path, Line: loc.line, Col: loc.col}
		}
		for _, note := range d.Notes {
			nj := noteJSON{Message: note.Msg}
			if nloc, ok := p.resolve(note.Span); ok {
				nj.Location = &locationJSON{Path: nloc.path, Line: nloc.line, Col: nloc.col}
			}
			dj.Notes = append(dj.Notes, nj)
		}
		out[i] = dj
	}
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

type resolvedLoc struct {
	path string
	line uint32
	col  uint32
	text string
}

// resolve mirrors internal/diag/golden.go's resolveSpan, but keeps the raw
// source line so printSourceLine can render a caret underneath it.
func (p *diagPrinter) resolve(span source.Span) (loc resolvedLoc, ok bool) {
	defer func() {
		if recover() != nil {
			loc, ok = resolvedLoc{}, false
		}
	}()
	if p.fs == nil {
		return resolvedLoc{}, false
	}
	file := p.fs.Get(span.File)
	start, _ := p.fs.Resolve(span)
	return resolvedLoc{
		path: file.Path,
		line: start.Line,
		col:  start.Col,
		text: file.GetLine(start.Line),
	}, true
}

func (p *diagPrinter) printSourceLine(loc resolvedLoc, sevColor *color.Color) {
	fmt.Fprintf(p.out, "  %s\n", loc.text)
	pad := runewidth.StringWidth(loc.text)
	if int(loc.col) <= pad+1 {
		pad = int(loc.col) - 1
	}
	if pad < 0 {
		pad = 0
	}
	p.caretColor.Fprintf(p.out, "  %s^\n", strings.Repeat(" ", pad))
}

func (p *diagPrinter) severityStyle(sev diag.Severity) (*color.Color, string) {
	switch sev {
	case diag.SevError:
		return p.errColor, "error"
	case diag.SevWarning:
		return p.warnColor, "warning"
	default:
		return p.infoColor, "info"
	}
}

// parsePrintMode maps a --format flag value to a printMode.
func parsePrintMode(s string) (printMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return printPretty, nil
	case "golden":
		return printGolden, nil
	case "json":
		return printJSON, nil
	default:
		return 0, fmt.Errorf("unrecognized diagnostic format %q (want pretty|golden|json)", s)
	}
}

// resolveColorMode turns the --color flag's auto|on|off into a bool, probing
// the file descriptor for a terminal when set to auto.
func resolveColorMode(mode string, f *os.File) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always", "true":
		return true
	case "off", "never", "false":
		return false
	default:
		return isTerminal(f)
	}
}
