package source

import "testing"

func TestBuildLineIndexAndToLineCol(t *testing.T) {
	content := []byte("AA\nBBB\nC")
	idx := buildLineIndex(content)
	if len(idx) != 2 {
		t.Fatalf("buildLineIndex() returned %d entries, want 2", len(idx))
	}

	if got := toLineCol(idx, 0); got != (LineCol{Line: 1, Col: 1}) {
		t.Fatalf("toLineCol(0) = %+v", got)
	}
	if got := toLineCol(idx, 3); got != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("toLineCol(3) = %+v", got)
	}
	if got := toLineCol(idx, 7); got != (LineCol{Line: 3, Col: 1}) {
		t.Fatalf("toLineCol(7) = %+v", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("A\r\nB\r\nC"))
	if !changed {
		t.Fatalf("expected changed=true")
	}
	if string(out) != "A\nB\nC" {
		t.Fatalf("normalizeCRLF() = %q", out)
	}

	out, changed = normalizeCRLF([]byte("no crlf here"))
	if changed {
		t.Fatalf("expected changed=false")
	}
	if string(out) != "no crlf here" {
		t.Fatalf("normalizeCRLF() = %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("X")...)
	out, had := removeBOM(withBOM)
	if !had || string(out) != "X" {
		t.Fatalf("removeBOM() = (%q, %v)", out, had)
	}

	out, had = removeBOM([]byte("X"))
	if had || string(out) != "X" {
		t.Fatalf("removeBOM() = (%q, %v), want no BOM", out, had)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath("a/./b/../c"); got != "a/c" {
		t.Fatalf("normalizePath() = %q, want a/c", got)
	}
}
