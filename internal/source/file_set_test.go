package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("expr.f90", []byte("A\nBB\nCCC"), 0)

	f := fs.Get(id)
	if f.Path != "expr.f90" {
		t.Fatalf("Path = %q, want expr.f90", f.Path)
	}

	start, end := fs.Resolve(Span{File: id, Start: 2, End: 4})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end != (LineCol{Line: 2, Col: 3}) {
		t.Fatalf("end = %+v, want line 2 col 3", end)
	}
}

func TestFileSetAddVirtualIsFlagged(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("X"))
	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag set")
	}
}

func TestFileSetLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "const.f90")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("A = 1\r\nB = 2\r\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected FileHadBOM flag set")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected FileNormalizedCRLF flag set")
	}
	if string(f.Content) != "A = 1\nB = 2\n" {
		t.Fatalf("Content = %q, want normalized", f.Content)
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("f.f90", []byte("first\nsecond\nthird"), 0)
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 = %q, want empty", got)
	}
}
