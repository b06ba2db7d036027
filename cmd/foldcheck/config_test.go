package main

import (
	"os"
	"path/filepath"
	"testing"

	"fconst/internal/hostmath"
	"fconst/internal/numeric"
)

func TestLoadFoldConfigDefaultsWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadFoldConfig(dir)
	if err != nil {
		t.Fatalf("loadFoldConfig: %v", err)
	}
	want := defaultFoldConfig()
	if cfg != want {
		t.Fatalf("loadFoldConfig(no file) = %+v, want default %+v", cfg, want)
	}
}

func TestLoadFoldConfigFindsAncestorFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	toml := `[fold]
rounding = "zero"
flush_subnormals = true
max_diagnostics = 5
host_math = false
`
	if err := os.WriteFile(filepath.Join(root, ".foldcheck.toml"), []byte(toml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadFoldConfig(nested)
	if err != nil {
		t.Fatalf("loadFoldConfig: %v", err)
	}
	if cfg.Fold.Rounding != "zero" || !cfg.Fold.FlushSubnormals || cfg.Fold.MaxDiagnostics != 5 || cfg.Fold.HostMath {
		t.Fatalf("loadFoldConfig found the wrong values: %+v", cfg)
	}
}

func TestLoadFoldConfigRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".foldcheck.toml"), []byte("not valid toml {{{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := loadFoldConfig(dir); err == nil {
		t.Fatalf("expected an error for malformed TOML")
	}
}

func TestParseRoundingMode(t *testing.T) {
	cases := map[string]numeric.RoundingMode{
		"":        numeric.RoundNearestEven,
		"nearest": numeric.RoundNearestEven,
		"zero":    numeric.RoundTowardZero,
		"up":      numeric.RoundTowardPositive,
		"down":    numeric.RoundTowardNegative,
	}
	for in, want := range cases {
		got, err := parseRoundingMode(in)
		if err != nil {
			t.Fatalf("parseRoundingMode(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("parseRoundingMode(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := parseRoundingMode("sideways"); err == nil {
		t.Fatalf("expected an error for an unrecognized rounding mode")
	}
}

func TestHostHandleFor(t *testing.T) {
	if _, ok := hostHandleFor(true).(hostmath.StdMathHandle); !ok {
		t.Fatalf("hostHandleFor(true) = %T, want hostmath.StdMathHandle", hostHandleFor(true))
	}
	if _, ok := hostHandleFor(false).(hostmath.NopHandle); !ok {
		t.Fatalf("hostHandleFor(false) = %T, want hostmath.NopHandle", hostHandleFor(false))
	}
}
