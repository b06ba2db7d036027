package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"fconst/internal/hostmath"
	"fconst/internal/numeric"
)

// foldConfig mirrors the fields of .foldcheck.toml. The subcommands apply
// only host_math (through hostHandleFor); rounding, flush_subnormals and
// max_diagnostics are parsed, but eval/fmt/repl take those settings from the
// matching persistent flags alone.
type foldConfig struct {
	Fold struct {
		Rounding        string `toml:"rounding"`
		FlushSubnormals bool   `toml:"flush_subnormals"`
		MaxDiagnostics  int    `toml:"max_diagnostics"`
		HostMath        bool   `toml:"host_math"`
	} `toml:"fold"`
}

func defaultFoldConfig() foldConfig {
	var cfg foldConfig
	cfg.Fold.Rounding = "nearest"
	cfg.Fold.FlushSubnormals = false
	cfg.Fold.MaxDiagnostics = 100
	cfg.Fold.HostMath = true
	return cfg
}

// findConfigFile walks upward from startDir looking for .foldcheck.toml,
// mirroring the teacher's surge.toml discovery walk.
func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ".foldcheck.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadFoldConfig loads .foldcheck.toml from startDir's ancestry, falling
// back to defaultFoldConfig when none is found.
func loadFoldConfig(startDir string) (foldConfig, error) {
	path, ok, err := findConfigFile(startDir)
	if err != nil {
		return foldConfig{}, err
	}
	cfg := defaultFoldConfig()
	if !ok {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return foldConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

func parseRoundingMode(s string) (numeric.RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return numeric.RoundNearestEven, nil
	case "zero":
		return numeric.RoundTowardZero, nil
	case "up":
		return numeric.RoundTowardPositive, nil
	case "down":
		return numeric.RoundTowardNegative, nil
	default:
		return 0, fmt.Errorf("unrecognized rounding mode %q (want nearest|zero|up|down)", s)
	}
}

func hostHandleFor(enabled bool) hostmath.Handle {
	if !enabled {
		return hostmath.NopHandle{}
	}
	return hostmath.StdMathHandle{}
}
