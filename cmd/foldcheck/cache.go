package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"fconst/internal/diag"
	"fconst/internal/numeric"
)

// foldCacheKey identifies one (expression text, folding configuration) pair.
// Two runs with the same text under the same rounding/flush/host-math policy
// always fold to the same result, so the key need not include anything about
// the invocation beyond those four values.
type foldCacheKey [32]byte

func computeFoldCacheKey(text string, rounding numeric.RoundingMode, flushSubnormal, hostMath bool) foldCacheKey {
	return sha256.Sum256(fmt.Appendf(nil, "%s\x00%d\x00%t\x00%t", text, rounding, flushSubnormal, hostMath))
}

// cachedDiagnostic is a trimmed-down diag.Diagnostic: span/notes/fixes carry
// FileID values scoped to the FileSet that produced them, meaningless once
// reloaded into a different run, so only the user-facing fields are cached.
type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
}

type cachedFold struct {
	Schema uint16
	Value  string
	Diags  []cachedDiagnostic
}

const foldCacheSchemaVersion uint16 = 1

func toCachedDiags(diags []diag.Diagnostic) []cachedDiagnostic {
	out := make([]cachedDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = cachedDiagnostic{Severity: uint8(d.Severity), Code: uint16(d.Code), Message: d.Message}
	}
	return out
}

// foldCache is a disk-backed cache of folded results, keyed by content hash,
// mirroring internal/driver/dcache.go's DiskCache: msgpack payloads under an
// XDG cache directory, written via a temp file and atomic rename.
type foldCache struct {
	dir string
}

func openFoldCache() (*foldCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "foldcheck", "folds")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &foldCache{dir: dir}, nil
}

func (c *foldCache) pathFor(key foldCacheKey) string {
	return filepath.Join(c.dir, fmt.Sprintf("%x.mp", key))
}

func (c *foldCache) Get(key foldCacheKey) (cachedFold, bool) {
	var out cachedFold
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return cachedFold{}, false
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return cachedFold{}, false
	}
	if out.Schema != foldCacheSchemaVersion {
		return cachedFold{}, false
	}
	return out, true
}

func (c *foldCache) Put(key foldCacheKey, entry cachedFold) error {
	entry.Schema = foldCacheSchemaVersion
	p := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}
