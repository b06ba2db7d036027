package main

import (
	"testing"

	"fconst/internal/numeric"
)

func TestComputeFoldCacheKeyStable(t *testing.T) {
	a := computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, false, true)
	b := computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, false, true)
	if a != b {
		t.Fatalf("same inputs produced different keys: %x != %x", a, b)
	}
}

func TestComputeFoldCacheKeyDistinguishesInputs(t *testing.T) {
	base := computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, false, true)
	cases := []foldCacheKey{
		computeFoldCacheKey("(+ 1 3)", numeric.RoundNearestEven, false, true),
		computeFoldCacheKey("(+ 1 2)", numeric.RoundTowardZero, false, true),
		computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, true, true),
		computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, false, false),
	}
	for i, c := range cases {
		if c == base {
			t.Fatalf("case %d collided with base key", i)
		}
	}
}

func TestFoldCachePutGetRoundtrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	cache, err := openFoldCache()
	if err != nil {
		t.Fatalf("openFoldCache: %v", err)
	}

	key := computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, false, true)
	entry := cachedFold{
		Value: "3",
		Diags: []cachedDiagnostic{{Severity: 2, Code: 1001, Message: "overflow"}},
	}
	if err := cache.Put(key, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := cache.Get(key)
	if !ok {
		t.Fatalf("Get: expected a hit after Put")
	}
	if got.Value != entry.Value || len(got.Diags) != 1 || got.Diags[0] != entry.Diags[0] {
		t.Fatalf("Get returned %+v, want %+v", got, entry)
	}
}

func TestFoldCacheGetMiss(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	cache, err := openFoldCache()
	if err != nil {
		t.Fatalf("openFoldCache: %v", err)
	}

	key := computeFoldCacheKey("(+ 9 9)", numeric.RoundNearestEven, false, true)
	if _, ok := cache.Get(key); ok {
		t.Fatalf("expected a miss for a key that was never Put")
	}
}

func TestFoldCachePutStampsSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	cache, err := openFoldCache()
	if err != nil {
		t.Fatalf("openFoldCache: %v", err)
	}

	key := computeFoldCacheKey("(+ 1 2)", numeric.RoundNearestEven, false, true)
	entry := cachedFold{Value: "3"}
	if err := cache.Put(key, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	stored, ok := cache.Get(key)
	if !ok || stored.Schema != foldCacheSchemaVersion {
		t.Fatalf("Put did not stamp the current schema version: %+v", stored)
	}
}
