package version

import "testing"

func TestVersionHasADefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersionOverridableAtBuildTime(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2026-08-03T00:00:00Z"

	if Version != "1.2.3" || GitCommit != "abc123" || BuildDate != "2026-08-03T00:00:00Z" {
		t.Fatalf("ldflags-style override did not stick: %q %q %q", Version, GitCommit, BuildDate)
	}
}
