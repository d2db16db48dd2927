package version

import (
	"testing"
)

func TestVersion_Default(t *testing.T) {
	// Version may be set by ldflags in CI, so just check it's not empty
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestFull(t *testing.T) {
	origVersion := Version
	origCommit := GitCommit
	origBuildTime := BuildTime
	defer func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}()

	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		want      string
	}{
		{"version only", "1.0.0", "", "", "1.0.0"},
		{"with commit", "1.0.0", "abc1234", "", "1.0.0-abc1234"},
		{"with build time", "1.0.0", "", "2026-08-30T12:00:00Z", "1.0.0 (2026-08-30T12:00:00Z)"},
		{"complete", "1.0.0", "abc1234", "2026-08-30T12:00:00Z", "1.0.0-abc1234 (2026-08-30T12:00:00Z)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			Version = tc.version
			GitCommit = tc.commit
			BuildTime = tc.buildTime

			if got := Full(); got != tc.want {
				t.Errorf("Full() = %q, want %q", got, tc.want)
			}
		})
	}
}
