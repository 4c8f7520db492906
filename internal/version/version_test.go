package version

import (
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestColored(t *testing.T) {
	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "nightly"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			withVersion(t, v, "", "")
			if got := Colored(false); got != v {
				t.Errorf("Colored(false) = %q, want %q", got, v)
			}
		})
	}

	withVersion(t, "1.2.3-dev", "", "")
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name, commit, date, want string
	}{
		{"plain", "", "", "wgslfront 0.1.0"},
		{"commit", "abc123", "", "wgslfront 0.1.0 (commit abc123)"},
		{"full", "abc123", "2024-01-15", "wgslfront 0.1.0 (commit abc123, built 2024-01-15)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, "0.1.0", tt.commit, tt.date)
			if got := Line(false); got != tt.want {
				t.Errorf("Line = %q, want %q", got, tt.want)
			}
		})
	}
}
