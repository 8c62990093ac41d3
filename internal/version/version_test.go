package version

import (
	"strings"
	"testing"
)

func TestVersion_ContainsSemver(t *testing.T) {
	plain := stripped(Version)
	if plain == "" {
		t.Fatal("Version should have a default value")
	}
	parts := strings.SplitN(strings.TrimSuffix(plain, "-dev"), ".", 3)
	if len(parts) != 3 {
		t.Errorf("Version %q is not major.minor.patch", plain)
	}
}

func TestVersion_LdflagsOverride(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() {
		GitCommit, BuildDate = origCommit, origDate
	}()

	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q after override", GitCommit)
	}
	if BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q after override", BuildDate)
	}
}

// stripped removes ANSI escapes so assertions do not depend on whether the
// test runs on a terminal.
func stripped(s string) string {
	var b strings.Builder
	esc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			esc = true
		case esc && r == 'm':
			esc = false
		case !esc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
