package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JakobDegen/captures/internal/config"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Expand.MaxDiagnostics != 64 {
		t.Errorf("MaxDiagnostics = %d, want 64", cfg.Expand.MaxDiagnostics)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("Color = %q, want auto", cfg.Output.Color)
	}
	if cfg.Output.IndentWidth != 4 {
		t.Errorf("IndentWidth = %d, want 4", cfg.Output.IndentWidth)
	}
	if cfg.Expand.Only || cfg.Expand.Cache || cfg.Output.UseTabs {
		t.Error("boolean options must default to false")
	}
}

func TestLoad_PartialManifestKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[expand]
only = true
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Expand.Only {
		t.Error("only not applied")
	}
	if cfg.Expand.MaxDiagnostics != 64 {
		t.Errorf("MaxDiagnostics = %d, default lost", cfg.Expand.MaxDiagnostics)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("Color = %q, default lost", cfg.Output.Color)
	}
}

func TestLoad_FullManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[expand]
only = true
max_diagnostics = 8
jobs = 2
cache = true

[output]
color = "never"
indent_width = 2
use_tabs = true
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := config.Config{
		Expand: config.ExpandConfig{Only: true, MaxDiagnostics: 8, Jobs: 2, Cache: true},
		Output: config.OutputConfig{Color: "never", IndentWidth: 2, UseTabs: true},
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantText string
	}{
		{"bad color", "[output]\ncolor = \"sometimes\"\n", "invalid [output].color"},
		{"negative max", "[expand]\nmax_diagnostics = -1\n", "must be non-negative"},
		{"negative indent", "[output]\nindent_width = -2\n", "must be non-negative"},
		{"bad toml", "[expand\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %v, want substring %q", err, tt.wantText)
			}
		})
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[expand]\nonly = true\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := config.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want manifest in %q", path, root)
	}
}

func TestDiscover_NoManifest(t *testing.T) {
	// An isolated directory tree has no manifest above it in practice only
	// when nothing on the path carries one; guard with a deep temp dir.
	dir := t.TempDir()
	cfg, path, err := config.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		// A manifest somewhere above the temp root is possible but not ours.
		t.Skipf("unexpected manifest on the search path: %s", path)
	}
	if cfg != config.Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestDiscover_NearestWins(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[output]\nindent_width = 8\n")
	nested := filepath.Join(root, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, nested, "[output]\nindent_width = 2\n")

	cfg, path, err := config.Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != nested {
		t.Errorf("picked %q, want the nested manifest", path)
	}
	if cfg.Output.IndentWidth != 2 {
		t.Errorf("IndentWidth = %d, want 2", cfg.Output.IndentWidth)
	}
}
