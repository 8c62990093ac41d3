// Package config loads the optional captures.toml manifest that supplies
// defaults for the CLI. Flags always win over the manifest; the manifest wins
// over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the loader searches for.
const ManifestName = "captures.toml"

// ExpandConfig is the [expand] section.
type ExpandConfig struct {
	Only           bool `toml:"only"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Jobs           int  `toml:"jobs"`
	Cache          bool `toml:"cache"`
}

// OutputConfig is the [output] section.
type OutputConfig struct {
	Color       string `toml:"color"` // auto | always | never
	IndentWidth int    `toml:"indent_width"`
	UseTabs     bool   `toml:"use_tabs"`
}

// Config is the full manifest.
type Config struct {
	Expand ExpandConfig `toml:"expand"`
	Output OutputConfig `toml:"output"`
}

// Default returns the built-in defaults used when no manifest exists.
func Default() Config {
	return Config{
		Expand: ExpandConfig{
			MaxDiagnostics: 64,
		},
		Output: OutputConfig{
			Color:       "auto",
			IndentWidth: 4,
		},
	}
}

// Load parses the manifest at path on top of the defaults. Sections or keys
// the manifest does not define keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, meta, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(path string, meta toml.MetaData, cfg Config) error {
	if meta.IsDefined("output", "color") {
		switch cfg.Output.Color {
		case "auto", "always", "never":
		default:
			return fmt.Errorf("%s: invalid [output].color %q: want auto, always, or never", path, cfg.Output.Color)
		}
	}
	if meta.IsDefined("expand", "max_diagnostics") && cfg.Expand.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: invalid [expand].max_diagnostics %d: must be non-negative", path, cfg.Expand.MaxDiagnostics)
	}
	if meta.IsDefined("output", "indent_width") && cfg.Output.IndentWidth < 0 {
		return fmt.Errorf("%s: invalid [output].indent_width %d: must be non-negative", path, cfg.Output.IndentWidth)
	}
	return nil
}

// Find walks up from startDir to locate the nearest captures.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
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

// Discover loads the nearest manifest above startDir, or the defaults when
// none exists.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
