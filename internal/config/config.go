// Package config loads the glslspv.toml project file used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project file looked up by the CLI.
const FileName = "glslspv.toml"

// Config is the decoded project file.
type Config struct {
	Debug  Debug  `toml:"debug"`
	Output Output `toml:"output"`
	Cache  Cache  `toml:"cache"`
	// Jobs bounds the number of programs compiled in parallel. Zero means
	// one per CPU.
	Jobs int `toml:"jobs"`
}

// Debug selects optional debug information in the emitted module.
type Debug struct {
	SourceText bool `toml:"source_text"`
	Lines      bool `toml:"lines"`
}

// Output controls where and how modules are written.
type Output struct {
	Dir string `toml:"dir"`
	// Version is the SPIR-V version as "major.minor".
	Version string `toml:"version"`
}

// Cache configures the compiled-module disk cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when no project file exists.
func Default() Config {
	return Config{
		Output: Output{Version: "1.0"},
		Cache:  Cache{Enabled: true},
	}
}

// Load decodes the project file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: jobs must not be negative", path)
	}
	if _, _, err := ParseVersion(cfg.Output.Version); err != nil {
		return Config{}, fmt.Errorf("%s: [output].version: %w", path, err)
	}
	if cfg.Output.Dir != "" && !filepath.IsAbs(cfg.Output.Dir) {
		cfg.Output.Dir = filepath.Join(filepath.Dir(path), cfg.Output.Dir)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

// Find walks up from startDir looking for the project file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadNearest loads the nearest project file above startDir, or returns
// Default when there is none.
func LoadNearest(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// ParseVersion parses a "major.minor" SPIR-V version.
func ParseVersion(s string) (major, minor uint8, err error) {
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, 0, fmt.Errorf("invalid version %q", s)
	}
	if major != 1 || minor > 6 {
		return 0, 0, fmt.Errorf("unsupported version %q", s)
	}
	return major, minor, nil
}
