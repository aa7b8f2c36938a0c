package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
jobs = 4

[debug]
source_text = true
lines = true

[output]
dir = "build"
version = "1.3"

[cache]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.Debug.SourceText)
	assert.True(t, cfg.Debug.Lines)
	assert.Equal(t, filepath.Join(dir, "build"), cfg.Output.Dir)
	assert.Equal(t, "1.3", cfg.Output.Version)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[debug]\nlines = true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Output.Version)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "jobs = \n", "failed to parse TOML"},
		{"unknown key", "[output]\nformat = \"bin\"\n", `unknown key "output.format"`},
		{"negative jobs", "jobs = -1\n", "jobs must not be negative"},
		{"bad version", "[output]\nversion = \"2.0\"\n", "unsupported version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadNearest(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "jobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := LoadNearest(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestParseVersion(t *testing.T) {
	major, minor, err := ParseVersion("1.5")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), major)
	assert.Equal(t, uint8(5), minor)

	_, _, err = ParseVersion("one")
	assert.Error(t, err)
}
