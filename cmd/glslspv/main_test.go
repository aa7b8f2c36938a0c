package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glslspv/spirv"
)

const fixture = "../../ast/testdata/uniform_block.yaml"

func execute(t *testing.T, args ...string) (stdout, stderr *bytes.Buffer, err error) {
	t.Helper()
	cmd := NewRootCommand()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err = cmd.Execute()
	return stdout, stderr, err
}

// project creates a directory with a copy of the fixture and a project
// file, and returns the fixture path.
func project(t *testing.T, toml string) string {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	input := filepath.Join(dir, "shader.yaml")
	require.NoError(t, os.WriteFile(input, data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glslspv.toml"), []byte(toml), 0o644))
	return input
}

const noCache = `
[output]
dir = "out"

[cache]
enabled = false
`

func readWords(t *testing.T, path string) []uint32 {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	words, err := spirv.BytesToWords(data)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(words), 5)
	return words
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "glslspv", cmd.Use)
	assert.Equal(t, toolVersion, cmd.Version)

	for _, name := range []string{"compile", "dis", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	colorFlag := cmd.PersistentFlags().Lookup("color")
	require.NotNil(t, colorFlag)
	assert.Equal(t, "auto", colorFlag.DefValue)

	_, _, err := execute(t, "--color", "sometimes", "version")
	assert.ErrorContains(t, err, "invalid color mode")
}

func TestCompileUsesProjectFile(t *testing.T) {
	input := project(t, noCache)

	_, stderr, err := execute(t, "compile", input)
	require.NoError(t, err)

	out := filepath.Join(filepath.Dir(input), "out", "shader.spv")
	words := readWords(t, out)
	assert.Equal(t, uint32(spirv.MagicNumber), words[0])
	assert.Equal(t, uint32(0x00010000), words[1])
	assert.Contains(t, stderr.String(), "compiled "+input)
}

func TestCompileFlagsOverrideProjectFile(t *testing.T) {
	input := project(t, noCache)
	dest := filepath.Join(t.TempDir(), "custom.spv")

	_, _, err := execute(t, "compile", "--target-env-version", "1.3", "-o", dest, input)
	require.NoError(t, err)

	words := readWords(t, dest)
	assert.Equal(t, uint32(0x00010300), words[1])
	assert.NoFileExists(t, filepath.Join(filepath.Dir(input), "out", "shader.spv"))
}

func TestCompileDebugInfoFlags(t *testing.T) {
	input := project(t, noCache)
	plain := filepath.Join(t.TempDir(), "plain.spv")
	debug := filepath.Join(t.TempDir(), "debug.spv")

	_, _, err := execute(t, "compile", "-o", plain, input)
	require.NoError(t, err)
	_, _, err = execute(t, "compile", "--lines", "--source-text", "-o", debug, input)
	require.NoError(t, err)

	assert.Greater(t, len(readWords(t, debug)), len(readWords(t, plain)))
}

func TestCompileToStdout(t *testing.T) {
	input := project(t, noCache)

	stdout, stderr, err := execute(t, "compile", "-o", "-", input)
	require.NoError(t, err)

	require.GreaterOrEqual(t, stdout.Len(), 20)
	assert.Equal(t, uint32(spirv.MagicNumber), binary.LittleEndian.Uint32(stdout.Bytes()))
	assert.NotContains(t, stderr.String(), "compiled")
}

func TestCompileCache(t *testing.T) {
	input := project(t, `
[output]
dir = "out"

[cache]
dir = "cache"
`)
	dir := filepath.Dir(input)

	_, first, err := execute(t, "--verbose", "compile", input)
	require.NoError(t, err)
	assert.NotContains(t, first.String(), "cache hit")
	assert.Contains(t, first.String(), "session_id=")
	want := readWords(t, filepath.Join(dir, "out", "shader.spv"))

	entries, err := filepath.Glob(filepath.Join(dir, "cache", "spv", "*", "*.mp"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, os.Remove(filepath.Join(dir, "out", "shader.spv")))
	_, second, err := execute(t, "--verbose", "compile", input)
	require.NoError(t, err)
	assert.Contains(t, second.String(), "cache hit")
	assert.Equal(t, want, readWords(t, filepath.Join(dir, "out", "shader.spv")))

	// A different option set is a different entry.
	_, third, err := execute(t, "--verbose", "compile", "--lines", input)
	require.NoError(t, err)
	assert.NotContains(t, third.String(), "cache hit")
}

func TestCompileErrors(t *testing.T) {
	input := project(t, noCache)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"output with several inputs", []string{"compile", "-o", "x.spv", input, input}, "exactly one input"},
		{"bad version", []string{"compile", "--target-env-version", "2.0", input}, "unsupported version"},
		{"negative jobs", []string{"compile", "--jobs=-1", input}, "must not be negative"},
		{"missing input", []string{"compile", "--no-cache", filepath.Join(t.TempDir(), "none.yaml")}, "no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDis(t *testing.T) {
	input := project(t, noCache)

	module, _, err := execute(t, "compile", "-o", "-", input)
	require.NoError(t, err)
	spv := filepath.Join(t.TempDir(), "shader.spv")
	require.NoError(t, os.WriteFile(spv, module.Bytes(), 0o644))

	fromBinary, _, err := execute(t, "dis", spv)
	require.NoError(t, err)
	assert.Contains(t, fromBinary.String(), "; SPIR-V")
	assert.Contains(t, fromBinary.String(), "OpEntryPoint Fragment")

	fromYAML, _, err := execute(t, "dis", input)
	require.NoError(t, err)
	assert.Equal(t, fromBinary.String(), fromYAML.String())
}

func TestDisRejectsTruncatedModule(t *testing.T) {
	spv := filepath.Join(t.TempDir(), "bad.spv")
	require.NoError(t, os.WriteFile(spv, []byte{1, 2, 3}, 0o644))

	_, _, err := execute(t, "dis", spv)
	assert.ErrorContains(t, err, "multiple of 4")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "glslspv "+toolVersion)
	assert.Contains(t, stdout.String(), "generator: 0x00000001")
	assert.Contains(t, stdout.String(), "1.0 through 1.6")
}
