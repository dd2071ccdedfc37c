package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, HarnessConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := New(filepath.Join(t.TempDir(), "nope.yml"))
	var missing *MissingConfigError
	require.ErrorAs(t, err, &missing)
}

func TestNew_InvalidYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), "dataDir: [unclosed")
	_, err := New(path)
	var invalid *InvalidYAMLError
	require.ErrorAs(t, err, &invalid)
}

func TestConfig_FixturePaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	for _, name := range []string{"zeta.json", "alpha.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte("{}"), 0o600))
	}
	// Not a fixture, must not be picked up by the glob.
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("x"), 0o600))

	extra := filepath.Join(dir, "extra.json")
	require.NoError(t, os.WriteFile(extra, []byte("{}"), 0o600))

	path := writeConfig(t, dir, `
dataDir: data
dataFiles:
  - extra.json
`)
	cfg, err := New(path)
	require.NoError(t, err)

	// Relative paths resolve against the config file's directory, and the
	// result is sorted for a deterministic load order.
	paths, err := cfg.DataFixturePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dataDir, "alpha.json"),
		filepath.Join(dataDir, "zeta.json"),
		extra,
	}, paths)

	schemas, err := cfg.SchemaFixturePaths()
	require.NoError(t, err)
	assert.Empty(t, schemas)
}

func TestConfig_FudgeTable(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, t.TempDir(), `
fudge:
  str-schema:
    strings: "whole source known broken"
    numbers:
      one: "just this entry"
`)
	cfg, err := New(path)
	require.NoError(t, err)

	reason, ok := cfg.Fudge.ReasonFor("str-schema", "strings", "anything")
	require.True(t, ok)
	assert.Equal(t, "whole source known broken", reason)

	_, ok = cfg.Fudge.ReasonFor("str-schema", "numbers", "two")
	assert.False(t, ok)
}
