package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_LoadPath_File(t *testing.T) {
	t.Parallel()

	path := writeHCL(t, t.TempDir(), "engine.hcl", `
queue   = "batch"
buffer  = 4096
verbose = true
`)

	cfg := NewConfig()
	require.NoError(t, cfg.LoadPath(path))

	// Numbers and booleans coerce to their string forms.
	assert.Equal(t, "batch", cfg.GetOrElse("queue", ""))
	assert.Equal(t, "4096", cfg.GetOrElse("buffer", ""))
	assert.Equal(t, "true", cfg.GetOrElse("verbose", ""))
	assert.Equal(t, []string{path}, cfg.Files())
	assert.Equal(t, []string{"buffer", "queue", "verbose"}, cfg.Keys())
}

func TestConfig_LoadPath_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeHCL(t, dir, "a.hcl", `queue = "first"`)
	writeHCL(t, dir, "b.hcl", `queue = "second"`)

	cfg := NewConfig()
	require.NoError(t, cfg.LoadPath(dir))

	// Files load in sorted order, so the later file wins.
	assert.Equal(t, "second", cfg.GetOrElse("queue", ""))
	assert.Len(t, cfg.Files(), 2)
}

func TestConfig_LoadPath_ParseError(t *testing.T) {
	t.Parallel()

	path := writeHCL(t, t.TempDir(), "broken.hcl", `queue = `)

	err := NewConfig().LoadPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")
}

func TestConfig_SetAndGet(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Set("a", "1")
	cfg.Set("a", "2")

	v, ok := cfg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = cfg.Get("missing")
	assert.False(t, ok)
}
