package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowchain/internal/cli"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_MissingJobName(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_UnknownJobIsEnriched(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"-log-level", "error", "NoSuchJob", "--local"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchJob")
	// Failures escaping the application carry a reference link.
	assert.Contains(t, err.Error(), "wiki/common-errors#e")
}

func TestRun_WordCountEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte("a b a\n"), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{
		"-log-level", "error",
		"-workdir", dir,
		"WordCount", "--local", "--input", input, "--output", output,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "a\t2\nb\t1\n", string(data))
	assert.Contains(t, out.String(), "Custom counters:")
}
