package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DriverFlagsAndJobArgs(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-log-level", "debug",
		"-log-format", "json",
		"-ledger", "runs.db",
		"-workdir", "/tmp/artifacts",
		"WordCount", "--local", "--input", "in.txt",
	}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "runs.db", cfg.LedgerPath)
	assert.Equal(t, "/tmp/artifacts", cfg.WorkDir)

	// Everything from the job name on passes through verbatim.
	assert.Equal(t, []string{"WordCount", "--local", "--input", "in.txt"}, cfg.JobArgs)
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{"WordCount", "--local"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.LedgerPath)
	assert.Equal(t, ".", cfg.WorkDir)
}

func TestParse_JobFlagsAreNotDriverFlags(t *testing.T) {
	t.Parallel()

	// Flag parsing stops at the first non-flag token, so job arguments that
	// look like flags never collide with driver options.
	cfg, _, err := Parse([]string{"MyJob", "-log-level", "--x", "1"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"MyJob", "-log-level", "--x", "1"}, cfg.JobArgs)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_MissingJob(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-log-level", "debug"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidValues(t *testing.T) {
	t.Parallel()

	t.Run("log level", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-level", "loud", "MyJob"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("log format", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-format", "xml", "MyJob"}, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
