package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpen_AssignsRunID(t *testing.T) {
	t.Parallel()

	l := openTestLedger(t)
	assert.NotEmpty(t, l.RunID())
}

func TestRecordAndQuery(t *testing.T) {
	t.Parallel()

	l := openTestLedger(t)
	ctx := context.Background()
	started := time.Now()

	require.NoError(t, l.Record(ctx, Entry{
		JobName:    "WordCount",
		ChainIndex: 1,
		Kind:       "flow",
		Success:    true,
		Duration:   1500 * time.Millisecond,
		Counters:   map[string]int64{"wordcount.words": 42},
		StartedAt:  started,
	}))
	require.NoError(t, l.Record(ctx, Entry{
		JobName:    "Pipeline",
		ChainIndex: 0,
		Kind:       "cascade",
		GraphOnly:  true,
		Success:    false,
		StartedAt:  started,
	}))

	entries, err := l.Runs(ctx, l.RunID())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by chain index, not insertion order.
	assert.Equal(t, "Pipeline", entries[0].JobName)
	assert.True(t, entries[0].GraphOnly)
	assert.False(t, entries[0].Success)

	assert.Equal(t, "WordCount", entries[1].JobName)
	assert.Equal(t, 1, entries[1].ChainIndex)
	assert.Equal(t, "flow", entries[1].Kind)
	assert.True(t, entries[1].Success)
	assert.Equal(t, 1500*time.Millisecond, entries[1].Duration)
	assert.Equal(t, map[string]int64{"wordcount.words": 42}, entries[1].Counters)
}

func TestRuns_UnknownRunID(t *testing.T) {
	t.Parallel()

	l := openTestLedger(t)
	entries, err := l.Runs(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_ReopenExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(context.Background(), Entry{JobName: "A", Kind: "flow"}))
	firstID := first.RunID()
	require.NoError(t, first.Close())

	// A second process invocation reuses the file under a fresh run ID.
	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	assert.NotEqual(t, firstID, second.RunID())

	entries, err := second.Runs(context.Background(), firstID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
