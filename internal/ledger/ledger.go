// Package ledger records one row per chain-node attempt in an embedded
// SQLite database, giving operators a queryable history of past runs. The
// ledger is strictly an observer: a failed write never affects chain control
// flow.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Ledger appends run history rows for a single process invocation. All rows
// written through one Ledger share a run ID.
type Ledger struct {
	db    *sql.DB
	runID string
}

// Entry is one chain-node attempt.
type Entry struct {
	JobName    string
	ChainIndex int
	Kind       string
	GraphOnly  bool
	Success    bool
	Duration   time.Duration
	Counters   map[string]int64
	StartedAt  time.Time
}

// Open opens (or creates) the ledger database at path and initializes the
// schema. The caller owns the returned Ledger and must Close it.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	l := &Ledger{db: db, runID: uuid.NewString()}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) initSchema() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			job_name TEXT NOT NULL,
			chain_index INTEGER NOT NULL,
			kind TEXT NOT NULL,
			graph_only INTEGER NOT NULL,
			success INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			counters TEXT NOT NULL,
			started_at TEXT NOT NULL
		);`,
	)
	if err != nil {
		return fmt.Errorf("initializing ledger schema: %w", err)
	}
	return nil
}

// RunID returns the identifier shared by every row this Ledger writes.
func (l *Ledger) RunID() string { return l.runID }

// Record appends one entry under the ledger's run ID.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	counters, err := gojson.Marshal(e.Counters)
	if err != nil {
		return fmt.Errorf("encoding counters: %w", err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, job_name, chain_index, kind, graph_only, success, duration_ms, counters, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.runID,
		e.JobName,
		e.ChainIndex,
		e.Kind,
		boolToInt(e.GraphOnly),
		boolToInt(e.Success),
		e.Duration.Milliseconds(),
		string(counters),
		e.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording run entry: %w", err)
	}
	return nil
}

// Runs returns all entries recorded under the given run ID, ordered by chain
// index.
func (l *Ledger) Runs(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT job_name, chain_index, kind, graph_only, success, duration_ms, counters, started_at
		FROM runs WHERE run_id = ? ORDER BY chain_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying run entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			graphOnly  int
			success    int
			durationMS int64
			counters   string
			startedAt  string
		)
		if err := rows.Scan(&e.JobName, &e.ChainIndex, &e.Kind, &graphOnly, &success, &durationMS, &counters, &startedAt); err != nil {
			return nil, fmt.Errorf("scanning run entry: %w", err)
		}
		e.GraphOnly = graphOnly != 0
		e.Success = success != 0
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if err := gojson.Unmarshal([]byte(counters), &e.Counters); err != nil {
			return nil, fmt.Errorf("decoding counters: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			e.StartedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
