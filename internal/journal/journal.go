package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Journal persists presence state transitions into an on-device SQLite file
// so the display's history survives restarts.
type Journal struct {
	db      *sql.DB
	log     *slog.Logger
	writeMu sync.Mutex // SQLite supports a single writer at a time
}

// Transition is one recorded state change.
type Transition struct {
	OccurredAt time.Time
	From       string
	To         string
	Detail     string
}

// Open opens the journal database, creating the file and schema when needed.
// WAL mode keeps writes cheap on flash storage.
func Open(path string, log *slog.Logger) (*Journal, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// One connection is enough for a single-writer journal and sidesteps
	// cross-connection transaction conflicts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply journal schema: %w", err)
	}

	return &Journal{db: db, log: log}, nil
}

// RecordTransition appends one state change to the journal.
func (j *Journal) RecordTransition(ctx context.Context, from, to, detail string, at time.Time) error {
	j.writeMu.Lock()
	defer j.writeMu.Unlock()

	query := `
		INSERT INTO presence_transitions (occurred_at, from_state, to_state, detail)
		VALUES (?, ?, ?, ?);
	`

	_, err := j.db.ExecContext(ctx, query, at.UTC().Format(time.RFC3339), from, to, detail)
	if err != nil {
		return fmt.Errorf("failed to insert presence transition: %w", err)
	}

	j.log.DebugContext(ctx, "Journaled presence transition", "from", from, "to", to, "detail", detail)

	return nil
}

// Recent returns up to limit transitions, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Transition, error) {
	query := `
		SELECT occurred_at, from_state, to_state, detail
		FROM presence_transitions
		ORDER BY id DESC
		LIMIT ?;
	`

	rows, err := j.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query presence transitions: %w", err)
	}
	defer rows.Close()

	var transitions []Transition
	for rows.Next() {
		var (
			tr  Transition
			raw string
		)
		if errScan := rows.Scan(&raw, &tr.From, &tr.To, &tr.Detail); errScan != nil {
			return nil, fmt.Errorf("failed to scan presence transition: %w", errScan)
		}
		tr.OccurredAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transition timestamp %q: %w", raw, err)
		}
		transitions = append(transitions, tr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return transitions, nil
}

// Ping reports whether the journal database is reachable; it backs the
// health endpoint.
func (j *Journal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
