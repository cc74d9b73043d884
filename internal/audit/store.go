package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is a SQLite-backed Recorder.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the audit database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	// SQLite is single-writer by design. Keep a single shared connection so
	// concurrent chat turns are serialized by database/sql instead of fighting
	// for write locks across multiple underlying connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS chat_turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			message TEXT NOT NULL,
			operation TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create chat_turns table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordTurn inserts one completed chat turn.
func (s *Store) RecordTurn(ctx context.Context, t Turn) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_turns (request_id, message, operation, response, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.RequestID, t.Message, t.Operation, t.Response, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat turn: %w", err)
	}
	return nil
}

// Recent returns up to limit turns, newest first. The service only writes
// turns; Recent is the read side of the log, kept for operator inspection of
// a recorded database.
func (s *Store) Recent(ctx context.Context, limit int) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT request_id, message, operation, response, created_at
		 FROM chat_turns ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query chat turns: %w", err)
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.RequestID, &t.Message, &t.Operation, &t.Response, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
