// Package draft persists in-progress term sheet snapshots so a session
// can be resumed later. Drafts never expire on their own; Prune is the
// explicit hook for callers that want retention.
package draft

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a draft id does not exist.
var ErrNotFound = errors.New("draft: not found")

// Record describes one stored draft without its snapshot payload.
type Record struct {
	ID        int64
	Label     string
	CreatedAt time.Time
}

// Store provides durable draft storage backed by SQLite.
// WAL mode allows concurrent reads while a save is in flight.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the draft database at path. Pragmas and the
// schema are applied on every open; the function is idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("draft: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("draft: connect: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("draft: apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("draft: apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores snap under label and returns the new record. The
// snapshot is stored in its JSON interchange form, so anything Restore
// accepts round-trips through the store unchanged.
func (s *Store) Save(ctx context.Context, label string, snap snapshot.Snapshot) (Record, error) {
	payload, err := snapshot.Marshal(snap)
	if err != nil {
		return Record{}, fmt.Errorf("draft: encode snapshot: %w", err)
	}
	createdAt := s.now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (label, snapshot, created_at) VALUES (?, ?, ?)`,
		label, string(payload), createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("draft: save: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("draft: save: %w", err)
	}
	return Record{ID: id, Label: label, CreatedAt: createdAt}, nil
}

// Load returns the snapshot stored under id, or ErrNotFound.
func (s *Store) Load(ctx context.Context, id int64) (snapshot.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM drafts WHERE id = ?`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft: load %d: %w", id, err)
	}

	snap, err := snapshot.Parse([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("draft: decode draft %d: %w", id, err)
	}
	return snap, nil
}

// List returns all stored drafts, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, created_at FROM drafts ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("draft: list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec Record
			ts  string
		)
		if err := rows.Scan(&rec.ID, &rec.Label, &ts); err != nil {
			return nil, fmt.Errorf("draft: list: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("draft: list: parse created_at %q: %w", ts, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("draft: list: %w", err)
	}
	return records, nil
}

// Delete removes the draft with the given id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("draft: delete %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("draft: delete %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes drafts created before the cutoff and reports how many
// were removed. Nothing calls this automatically.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM drafts WHERE created_at < ?`,
		before.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("draft: prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("draft: prune: %w", err)
	}
	return n, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}
