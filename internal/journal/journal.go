// Package journal records completed submissions in a local SQLite file.
//
// The journal is write-mostly history for the user ("what did I send?"). It
// is never consulted to build a page view.
package journal

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"httag-cli/internal/mutate"

	_ "modernc.org/sqlite"
)

// Entry is one recorded submission.
type Entry struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	Kind      string    `json:"kind"`
	Method    string    `json:"method"`
	TagID     string    `json:"tagId"`
	Statement string    `json:"statement"`
	Status    int       `json:"status,omitempty"`
	Error     string    `json:"error,omitempty"`
}

type Journal struct {
	db *sql.DB
}

var _ mutate.Recorder = (*Journal)(nil)

// Open opens (creating if needed) the journal at path.
func Open(ctx context.Context, path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			at_unixms INTEGER NOT NULL,
			kind TEXT NOT NULL,
			method TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			statement TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 0,
			error TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_at ON submissions(at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Record implements mutate.Recorder.
func (j *Journal) Record(ctx context.Context, r mutate.Result) error {
	id, err := newEntryID()
	if err != nil {
		return err
	}
	at := r.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	var errText sql.NullString
	if r.Err != nil {
		errText = sql.NullString{String: r.Err.Error(), Valid: true}
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO submissions (id, at_unixms, kind, method, tag_id, statement, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, at.UnixMilli(), r.Kind.String(), r.Method, r.TagID, r.Statement.String(), r.Status, errText,
	)
	return err
}

// List returns the most recent entries first. limit <= 0 means all.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT id, at_unixms, kind, method, tag_id, statement, status, error
		FROM submissions ORDER BY at_unixms DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			atMS    int64
			errText sql.NullString
		)
		if err := rows.Scan(&e.ID, &atMS, &e.Kind, &e.Method, &e.TagID, &e.Statement, &e.Status, &errText); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(atMS).UTC()
		e.Error = errText.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// newEntryID returns sub-<8 lowercase base32 chars>.
func newEntryID() (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "sub-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}
