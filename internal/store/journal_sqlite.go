package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"filtertree/internal/idgen"
	"filtertree/internal/model"
	"filtertree/internal/outline"

	_ "modernc.org/sqlite"
)

// Journal is an append-only audit log of dispatched actions. It is never
// replayed: the editor always starts from a seed.
type Journal struct {
	db      *sql.DB
	session string
	now     func() time.Time
}

type JournalEntry struct {
	Seq       int64           `json:"seq"`
	SessionID string          `json:"sessionId"`
	At        time.Time       `json:"at"`
	Type      string          `json:"type"`
	SubjectID string          `json:"subjectId,omitempty"`
	Action    json.RawMessage `json:"action"`
	NodeCount int             `json:"nodeCount"`
}

func DefaultJournalPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.sqlite"), nil
}

// OpenJournal opens (creating if needed) the journal database at path.
func OpenJournal(ctx context.Context, path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal: empty path")
	}
	if _, err := ensureParentDir(path); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL keeps a running editor and a `journal` reader from blocking each other.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateJournal(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db, session: idgen.NewContextID(), now: time.Now}, nil
}

func migrateJournal(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS actions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			at_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			subject_id TEXT NOT NULL,
			action_json TEXT NOT NULL,
			node_count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_actions_session ON actions(session_id, seq);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) SessionID() string { return j.session }

// Append records action together with the size of the tree it produced.
func (j *Journal) Append(ctx context.Context, action model.Action, after model.Tree) error {
	b, err := model.EncodeAction(action)
	if err != nil {
		return err
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO actions(session_id, at_unixms, type, subject_id, action_json, node_count) VALUES(?, ?, ?, ?, ?, ?)`,
		j.session, j.now().UTC().UnixMilli(), string(action.Type()), model.SubjectID(action), string(b), outline.Count(after),
	)
	if err != nil {
		return fmt.Errorf("journal append: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]JournalEntry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, session_id, at_unixms, type, subject_id, action_json, node_count FROM actions ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var (
			e    JournalEntry
			ms   int64
			body string
		)
		if err := rows.Scan(&e.Seq, &e.SessionID, &ms, &e.Type, &e.SubjectID, &body, &e.NodeCount); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(ms).UTC()
		e.Action = json.RawMessage(body)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
