package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Archive is a local mirror of completed chat turns so history and
// transcripts stay readable offline. It is written by the CLI after each
// successful turn; the API client itself never touches it.
type Archive struct {
	db *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES sessions(id),
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
`

// OpenArchive opens (creating if needed) the archive database at path.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive ping failed: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// OpenArchiveDB wraps an already-open database handle. Tests use this with
// an in-memory database.
func OpenArchiveDB(db *sql.DB) (*Archive, error) {
	if _, err := db.Exec(archiveSchema); err != nil {
		return nil, fmt.Errorf("failed to create archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// RecordTurn appends one message to a session, creating the session row on
// first sight. The title seeds from the first user message.
func (a *Archive) RecordTurn(sessionID int, username, role, content string, at time.Time) error {
	if sessionID <= 0 {
		return fmt.Errorf("invalid session id: %d", sessionID)
	}
	ts := at.UTC().Format(time.RFC3339)

	var exists int
	err := a.db.QueryRow("SELECT COUNT(1) FROM sessions WHERE id = ?", sessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("session lookup failed: %w", err)
	}
	if exists == 0 {
		title := ""
		if role == "user" {
			title = truncate(content, 120)
		}
		_, err = a.db.Exec(
			"INSERT INTO sessions (id, username, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			sessionID, username, title, ts, ts)
	} else {
		_, err = a.db.Exec("UPDATE sessions SET updated_at = ? WHERE id = ?", ts, sessionID)
	}
	if err != nil {
		return fmt.Errorf("session upsert failed: %w", err)
	}

	_, err = a.db.Exec(
		"INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
		sessionID, role, content, ts)
	if err != nil {
		return fmt.Errorf("message insert failed: %w", err)
	}
	return nil
}

// Sessions lists archived sessions, most recently updated first, in the
// same summary shape the server's history endpoint produces.
func (a *Archive) Sessions() ([]ChatSessionSummary, error) {
	rows, err := a.db.Query(`
		SELECT s.id, s.title, s.created_at,
			(SELECT content FROM messages m WHERE m.session_id = s.id ORDER BY m.id DESC LIMIT 1)
		FROM sessions s ORDER BY s.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("session query failed: %w", err)
	}
	defer rows.Close()

	var summaries []ChatSessionSummary
	for rows.Next() {
		var s ChatSessionSummary
		var last sql.NullString
		if err := rows.Scan(&s.SessionID, &s.Title, &s.CreatedAt, &last); err != nil {
			return nil, fmt.Errorf("session scan failed: %w", err)
		}
		if s.Title == "" {
			s.Title = GeneratedSessionTitle(s.SessionID)
		}
		if last.Valid && last.String != "" {
			preview := truncate(last.String, 180)
			s.LastPreview = &preview
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session rows error: %w", err)
	}
	return summaries, nil
}

// Session loads one archived transcript in insertion order.
func (a *Archive) Session(sessionID int) (*ChatSessionDetail, error) {
	detail := &ChatSessionDetail{SessionID: sessionID, Messages: []ChatTurn{}}

	err := a.db.QueryRow("SELECT username FROM sessions WHERE id = ?", sessionID).Scan(&detail.Username)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %d not found in archive", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup failed: %w", err)
	}

	rows, err := a.db.Query(
		"SELECT role, content, created_at FROM messages WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("message query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn ChatTurn
		if err := rows.Scan(&turn.Role, &turn.Text, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("message scan failed: %w", err)
		}
		detail.Messages = append(detail.Messages, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("message rows error: %w", err)
	}
	return detail, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
