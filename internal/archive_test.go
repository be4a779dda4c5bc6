package internal

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	archive, err := OpenArchiveDB(db)
	if err != nil {
		t.Fatalf("OpenArchiveDB() error = %v", err)
	}
	return archive
}

func TestOpenArchive_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "archive.db")
	archive, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer archive.Close()

	if err := archive.RecordTurn(1, "budi", "user", "Halo", time.Now()); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
}

func TestRecordTurn(t *testing.T) {
	archive := newTestArchive(t)
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if err := archive.RecordTurn(1, "budi", "user", "Apa sanksi menerobos lampu merah?", now); err != nil {
		t.Fatalf("RecordTurn(user) error = %v", err)
	}
	if err := archive.RecordTurn(1, "budi", "assistant", "Sanksinya diatur Pasal 287.", now.Add(time.Second)); err != nil {
		t.Fatalf("RecordTurn(assistant) error = %v", err)
	}

	detail, err := archive.Session(1)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if detail.Username != "budi" {
		t.Errorf("Username = %q", detail.Username)
	}
	if len(detail.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(detail.Messages))
	}
	if !detail.Messages[0].IsUser() || detail.Messages[1].IsUser() {
		t.Error("message roles out of order")
	}
	if detail.Messages[0].CreatedAt != "2026-08-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q, want RFC3339 UTC", detail.Messages[0].CreatedAt)
	}
}

func TestRecordTurn_RejectsInvalidSession(t *testing.T) {
	archive := newTestArchive(t)
	if err := archive.RecordTurn(0, "budi", "user", "x", time.Now()); err == nil {
		t.Error("RecordTurn(0) should fail")
	}
	if err := archive.RecordTurn(-3, "budi", "user", "x", time.Now()); err == nil {
		t.Error("RecordTurn(-3) should fail")
	}
}

func TestSessions(t *testing.T) {
	archive := newTestArchive(t)
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if err := archive.RecordTurn(1, "budi", "user", "Pertanyaan pertama", base); err != nil {
		t.Fatal(err)
	}
	if err := archive.RecordTurn(1, "budi", "assistant", "Jawaban pertama", base.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	if err := archive.RecordTurn(2, "budi", "user", "Pertanyaan kedua", base.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	sessions, err := archive.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	// Most recently updated first
	if sessions[0].SessionID != 2 || sessions[1].SessionID != 1 {
		t.Errorf("order = %d, %d, want 2, 1", sessions[0].SessionID, sessions[1].SessionID)
	}
	if sessions[1].Title != "Pertanyaan pertama" {
		t.Errorf("Title = %q, want the first user message", sessions[1].Title)
	}
	if sessions[1].LastPreview == nil || *sessions[1].LastPreview != "Jawaban pertama" {
		t.Errorf("LastPreview = %v, want the last message", sessions[1].LastPreview)
	}
}

func TestSessions_GeneratedTitle(t *testing.T) {
	archive := newTestArchive(t)

	// First recorded turn is from the assistant, so no title seeds.
	if err := archive.RecordTurn(7, "budi", "assistant", "Jawaban", time.Now()); err != nil {
		t.Fatal(err)
	}
	sessions, err := archive.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].Title != "Konsultasi #7" {
		t.Errorf("sessions = %+v, want generated title", sessions)
	}
}

func TestSessions_TruncatesLongValues(t *testing.T) {
	archive := newTestArchive(t)
	long := strings.Repeat("a", 300)

	if err := archive.RecordTurn(1, "budi", "user", long, time.Now()); err != nil {
		t.Fatal(err)
	}
	sessions, err := archive.Sessions()
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions[0].Title) != 120 || !strings.HasSuffix(sessions[0].Title, "...") {
		t.Errorf("Title length = %d, want truncated to 120", len(sessions[0].Title))
	}
	if sessions[0].LastPreview == nil || len(*sessions[0].LastPreview) != 180 {
		t.Errorf("preview not truncated to 180")
	}
}

func TestSession_NotFound(t *testing.T) {
	archive := newTestArchive(t)
	_, err := archive.Session(99)
	if err == nil {
		t.Fatal("Session(99) should fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v", err)
	}
}
