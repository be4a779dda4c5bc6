package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/hukumai/hukumchat/internal"
	"github.com/hukumai/hukumchat/testutil"
)

func TestExportCommand(t *testing.T) {
	mock := testutil.NewMockAPI(t)
	mock.Respond(t, http.MethodGet, "/chat-sessions/9", http.StatusOK, map[string]any{
		"session_id": 9,
		"username":   "budi",
		"messages": []any{
			map[string]any{"role": "user", "text": "Pertanyaan"},
			map[string]any{"role": "assistant", "text": "Jawaban"},
		},
	})
	t.Setenv("HUKUMCHAT_HOME", t.TempDir())

	outPath := filepath.Join(t.TempDir(), "transkrip.json")
	rootCmd.SetArgs([]string{"export", "9", "--format", "json", "--output", outPath, "--server", mock.URL()})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	var detail internal.ChatSessionDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if detail.SessionID != 9 || len(detail.Messages) != 2 {
		t.Errorf("exported detail = %+v", detail)
	}
}

func TestExportCommand_InvalidFormat(t *testing.T) {
	t.Setenv("HUKUMCHAT_HOME", t.TempDir())
	rootCmd.SetArgs([]string{"export", "9", "--format", "csv"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestExportCommand_InvalidSessionID(t *testing.T) {
	t.Setenv("HUKUMCHAT_HOME", t.TempDir())
	rootCmd.SetArgs([]string{"export", "abc", "--format", "json"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("non-numeric session ID should fail")
	}
}
