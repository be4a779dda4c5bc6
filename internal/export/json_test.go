package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hukumai/hukumchat/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	exporter := &JSONExporter{}
	detail := internal.CreateTestDetail(9)

	var buf bytes.Buffer
	if err := exporter.Export(detail, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.ChatSessionDetail
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.SessionID != 9 || decoded.Username != "budi" {
		t.Errorf("decoded header = %d/%q", decoded.SessionID, decoded.Username)
	}
	if len(decoded.Messages) != 2 {
		t.Errorf("decoded %d messages, want 2", len(decoded.Messages))
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output should be pretty-printed")
	}
}

func TestJSONExporter_EmptyTranscript(t *testing.T) {
	exporter := &JSONExporter{}
	detail := internal.CreateTestDetailWithMessages(3, nil)

	var buf bytes.Buffer
	if err := exporter.Export(detail, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var decoded internal.ChatSessionDetail
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Messages) != 0 {
		t.Errorf("decoded %d messages, want 0", len(decoded.Messages))
	}
}
