package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hukumai/hukumchat/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	exporter := &JSONLExporter{}
	detail := internal.CreateTestDetail(9)

	var buf bytes.Buffer
	if err := exporter.Export(detail, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []map[string]any
	for scanner.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, obj)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want one per message", len(lines))
	}
	if lines[0]["role"] != "user" || lines[1]["role"] != "assistant" {
		t.Errorf("roles = %v, %v", lines[0]["role"], lines[1]["role"])
	}
	if lines[0]["text"] != "Apa sanksi menerobos lampu merah?" {
		t.Errorf("text = %v", lines[0]["text"])
	}
	if _, ok := lines[0]["created_at"]; !ok {
		t.Error("created_at should be present when set")
	}
}

func TestJSONLExporter_OmitsEmptyTimestamp(t *testing.T) {
	exporter := &JSONLExporter{}
	detail := internal.CreateTestDetailWithMessages(1, []internal.ChatTurn{
		{Role: "user", Text: "Halo"},
	})

	var buf bytes.Buffer
	if err := exporter.Export(detail, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(buf.Bytes(), &obj); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if _, ok := obj["created_at"]; ok {
		t.Error("created_at should be omitted when empty")
	}
}
