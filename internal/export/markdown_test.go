package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hukumai/hukumchat/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	exporter := &MarkdownExporter{}
	detail := internal.CreateTestDetail(9)

	var buf bytes.Buffer
	if err := exporter.Export(detail, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "# Konsultasi #9") {
		t.Error("missing session header")
	}
	if !strings.Contains(out, "**User:** budi") {
		t.Error("missing username line")
	}
	if !strings.Contains(out, "## Percakapan") {
		t.Error("missing conversation heading")
	}
	if !strings.Contains(out, "**user:**") || !strings.Contains(out, "**assistant:**") {
		t.Error("missing role labels")
	}
	if !strings.Contains(out, "Apa sanksi menerobos lampu merah?") {
		t.Error("missing message content")
	}
}

func TestMarkdownExporter_EscapesOutsideCodeBlocks(t *testing.T) {
	exporter := &MarkdownExporter{}
	detail := internal.CreateTestDetailWithMessages(1, []internal.ChatTurn{
		{Role: "assistant", Text: "Ini **penting** sekali.\n```\nkode **mentah**\n```"},
	})

	var buf bytes.Buffer
	if err := exporter.Export(detail, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `\*\*penting\*\*`) {
		t.Error("bold markers outside code blocks should be escaped")
	}
	if !strings.Contains(out, "kode **mentah**") {
		t.Error("code block content should be preserved verbatim")
	}
}
