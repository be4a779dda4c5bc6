package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hukumai/hukumchat/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(detail *internal.ChatSessionDetail, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, turn := range detail.Messages {
		obj := map[string]interface{}{
			"role": turn.Role,
			"text": turn.Text,
		}

		if turn.CreatedAt != "" {
			obj["created_at"] = turn.CreatedAt
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
