package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/hukumai/hukumchat/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(detail *internal.ChatSessionDetail, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Konsultasi #%d\n\n", detail.SessionID)

	if detail.Username != "" {
		_, _ = fmt.Fprintf(w, "**User:** %s  \n", detail.Username)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(detail.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Percakapan\n\n")

	// Messages
	for i, turn := range detail.Messages {
		timestamp := ""
		if turn.CreatedAt != "" {
			timestamp = fmt.Sprintf(" (%s)", turn.CreatedAt)
		}

		content := escapeMarkdown(turn.Text)

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", turn.Role, timestamp, content)

		// Add horizontal rule after each message (except the last one)
		if i < len(detail.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
