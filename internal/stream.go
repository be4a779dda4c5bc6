package internal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// AskStream sends one chat turn over the server's event-stream endpoint.
// The server emits `typing`, then `chunk` events carrying answer fragments
// (newlines escaped as `\n`), and finally a `done` event whose data is a
// JSON object with the session id and sources. Each decoded fragment is
// handed to onChunk as it arrives; the assembled result is returned when
// the stream ends.
func (c *Client) AskStream(ctx context.Context, question, username string, sessionID *int, onChunk func(string)) (*ChatResult, error) {
	buf, err := json.Marshal(chatBody(question, username, sessionID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat-stream", bytes.NewReader(buf))
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			decoded = string(raw)
		}
		return nil, &RequestFailedError{
			StatusCode: resp.StatusCode,
			Message:    failureMessage(decoded, resp.StatusCode),
		}
	}

	var answer strings.Builder
	result := &ChatResult{Sources: []SourceDoc{}}

	event := ""
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimPrefix(line, "data:")
			data = strings.TrimPrefix(data, " ")
			switch event {
			case "chunk":
				fragment := strings.ReplaceAll(data, `\n`, "\n")
				answer.WriteString(fragment)
				if onChunk != nil {
					onChunk(fragment)
				}
			case "done":
				var payload any
				if err := json.Unmarshal([]byte(data), &payload); err == nil {
					if obj, ok := AsObject(payload); ok {
						applyStreamDone(result, obj)
					}
				}
			}
		case line == "":
			// blank line terminates an event
		}
	}
	if err := scanner.Err(); err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &ConnectionError{Err: err}
	}

	result.AnswerText = answer.String()
	if strings.TrimSpace(result.AnswerText) == "" {
		result.AnswerText = EmptyAnswerPlaceholder
	}
	return result, nil
}

// applyStreamDone folds the final `done` payload into the result with the
// same tolerance rules as the plain chat decoder.
func applyStreamDone(result *ChatResult, obj map[string]any) {
	if n, ok := FirstInt(obj, sessionIDKeys); ok {
		result.SessionID = &n
	}
	if arr, ok := AsArray(obj["sources"]); ok {
		for _, el := range arr {
			if m, ok := AsObject(el); ok {
				result.Sources = append(result.Sources, DecodeSourceDoc(m))
			}
		}
	}
}
