package internal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/hukumai/hukumchat/testutil"
)

func TestAskStream(t *testing.T) {
	t.Run("chunks are assembled in order", func(t *testing.T) {
		mock := testutil.NewMockAPI(t)
		mock.RespondFunc(t, http.MethodPost, "/chat-stream", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			testutil.SSEEvent(w, "typing", "{}")
			testutil.SSEEvent(w, "chunk", "Dendanya maksimal ")
			testutil.SSEEvent(w, "chunk", "Rp500.000.")
			testutil.SSEEvent(w, "done", `{"session_id": 12, "sources": [{"id": "uu22-287", "judul": "Pasal 287"}]}`)
		})
		client := NewClient(mock.URL())

		var chunks []string
		result, err := client.AskStream(context.Background(), "q", "budi", nil, func(chunk string) {
			chunks = append(chunks, chunk)
		})
		if err != nil {
			t.Fatalf("AskStream() error = %v", err)
		}
		if result.AnswerText != "Dendanya maksimal Rp500.000." {
			t.Errorf("AnswerText = %q", result.AnswerText)
		}
		if strings.Join(chunks, "") != result.AnswerText {
			t.Errorf("chunks = %q do not assemble into the answer", chunks)
		}
		if result.SessionID == nil || *result.SessionID != 12 {
			t.Errorf("SessionID = %v, want 12", result.SessionID)
		}
		if len(result.Sources) != 1 || result.Sources[0].Title != "Pasal 287" {
			t.Errorf("Sources = %+v", result.Sources)
		}
	})

	t.Run("escaped newlines are restored", func(t *testing.T) {
		mock := testutil.NewMockAPI(t)
		mock.RespondFunc(t, http.MethodPost, "/chat-stream", func(w http.ResponseWriter, r *http.Request) {
			testutil.SSEEvent(w, "chunk", `Baris satu.\nBaris dua.`)
			testutil.SSEEvent(w, "done", `{"session_id": 1}`)
		})
		client := NewClient(mock.URL())

		result, err := client.AskStream(context.Background(), "q", "", nil, nil)
		if err != nil {
			t.Fatalf("AskStream() error = %v", err)
		}
		if result.AnswerText != "Baris satu.\nBaris dua." {
			t.Errorf("AnswerText = %q, want real newline", result.AnswerText)
		}
	})

	t.Run("stream with no chunks yields placeholder", func(t *testing.T) {
		mock := testutil.NewMockAPI(t)
		mock.RespondFunc(t, http.MethodPost, "/chat-stream", func(w http.ResponseWriter, r *http.Request) {
			testutil.SSEEvent(w, "typing", "{}")
			testutil.SSEEvent(w, "done", `{"session_id": 3}`)
		})
		client := NewClient(mock.URL())

		result, err := client.AskStream(context.Background(), "q", "", nil, nil)
		if err != nil {
			t.Fatalf("AskStream() error = %v", err)
		}
		if result.AnswerText != EmptyAnswerPlaceholder {
			t.Errorf("AnswerText = %q, want placeholder", result.AnswerText)
		}
		if result.SessionID == nil || *result.SessionID != 3 {
			t.Errorf("SessionID = %v, want 3", result.SessionID)
		}
	})

	t.Run("malformed done payload is ignored", func(t *testing.T) {
		mock := testutil.NewMockAPI(t)
		mock.RespondFunc(t, http.MethodPost, "/chat-stream", func(w http.ResponseWriter, r *http.Request) {
			testutil.SSEEvent(w, "chunk", "Jawaban.")
			testutil.SSEEvent(w, "done", `not json`)
		})
		client := NewClient(mock.URL())

		result, err := client.AskStream(context.Background(), "q", "", nil, nil)
		if err != nil {
			t.Fatalf("AskStream() error = %v", err)
		}
		if result.AnswerText != "Jawaban." {
			t.Errorf("AnswerText = %q", result.AnswerText)
		}
		if result.SessionID != nil {
			t.Errorf("SessionID = %v, want nil", result.SessionID)
		}
	})

	t.Run("non-200 maps to request failure", func(t *testing.T) {
		mock := testutil.NewMockAPI(t)
		mock.Respond(t, http.MethodPost, "/chat-stream", http.StatusTooManyRequests, map[string]any{
			"detail": "Terlalu banyak permintaan",
		})
		client := NewClient(mock.URL())

		_, err := client.AskStream(context.Background(), "q", "", nil, nil)
		var reqErr *RequestFailedError
		if !errors.As(err, &reqErr) {
			t.Fatalf("error = %v, want RequestFailedError", err)
		}
		if reqErr.StatusCode != 429 || reqErr.Message != "Terlalu banyak permintaan" {
			t.Errorf("got %d/%q", reqErr.StatusCode, reqErr.Message)
		}
	})

	t.Run("request body matches plain chat", func(t *testing.T) {
		mock := testutil.NewMockAPI(t)
		mock.RespondFunc(t, http.MethodPost, "/chat-stream", func(w http.ResponseWriter, r *http.Request) {
			testutil.SSEEvent(w, "chunk", "ok")
			testutil.SSEEvent(w, "done", "{}")
		})
		client := NewClient(mock.URL())

		id := 4
		if _, err := client.AskStream(context.Background(), "Pertanyaan", "budi", &id, nil); err != nil {
			t.Fatalf("AskStream() error = %v", err)
		}
		if mock.LastBody["question"] != "Pertanyaan" || mock.LastBody["session_id"] != float64(4) {
			t.Errorf("request body = %v", mock.LastBody)
		}
	})
}
