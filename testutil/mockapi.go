package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockAPI is an httptest-backed stand-in for the QA backend. Tests register
// canned responses per method+path and can inspect the last request body a
// handler received.
type MockAPI struct {
	Server *httptest.Server

	mux       *http.ServeMux
	LastBody  map[string]any
	LastPath  string
	LastQuery string
}

// NewMockAPI starts a mock backend. The server is shut down when the test
// finishes.
func NewMockAPI(t *testing.T) *MockAPI {
	t.Helper()
	m := &MockAPI{mux: http.NewServeMux()}
	m.Server = httptest.NewServer(m.mux)
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the mock server's base URL.
func (m *MockAPI) URL() string {
	return m.Server.URL
}

// Respond registers a canned response for method+path. The body may be any
// JSON-marshalable value, or a raw string sent verbatim (for non-JSON
// bodies like HTML error pages).
func (m *MockAPI) Respond(t *testing.T, method, path string, status int, body any) {
	t.Helper()
	m.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		m.captureRequest(r)
		writeBody(w, status, body)
	})
}

// RespondFunc registers a handler for method+path, for tests that need to
// vary the response per request.
func (m *MockAPI) RespondFunc(t *testing.T, method, path string, fn http.HandlerFunc) {
	t.Helper()
	m.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		m.captureRequest(r)
		fn(w, r)
	})
}

func (m *MockAPI) captureRequest(r *http.Request) {
	m.LastPath = r.URL.Path
	m.LastQuery = r.URL.RawQuery
	m.LastBody = nil
	if r.Body == nil {
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		return
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err == nil {
		m.LastBody = body
	}
}

func writeBody(w http.ResponseWriter, status int, body any) {
	if raw, ok := body.(string); ok {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(raw))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// SSEEvent writes one server-sent event to w.
func SSEEvent(w io.Writer, event, data string) {
	_, _ = io.WriteString(w, "event: "+event+"\ndata: "+data+"\n\n")
}
