package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production API origin.
	DefaultBaseURL = "https://api.hukumlalulintas.id"

	// DefaultTimeout bounds every request issued by the client.
	DefaultTimeout = 20 * time.Second

	// EmptyAnswerPlaceholder replaces an answer that is empty after
	// trimming.
	EmptyAnswerPlaceholder = "empty answer from server"

	// Fallback confirmations when the server sends no message field.
	forgotPasswordFallback = "Permintaan reset password telah diproses."
	resetPasswordFallback  = "Password berhasil direset."
)

// Client talks to the hukum lalu lintas QA backend. Configuration is fixed
// at construction; operations keep no state on the client, so one instance
// can serve any number of concurrent calls. Threading the session id
// between chat turns is the caller's job.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the given base URL ("" selects
// DefaultBaseURL) with the default timeout.
func NewClient(baseURL string) *Client {
	return NewClientWith(baseURL, &http.Client{Timeout: DefaultTimeout})
}

// NewClientWith returns a client using the supplied HTTP transport. Tests
// inject short-timeout clients and httptest transports through here.
func NewClientWith(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call runs the shared pipeline: issue the request, decode the body
// (keeping the raw string when it is not JSON, so error extraction still
// works on HTML error pages), and map any non-200 status to a
// RequestFailedError. The decoded body is returned for 200 responses.
func (c *Client) call(ctx context.Context, method, path string, body map[string]any) (any, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, &ConnectionError{Err: err}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		decoded = string(raw)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestFailedError{
			StatusCode: resp.StatusCode,
			Message:    failureMessage(decoded, resp.StatusCode),
		}
	}
	return decoded, nil
}

// failureMessage extracts a human-readable message from an error body:
// a string `detail` field, else a string `message` field, else the raw
// body when it is a non-empty string, else a generic status line.
func failureMessage(decoded any, status int) string {
	if obj, ok := AsObject(decoded); ok {
		if detail := strings.TrimSpace(FieldString(obj, "detail")); detail != "" {
			return detail
		}
		if msg := strings.TrimSpace(FieldString(obj, "message")); msg != "" {
			return msg
		}
	}
	if s, ok := StringOf(decoded); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fmt.Sprintf("Request failed, status: %d", status)
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// requireObject shape-checks a 200 body that must be a JSON object.
func requireObject(decoded any, operation string) (map[string]any, error) {
	obj, ok := AsObject(decoded)
	if !ok {
		return nil, &MalformedResponseError{Operation: operation, Expected: "object"}
	}
	return obj, nil
}

// chatBody builds the /chat request body. Absent optionals are omitted
// entirely, not sent as null: the server starts a new session when
// session_id is missing and continues one when it is present.
func chatBody(question, username string, sessionID *int) map[string]any {
	body := map[string]any{"question": question}
	if u := strings.TrimSpace(username); u != "" {
		body["username"] = u
	}
	if sessionID != nil {
		body["session_id"] = *sessionID
	}
	return body
}

// Ask sends one chat turn. An answer that is empty after trimming comes
// back as EmptyAnswerPlaceholder; the session id in the result should be
// passed to the next Ask to stay in the same consultation.
func (c *Client) Ask(ctx context.Context, question, username string, sessionID *int) (*ChatResult, error) {
	decoded, err := c.call(ctx, http.MethodPost, "/chat", chatBody(question, username, sessionID))
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "chat")
	if err != nil {
		return nil, err
	}
	resp := DecodeChatResponse(obj)
	answer := resp.Answer
	if strings.TrimSpace(answer) == "" {
		answer = EmptyAnswerPlaceholder
	}
	return &ChatResult{
		AnswerText: answer,
		SessionID:  resp.SessionID,
		Sources:    resp.Sources,
	}, nil
}

// ChatHistory lists a user's consultation sessions, newest first as sent
// by the server. List elements that are not objects are skipped.
func (c *Client) ChatHistory(ctx context.Context, username string) ([]ChatSessionSummary, error) {
	decoded, err := c.call(ctx, http.MethodGet, "/chat-history/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}
	arr, ok := AsArray(decoded)
	if !ok {
		return nil, &MalformedResponseError{Operation: "chat-history", Expected: "array"}
	}
	summaries := make([]ChatSessionSummary, 0, len(arr))
	for _, el := range arr {
		if obj, ok := AsObject(el); ok {
			summaries = append(summaries, DecodeChatSessionSummary(obj))
		}
	}
	return summaries, nil
}

// SessionDetail fetches a full session transcript.
func (c *Client) SessionDetail(ctx context.Context, sessionID int) (*ChatSessionDetail, error) {
	decoded, err := c.call(ctx, http.MethodGet, fmt.Sprintf("/chat-sessions/%d", sessionID), nil)
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "chat-sessions")
	if err != nil {
		return nil, err
	}
	detail := DecodeChatSessionDetail(obj)
	return &detail, nil
}

// ForgotPassword requests a reset email. Returns the server message, or a
// fixed confirmation if the body carries none.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.simpleMessage(ctx, "/auth/forgot-password",
		map[string]any{"email": email}, forgotPasswordFallback)
}

// ResetPassword redeems a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return c.simpleMessage(ctx, "/auth/reset-password",
		map[string]any{"token": token, "new_password": newPassword}, resetPasswordFallback)
}

func (c *Client) simpleMessage(ctx context.Context, path string, body map[string]any, fallback string) (string, error) {
	decoded, err := c.call(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	if obj, ok := AsObject(decoded); ok {
		if msg := strings.TrimSpace(FieldString(obj, "message")); msg != "" {
			return msg, nil
		}
	}
	return fallback, nil
}

// Register creates an account. The full name is optional and omitted from
// the request when blank.
func (c *Client) Register(ctx context.Context, username, email, password, fullName string) (*AuthUser, error) {
	body := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	}
	if name := strings.TrimSpace(fullName); name != "" {
		body["full_name"] = name
	}
	decoded, err := c.call(ctx, http.MethodPost, "/auth/register", body)
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "register")
	if err != nil {
		return nil, err
	}
	user := DecodeAuthUser(obj)
	return &user, nil
}

// Login authenticates by username or email. The success body must carry a
// nested `user` object; anything else is malformed.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthUser, error) {
	decoded, err := c.call(ctx, http.MethodPost, "/auth/login", map[string]any{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "login")
	if err != nil {
		return nil, err
	}
	userObj, ok := AsObject(obj["user"])
	if !ok {
		return nil, &MalformedResponseError{Operation: "login", Expected: "user object"}
	}
	user := DecodeAuthUser(userObj)
	return &user, nil
}

// Ping checks server liveness via the root endpoint.
func (c *Client) Ping(ctx context.Context) (*ServerStatus, error) {
	decoded, err := c.call(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "ping")
	if err != nil {
		return nil, err
	}
	status := DecodeServerStatus(obj)
	return &status, nil
}

// SendFeedback forwards free-form feedback fields to the server and
// returns its acknowledgement message.
func (c *Client) SendFeedback(ctx context.Context, fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	return c.simpleMessage(ctx, "/feedback", fields, "Feedback diterima.")
}

// ListArticles fetches up to limit law articles (server default when
// limit <= 0).
func (c *Client) ListArticles(ctx context.Context, limit int) ([]LawArticle, error) {
	path := "/articles"
	if limit > 0 {
		path = fmt.Sprintf("/articles?limit=%d", limit)
	}
	decoded, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	arr, ok := AsArray(decoded)
	if !ok {
		return nil, &MalformedResponseError{Operation: "articles", Expected: "array"}
	}
	articles := make([]LawArticle, 0, len(arr))
	for _, el := range arr {
		if obj, ok := AsObject(el); ok {
			articles = append(articles, DecodeLawArticle(obj))
		}
	}
	return articles, nil
}

// GetArticle fetches one law article by id.
func (c *Client) GetArticle(ctx context.Context, id int) (*LawArticle, error) {
	decoded, err := c.call(ctx, http.MethodGet, fmt.Sprintf("/articles/%d", id), nil)
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "articles")
	if err != nil {
		return nil, err
	}
	article := DecodeLawArticle(obj)
	return &article, nil
}

// CreateArticle adds a law article to the catalogue.
func (c *Client) CreateArticle(ctx context.Context, article LawArticle) (*LawArticle, error) {
	decoded, err := c.call(ctx, http.MethodPost, "/articles", articleBody(article, true))
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "articles")
	if err != nil {
		return nil, err
	}
	created := DecodeLawArticle(obj)
	return &created, nil
}

// UpdateArticle patches an existing article. Only non-blank fields are
// sent, so untouched fields keep their server-side values.
func (c *Client) UpdateArticle(ctx context.Context, id int, article LawArticle) (*LawArticle, error) {
	decoded, err := c.call(ctx, http.MethodPut, fmt.Sprintf("/articles/%d", id), articleBody(article, false))
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "articles")
	if err != nil {
		return nil, err
	}
	updated := DecodeLawArticle(obj)
	return &updated, nil
}

// DeleteArticle removes an article and returns the server's confirmation.
func (c *Client) DeleteArticle(ctx context.Context, id int) (string, error) {
	decoded, err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil)
	if err != nil {
		return "", err
	}
	if obj, ok := AsObject(decoded); ok {
		if detail := strings.TrimSpace(FieldString(obj, "detail")); detail != "" {
			return detail, nil
		}
	}
	return "Pasal dihapus.", nil
}

func articleBody(a LawArticle, includeStatus bool) map[string]any {
	body := map[string]any{}
	if a.UU != "" {
		body["uu"] = a.UU
	}
	if a.Pasal != "" {
		body["pasal"] = a.Pasal
	}
	if a.Title != "" {
		body["title"] = a.Title
	}
	if a.LegalText != "" {
		body["legal_text"] = a.LegalText
	}
	if a.Explanation != "" {
		body["explanation"] = a.Explanation
	}
	if a.Status != "" {
		body["status"] = a.Status
	} else if includeStatus {
		body["status"] = "berlaku"
	}
	if len(a.Keywords) > 0 {
		body["keywords"] = a.Keywords
	}
	return body
}

// RebuildIndex asks the server to rebuild its retrieval index and returns
// the report message.
func (c *Client) RebuildIndex(ctx context.Context) (string, error) {
	decoded, err := c.call(ctx, http.MethodPost, "/admin/rebuild-index", map[string]any{})
	if err != nil {
		return "", err
	}
	if obj, ok := AsObject(decoded); ok {
		if detail := strings.TrimSpace(FieldString(obj, "detail")); detail != "" {
			return detail, nil
		}
	}
	return "Index dibangun ulang.", nil
}

// GetIndexStatus reports the state of the server's retrieval index.
func (c *Client) GetIndexStatus(ctx context.Context) (*IndexStatus, error) {
	decoded, err := c.call(ctx, http.MethodGet, "/admin/index-status", nil)
	if err != nil {
		return nil, err
	}
	obj, err := requireObject(decoded, "index-status")
	if err != nil {
		return nil, err
	}
	status := DecodeIndexStatus(obj)
	return &status, nil
}
