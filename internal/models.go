package internal

import (
	"fmt"
	"strings"
)

// Fallback key chains used by the decoders. The backend has renamed fields
// across revisions, so each logical field carries its candidate keys in
// priority order. `id` as a session identifier is a compatibility shim for
// older server payloads and stays last in its chain.
var (
	sessionIDKeys      = []string{"session_id", "id"}
	summaryTitleKeys   = []string{"title", "last_question"}
	summaryPreviewKeys = []string{"last_message_preview", "last_answer_preview", "last_message", "last_question"}
)

// SourceDoc is a reference document the server used to ground an answer.
type SourceDoc struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"judul" yaml:"judul"`
	Body  string  `json:"isi" yaml:"isi"`
	Score float64 `json:"score" yaml:"score"`
}

// ChatResponse is the decoded body of a successful /chat call.
type ChatResponse struct {
	Answer    string
	Sources   []SourceDoc
	SessionID *int
}

// ChatResult is the caller-facing outcome of one chat turn.
type ChatResult struct {
	AnswerText string      `json:"answer" yaml:"answer"`
	SessionID  *int        `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Sources    []SourceDoc `json:"sources" yaml:"sources"`
}

// ChatSessionSummary is one row of a user's consultation history.
type ChatSessionSummary struct {
	SessionID   int     `json:"session_id" yaml:"session_id"`
	Title       string  `json:"title" yaml:"title"`
	LastPreview *string `json:"last_message_preview,omitempty" yaml:"last_message_preview,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// ChatTurn is a single message within a session transcript.
type ChatTurn struct {
	Role      string `json:"role" yaml:"role"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// IsUser reports whether the turn was sent by the user.
func (t ChatTurn) IsUser() bool {
	return strings.EqualFold(t.Role, "user")
}

// ChatSessionDetail is a full session transcript.
type ChatSessionDetail struct {
	SessionID int        `json:"session_id" yaml:"session_id"`
	Username  string     `json:"username" yaml:"username"`
	Messages  []ChatTurn `json:"messages" yaml:"messages"`
}

// AuthUser is the account record returned by register and login.
type AuthUser struct {
	ID       int    `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	FullName string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

// LawArticle is one traffic-law article from the admin catalogue.
type LawArticle struct {
	ID          int      `json:"id" yaml:"id"`
	UU          string   `json:"uu" yaml:"uu"`
	Pasal       string   `json:"pasal" yaml:"pasal"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	LegalText   string   `json:"legal_text,omitempty" yaml:"legal_text,omitempty"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Status      string   `json:"status" yaml:"status"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// ServerStatus is the root endpoint's liveness payload.
type ServerStatus struct {
	Status  string
	Message string
}

// IndexStatus describes the server's retrieval index.
type IndexStatus struct {
	LastBuiltAt      string
	IndexedDocuments int
	EmbedModel       string
	GenModel         string
}

// DecodeSourceDoc decodes one source document. Missing or non-numeric
// scores become 0, ids are coerced to strings from any scalar.
func DecodeSourceDoc(obj map[string]any) SourceDoc {
	id, _ := ScalarString(obj["id"])
	title, _ := FirstString(obj, []string{"judul", "title"})
	body, ok := StringOf(obj["isi"])
	if !ok {
		body, _ = StringOf(obj["body"])
	}
	return SourceDoc{
		ID:    id,
		Title: title,
		Body:  body,
		Score: FieldFloat(obj, "score", 0),
	}
}

// DecodeChatResponse decodes a /chat body. The answer keeps whatever the
// server sent (including ""); substituting the placeholder is the client's
// job. A missing or mistyped sources field decodes as an empty list and
// non-object elements are skipped.
func DecodeChatResponse(obj map[string]any) ChatResponse {
	resp := ChatResponse{Sources: []SourceDoc{}}
	resp.Answer = FieldString(obj, "answer")
	if arr, ok := AsArray(obj["sources"]); ok {
		for _, el := range arr {
			if m, ok := AsObject(el); ok {
				resp.Sources = append(resp.Sources, DecodeSourceDoc(m))
			}
		}
	}
	if n, ok := FirstInt(obj, sessionIDKeys); ok {
		resp.SessionID = &n
	}
	return resp
}

// DecodeChatSessionSummary decodes one history row. The title falls back
// to the last question and finally to a generated label; the preview walks
// four candidate keys and treats empty strings as absent.
func DecodeChatSessionSummary(obj map[string]any) ChatSessionSummary {
	s := ChatSessionSummary{}
	s.SessionID, _ = FirstInt(obj, sessionIDKeys)
	if title, ok := FirstString(obj, summaryTitleKeys); ok {
		s.Title = title
	} else {
		s.Title = GeneratedSessionTitle(s.SessionID)
	}
	if preview, ok := FirstString(obj, summaryPreviewKeys); ok {
		s.LastPreview = &preview
	}
	s.CreatedAt = FieldString(obj, "created_at")
	return s
}

// GeneratedSessionTitle is the label used when the server sends no title.
func GeneratedSessionTitle(sessionID int) string {
	return fmt.Sprintf("Konsultasi #%d", sessionID)
}

// DecodeChatTurn decodes one transcript message. Role defaults to
// assistant, text falls back from `text` to `content`.
func DecodeChatTurn(obj map[string]any) ChatTurn {
	turn := ChatTurn{Role: "assistant"}
	if role := strings.TrimSpace(FieldString(obj, "role")); role != "" {
		turn.Role = role
	}
	if text, ok := StringOf(obj["text"]); ok && text != "" {
		turn.Text = text
	} else {
		turn.Text = FieldString(obj, "content")
	}
	turn.CreatedAt = FieldString(obj, "created_at")
	return turn
}

// DecodeChatSessionDetail decodes a full transcript. Elements of messages
// that are not objects are dropped; message order is preserved as received.
func DecodeChatSessionDetail(obj map[string]any) ChatSessionDetail {
	d := ChatSessionDetail{Messages: []ChatTurn{}}
	d.SessionID, _ = FirstInt(obj, sessionIDKeys)
	d.Username = FieldString(obj, "username")
	if arr, ok := AsArray(obj["messages"]); ok {
		for _, el := range arr {
			if m, ok := AsObject(el); ok {
				d.Messages = append(d.Messages, DecodeChatTurn(m))
			}
		}
	}
	return d
}

// DecodeAuthUser decodes an account record. The id tolerates numeric
// strings; is_active defaults to true.
func DecodeAuthUser(obj map[string]any) AuthUser {
	u := AuthUser{IsActive: true}
	u.ID, _ = FieldInt(obj, "id")
	u.Username = FieldString(obj, "username")
	u.Email = FieldString(obj, "email")
	u.FullName = FieldString(obj, "full_name")
	u.IsActive = FieldBool(obj, "is_active", true)
	return u
}

// DecodeLawArticle decodes one law article. Status defaults to "berlaku".
func DecodeLawArticle(obj map[string]any) LawArticle {
	a := LawArticle{Status: "berlaku"}
	a.ID, _ = FieldInt(obj, "id")
	a.UU = FieldString(obj, "uu")
	a.Pasal = FieldString(obj, "pasal")
	a.Title = FieldString(obj, "title")
	a.LegalText = FieldString(obj, "legal_text")
	a.Explanation = FieldString(obj, "explanation")
	if status := strings.TrimSpace(FieldString(obj, "status")); status != "" {
		a.Status = status
	}
	a.Keywords = StringList(obj, "keywords")
	return a
}

// DecodeServerStatus decodes the root endpoint payload.
func DecodeServerStatus(obj map[string]any) ServerStatus {
	return ServerStatus{
		Status:  FieldString(obj, "status"),
		Message: FieldString(obj, "message"),
	}
}

// DecodeIndexStatus decodes the admin index-status payload.
func DecodeIndexStatus(obj map[string]any) IndexStatus {
	st := IndexStatus{}
	st.LastBuiltAt = FieldString(obj, "last_built_at")
	st.IndexedDocuments, _ = FieldInt(obj, "indexed_documents")
	st.EmbedModel = FieldString(obj, "embed_model")
	st.GenModel = FieldString(obj, "gen_model")
	return st
}
