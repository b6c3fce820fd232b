package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kotae-ai/kotae/internal/config"
	"github.com/kotae-ai/kotae/internal/embedding"
	"github.com/kotae-ai/kotae/internal/knowledge"
	"github.com/kotae-ai/kotae/internal/mailer"
	"github.com/kotae-ai/kotae/internal/models"
	"github.com/kotae-ai/kotae/internal/retrieval"
	"github.com/kotae-ai/kotae/internal/storage"
)

const aboutContent = "I am a software engineer building retrieval chatbots."

func newTestService(t *testing.T, embedder embedding.Embedder) *retrieval.Service {
	t.Helper()
	base, err := knowledge.Build(context.Background(), embedding.NewMockEmbedder(32), []knowledge.Entry{
		{Category: "about", Content: aboutContent},
		{Category: "project_lawpal", Content: "LawPal is a legal chatbot."},
	})
	if err != nil {
		t.Fatal(err)
	}
	retriever, err := retrieval.NewRetriever(base)
	if err != nil {
		t.Fatal(err)
	}
	return retrieval.NewService(embedder, retriever, retrieval.NewComposer("Test Owner"), 3, 0.1, zap.NewNop())
}

func newTestServer(t *testing.T, embedder embedding.Embedder, mail mailer.Mailer) *Server {
	t.Helper()
	store, err := storage.NewSQLiteStorage(t.TempDir() + "/messages.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if mail == nil {
		mail = mailer.New(mailer.Config{}, zap.NewNop())
	}
	svc := newTestService(t, embedder)
	return NewServer(svc, store, mail, &config.ServerConfig{Host: "localhost", Port: 8080}, zap.NewNop())
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestHandleChat(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), nil)
	router := srv.Router()

	// asking with an entry's exact text embeds to the identical vector
	w := postJSON(t, router, "/api/chat", models.ChatRequest{Message: aboutContent})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var resp models.ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if len(resp.Sources) == 0 || resp.Sources[0] != "about" {
		t.Errorf("sources: got %v", resp.Sources)
	}
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), nil)
	router := srv.Router()

	for _, message := range []string{"", "   "} {
		w := postJSON(t, router, "/api/chat", models.ChatRequest{Message: message})
		if w.Code != http.StatusBadRequest {
			t.Errorf("message %q: got %d, want 400", message, w.Code)
		}
	}
}

func TestHandleChat_InvalidBody(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), nil)
	r := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", w.Code)
	}
}

// failEmbedder errors on every call, simulating a broken model at query time.
type failEmbedder struct{}

func (failEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("model exploded")
}
func (failEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("model exploded")
}
func (failEmbedder) Dimensions() int { return 32 }
func (failEmbedder) Close() error    { return nil }

func TestHandleChat_InternalErrorIsGraceful(t *testing.T) {
	srv := newTestServer(t, failEmbedder{}, nil)
	w := postJSON(t, srv.Router(), "/api/chat", models.ChatRequest{Message: "anything"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", w.Code)
	}
	var resp models.ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != troubleAnswer {
		t.Errorf("raw errors must not leak to callers: %q", resp.Message)
	}
}

func TestHandleContact(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), nil)
	router := srv.Router()

	w := postJSON(t, router, "/api/contact", models.ContactRequest{
		Name:    "  Jane Visitor  ",
		Email:   "jane@example.com",
		Message: "Love the LawPal project.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var resp models.ContactResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data == nil || resp.Data.ID == "" {
		t.Fatal("response should include the stored message with an ID")
	}
	if resp.Data.Name != "Jane Visitor" {
		t.Errorf("name should be trimmed: %q", resp.Data.Name)
	}

	// the message is listed afterwards
	r := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, r)
	if lw.Code != http.StatusOK {
		t.Fatalf("messages status: got %d", lw.Code)
	}
	var list models.MessagesResponse
	if err := json.NewDecoder(lw.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || list.Messages[0].Email != "jane@example.com" {
		t.Errorf("list: count=%d messages=%v", list.Count, list.Messages)
	}
}

func TestHandleContact_Validation(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), nil)
	router := srv.Router()

	tests := []models.ContactRequest{
		{Email: "jane@example.com", Message: "hi"},     // missing name
		{Name: "Jane", Message: "hi"},                  // missing email
		{Name: "Jane", Email: "jane@example.com"},      // missing message
		{Name: "Jane", Email: "not-an-email", Message: "hi"},
	}
	for _, req := range tests {
		w := postJSON(t, router, "/api/contact", req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("request %+v: got %d, want 400", req, w.Code)
		}
	}

	// nothing was stored
	r := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, r)
	var list models.MessagesResponse
	if err := json.NewDecoder(lw.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 0 {
		t.Errorf("invalid submissions must not be stored, count=%d", list.Count)
	}
}

// failMailer always errors; submissions must still succeed.
type failMailer struct{}

func (failMailer) SendContactNotification(*models.ContactMessage) error {
	return errors.New("smtp down")
}

func TestHandleContact_MailFailureIsNonFatal(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), failMailer{})
	w := postJSON(t, srv.Router(), "/api/contact", models.ContactRequest{
		Name: "Jane", Email: "jane@example.com", Message: "hello",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("mail failure must not fail the request: got %d", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, embedding.NewMockEmbedder(32), nil)
	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "healthy" {
		t.Errorf("status: got %q", out["status"])
	}
}
