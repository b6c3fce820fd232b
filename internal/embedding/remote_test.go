package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRemote(t *testing.T, handler http.HandlerFunc, dims int) *RemoteEmbedder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("TEST_EMBED_KEY", "test-key")
	e, err := NewRemoteEmbedder(RemoteConfig{
		BaseURL:    srv.URL,
		APIKeyEnv:  "TEST_EMBED_KEY",
		Model:      "test-model",
		Dimensions: dims,
		Timeout:    2 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRemoteEmbedder_Embed(t *testing.T) {
	e := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{3, 4}}},
		})
	}, 2)

	vec, err := e.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	// 3-4-5 triangle, normalized
	if vec[0] != 0.6 || vec[1] != 0.8 {
		t.Errorf("got %v", vec)
	}
}

func TestRemoteEmbedder_DimensionMismatch(t *testing.T) {
	e := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1, 2, 3}}},
		})
	}, 2)

	if _, err := e.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestRemoteEmbedder_CachesResult(t *testing.T) {
	calls := 0
	e := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1, 0}}},
		})
	}, 2)

	ctx := context.Background()
	if _, err := e.Embed(ctx, "same text"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Embed(ctx, "same text"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}

func TestRemoteEmbedder_ClientError(t *testing.T) {
	e := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}, 0)

	if _, err := e.Embed(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on 4xx response")
	}
}

func TestNewRemoteEmbedder_MissingKey(t *testing.T) {
	t.Setenv("TEST_EMBED_KEY_UNSET", "")
	if _, err := NewRemoteEmbedder(RemoteConfig{APIKeyEnv: "TEST_EMBED_KEY_UNSET"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
