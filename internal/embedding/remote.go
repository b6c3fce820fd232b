package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kotae-ai/kotae/pkg/utils"
)

// RemoteEmbedder calls an OpenAI-compatible /embeddings endpoint. It is the
// alternative to the local ONNX model for deployments without onnxruntime.
type RemoteEmbedder struct {
	baseURL    string
	apiKey     string
	model      string
	client     *http.Client
	maxRetries int
	cache      *Cache

	mu         sync.Mutex
	dimensions int
}

// RemoteConfig configures the remote embeddings client.
type RemoteConfig struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	// Dimensions pins the expected vector size; 0 means accept whatever the
	// first response returns.
	Dimensions int
	Timeout    time.Duration
	CacheSize  int
}

// NewRemoteEmbedder creates the client. The API key is read from the
// environment variable named by APIKeyEnv; a missing key is a startup error.
func NewRemoteEmbedder(cfg RemoteConfig) (*RemoteEmbedder, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1000
	}
	return &RemoteEmbedder{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: 5,
		cache:      NewCache(cfg.CacheSize),
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed returns the L2-normalized embedding for text.
func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}

	vec, err := e.fetch(ctx, text)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.dimensions == 0 {
		e.dimensions = len(vec)
	}
	expected := e.dimensions
	e.mu.Unlock()
	if len(vec) != expected {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, expected %d", len(vec), expected)
	}

	utils.NormalizeL2(vec)
	e.cache.Set(text, vec)
	return vec, nil
}

func (e *RemoteEmbedder) fetch(ctx context.Context, text string) ([]float32, error) {
	type reqBody struct {
		Input string `json:"input"`
		Model string `json:"model"`
	}
	url := e.baseURL + "/embeddings"

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay(attempt - 1)):
			}
		}

		data, err := json.Marshal(reqBody{Input: text, Model: e.model})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+e.apiKey)

		resp, err := e.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("embeddings request failed: %s", resp.Status)
			continue
		}
		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		var out struct {
			Data []struct {
				Embedding []float32 `json:"embedding"`
			} `json:"data"`
		}
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
		}
		if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
			return nil, fmt.Errorf("no embedding returned")
		}
		return out.Data[0].Embedding, nil
	}
	return nil, lastErr
}

// EmbedBatch embeds each text in order.
func (e *RemoteEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding dimensionality (0 until the first embed
// when not pinned by config).
func (e *RemoteEmbedder) Dimensions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dimensions
}

// Close is a no-op for the remote client.
func (e *RemoteEmbedder) Close() error { return nil }

// retryDelay is exponential backoff capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
