// Package embedding turns text into fixed-length vectors for semantic retrieval.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations must be
// deterministic: the same text always yields the same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}
