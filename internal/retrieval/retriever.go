// Package retrieval answers free-text questions by scoring them against the
// embedded knowledge base and composing a reply from the best matches.
package retrieval

import (
	"context"
	"fmt"

	"github.com/kotae-ai/kotae/internal/knowledge"
	"github.com/kotae-ai/kotae/internal/vector"
)

// Default selection policy. Both are caller-overridable via configuration.
const (
	DefaultTopK      = 3
	DefaultThreshold = 0.1
)

// Match pairs a knowledge entry with its similarity score for one query.
type Match struct {
	Entry knowledge.Entry
	Score float64
}

// Retriever scores query vectors against every knowledge base entry.
type Retriever struct {
	base  *knowledge.Base
	index *vector.MemoryIndex
}

// NewRetriever builds the vector index over the knowledge base. Entry
// categories are used as index IDs; the base guarantees they are unique.
func NewRetriever(base *knowledge.Base) (*Retriever, error) {
	index, err := vector.NewMemoryIndex(base.Dimensions())
	if err != nil {
		return nil, err
	}
	entries := base.Entries()
	ids := make([]string, len(entries))
	vectors := make([][]float32, len(entries))
	for i, e := range entries {
		ids[i] = e.Category
		vectors[i] = e.Embedding
	}
	if err := index.Add(context.Background(), ids, vectors); err != nil {
		return nil, fmt.Errorf("failed to index knowledge base: %w", err)
	}
	return &Retriever{base: base, index: index}, nil
}

// Search returns up to topK entries whose cosine similarity to queryVec is at
// least threshold, best first. An empty result means no relevant content was
// found; it is not an error. A query vector of the wrong dimensionality is.
func (r *Retriever) Search(ctx context.Context, queryVec []float32, topK int, threshold float64) ([]Match, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	results, err := r.index.Search(ctx, queryVec, topK, threshold)
	if err != nil {
		return nil, err
	}
	matches := make([]Match, 0, len(results))
	for _, res := range results {
		entry, ok := r.base.ByCategory(res.ID)
		if !ok {
			return nil, fmt.Errorf("index returned unknown category %q", res.ID)
		}
		matches = append(matches, Match{Entry: entry, Score: res.Score})
	}
	return matches, nil
}
