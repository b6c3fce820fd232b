// Package knowledge holds the authored portfolio knowledge base: a small,
// fixed set of labeled text passages embedded once at startup.
package knowledge

import (
	"context"
	"fmt"

	"github.com/kotae-ai/kotae/internal/embedding"
)

// Entry is one labeled passage. Category is the stable source handle shown to
// callers; Content is the prose the answer is assembled from. The embedding is
// always derived from Content at build time, never hand-specified.
type Entry struct {
	Category  string
	Content   string
	Embedding []float32
}

// Base is the embedded knowledge base. It is built once per process and
// read-only afterwards, so concurrent reads need no locking.
type Base struct {
	entries    []Entry
	dimensions int
}

// Build embeds every entry and returns the base. Categories must be unique
// (duplicates would make source attribution ambiguous) and content non-empty.
// An embedding failure here is a startup failure for the whole service.
func Build(ctx context.Context, embedder embedding.Embedder, entries []Entry) (*Base, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("knowledge base has no entries")
	}

	seen := make(map[string]bool, len(entries))
	texts := make([]string, len(entries))
	for i, e := range entries {
		if e.Category == "" {
			return nil, fmt.Errorf("entry %d has an empty category", i)
		}
		if e.Content == "" {
			return nil, fmt.Errorf("entry %q has empty content", e.Category)
		}
		if seen[e.Category] {
			return nil, fmt.Errorf("duplicate category %q", e.Category)
		}
		seen[e.Category] = true
		texts[i] = e.Content
	}

	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed knowledge base: %w", err)
	}

	dims := len(vectors[0])
	built := make([]Entry, len(entries))
	for i, e := range entries {
		if len(vectors[i]) != dims {
			return nil, fmt.Errorf("entry %q embedding has %d dimensions, expected %d",
				e.Category, len(vectors[i]), dims)
		}
		built[i] = Entry{Category: e.Category, Content: e.Content, Embedding: vectors[i]}
	}

	return &Base{entries: built, dimensions: dims}, nil
}

// Entries returns the entries in insertion order.
func (b *Base) Entries() []Entry {
	return b.entries
}

// ByCategory returns the entry for category, if present.
func (b *Base) ByCategory(category string) (Entry, bool) {
	for _, e := range b.entries {
		if e.Category == category {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of entries.
func (b *Base) Len() int {
	return len(b.entries)
}

// Dimensions returns the embedding dimensionality shared by all entries.
func (b *Base) Dimensions() int {
	return b.dimensions
}
