// Package vector provides brute-force cosine similarity search over a small,
// fixed set of vectors. At tens of entries an O(N*D) scan per query is correct
// and fast; an index structure would only be worth revisiting at thousands of
// entries.
package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Result is a single similarity hit.
type Result struct {
	ID    string
	Score float64
}

// MemoryIndex holds vectors in memory and scans all of them on every search.
// Reads are safe for concurrent use; Add is only expected during construction.
type MemoryIndex struct {
	dimensions int
	ids        []string
	vectors    [][]float32
	norms      []float64
	mu         sync.RWMutex
}

// NewMemoryIndex creates an index for vectors of the given dimensionality.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{dimensions: dimensions}, nil
}

// Add appends vectors with the given IDs, preserving insertion order.
func (m *MemoryIndex) Add(ctx context.Context, ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("ids and vectors length mismatch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, id := range ids {
		if len(vectors[i]) != m.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(vectors[i]), m.dimensions)
		}
		vec := make([]float32, m.dimensions)
		copy(vec, vectors[i])
		m.ids = append(m.ids, id)
		m.vectors = append(m.vectors, vec)
		m.norms = append(m.norms, L2Norm(vec))
	}
	return nil
}

// Search scores query against every stored vector by cosine similarity,
// drops scores below threshold, and returns at most k results ordered by
// descending score. Ties keep insertion order. An empty result is not an
// error; it means nothing was similar enough.
func (m *MemoryIndex) Search(ctx context.Context, query []float32, k int, threshold float64) ([]Result, error) {
	if len(query) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), m.dimensions)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if k <= 0 || len(m.ids) == 0 {
		return nil, nil
	}

	queryNorm := L2Norm(query)
	matches := make([]Result, 0, len(m.ids))
	for i, vec := range m.vectors {
		score := cosine(query, queryNorm, vec, m.norms[i])
		if score < threshold {
			continue
		}
		matches = append(matches, Result{ID: m.ids[i], Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// Size returns the number of stored vectors.
func (m *MemoryIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.ids)
}

// Dimensions returns the vector dimensionality the index accepts.
func (m *MemoryIndex) Dimensions() int {
	return m.dimensions
}
