package index

import (
	"context"
	"sort"
	"sync"

	"kiosk-assistant-be/pkg/store"
)

// MemoryIndex is a linear scan over documents kept in insertion order.
type MemoryIndex struct {
	mu   sync.RWMutex
	docs []store.Document
}

var _ DocumentIndex = (*MemoryIndex)(nil)

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

func (m *MemoryIndex) Add(_ context.Context, docs ...store.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *MemoryIndex) Search(_ context.Context, query []float32, topK int) ([]store.ScoredDocument, error) {
	m.mu.RLock()
	scored := make([]store.ScoredDocument, len(m.docs))
	for i, doc := range m.docs {
		scored[i] = store.ScoredDocument{Document: doc, Score: CosineSimilarity(query, doc.Embedding)}
	}
	m.mu.RUnlock()

	// stable: ties stay in insertion order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK >= 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (m *MemoryIndex) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs), nil
}
