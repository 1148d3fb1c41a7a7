package search

import (
	"context"
	"fmt"
	"time"

	"kiosk-assistant-be/pkg/embedding"
	"kiosk-assistant-be/pkg/rag/index"
	"kiosk-assistant-be/pkg/store"
)

// Retriever embeds a query and ranks the index against it.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	index             index.DocumentIndex
	observe           func(time.Duration)
}

type Option func(*Retriever)

// WithLatencyObserver reports the wall time of every Search.
func WithLatencyObserver(observe func(time.Duration)) Option {
	return func(r *Retriever) {
		r.observe = observe
	}
}

func NewRetriever(embeddingProvider embedding.EmbeddingProvider, idx index.DocumentIndex, opts ...Option) *Retriever {
	r := &Retriever{
		embeddingProvider: embeddingProvider,
		index:             idx,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search returns at most topK documents, most similar first. An empty index yields an empty slice.
func (r *Retriever) Search(ctx context.Context, query string, topK int) ([]store.ScoredDocument, error) {
	if r.observe != nil {
		start := time.Now()
		defer func() { r.observe(time.Since(start)) }()
	}

	if topK <= 0 {
		return []store.ScoredDocument{}, nil
	}
	if n, err := r.index.Count(ctx); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	} else if n == 0 {
		return []store.ScoredDocument{}, nil
	}

	vec, err := r.embeddingProvider.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	results, err := r.index.Search(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return results, nil
}
