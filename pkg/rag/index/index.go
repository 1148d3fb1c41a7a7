// Package index stores knowledge chunks with their embeddings and ranks them against a query vector.
package index

import (
	"context"
	"math"

	"kiosk-assistant-be/pkg/store"
)

// DocumentIndex is the contract shared by the in-memory scan and the pgvector store.
// Search returns results by descending similarity; equal scores keep ingestion order.
type DocumentIndex interface {
	Add(ctx context.Context, docs ...store.Document) error
	Search(ctx context.Context, query []float32, topK int) ([]store.ScoredDocument, error)
	Count(ctx context.Context) (int, error)
}

// CosineSimilarity is dot(a,b)/(|a|*|b|). Mismatched lengths or a zero magnitude score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		ai, bi := float64(a[i]), float64(b[i])
		dotProduct += ai * bi
		normA += ai * ai
		normB += bi * bi
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
