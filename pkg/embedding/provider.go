package embedding

import "context"

// DefaultDimension is the vector length stored by the document index
const DefaultDimension = 1536

// EmbeddingProvider turns text into a fixed-length vector
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
