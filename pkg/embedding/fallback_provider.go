package embedding

import (
	"context"
	"fmt"

	"kiosk-assistant-be/internal/pkg/logger"
)

// FallbackProvider tries the primary provider and switches to the hash embedding on any error.
// Generate never fails.
type FallbackProvider struct {
	primary    EmbeddingProvider
	fallback   *HashProvider
	logger     logger.ILogger
	onFallback func(err error)
}

var _ EmbeddingProvider = (*FallbackProvider)(nil)

// NewFallbackProvider wraps primary. A nil primary always uses the hash embedding.
// onFallback may be nil.
func NewFallbackProvider(primary EmbeddingProvider, dimension int, log logger.ILogger, onFallback func(err error)) *FallbackProvider {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &FallbackProvider{
		primary:    primary,
		fallback:   NewHashProvider(dimension),
		logger:     log,
		onFallback: onFallback,
	}
}

func (p *FallbackProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if p.primary == nil {
		return p.fallback.Generate(ctx, text)
	}

	vec, err := p.primary.Generate(ctx, text)
	if err == nil && len(vec) == p.fallback.Dimension {
		return vec, nil
	}
	if err == nil {
		err = fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vec), p.fallback.Dimension)
	}

	p.logger.Warn("EMBEDDING", "Embedding gateway failed, using hash fallback", map[string]interface{}{
		"error": err.Error(),
	})
	if p.onFallback != nil {
		p.onFallback(err)
	}
	return p.fallback.Generate(ctx, text)
}
