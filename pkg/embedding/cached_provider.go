package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedProvider memoizes vectors by exact text. Errors are not cached.
type CachedProvider struct {
	next  EmbeddingProvider
	cache *lru.Cache[string, []float32]
}

var _ EmbeddingProvider = (*CachedProvider)(nil)

func NewCachedProvider(next EmbeddingProvider, size int) (*CachedProvider, error) {
	if size <= 0 {
		size = 512
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, err
	}
	return &CachedProvider{next: next, cache: cache}, nil
}

func (p *CachedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := p.cache.Get(text); ok {
		return vec, nil
	}
	vec, err := p.next.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	p.cache.Add(text, vec)
	return vec, nil
}

func (p *CachedProvider) Len() int {
	return p.cache.Len()
}
