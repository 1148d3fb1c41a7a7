package embedding

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode/utf16"
)

var nonWordPattern = regexp.MustCompile(`\W+`)

// HashProvider is the deterministic bag-of-words embedding used when no model is reachable.
type HashProvider struct {
	Dimension int
}

var _ EmbeddingProvider = (*HashProvider)(nil)

func NewHashProvider(dimension int) *HashProvider {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &HashProvider{Dimension: dimension}
}

func (p *HashProvider) Generate(_ context.Context, text string) ([]float32, error) {
	return HashEmbedding(text, p.Dimension), nil
}

// HashEmbedding lower-cases text, splits it on non-word characters and counts each token
// into slot abs(hash) mod dimension, then L2-normalizes. A zero vector keeps norm 1.
func HashEmbedding(text string, dimension int) []float32 {
	counts := make([]float64, dimension)
	for _, token := range nonWordPattern.Split(strings.ToLower(text), -1) {
		if token == "" {
			continue
		}
		counts[tokenSlot(token, dimension)]++
	}

	var sum float64
	for _, v := range counts {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		norm = 1
	}

	vec := make([]float32, dimension)
	for i, v := range counts {
		vec[i] = float32(v / norm)
	}
	return vec
}

// tokenSlot hashes UTF-16 code units with 32-bit wrap-around: hash = hash*31 + unit.
func tokenSlot(token string, dimension int) int {
	var hash int32
	for _, unit := range utf16.Encode([]rune(token)) {
		hash = hash*31 + int32(unit)
	}
	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return int(abs % int64(dimension))
}
