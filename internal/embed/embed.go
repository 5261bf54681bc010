// Package embed defines the sentence-embedding collaborator used by the
// semantic suggestion source, plus a deterministic local provider.
//
// The semantic source only needs a vector per text and cosine similarity
// between vectors; any provider meeting that contract can be plugged in.
package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Provider computes a fixed-dimension embedding for a piece of text.
// Implementations may be remote and may fail; callers degrade to no
// contribution on error.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// Mismatched or zero-magnitude vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// HashingProvider is a pure, dependency-free embedding provider that hashes
// lowercased tokens into a fixed number of buckets (bag-of-words feature
// hashing). Identical texts always produce identical vectors, which is
// enough for threshold-based similarity matching in tests and offline use.
type HashingProvider struct {
	dims int
}

// DefaultDims is the vector width used when none is specified.
const DefaultDims = 128

// NewHashingProvider creates a hashing provider with the given vector width.
// Non-positive widths fall back to DefaultDims.
func NewHashingProvider(dims int) *HashingProvider {
	if dims <= 0 {
		dims = DefaultDims
	}
	return &HashingProvider{dims: dims}
}

// Embed implements Provider. It never fails and ignores ctx cancellation
// because the computation is local and bounded by the input length.
func (p *HashingProvider) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, p.dims)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%p.dims]++
	}
	return vec, nil
}
