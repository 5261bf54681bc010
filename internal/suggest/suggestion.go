// Package suggest produces and ranks query suggestions for partially typed
// transcript searches. Four independent sources feed a ranker that merges,
// deduplicates, and bounds the result.
package suggest

import (
	"context"
	"strings"
	"time"
)

// MinPrefixLength is the shortest partial query worth suggesting for.
// Callers short-circuit below this without invoking any source.
const MinPrefixLength = 2

// Category classifies what a suggestion refers to.
type Category int

const (
	CategorySpeaker Category = iota
	CategoryTopic
	CategoryHistorical
	CategoryTrending
	CategorySemantic
	CategoryDate
	CategorySource
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySpeaker:
		return "speaker"
	case CategoryTopic:
		return "topic"
	case CategoryHistorical:
		return "historical"
	case CategoryTrending:
		return "trending"
	case CategorySemantic:
		return "semantic"
	case CategoryDate:
		return "date"
	case CategorySource:
		return "source"
	default:
		return "unknown"
	}
}

// Signal identifies which source produced a suggestion.
type Signal int

const (
	SignalHistorical Signal = iota
	SignalTrending
	SignalSemantic
	SignalPersonalized
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalHistorical:
		return "historical"
	case SignalTrending:
		return "trending"
	case SignalSemantic:
		return "semantic"
	case SignalPersonalized:
		return "personalized"
	default:
		return "unknown"
	}
}

// Priority returns the ranking priority of a signal. Higher wins before
// confidence is consulted: a low-confidence personalized suggestion
// outranks a high-confidence historical one. This personalization-first
// policy is deliberate.
func (s Signal) Priority() int {
	switch s {
	case SignalPersonalized:
		return 4
	case SignalTrending:
		return 3
	case SignalSemantic:
		return 2
	case SignalHistorical:
		return 1
	default:
		return 0
	}
}

// Metadata carries optional per-suggestion enrichment.
type Metadata struct {
	EstimatedResults int
	LastUsed         time.Time
	Popularity       float64
	Similarity       float64
}

// Suggestion is a candidate completion or refinement for a partial query.
// Identity is the (Text, Category) pair; display deduplication is by
// case-insensitive text alone.
type Suggestion struct {
	Text         string
	Category     Category
	Confidence   float64
	PreviewCount int
	Signal       Signal
	Metadata     Metadata
}

// Context carries per-session signals into the sources.
type Context struct {
	// Interests is the caller's stored interest list, used by the
	// personalized source.
	Interests []string
}

// Source produces candidate suggestions for a partial query from one
// signal. Implementations never fail: no candidates means an empty slice.
type Source interface {
	Signal() Signal
	Suggest(ctx context.Context, partial string, sctx Context) []Suggestion
}

// matchBidirectional reports whether candidate and partial match in either
// containment direction, case-insensitively.
func matchBidirectional(candidate, partial string) bool {
	c := strings.ToLower(candidate)
	p := strings.ToLower(partial)
	if c == "" || p == "" {
		return false
	}
	return strings.Contains(c, p) || strings.Contains(p, c)
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
