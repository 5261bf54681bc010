package suggest

import (
	"errors"
	"sort"
	"strings"
)

// DefaultMaxSuggestions bounds the ranked list returned to callers.
const DefaultMaxSuggestions = 10

// ErrInvalidMaxSuggestions is returned for a negative maximum.
var ErrInvalidMaxSuggestions = errors.New("suggest: max suggestions must not be negative")

// Ranker merges candidates from all sources into a bounded, deduplicated,
// ordered list.
type Ranker struct {
	maxSuggestions int
}

// NewRanker creates a ranker. A zero maximum selects the default;
// a negative maximum is a configuration error.
func NewRanker(maxSuggestions int) (*Ranker, error) {
	if maxSuggestions < 0 {
		return nil, ErrInvalidMaxSuggestions
	}
	if maxSuggestions == 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	return &Ranker{maxSuggestions: maxSuggestions}, nil
}

// Rank orders candidates by source-type priority first and confidence
// second, deduplicates by case-insensitive text keeping the first
// occurrence, and truncates to the configured maximum.
//
// The two-level sort is intentional: a personalized suggestion with low
// confidence still outranks a historical one with high confidence.
func (r *Ranker) Rank(candidates []Suggestion, query string) []Suggestion {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]Suggestion, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].Signal.Priority(), ranked[j].Signal.Priority()
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Confidence > ranked[j].Confidence
	})

	seen := make(map[string]bool, len(ranked))
	out := make([]Suggestion, 0, r.maxSuggestions)
	for _, s := range ranked {
		key := strings.ToLower(s.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == r.maxSuggestions {
			break
		}
	}
	return out
}

// MaxSuggestions returns the configured bound.
func (r *Ranker) MaxSuggestions() int {
	return r.maxSuggestions
}
