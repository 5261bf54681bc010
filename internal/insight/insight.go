// Package insight derives contextual observations from a search result set:
// temporal spread, dominant speaker, topic mix, sentiment, and source
// diversity. Each insight is independently optional; analysis of an empty or
// sparse result set yields a short or empty list, never an error.
package insight

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/capitolstream/searchcore/internal/cache"
	"github.com/capitolstream/searchcore/internal/search"
)

// Defaults for the analyzer's output bound and cache policy.
const (
	DefaultMaxInsights   = 5
	DefaultCacheTTL      = 30 * time.Minute
	DefaultCacheCapacity = 256
)

// Elapsed-time thresholds classifying a result set's temporal spread.
const (
	singleDaySpan   = 24 * time.Hour
	singleWeekSpan  = 7 * 24 * time.Hour
	singleMonthSpan = 30 * 24 * time.Hour
)

// Type classifies an insight.
type Type int

const (
	TypeTemporal Type = iota
	TypeSpeaker
	TypeTopic
	TypeSentiment
	TypeCrossReference
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeTemporal:
		return "temporal"
	case TypeSpeaker:
		return "speaker"
	case TypeTopic:
		return "topic"
	case TypeSentiment:
		return "sentiment"
	case TypeCrossReference:
		return "cross_reference"
	default:
		return "unknown"
	}
}

// Insight is one derived observation about a result set.
type Insight struct {
	Type        Type
	Title       string
	Description string
	Confidence  float64
	Actionable  bool
}

// Analyzer computes insights and caches them per query text.
type Analyzer struct {
	maxInsights int
	logger      *slog.Logger

	mu    sync.Mutex
	cache *cache.LRU[string, []Insight]

	recomputations atomic.Int64
}

// NewAnalyzer creates an analyzer. A zero maxInsights or cacheTTL selects
// the default; a nil logger defaults to slog.Default().
func NewAnalyzer(maxInsights int, cacheTTL time.Duration, logger *slog.Logger) (*Analyzer, error) {
	if maxInsights == 0 {
		maxInsights = DefaultMaxInsights
	}
	if maxInsights < 0 {
		return nil, fmt.Errorf("insight: max insights must not be negative, got %d", maxInsights)
	}
	if cacheTTL == 0 {
		cacheTTL = DefaultCacheTTL
	}
	if cacheTTL < 0 {
		return nil, fmt.Errorf("insight: cache TTL must not be negative, got %v", cacheTTL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c, err := cache.NewLRU[string, []Insight](DefaultCacheCapacity, cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("insight: build cache: %w", err)
	}
	return &Analyzer{maxInsights: maxInsights, logger: logger, cache: c}, nil
}

// Analyze derives up to the configured maximum of insights for a query's
// result set. Results are cached by exact query text; a hit within the TTL
// returns the stored list unchanged with no recomputation.
func (a *Analyzer) Analyze(query string, results []search.Result) []Insight {
	a.mu.Lock()
	defer a.mu.Unlock()

	if cached, ok := a.cache.Get(query); ok {
		return cached
	}

	a.recomputations.Add(1)
	insights := a.compute(results)
	a.cache.Put(query, insights)
	return insights
}

// Recomputations returns how many times Analyze has computed fresh insights
// rather than serving the cache.
func (a *Analyzer) Recomputations() int64 {
	return a.recomputations.Load()
}

// SetClock replaces the cache's time source for TTL decisions.
func (a *Analyzer) SetClock(now func() time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache.SetClock(now)
}

func (a *Analyzer) compute(results []search.Result) []Insight {
	var insights []Insight

	appendIf := func(ins *Insight) {
		if ins != nil && len(insights) < a.maxInsights {
			insights = append(insights, *ins)
		}
	}

	appendIf(temporalInsight(results))
	appendIf(speakerInsight(results))
	appendIf(topicInsight(results))
	appendIf(sentimentInsight(results))
	appendIf(crossReferenceInsight(results))

	return insights
}

// temporalInsight classifies the elapsed span between the earliest and
// latest dated results. Undated results are excluded.
func temporalInsight(results []search.Result) *Insight {
	var earliest, latest time.Time
	dated := 0
	for _, r := range results {
		if r.Date.IsZero() {
			continue
		}
		if dated == 0 || r.Date.Before(earliest) {
			earliest = r.Date
		}
		if dated == 0 || r.Date.After(latest) {
			latest = r.Date
		}
		dated++
	}
	if dated == 0 {
		return nil
	}

	span := latest.Sub(earliest)
	var label string
	switch {
	case span < singleDaySpan:
		label = "a single day"
	case span < singleWeekSpan:
		label = "a single week"
	case span < singleMonthSpan:
		label = "a single month"
	default:
		label = "an extended period"
	}

	return &Insight{
		Type:        TypeTemporal,
		Title:       "Time Coverage",
		Description: fmt.Sprintf("Results span %s (%d dated items).", label, dated),
		Confidence:  float64(dated) / float64(len(results)),
		Actionable:  true,
	}
}

// speakerInsight reports the most frequent speaker and its share of the
// whole result set.
func speakerInsight(results []search.Result) *Insight {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Speaker != "" {
			counts[r.Speaker]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	speaker, count := modal(counts)
	pct := 100 * count / len(results)

	return &Insight{
		Type:        TypeSpeaker,
		Title:       "Dominant Speaker",
		Description: fmt.Sprintf("%s appears in %d%% of results.", speaker, pct),
		Confidence:  float64(count) / float64(len(results)),
		Actionable:  true,
	}
}

// topicInsight reports the most frequent category plus up to three frequent
// categories as related topics.
func topicInsight(results []search.Result) *Insight {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Category != "" {
			counts[r.Category]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	top, count := modal(counts)
	related := topCategories(counts, 3)

	return &Insight{
		Type:        TypeTopic,
		Title:       "Topic Focus",
		Description: fmt.Sprintf("Most results are about %s; related: %v.", top, related),
		Confidence:  float64(count) / float64(len(results)),
		Actionable:  true,
	}
}

// crossReferenceInsight reports source diversity when results come from at
// least two distinct sources.
func crossReferenceInsight(results []search.Result) *Insight {
	sources := make(map[string]bool)
	for _, r := range results {
		if r.Source != "" {
			sources[r.Source] = true
		}
	}
	if len(sources) < 2 {
		return nil
	}

	return &Insight{
		Type:        TypeCrossReference,
		Title:       "Multiple Sources",
		Description: fmt.Sprintf("Results draw on %d distinct sources.", len(sources)),
		Confidence:  1.0,
		Actionable:  false,
	}
}

// modal returns the key with the highest count. Ties break toward the
// lexicographically smallest key to keep output deterministic.
func modal(counts map[string]int) (string, int) {
	var bestKey string
	bestCount := -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < bestKey) {
			bestKey, bestCount = key, count
		}
	}
	return bestKey, bestCount
}

// topCategories returns up to n category names ordered by count descending,
// name ascending.
func topCategories(counts map[string]int, n int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
