package analytics

import (
	"sync/atomic"
)

// Counters holds atomic observability counters for the search core.
// All fields use sync/atomic for lock-free concurrent access.
type Counters struct {
	SuggestRequests atomic.Int64 // total Suggest calls past the prefix gate
	SuggestHits     atomic.Int64 // calls that produced >= 1 suggestion
	SuggestMisses   atomic.Int64 // calls that produced zero suggestions
	CacheHits       atomic.Int64 // suggestion cache hits
	CacheMisses     atomic.Int64 // suggestion cache misses
	EnhanceRequests atomic.Int64 // Enhance calls
	AnalyzeRequests atomic.Int64 // Analyze calls
	RecordedQueries atomic.Int64 // RecordQuery calls
	SourceTimeouts  atomic.Int64 // suggestion sources cut off by the per-source deadline
	LatencySumMs    atomic.Int64 // cumulative Suggest latency for average calculation
}

// Snapshot returns a point-in-time copy of all counters as a string-keyed map.
// The snapshot is consistent per-field but not transactionally consistent
// across fields (acceptable for observability).
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"suggest_requests": c.SuggestRequests.Load(),
		"suggest_hits":     c.SuggestHits.Load(),
		"suggest_misses":   c.SuggestMisses.Load(),
		"cache_hits":       c.CacheHits.Load(),
		"cache_misses":     c.CacheMisses.Load(),
		"enhance_requests": c.EnhanceRequests.Load(),
		"analyze_requests": c.AnalyzeRequests.Load(),
		"recorded_queries": c.RecordedQueries.Load(),
		"source_timeouts":  c.SourceTimeouts.Load(),
		"latency_sum_ms":   c.LatencySumMs.Load(),
	}
}

// Reset zeroes all counters. Useful for test isolation and periodic reporting.
func (c *Counters) Reset() {
	c.SuggestRequests.Store(0)
	c.SuggestHits.Store(0)
	c.SuggestMisses.Store(0)
	c.CacheHits.Store(0)
	c.CacheMisses.Store(0)
	c.EnhanceRequests.Store(0)
	c.AnalyzeRequests.Store(0)
	c.RecordedQueries.Store(0)
	c.SourceTimeouts.Store(0)
	c.LatencySumMs.Store(0)
}

// AverageSuggestLatencyMs returns the mean Suggest latency in milliseconds.
// Returns 0 if no requests have been recorded.
func (c *Counters) AverageSuggestLatencyMs() float64 {
	reqs := c.SuggestRequests.Load()
	if reqs == 0 {
		return 0
	}
	return float64(c.LatencySumMs.Load()) / float64(reqs)
}

// CacheHitRate returns the suggestion cache hit rate as a fraction in [0, 1].
// Returns 0 if no cache lookups have been recorded.
func (c *Counters) CacheHitRate() float64 {
	hits := c.CacheHits.Load()
	misses := c.CacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
