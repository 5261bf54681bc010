// Package engine composes the search core: normalization, entity and intent
// extraction, concurrent suggestion generation, query enhancement, result
// analysis, and history recording behind one façade.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/capitolstream/searchcore/internal/analytics"
	"github.com/capitolstream/searchcore/internal/cache"
	"github.com/capitolstream/searchcore/internal/config"
	"github.com/capitolstream/searchcore/internal/embed"
	"github.com/capitolstream/searchcore/internal/enhance"
	"github.com/capitolstream/searchcore/internal/entity"
	"github.com/capitolstream/searchcore/internal/history"
	"github.com/capitolstream/searchcore/internal/insight"
	"github.com/capitolstream/searchcore/internal/normalize"
	"github.com/capitolstream/searchcore/internal/search"
	"github.com/capitolstream/searchcore/internal/suggest"
)

// suggestionCacheCapacity bounds the per-prefix suggestion cache.
const suggestionCacheCapacity = 512

// ErrNoSearcher is returned by Search when no backend was configured.
var ErrNoSearcher = errors.New("engine: no search backend configured")

// Options configures an Engine. Config is required; everything else has a
// working default (in-memory history, no backend, no embedder, nop sink).
type Options struct {
	Config *config.Config
	Logger *slog.Logger

	// History is the query history store. Nil builds an in-memory one.
	History *history.Store

	// Searcher executes enhanced queries against the backend. Nil disables
	// Search but leaves every other operation working.
	Searcher search.Searcher

	// Embedder feeds the semantic suggestion source. Nil degrades that
	// source to no contribution.
	Embedder embed.Provider

	// TrendingFetch supplies the trending topic list. Nil uses the
	// built-in list (or the configured override).
	TrendingFetch func(ctx context.Context) ([]string, error)

	// Sink receives analytics events. Nil discards them.
	Sink analytics.Sink
}

// Engine is the caller-facing search core. All methods are safe for
// concurrent use.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	extractor *entity.Extractor
	enhancer  *enhance.Enhancer
	analyzer  *insight.Analyzer
	ranker    *suggest.Ranker
	sources   []suggest.Source

	historyStore *history.Store
	ownedHistory bool
	searcher     search.Searcher
	sink         analytics.Sink
	counters     *analytics.Counters

	suggCache *cache.LRU[string, []suggest.Suggestion]

	// generation implements last-request-wins for Suggest: results computed
	// for a superseded request are discarded, not returned.
	generation atomic.Uint64

	minPrefix     int
	sourceTimeout time.Duration
}

// New builds an engine from options. Only configuration errors fail
// construction; missing collaborators degrade the affected feature.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := opts.Sink
	if sink == nil {
		sink = analytics.NopSink{}
	}

	ranker, err := suggest.NewRanker(cfg.Suggestions.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("engine: build ranker: %w", err)
	}

	analyzer, err := insight.NewAnalyzer(cfg.Insights.MaxInsights,
		time.Duration(cfg.Insights.CacheTTLMinutes)*time.Minute, logger)
	if err != nil {
		return nil, fmt.Errorf("engine: build analyzer: %w", err)
	}

	suggCache, err := cache.NewLRU[string, []suggest.Suggestion](
		suggestionCacheCapacity, time.Duration(cfg.Suggestions.CacheTTLMs)*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("engine: build suggestion cache: %w", err)
	}

	historyStore := opts.History
	ownedHistory := false
	if historyStore == nil {
		historyStore, err = history.NewStore(history.Config{
			Capacity:  cfg.History.Capacity,
			Retention: time.Duration(cfg.History.RetentionDays) * 24 * time.Hour,
		}, nil, logger)
		if err != nil {
			return nil, fmt.Errorf("engine: build history store: %w", err)
		}
		ownedHistory = true
	}

	trendingFetch := opts.TrendingFetch
	if trendingFetch == nil && len(cfg.Suggestions.TrendingTopics) > 0 {
		topics := cfg.Suggestions.TrendingTopics
		trendingFetch = func(context.Context) ([]string, error) { return topics, nil }
	}

	extractor := entity.NewExtractor()

	e := &Engine{
		cfg:          cfg,
		logger:       logger,
		extractor:    extractor,
		enhancer:     enhance.NewEnhancer(extractor, logger),
		analyzer:     analyzer,
		ranker:       ranker,
		historyStore: historyStore,
		ownedHistory: ownedHistory,
		searcher:     opts.Searcher,
		sink:         sink,
		counters:     &analytics.Counters{},
		suggCache:    suggCache,

		minPrefix:     cfg.Suggestions.MinPrefixLength,
		sourceTimeout: time.Duration(cfg.Suggestions.SourceTimeoutMs) * time.Millisecond,
	}

	e.sources = []suggest.Source{
		suggest.NewHistoricalSource(historyStore),
		suggest.NewTrendingSource(trendingFetch, logger),
		suggest.NewSemanticSource(opts.Embedder, nil, logger),
		suggest.NewPersonalizedSource(),
	}

	return e, nil
}

// Normalize cleans a raw query string.
func (e *Engine) Normalize(raw string) string {
	return normalize.Normalize(raw)
}

// Extract recognizes entities in a query.
func (e *Engine) Extract(query string) entity.Entities {
	return e.extractor.Extract(query)
}

// ClassifyIntent classifies a query's coarse search intent.
func (e *Engine) ClassifyIntent(query string) (entity.Intent, float64) {
	return e.extractor.ClassifyIntent(query)
}

// Suggest produces ranked suggestions for a partially typed query. Prefixes
// shorter than the configured minimum return nil without consulting any
// source. A call superseded by a newer one returns nil: stale results are
// discarded, never merged.
func (e *Engine) Suggest(ctx context.Context, partial string, sctx suggest.Context) []suggest.Suggestion {
	if len(strings.TrimSpace(partial)) < e.minPrefix {
		return nil
	}

	start := time.Now()
	gen := e.generation.Add(1)
	e.counters.SuggestRequests.Add(1)
	defer func() {
		e.counters.LatencySumMs.Add(time.Since(start).Milliseconds())
	}()

	key := suggestionCacheKey(partial, sctx)
	if cached, ok := e.suggCache.Get(key); ok {
		e.counters.CacheHits.Add(1)
		e.tally(cached)
		return cached
	}
	e.counters.CacheMisses.Add(1)

	candidates := e.fanOut(ctx, partial, sctx)

	if e.generation.Load() != gen {
		e.logger.Debug("discarding stale suggestion results", "partial", partial)
		return nil
	}

	ranked := e.ranker.Rank(candidates, partial)
	e.suggCache.Put(key, ranked)
	e.tally(ranked)

	e.sink.Emit(analytics.NewEvent(analytics.EventSuggestionGenerated, map[string]any{
		"partial":    partial,
		"count":      len(ranked),
		"latency_ms": time.Since(start).Milliseconds(),
	}))
	return ranked
}

// fanOut invokes every suggestion source concurrently, bounding each by the
// per-source timeout. A timed-out source contributes nothing; it never
// blocks the others.
func (e *Engine) fanOut(ctx context.Context, partial string, sctx suggest.Context) []suggest.Suggestion {
	results := make(chan []suggest.Suggestion, len(e.sources))

	for _, src := range e.sources {
		go func(src suggest.Source) {
			srcCtx, cancel := context.WithTimeout(ctx, e.sourceTimeout)
			defer cancel()

			done := make(chan []suggest.Suggestion, 1)
			go func() { done <- src.Suggest(srcCtx, partial, sctx) }()

			select {
			case got := <-done:
				results <- got
			case <-srcCtx.Done():
				e.counters.SourceTimeouts.Add(1)
				e.logger.Debug("suggestion source timed out",
					"signal", src.Signal().String(), "timeout", e.sourceTimeout)
				results <- nil
			}
		}(src)
	}

	var candidates []suggest.Suggestion
	for range e.sources {
		candidates = append(candidates, <-results...)
	}
	return candidates
}

func (e *Engine) tally(ranked []suggest.Suggestion) {
	if len(ranked) > 0 {
		e.counters.SuggestHits.Add(1)
	} else {
		e.counters.SuggestMisses.Add(1)
	}
}

// suggestionCacheKey folds the partial query and the personalization inputs
// that influence the result.
func suggestionCacheKey(partial string, sctx suggest.Context) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(partial)))
	for _, interest := range sctx.Interests {
		b.WriteByte('\x00')
		b.WriteString(strings.ToLower(interest))
	}
	return b.String()
}

// Enhance rewrites a submitted query through the enhancement pipeline.
// When enhancement is disabled by configuration, the query passes through
// with only normalization applied.
func (e *Engine) Enhance(query string) enhance.Enhanced {
	e.counters.EnhanceRequests.Add(1)

	if !e.cfg.Enhancement.Enabled {
		normalized := normalize.Normalize(query)
		return enhance.Enhanced{
			Original:    query,
			Enhanced:    normalized,
			Techniques:  []enhance.Technique{enhance.TechniqueNormalization},
			Explanation: "enhancement disabled, query normalized only",
		}
	}

	enhanced := e.enhancer.Enhance(query)
	e.sink.Emit(analytics.NewEvent(analytics.EventQueryEnhanced, map[string]any{
		"original":   enhanced.Original,
		"enhanced":   enhanced.Enhanced,
		"techniques": len(enhanced.Techniques),
		"confidence": enhanced.Confidence,
	}))
	return enhanced
}

// Analyze derives contextual insights from a result set, served from the
// insight cache when the same query was analyzed within its TTL.
func (e *Engine) Analyze(query string, results []search.Result) []insight.Insight {
	e.counters.AnalyzeRequests.Add(1)

	insights := e.analyzer.Analyze(query, results)
	e.sink.Emit(analytics.NewEvent(analytics.EventContextAnalyzed, map[string]any{
		"query":    query,
		"results":  len(results),
		"insights": len(insights),
	}))
	return insights
}

// RecordQuery adds a submitted query to the history store. This is the only
// mutating operation on the caller-facing surface.
func (e *Engine) RecordQuery(query string, resultCount int) {
	e.counters.RecordedQueries.Add(1)
	e.historyStore.Record(query, resultCount)
	e.sink.Emit(analytics.NewEvent(analytics.EventQueryRecorded, map[string]any{
		"query":        history.Key(query),
		"result_count": resultCount,
	}))
}

// History returns the engine's history store.
func (e *Engine) History() *history.Store {
	return e.historyStore
}

// Search enhances a query, executes it against the backend, analyzes the
// returned page, and records the query. The returned insights are best
// effort; a backend failure is the only error surfaced.
func (e *Engine) Search(ctx context.Context, query string, filters search.Filters, page search.Page) (search.ResultPage, enhance.Enhanced, []insight.Insight, error) {
	enhanced := e.Enhance(query)

	if e.searcher == nil {
		return search.ResultPage{}, enhanced, nil, ErrNoSearcher
	}

	resultPage, err := e.searcher.Search(ctx, enhanced.Enhanced, filters, page)
	if err != nil {
		return search.ResultPage{}, enhanced, nil, fmt.Errorf("engine: backend search: %w", err)
	}

	insights := e.Analyze(query, resultPage.Items)
	e.RecordQuery(query, resultPage.TotalCount)

	return resultPage, enhanced, insights, nil
}

// Counters exposes the engine's observability counters.
func (e *Engine) Counters() *analytics.Counters {
	return e.counters
}

// SetClocks overrides the time sources of the engine's caches and history
// store. Tests use this for deterministic TTL behavior.
func (e *Engine) SetClocks(now func() time.Time) {
	e.suggCache.SetClock(now)
	e.analyzer.SetClock(now)
	e.historyStore.SetClock(now)
}

// Close flushes and shuts down owned resources. An injected history store
// remains the caller's to close.
func (e *Engine) Close() error {
	if e.ownedHistory {
		return e.historyStore.Close()
	}
	return nil
}
