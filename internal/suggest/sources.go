package suggest

import (
	"context"
	"log/slog"

	"github.com/capitolstream/searchcore/internal/embed"
	"github.com/capitolstream/searchcore/internal/history"
)

// Per-source constants from the ranking contract.
const (
	historicalMaxCandidates = 3
	trendingConfidence      = 0.8
	personalizedConfidence  = 0.9
	semanticThreshold       = 0.7
)

// HistoryLookup is the slice of the history store the historical source
// reads from.
type HistoryLookup interface {
	Lookup(partial string) []history.Record
}

// HistoricalSource suggests past queries matching the partial input,
// ranked by frequency.
type HistoricalSource struct {
	store HistoryLookup
}

// NewHistoricalSource creates a historical source over a history store.
func NewHistoricalSource(store HistoryLookup) *HistoricalSource {
	return &HistoricalSource{store: store}
}

// Signal implements Source.
func (s *HistoricalSource) Signal() Signal { return SignalHistorical }

// Suggest implements Source. Candidates are capped to the top three by
// frequency; confidence is frequency/10 clamped to 1.
func (s *HistoricalSource) Suggest(_ context.Context, partial string, _ Context) []Suggestion {
	if s.store == nil {
		return nil
	}

	records := s.store.Lookup(partial)
	if len(records) > historicalMaxCandidates {
		records = records[:historicalMaxCandidates]
	}

	out := make([]Suggestion, 0, len(records))
	for _, rec := range records {
		out = append(out, Suggestion{
			Text:         rec.Query,
			Category:     CategoryHistorical,
			Confidence:   clamp01(float64(rec.Frequency) / 10.0),
			PreviewCount: rec.LastResultCount,
			Signal:       SignalHistorical,
			Metadata: Metadata{
				EstimatedResults: rec.LastResultCount,
				LastUsed:         rec.LastSeen,
				Popularity:       float64(rec.Frequency),
			},
		})
	}
	return out
}

// DefaultTrendingTopics is the fallback trending list used when no
// external provider is configured.
var DefaultTrendingTopics = []string{
	"climate policy",
	"healthcare reform",
	"immigration debate",
	"budget negotiations",
	"election security",
	"infrastructure bill",
	"tax legislation",
	"foreign policy",
	"supreme court ruling",
	"energy independence",
}

// TrendingSource suggests currently trending topics matching the partial
// input. Topics may come from a remote feed; a fetch failure degrades to
// the empty list.
type TrendingSource struct {
	fetch  func(ctx context.Context) ([]string, error)
	logger *slog.Logger
}

// NewTrendingSource creates a trending source. A nil fetch function serves
// DefaultTrendingTopics.
func NewTrendingSource(fetch func(ctx context.Context) ([]string, error), logger *slog.Logger) *TrendingSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrendingSource{fetch: fetch, logger: logger}
}

// Signal implements Source.
func (s *TrendingSource) Signal() Signal { return SignalTrending }

// Suggest implements Source.
func (s *TrendingSource) Suggest(ctx context.Context, partial string, _ Context) []Suggestion {
	topics := DefaultTrendingTopics
	if s.fetch != nil {
		fetched, err := s.fetch(ctx)
		if err != nil {
			s.logger.Debug("trending fetch failed, no contribution", "error", err)
			return nil
		}
		topics = fetched
	}

	var out []Suggestion
	for _, topic := range topics {
		if matchBidirectional(topic, partial) {
			out = append(out, Suggestion{
				Text:       topic,
				Category:   CategoryTrending,
				Confidence: trendingConfidence,
				Signal:     SignalTrending,
			})
		}
	}
	return out
}

// SemanticSource suggests domain queries whose embedding similarity to the
// partial input exceeds the threshold. Without an embedding provider it
// contributes nothing.
type SemanticSource struct {
	provider embed.Provider
	corpus   []string
	logger   *slog.Logger
}

// DefaultSemanticCorpus is the built-in set of domain queries the semantic
// source matches against.
var DefaultSemanticCorpus = []string{
	"healthcare policy debate",
	"climate change legislation",
	"immigration reform proposals",
	"tax policy changes",
	"education funding votes",
	"foreign policy statements",
	"gun control hearings",
	"social security reform",
	"energy policy speeches",
	"trade agreement negotiations",
}

// NewSemanticSource creates a semantic source. A nil provider is allowed
// and yields an always-empty source; an empty corpus selects the default.
func NewSemanticSource(provider embed.Provider, corpus []string, logger *slog.Logger) *SemanticSource {
	if len(corpus) == 0 {
		corpus = DefaultSemanticCorpus
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SemanticSource{provider: provider, corpus: corpus, logger: logger}
}

// Signal implements Source.
func (s *SemanticSource) Signal() Signal { return SignalSemantic }

// Suggest implements Source. Provider failures degrade to no contribution.
func (s *SemanticSource) Suggest(ctx context.Context, partial string, _ Context) []Suggestion {
	if s.provider == nil {
		return nil
	}

	queryVec, err := s.provider.Embed(ctx, partial)
	if err != nil {
		s.logger.Debug("embedding failed, no contribution", "error", err)
		return nil
	}

	var out []Suggestion
	for _, candidate := range s.corpus {
		if ctx.Err() != nil {
			return out
		}
		candVec, err := s.provider.Embed(ctx, candidate)
		if err != nil {
			continue
		}
		sim := embed.Cosine(queryVec, candVec)
		if sim < semanticThreshold {
			continue
		}
		out = append(out, Suggestion{
			Text:       candidate,
			Category:   CategorySemantic,
			Confidence: clamp01(sim),
			Signal:     SignalSemantic,
			Metadata:   Metadata{Similarity: sim},
		})
	}
	return out
}

// PersonalizedSource suggests entries from the caller's stored interest
// list matching the partial input.
type PersonalizedSource struct{}

// NewPersonalizedSource creates a personalized source.
func NewPersonalizedSource() *PersonalizedSource {
	return &PersonalizedSource{}
}

// Signal implements Source.
func (s *PersonalizedSource) Signal() Signal { return SignalPersonalized }

// Suggest implements Source. Interests come from the per-call Context.
func (s *PersonalizedSource) Suggest(_ context.Context, partial string, sctx Context) []Suggestion {
	var out []Suggestion
	for _, interest := range sctx.Interests {
		if matchBidirectional(interest, partial) {
			out = append(out, Suggestion{
				Text:       interest,
				Category:   CategoryTopic,
				Confidence: personalizedConfidence,
				Signal:     SignalPersonalized,
			})
		}
	}
	return out
}
