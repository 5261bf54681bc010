package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capitolstream/searchcore/internal/embed"
	"github.com/capitolstream/searchcore/internal/history"
)

type fakeLookup struct {
	records []history.Record
}

func (f *fakeLookup) Lookup(string) []history.Record { return f.records }

func TestHistoricalSource_TopThreeByFrequency(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	src := NewHistoricalSource(&fakeLookup{records: []history.Record{
		{Query: "climate policy", Frequency: 12, LastSeen: now, LastResultCount: 40},
		{Query: "climate change", Frequency: 5, LastSeen: now, LastResultCount: 22},
		{Query: "climate bill", Frequency: 3, LastSeen: now},
		{Query: "climate summit", Frequency: 1, LastSeen: now},
	}})

	got := src.Suggest(context.Background(), "clim", Context{})
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}

	// Frequency 12 clamps to confidence 1.0; frequency 5 maps to 0.5.
	if got[0].Confidence != 1.0 {
		t.Errorf("got[0].Confidence = %v, want 1.0", got[0].Confidence)
	}
	if got[1].Confidence != 0.5 {
		t.Errorf("got[1].Confidence = %v, want 0.5", got[1].Confidence)
	}
	if got[0].Category != CategoryHistorical || got[0].Signal != SignalHistorical {
		t.Errorf("got[0] category/signal = %v/%v, want historical", got[0].Category, got[0].Signal)
	}
	if got[0].PreviewCount != 40 {
		t.Errorf("got[0].PreviewCount = %d, want 40", got[0].PreviewCount)
	}
	if got[0].Metadata.Popularity != 12 {
		t.Errorf("got[0].Metadata.Popularity = %v, want 12", got[0].Metadata.Popularity)
	}
}

func TestHistoricalSource_NilStore(t *testing.T) {
	t.Parallel()

	src := NewHistoricalSource(nil)
	if got := src.Suggest(context.Background(), "clim", Context{}); got != nil {
		t.Errorf("Suggest() = %v, want nil", got)
	}
}

func TestTrendingSource_MatchesPartial(t *testing.T) {
	t.Parallel()

	src := NewTrendingSource(nil, nil)
	got := src.Suggest(context.Background(), "clim", Context{})

	found := false
	for _, s := range got {
		if s.Text == "climate policy" {
			found = true
			if s.Confidence != 0.8 {
				t.Errorf("confidence = %v, want 0.8", s.Confidence)
			}
			if s.Category != CategoryTrending || s.Signal != SignalTrending {
				t.Errorf("category/signal = %v/%v, want trending", s.Category, s.Signal)
			}
		}
	}
	if !found {
		t.Fatalf("Suggest(%q) = %v, want entry %q", "clim", got, "climate policy")
	}
}

func TestTrendingSource_FetchErrorDegrades(t *testing.T) {
	t.Parallel()

	src := NewTrendingSource(func(context.Context) ([]string, error) {
		return nil, errors.New("feed unavailable")
	}, nil)

	if got := src.Suggest(context.Background(), "clim", Context{}); len(got) != 0 {
		t.Errorf("Suggest() = %v, want empty on fetch error", got)
	}
}

func TestTrendingSource_CustomFetch(t *testing.T) {
	t.Parallel()

	src := NewTrendingSource(func(context.Context) ([]string, error) {
		return []string{"border security"}, nil
	}, nil)

	got := src.Suggest(context.Background(), "border", Context{})
	if len(got) != 1 || got[0].Text != "border security" {
		t.Fatalf("Suggest() = %v, want single %q", got, "border security")
	}
}

func TestSemanticSource_NilProvider(t *testing.T) {
	t.Parallel()

	src := NewSemanticSource(nil, nil, nil)
	if got := src.Suggest(context.Background(), "healthcare", Context{}); got != nil {
		t.Errorf("Suggest() = %v, want nil without provider", got)
	}
}

func TestSemanticSource_SimilarityThreshold(t *testing.T) {
	t.Parallel()

	provider := embed.NewHashingProvider(0)
	corpus := []string{
		"healthcare policy debate",
		"trade agreement negotiations",
	}
	src := NewSemanticSource(provider, corpus, nil)

	// The query embedding is identical to the matching corpus entry, so
	// its similarity is 1.0 and it must clear the threshold.
	got := src.Suggest(context.Background(), "healthcare policy debate", Context{})

	found := false
	for _, s := range got {
		if s.Text == "healthcare policy debate" {
			found = true
			if s.Confidence < semanticThreshold {
				t.Errorf("confidence = %v, want >= %v", s.Confidence, semanticThreshold)
			}
			if s.Metadata.Similarity != s.Confidence {
				t.Errorf("Similarity = %v, Confidence = %v, want equal", s.Metadata.Similarity, s.Confidence)
			}
		}
	}
	if !found {
		t.Fatalf("Suggest() = %v, want the identical corpus entry", got)
	}
	for _, s := range got {
		if s.Confidence < semanticThreshold {
			t.Errorf("%q below threshold with confidence %v", s.Text, s.Confidence)
		}
	}
}

func TestPersonalizedSource_Interests(t *testing.T) {
	t.Parallel()

	src := NewPersonalizedSource()
	sctx := Context{Interests: []string{"climate policy", "tax reform"}}

	got := src.Suggest(context.Background(), "clim", sctx)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].Text != "climate policy" {
		t.Errorf("Text = %q, want %q", got[0].Text, "climate policy")
	}
	if got[0].Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", got[0].Confidence)
	}
	if got[0].Signal != SignalPersonalized {
		t.Errorf("Signal = %v, want personalized", got[0].Signal)
	}
}

func TestPersonalizedSource_NoInterests(t *testing.T) {
	t.Parallel()

	src := NewPersonalizedSource()
	if got := src.Suggest(context.Background(), "clim", Context{}); len(got) != 0 {
		t.Errorf("Suggest() = %v, want empty", got)
	}
}

func TestMatchBidirectional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		candidate, partial string
		want               bool
	}{
		{"climate policy", "clim", true},
		{"clim", "climate policy", true},
		{"Climate Policy", "CLIM", true},
		{"tax reform", "clim", false},
		{"", "clim", false},
		{"climate", "", false},
	}
	for _, tt := range tests {
		if got := matchBidirectional(tt.candidate, tt.partial); got != tt.want {
			t.Errorf("matchBidirectional(%q, %q) = %v, want %v", tt.candidate, tt.partial, got, tt.want)
		}
	}
}
