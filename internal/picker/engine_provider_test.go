package picker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/capitolstream/searchcore/internal/config"
	"github.com/capitolstream/searchcore/internal/engine"
)

func newProviderEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Options{Config: config.DefaultConfig()})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(func() { eng.Close() })
	return eng
}

func TestEngineProvider_SuggestionsTab(t *testing.T) {
	eng := newProviderEngine(t)
	p := NewEngineProvider(eng, []string{"climate summit"})

	resp, err := p.Fetch(context.Background(), Request{
		RequestID: 1,
		Query:     "climate",
		TabID:     TabSuggestions,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !resp.AtEnd {
		t.Error("suggestions tab should always report AtEnd")
	}
	if len(resp.Items) == 0 {
		t.Fatal("expected suggestions for 'climate'")
	}

	// The interest match ranks first and carries its signal annotation.
	if resp.Items[0].Value != "climate summit" {
		t.Errorf("first item = %q, want interest match first", resp.Items[0].Value)
	}
	if !strings.Contains(resp.Items[0].Annotation, "personalized") {
		t.Errorf("annotation = %q, want personalized signal", resp.Items[0].Annotation)
	}
}

func TestEngineProvider_HistoryTabPaging(t *testing.T) {
	eng := newProviderEngine(t)

	// Distinct timestamps keep the recency tiebreak deterministic.
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	eng.SetClocks(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	for _, q := range []string{"tax policy", "tax reform", "tax cuts"} {
		eng.RecordQuery(q, 5)
	}
	p := NewEngineProvider(eng, nil)

	resp, err := p.Fetch(context.Background(), Request{Query: "tax", TabID: TabHistory, Limit: 2})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want limit 2", len(resp.Items))
	}
	if resp.AtEnd {
		t.Error("expected more pages beyond limit")
	}

	next, err := p.Fetch(context.Background(), Request{Query: "tax", TabID: TabHistory, Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Fetch page 2: %v", err)
	}
	if len(next.Items) != 1 || !next.AtEnd {
		t.Errorf("page 2 = %d items, atEnd=%v; want 1 item at end", len(next.Items), next.AtEnd)
	}
	if !strings.Contains(next.Items[0].Annotation, "1x, 5 results") {
		t.Errorf("annotation = %q", next.Items[0].Annotation)
	}
}

func TestEngineProvider_UnknownTabFallsBackToSuggestions(t *testing.T) {
	eng := newProviderEngine(t)
	p := NewEngineProvider(eng, nil)

	resp, err := p.Fetch(context.Background(), Request{Query: "healthcare", TabID: "bogus"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !resp.AtEnd {
		t.Error("expected suggestions response for unknown tab")
	}
}
