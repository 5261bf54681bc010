package picker

import (
	"context"
	"fmt"

	"github.com/capitolstream/searchcore/internal/engine"
	"github.com/capitolstream/searchcore/internal/suggest"
)

// Tab identifiers served by EngineProvider.
const (
	TabSuggestions = "suggestions"
	TabHistory     = "history"
)

// DefaultTabs returns the standard picker tab set.
func DefaultTabs() []Tab {
	return []Tab{
		{ID: TabSuggestions, Label: "Suggestions"},
		{ID: TabHistory, Label: "History"},
	}
}

// EngineProvider serves picker items from a search engine: live ranked
// suggestions on one tab, raw history matches on the other.
type EngineProvider struct {
	engine    *engine.Engine
	interests []string
}

// NewEngineProvider creates a provider over an engine. Interests feed the
// personalized suggestion source.
func NewEngineProvider(e *engine.Engine, interests []string) *EngineProvider {
	return &EngineProvider{engine: e, interests: interests}
}

// Fetch implements Provider.
func (p *EngineProvider) Fetch(ctx context.Context, req Request) (Response, error) {
	switch req.TabID {
	case TabHistory:
		return p.fetchHistory(req)
	default:
		return p.fetchSuggestions(ctx, req)
	}
}

func (p *EngineProvider) fetchSuggestions(ctx context.Context, req Request) (Response, error) {
	suggestions := p.engine.Suggest(ctx, req.Query, suggest.Context{Interests: p.interests})

	items := make([]Item, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, Item{
			Value:      s.Text,
			Annotation: fmt.Sprintf("[%s %.0f%%]", s.Signal, 100*s.Confidence),
		})
	}
	return Response{RequestID: req.RequestID, Items: items, AtEnd: true}, nil
}

func (p *EngineProvider) fetchHistory(req Request) (Response, error) {
	records := p.engine.History().Lookup(req.Query)

	// Page the full match list; suggestions are already capped upstream.
	if req.Offset > 0 {
		if req.Offset >= len(records) {
			records = nil
		} else {
			records = records[req.Offset:]
		}
	}
	atEnd := true
	if req.Limit > 0 && len(records) > req.Limit {
		records = records[:req.Limit]
		atEnd = false
	}

	items := make([]Item, 0, len(records))
	for _, rec := range records {
		items = append(items, Item{
			Value:      rec.Query,
			Annotation: fmt.Sprintf("[%dx, %d results]", rec.Frequency, rec.LastResultCount),
		})
	}
	return Response{RequestID: req.RequestID, Items: items, AtEnd: atEnd}, nil
}
