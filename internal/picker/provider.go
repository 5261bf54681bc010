package picker

import "context"

// Provider supplies items to the picker. Implementations might serve live
// suggestions, history records, or any other line-oriented source.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// Request describes what items the picker wants from a Provider.
type Request struct {
	RequestID uint64 // Monotonically increasing, for stale response detection
	Query     string // Current partial query
	TabID     string // Active tab identifier
	Limit     int
	Offset    int
}

// Response carries items back from a Provider.
type Response struct {
	RequestID uint64 // Must match Request.RequestID to be accepted
	Items     []Item // Display rows
	AtEnd     bool   // No more pages available
}

// Item is one selectable row: the value returned on selection plus an
// optional display annotation (category, confidence, frequency).
type Item struct {
	Value      string
	Annotation string
}

// Tab is one switchable item source in the picker.
type Tab struct {
	ID    string
	Label string
}
