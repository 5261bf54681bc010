// Package search defines the result and filter types exchanged with the
// backend search collaborator. The engine treats the backend as an opaque
// function over these types; no transport is defined here.
package search

import (
	"context"
	"time"
)

// Result is one transcript search hit. Fields are optional: a missing date,
// speaker, category, or content simply excludes the result from the insight
// computations that need that field.
type Result struct {
	ID       string
	Title    string
	Content  string
	Speaker  string
	Category string
	Source   string
	Date     time.Time

	// DurationSeconds is the source video length, zero if unknown.
	DurationSeconds int
}

// SortOrder selects backend result ordering.
type SortOrder int

const (
	SortRelevance SortOrder = iota
	SortNewest
	SortOldest
)

// Filters narrows a backend search. Zero value means unfiltered.
type Filters struct {
	Speakers   []string
	Sources    []string
	Categories []string
	Tags       []string

	DateFrom time.Time
	DateTo   time.Time

	MinDurationSeconds int
	MaxDurationSeconds int

	Sort SortOrder
}

// Page selects a slice of the backend result set.
type Page struct {
	Offset int
	Limit  int
}

// ResultPage is one page of backend results.
type ResultPage struct {
	Items       []Result
	TotalCount  int
	HasMore     bool
	Suggestions []string
}

// Searcher executes an enhanced query against the backend. Implementations
// honor ctx for timeout and cancellation.
type Searcher interface {
	Search(ctx context.Context, query string, filters Filters, page Page) (ResultPage, error)
}
