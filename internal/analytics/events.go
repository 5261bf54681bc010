// Package analytics provides fire-and-forget event emission and atomic
// counters for the search core. Emission never blocks the caller: when a
// sink cannot keep up, events are dropped and counted.
package analytics

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a discrete analytics event emitted by the core.
type EventType string

const (
	EventSuggestionGenerated EventType = "suggestion_generated"
	EventQueryEnhanced       EventType = "query_enhanced"
	EventContextAnalyzed     EventType = "context_analyzed"
	EventQueryRecorded       EventType = "query_recorded"
)

// Event is a single analytics event with structured parameters.
type Event struct {
	ID     string
	Type   EventType
	At     time.Time
	Params map[string]any
}

// NewEvent creates an event with a fresh ID and the current timestamp.
func NewEvent(typ EventType, params map[string]any) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   typ,
		At:     time.Now(),
		Params: params,
	}
}

// Sink consumes analytics events. Implementations must not block; the core
// does not wait for acknowledgment.
type Sink interface {
	Emit(Event)
}

// NopSink discards all events.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(Event) {}

// ChannelSink buffers events on a channel for an external consumer.
// Emit is non-blocking: if the buffer is full the event is dropped and the
// drop counter incremented.
type ChannelSink struct {
	ch        chan Event
	dropped   atomic.Int64
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewChannelSink creates a sink with the given buffer size.
// Non-positive sizes default to 256.
func NewChannelSink(buffer int, logger *slog.Logger) *ChannelSink {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChannelSink{
		ch:     make(chan Event, buffer),
		logger: logger,
	}
}

// Emit implements Sink.
func (s *ChannelSink) Emit(ev Event) {
	select {
	case s.ch <- ev:
	default:
		n := s.dropped.Add(1)
		if n == 1 || n%1000 == 0 {
			s.logger.Warn("analytics sink full, dropping events", "dropped", n)
		}
	}
}

// Events returns the channel consumers read from.
func (s *ChannelSink) Events() <-chan Event {
	return s.ch
}

// Dropped returns the number of events dropped due to a full buffer.
func (s *ChannelSink) Dropped() int64 {
	return s.dropped.Load()
}

// Close closes the event channel. Safe to call multiple times.
// Emit must not be called after Close.
func (s *ChannelSink) Close() {
	s.closeOnce.Do(func() { close(s.ch) })
}
