// Package history keeps a frequency-aware record of past searches.
// Reads are served from an in-memory mirror; writes flow to a persistence
// backend through a single background writer so callers never block on I/O.
package history

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Defaults for store construction.
const (
	DefaultCapacity  = 1000
	DefaultRetention = 30 * 24 * time.Hour

	loadTimeout   = 5 * time.Second
	writeQueueLen = 256
)

// ErrInvalidCapacity is returned for a negative capacity configuration.
var ErrInvalidCapacity = errors.New("history: capacity must not be negative")

// ErrInvalidRetention is returned for a negative retention configuration.
var ErrInvalidRetention = errors.New("history: retention must not be negative")

// Record is a single historical search entry, keyed by case-folded query
// text. Frequency is monotonically incremented on repeats.
type Record struct {
	Query           string
	LastSeen        time.Time
	Frequency       int
	LastResultCount int
}

// Backend is the persistence collaborator. All methods may be slow or fail;
// the store degrades to memory-only behavior on backend errors.
type Backend interface {
	Save(ctx context.Context, key string, rec Record) error
	Delete(ctx context.Context, key string) error
	Load(ctx context.Context) (map[string]Record, error)
}

// Config controls store capacity and retention.
// Zero values select the defaults; negative values are rejected.
type Config struct {
	Capacity  int
	Retention time.Duration
}

// Store is the query history store. Safe for concurrent use: reads take a
// shared lock over the mirror, mutations are serialized by an exclusive
// lock, and backend writes are serialized by a single goroutine.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record

	capacity  int
	retention time.Duration

	backend Backend
	writeCh chan persistOp
	done    chan struct{}

	logger *slog.Logger
	now    func() time.Time

	closeOnce sync.Once
}

type persistOp struct {
	del bool
	key string
	rec Record
}

// NewStore creates a history store, loading the in-memory mirror from the
// backend. A nil backend yields a memory-only store.
func NewStore(cfg Config, backend Backend, logger *slog.Logger) (*Store, error) {
	if cfg.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	if cfg.Retention < 0 {
		return nil, ErrInvalidRetention
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Retention == 0 {
		cfg.Retention = DefaultRetention
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		records:   make(map[string]*Record),
		capacity:  cfg.Capacity,
		retention: cfg.Retention,
		backend:   backend,
		logger:    logger,
		now:       time.Now,
	}

	if backend != nil {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		loaded, err := backend.Load(ctx)
		if err != nil {
			// Degraded start: the mirror begins empty and repopulates
			// as the user searches.
			logger.Warn("history backend load failed, starting empty", "error", err)
		} else {
			for key, rec := range loaded {
				r := rec
				s.records[key] = &r
			}
		}

		s.writeCh = make(chan persistOp, writeQueueLen)
		s.done = make(chan struct{})
		go s.writeLoop()
	}

	return s, nil
}

// SetClock replaces the store's time source for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Key returns the case-folded identity key for a query text.
func Key(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Record notes one execution of a query. An existing entry is updated in
// place (frequency incremented, timestamp and result count refreshed);
// a new entry is inserted otherwise. Exceeding capacity evicts the least
// recently seen entries, ties broken by key, until back under capacity.
func (s *Store) Record(query string, resultCount int) {
	key := Key(query)
	if key == "" {
		return
	}

	s.mu.Lock()
	now := s.now()
	rec, ok := s.records[key]
	if ok {
		rec.Frequency++
		rec.LastSeen = now
		rec.LastResultCount = resultCount
	} else {
		rec = &Record{
			Query:           query,
			LastSeen:        now,
			Frequency:       1,
			LastResultCount: resultCount,
		}
		s.records[key] = rec
	}

	// Enqueue before releasing the lock so the backend sees mutations in
	// mirror order; the send is non-blocking.
	s.enqueue(persistOp{key: key, rec: *rec})
	for len(s.records) > s.capacity {
		evictKey := s.oldestKeyLocked()
		delete(s.records, evictKey)
		s.enqueue(persistOp{del: true, key: evictKey})
	}
	s.mu.Unlock()
}

// Lookup returns records whose text contains partial or is contained by it
// (case-insensitive, bidirectional), ordered by frequency descending with
// more recent entries first on ties.
func (s *Store) Lookup(partial string) []Record {
	needle := strings.ToLower(strings.TrimSpace(partial))
	if needle == "" {
		return nil
	}

	s.mu.RLock()
	var out []Record
	for key, rec := range s.records {
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			out = append(out, *rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].LastSeen.After(out[j].LastSeen)
	})
	return out
}

// Prune removes entries older than the retention window regardless of
// capacity pressure. It returns the number removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.retention)
	var removed []string
	for key, rec := range s.records {
		if rec.LastSeen.Before(cutoff) {
			removed = append(removed, key)
		}
	}
	for _, key := range removed {
		delete(s.records, key)
		s.enqueue(persistOp{del: true, key: key})
	}
	s.mu.Unlock()

	return len(removed)
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close stops the background writer after draining queued writes.
// Safe to call multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.writeCh != nil {
			close(s.writeCh)
			<-s.done
		}
	})
	return nil
}

// oldestKeyLocked returns the eviction candidate: the least recently seen
// record, ties broken by lexicographically smallest key so eviction is
// deterministic. Caller holds the write lock.
func (s *Store) oldestKeyLocked() string {
	var oldestKey string
	var oldest time.Time
	for key, rec := range s.records {
		if oldestKey == "" ||
			rec.LastSeen.Before(oldest) ||
			(rec.LastSeen.Equal(oldest) && key < oldestKey) {
			oldestKey = key
			oldest = rec.LastSeen
		}
	}
	return oldestKey
}

// enqueue hands an op to the background writer without blocking. A full
// queue drops the op: the mirror stays correct and the backend catches up
// on the next write for the same key.
func (s *Store) enqueue(op persistOp) {
	if s.writeCh == nil {
		return
	}
	select {
	case s.writeCh <- op:
	default:
		s.logger.Warn("history write queue full, dropping persist op", "key", op.key)
	}
}

func (s *Store) writeLoop() {
	defer close(s.done)
	for op := range s.writeCh {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		var err error
		if op.del {
			err = s.backend.Delete(ctx, op.key)
		} else {
			err = s.backend.Save(ctx, op.key, op.rec)
		}
		cancel()
		if err != nil {
			s.logger.Warn("history persist failed", "key", op.key, "delete", op.del, "error", err)
		}
	}
}
