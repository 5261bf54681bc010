package cache

import (
	"testing"
	"time"
)

func TestNewLRU_InvalidCapacity(t *testing.T) {
	t.Parallel()

	if _, err := NewLRU[string, int](0, 0); err != ErrInvalidCapacity {
		t.Errorf("NewLRU(0) error = %v, want ErrInvalidCapacity", err)
	}
	if _, err := NewLRU[string, int](-5, 0); err != ErrInvalidCapacity {
		t.Errorf("NewLRU(-5) error = %v, want ErrInvalidCapacity", err)
	}
}

func TestNewLRU_InvalidTTL(t *testing.T) {
	t.Parallel()

	if _, err := NewLRU[string, int](1, -time.Second); err != ErrInvalidTTL {
		t.Errorf("NewLRU(ttl=-1s) error = %v, want ErrInvalidTTL", err)
	}
}

func TestLRU_GetPut(t *testing.T) {
	t.Parallel()

	l, err := NewLRU[string, int](3, 0)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	l.Put("a", 1)
	l.Put("b", 2)

	if v, ok := l.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", v, ok)
	}
	if _, ok := l.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	l, err := NewLRU[string, int](2, 0)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	l.Put("a", 1)
	l.Put("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	l.Get("a")
	l.Put("c", 3)

	if _, ok := l.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := l.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if _, ok := l.Get("c"); !ok {
		t.Error("expected c to be present")
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	t.Parallel()

	l, err := NewLRU[string, int](10, 30*time.Minute)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	now := time.Unix(1700000000, 0)
	l.SetClock(func() time.Time { return now })

	l.Put("q", 7)
	if _, ok := l.Get("q"); !ok {
		t.Fatal("expected hit before expiry")
	}

	// One second before the boundary: still valid.
	now = now.Add(30*time.Minute - time.Second)
	if _, ok := l.Get("q"); !ok {
		t.Error("expected hit just before TTL boundary")
	}

	// At the boundary the entry is no longer valid.
	now = now.Add(time.Second)
	if _, ok := l.Get("q"); ok {
		t.Error("expected miss at TTL boundary")
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d after expired Get, want 0", l.Len())
	}
}

func TestLRU_PutResetsTTL(t *testing.T) {
	t.Parallel()

	l, err := NewLRU[string, int](10, time.Minute)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	now := time.Unix(1700000000, 0)
	l.SetClock(func() time.Time { return now })

	l.Put("q", 1)
	now = now.Add(45 * time.Second)
	l.Put("q", 2)
	now = now.Add(45 * time.Second)

	// 90s since first insert, 45s since update: still fresh.
	if v, ok := l.Get("q"); !ok || v != 2 {
		t.Errorf("Get(q) = %v, %v, want 2, true", v, ok)
	}
}

func TestLRU_Purge(t *testing.T) {
	t.Parallel()

	l, err := NewLRU[string, int](10, time.Minute)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	now := time.Unix(1700000000, 0)
	l.SetClock(func() time.Time { return now })

	l.Put("old", 1)
	now = now.Add(2 * time.Minute)
	l.Put("fresh", 2)

	if removed := l.Purge(); removed != 1 {
		t.Errorf("Purge() = %d, want 1", removed)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d after purge, want 1", l.Len())
	}
}

func TestLRU_DeleteAndClear(t *testing.T) {
	t.Parallel()

	l, err := NewLRU[string, int](10, 0)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	l.Put("a", 1)
	l.Put("b", 2)

	if !l.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if l.Delete("a") {
		t.Error("Delete(a) twice = true, want false")
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
}
