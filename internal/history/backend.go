package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// KV is the subset of the local persistence collaborator the history store
// needs: get/set/delete/enumerate-by-prefix.
type KV interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	ListPrefix(ctx context.Context, prefix string) (map[string]string, error)
}

const kvPrefix = "history/"

// persistedRecord is the JSON form of a Record in the KV store.
type persistedRecord struct {
	Query           string `json:"query"`
	LastSeenUnixMs  int64  `json:"last_seen_unix_ms"`
	Frequency       int    `json:"frequency"`
	LastResultCount int    `json:"last_result_count"`
}

// KVBackend persists history records as JSON values under the "history/"
// key prefix of a key-value store.
type KVBackend struct {
	kv KV
}

// NewKVBackend wraps a key-value store as a history Backend.
func NewKVBackend(kv KV) *KVBackend {
	return &KVBackend{kv: kv}
}

// Save implements Backend.
func (b *KVBackend) Save(ctx context.Context, key string, rec Record) error {
	data, err := json.Marshal(persistedRecord{
		Query:           rec.Query,
		LastSeenUnixMs:  rec.LastSeen.UnixMilli(),
		Frequency:       rec.Frequency,
		LastResultCount: rec.LastResultCount,
	})
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}
	return b.kv.Set(ctx, kvPrefix+key, string(data))
}

// Delete implements Backend.
func (b *KVBackend) Delete(ctx context.Context, key string) error {
	return b.kv.Delete(ctx, kvPrefix+key)
}

// Load implements Backend. Malformed values are skipped, not fatal.
func (b *KVBackend) Load(ctx context.Context) (map[string]Record, error) {
	raw, err := b.kv.ListPrefix(ctx, kvPrefix)
	if err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}

	out := make(map[string]Record, len(raw))
	for fullKey, value := range raw {
		var pr persistedRecord
		if err := json.Unmarshal([]byte(value), &pr); err != nil {
			continue
		}
		key := strings.TrimPrefix(fullKey, kvPrefix)
		out[key] = Record{
			Query:           pr.Query,
			LastSeen:        time.UnixMilli(pr.LastSeenUnixMs),
			Frequency:       pr.Frequency,
			LastResultCount: pr.LastResultCount,
		}
	}
	return out, nil
}
