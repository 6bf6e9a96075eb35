package driver

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryStore in-process KeyValueDB used in tests and when running without a
// redis instance. Expirations are checked lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

var _ KeyValueDB = &MemoryStore{}

// NewMemoryStore create an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (ms *MemoryStore) lookup(key string) (string, bool) {
	entry, ok := ms.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

// Get implement KeyValueDB
func (ms *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if value, ok := ms.lookup(key); ok {
		return value, nil
	}
	return "", ErrKeyNotFound
}

// Set implement KeyValueDB
func (ms *MemoryStore) Set(ctx context.Context, key string, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryEntry{value: value}
	return nil
}

// SetEX implement KeyValueDB
func (ms *MemoryStore) SetEX(ctx context.Context, key string, value string, expiration time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	ms.entries[key] = entry
	return nil
}

// Remove implement KeyValueDB
func (ms *MemoryStore) Remove(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.entries, key)
	return nil
}

// ListKeys implement KeyValueDB
func (ms *MemoryStore) ListKeys(ctx context.Context, pattern string) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	var keys []string
	for key := range ms.entries {
		if _, live := ms.lookup(key); !live {
			continue
		}
		if ok, err := path.Match(pattern, key); err != nil {
			return nil, err
		} else if ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// MultiGet implement KeyValueDB
func (ms *MemoryStore) MultiGet(ctx context.Context, keys []string) ([]KeyValue, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	result := make([]KeyValue, len(keys))
	for i, key := range keys {
		result[i].Key = key
		if value, ok := ms.lookup(key); ok {
			result[i].Value = value
			result[i].OK = true
		}
	}
	return result, nil
}

// MultiRemove implement KeyValueDB
func (ms *MemoryStore) MultiRemove(ctx context.Context, keys []string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, key := range keys {
		delete(ms.entries, key)
	}
	return nil
}

// Exists implement KeyValueDB
func (ms *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, ok := ms.lookup(key)
	return ok, nil
}

// Ping implement KeyValueDB
func (ms *MemoryStore) Ping() error {
	return nil
}
