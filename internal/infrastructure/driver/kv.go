package driver

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound returned by Get when the key has no value
var ErrKeyNotFound = errors.New("key not found")

// KeyValueDB define a key-value storage interface.
//
// Each component owns a distinct key prefix by convention; the store itself
// enforces nothing. All operations may fail with a generic I/O error.
type KeyValueDB interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	SetEX(ctx context.Context, key string, value string, expiration time.Duration) error
	Remove(ctx context.Context, key string) error
	// ListKeys returns every key matching the glob pattern, eg. "prefix*".
	ListKeys(ctx context.Context, pattern string) ([]string, error)
	// MultiGet preserves the order of keys; missing keys yield entries with
	// OK=false.
	MultiGet(ctx context.Context, keys []string) ([]KeyValue, error)
	MultiRemove(ctx context.Context, keys []string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping() error
}

// KeyValue one entry of a MultiGet result
type KeyValue struct {
	Key   string
	Value string
	OK    bool
}
