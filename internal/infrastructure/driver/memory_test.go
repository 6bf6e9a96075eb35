package driver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()

	_, err := ms.Get(ctx, "missing")
	assert.Equal(t, ErrKeyNotFound, err)

	require.NoError(t, ms.Set(ctx, "k", "v1"))
	value, err := ms.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	require.NoError(t, ms.Set(ctx, "k", "v2"))
	value, _ = ms.Get(ctx, "k")
	assert.Equal(t, "v2", value)

	require.NoError(t, ms.Remove(ctx, "k"))
	_, err = ms.Get(ctx, "k")
	assert.Equal(t, ErrKeyNotFound, err)
}

func TestMemoryStoreSetEX(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()

	require.NoError(t, ms.SetEX(ctx, "session", "token", 5*time.Millisecond))
	ok, err := ms.Exists(ctx, "session")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		ok, _ := ms.Exists(ctx, "session")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStoreListKeys(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	ms.Set(ctx, "@media_progress_l1", "a")
	ms.Set(ctx, "@media_progress_l2", "b")
	ms.Set(ctx, "course_progress_c1", "c")

	keys, err := ms.ListKeys(ctx, "@media_progress_*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"@media_progress_l1", "@media_progress_l2"}, keys)

	keys, err = ms.ListKeys(ctx, "no_such_prefix_*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryStoreMultiGet(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	ms.Set(ctx, "a", "1")
	ms.Set(ctx, "c", "3")

	entries, err := ms.MultiGet(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].OK)
	assert.Equal(t, "1", entries[0].Value)
	assert.False(t, entries[1].OK)
	assert.True(t, entries[2].OK)
	assert.Equal(t, "3", entries[2].Value)
}

func TestMemoryStoreMultiRemove(t *testing.T) {
	ctx := context.Background()
	ms := NewMemoryStore()
	ms.Set(ctx, "a", "1")
	ms.Set(ctx, "b", "2")

	require.NoError(t, ms.MultiRemove(ctx, []string{"a", "b", "never_existed"}))
	ok, _ := ms.Exists(ctx, "a")
	assert.False(t, ok)
	ok, _ = ms.Exists(ctx, "b")
	assert.False(t, ok)
}
