package progress

import (
	"context"
	"testing"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() (*Store, driver.KeyValueDB) {
	kv := driver.NewMemoryStore()
	return NewStore(kv, zap.NewNop()), kv
}

func TestSaveProgressRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	err := store.SaveProgress(ctx, &domain.MediaProgress{
		LessonID: "l1",
		Position: 125,
		Duration: 900,
		Type:     domain.MediaTypeVideo,
	})
	require.NoError(t, err)

	got, ok := store.GetProgress(ctx, "l1")
	require.True(t, ok)
	assert.Equal(t, "l1", got.LessonID)
	assert.Equal(t, int64(125), got.Position)
	assert.Equal(t, int64(900), got.Duration)
	assert.Equal(t, domain.MediaTypeVideo, got.Type)
	assert.NotEmpty(t, got.LastUpdated)
}

func TestSaveProgressOverwrites(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l1", Position: 10, Type: domain.MediaTypeAudio}))
	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l1", Position: 200, Type: domain.MediaTypeAudio}))

	got, ok := store.GetProgress(ctx, "l1")
	require.True(t, ok)
	assert.Equal(t, int64(200), got.Position)

	records := store.GetAllProgress(ctx)
	assert.Len(t, records, 1)
}

func TestGetProgressAbsent(t *testing.T) {
	store, _ := newTestStore()
	got, ok := store.GetProgress(context.Background(), "never_played")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetProgressCorruptRecord(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore()
	require.NoError(t, kv.Set(ctx, KeyPrefix+"l1", "{not json"))

	got, ok := store.GetProgress(ctx, "l1")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetAllProgressSkipsUnreadable(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore()

	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l1", Position: 5, Type: domain.MediaTypePDF}))
	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l2", Position: 30, Type: domain.MediaTypeVideo}))
	require.NoError(t, kv.Set(ctx, KeyPrefix+"l3", "broken"))

	records := store.GetAllProgress(ctx)
	require.Len(t, records, 2)
	ids := []string{records[0].LessonID, records[1].LessonID}
	assert.ElementsMatch(t, []string{"l1", "l2"}, ids)
}

func TestDeleteProgress(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l1", Position: 5, Type: domain.MediaTypeVideo}))
	require.NoError(t, store.DeleteProgress(ctx, "l1"))

	_, ok := store.GetProgress(ctx, "l1")
	assert.False(t, ok)
}

func TestClearAllProgress(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore()

	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l1", Position: 5, Type: domain.MediaTypeVideo}))
	require.NoError(t, store.SaveProgress(ctx, &domain.MediaProgress{LessonID: "l2", Position: 6, Type: domain.MediaTypeVideo}))
	// unrelated namespaces survive a clear
	require.NoError(t, kv.Set(ctx, "course_progress_c1", "{}"))

	require.NoError(t, store.ClearAllProgress(ctx))
	assert.Empty(t, store.GetAllProgress(ctx))
	ok, _ := kv.Exists(ctx, "course_progress_c1")
	assert.True(t, ok)
}
