package notification

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"github.com/bonecole/appcore/internal/infrastructure/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureSink struct {
	mu        sync.Mutex
	delivered []Content
}

func (cs *captureSink) Deliver(content Content) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.delivered = append(cs.delivered, content)
}

func (cs *captureSink) Delivered() []Content {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]Content(nil), cs.delivered...)
}

func newTestScheduler(allow bool, cfg Config) (*Scheduler, *captureSink, driver.KeyValueDB) {
	sink := &captureSink{}
	provider := NewTimerProvider(sink, allow, uuid.NewNanoIDGenerator(21))
	kv := driver.NewMemoryStore()
	return NewScheduler(provider, kv, cfg, zap.NewNop()), sink, kv
}

func pendingTitles(s *Scheduler) []string {
	var titles []string
	for _, request := range s.Scheduled(context.Background()) {
		titles = append(titles, request.Content.Title)
	}
	return titles
}

func TestBootstrapFirstLaunch(t *testing.T) {
	ctx := context.Background()
	scheduler, _, kv := newTestScheduler(true, Config{InactivityDelay: time.Hour})

	scheduler.BootstrapFirstLaunch(ctx)

	asked, err := kv.Exists(ctx, PermissionAskedKey)
	require.NoError(t, err)
	assert.True(t, asked)
	assert.Equal(t, []string{inactivityTitle}, pendingTitles(scheduler))

	// later launches never re-ask or re-schedule
	scheduler.BootstrapFirstLaunch(ctx)
	assert.Len(t, pendingTitles(scheduler), 1)
}

func TestBootstrapPermissionDenied(t *testing.T) {
	ctx := context.Background()
	scheduler, _, kv := newTestScheduler(false, Config{InactivityDelay: time.Hour})

	scheduler.BootstrapFirstLaunch(ctx)

	// the flag is set even on denial so the user is never asked twice
	asked, _ := kv.Exists(ctx, PermissionAskedKey)
	assert.True(t, asked)
	assert.Empty(t, pendingTitles(scheduler))
}

func TestHandleAppForegroundSupersedesInactivityReminder(t *testing.T) {
	ctx := context.Background()
	scheduler, _, kv := newTestScheduler(true, Config{InactivityDelay: time.Hour})
	scheduler.BootstrapFirstLaunch(ctx)

	first, err := kv.Get(ctx, InactivityHandleKey)
	require.NoError(t, err)

	scheduler.HandleAppForeground(ctx)

	second, err := kv.Get(ctx, InactivityHandleKey)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{inactivityTitle}, pendingTitles(scheduler))

	_, err = kv.Get(ctx, LastAppOpenKey)
	assert.NoError(t, err)
}

func TestForegroundWithoutPermissionStillRecordsTimestamp(t *testing.T) {
	ctx := context.Background()
	scheduler, _, kv := newTestScheduler(false, Config{InactivityDelay: time.Hour})
	scheduler.BootstrapFirstLaunch(ctx)

	scheduler.HandleAppForeground(ctx)

	_, err := kv.Get(ctx, LastAppOpenKey)
	assert.NoError(t, err)
	assert.Empty(t, pendingTitles(scheduler))
}

func TestScheduleLessonReminderSupersedes(t *testing.T) {
	ctx := context.Background()
	scheduler, _, kv := newTestScheduler(true, Config{LessonDelay: time.Hour})
	require.True(t, scheduler.RequestPermissions(ctx))

	scheduler.ScheduleLessonReminder(ctx, "l1", "Mathématiques")
	first, err := kv.Get(ctx, LessonHandlePrefix+"l1")
	require.NoError(t, err)

	scheduler.ScheduleLessonReminder(ctx, "l1", "Mathématiques")
	second, err := kv.Get(ctx, LessonHandlePrefix+"l1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, pendingTitles(scheduler), 1)
}

func TestCancelLessonReminder(t *testing.T) {
	ctx := context.Background()
	scheduler, _, kv := newTestScheduler(true, Config{LessonDelay: time.Hour})
	require.True(t, scheduler.RequestPermissions(ctx))

	// cancelling a reminder that was never scheduled is a silent no-op
	scheduler.CancelLessonReminder(ctx, "l1")

	scheduler.ScheduleLessonReminder(ctx, "l1", "Physique")
	scheduler.CancelLessonReminder(ctx, "l1")

	assert.Empty(t, pendingTitles(scheduler))
	ok, _ := kv.Exists(ctx, LessonHandlePrefix+"l1")
	assert.False(t, ok)
}

func TestLessonReminderDelivery(t *testing.T) {
	ctx := context.Background()
	scheduler, sink, _ := newTestScheduler(true, Config{LessonDelay: 5 * time.Millisecond})
	require.True(t, scheduler.RequestPermissions(ctx))

	scheduler.ScheduleLessonReminder(ctx, "l1", "Chimie")

	assert.Eventually(t, func() bool {
		return len(sink.Delivered()) == 1
	}, time.Second, 2*time.Millisecond)

	content := sink.Delivered()[0]
	assert.Equal(t, lessonTitle, content.Title)
	assert.True(t, strings.Contains(content.Body, "Chimie"))
	assert.Equal(t, "l1", content.Data["lessonId"])
	assert.Empty(t, pendingTitles(scheduler))
}

func TestSendCourseCompletion(t *testing.T) {
	ctx := context.Background()
	scheduler, sink, _ := newTestScheduler(true, Config{})
	require.True(t, scheduler.RequestPermissions(ctx))

	scheduler.SendCourseCompletion(ctx, "Mathématiques")

	delivered := sink.Delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, completionTitle, delivered[0].Title)
	assert.True(t, strings.Contains(delivered[0].Body, "Mathématiques"))
}

func TestOperationsAreNoOpsWithoutPermission(t *testing.T) {
	ctx := context.Background()
	scheduler, sink, _ := newTestScheduler(false, Config{LessonDelay: time.Millisecond})
	scheduler.RequestPermissions(ctx)

	scheduler.ScheduleLessonReminder(ctx, "l1", "Anglais")
	scheduler.SendCourseCompletion(ctx, "Anglais")

	assert.Empty(t, pendingTitles(scheduler))
	assert.Empty(t, sink.Delivered())
}
