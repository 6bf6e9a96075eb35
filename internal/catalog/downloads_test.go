package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGate fixed-answer connectivity gate
type stubGate struct {
	connected bool
}

func (sg *stubGate) IsConnectedToKiosk() bool { return sg.connected }

func (sg *stubGate) IsSimulatorEnabled() bool { return false }

func (sg *stubGate) SimulatedConnectionState() bool { return false }

func (sg *stubGate) ToggleSimulator(ctx context.Context) bool { return false }

func (sg *stubGate) SetSimulatedConnectionState(ctx context.Context, state bool) {}

func (sg *stubGate) Subscribe(fn func(connected bool)) func() { return func() {} }

func newTestDownloads(connected bool) *Downloads {
	return NewDownloads(NewMemoryCatalog(), &stubGate{connected: connected}, DownloadConfig{
		LessonDelay: time.Millisecond,
		CourseDelay: 2 * time.Millisecond,
	}, zap.NewNop())
}

func lessonCount(downloads *Downloads, courseID string) int {
	for _, course := range downloads.DownloadedCourses(context.Background()) {
		if course.ID == courseID {
			return len(course.Lessons)
		}
	}
	return 0
}

func TestDownloadRequiresConnection(t *testing.T) {
	ctx := context.Background()
	downloads := newTestDownloads(false)

	assert.Equal(t, domain.ErrNotConnected, downloads.DownloadLesson(ctx, "1", "l1"))
	assert.Equal(t, domain.ErrNotConnected, downloads.DownloadCourse(ctx, "1"))
	assert.Equal(t, domain.ErrNotConnected, downloads.DownloadBook(ctx, "b1"))
	assert.Empty(t, downloads.DownloadedCourses(ctx))
}

func TestDownloadUnknownContent(t *testing.T) {
	ctx := context.Background()
	downloads := newTestDownloads(true)

	assert.Equal(t, domain.ErrNoSuchCourse, downloads.DownloadCourse(ctx, "999"))
	assert.Equal(t, domain.ErrNoSuchLesson, downloads.DownloadLesson(ctx, "1", "l999"))
	assert.Equal(t, domain.ErrNoSuchBook, downloads.DownloadBook(ctx, "b999"))
}

func TestDownloadLesson(t *testing.T) {
	ctx := context.Background()
	downloads := newTestDownloads(true)

	require.NoError(t, downloads.DownloadLesson(ctx, "1", "l1"))

	assert.Eventually(t, func() bool {
		return lessonCount(downloads, "1") == 1
	}, time.Second, time.Millisecond)

	courses := downloads.DownloadedCourses(ctx)
	require.Len(t, courses, 1)
	assert.Equal(t, "Mathématiques", courses[0].Title)
	require.Len(t, courses[0].Lessons, 1)
	assert.Equal(t, "l1", courses[0].Lessons[0].ID)
	assert.True(t, courses[0].Lessons[0].IsDownloaded)
	assert.NotEmpty(t, courses[0].DownloadedAt)
}

func TestDownloadWholeCourse(t *testing.T) {
	ctx := context.Background()
	downloads := newTestDownloads(true)

	require.NoError(t, downloads.DownloadCourse(ctx, "2"))

	assert.Eventually(t, func() bool {
		return lessonCount(downloads, "2") == 8
	}, time.Second, time.Millisecond)
}

func TestDownloadAndDeleteBook(t *testing.T) {
	ctx := context.Background()
	downloads := newTestDownloads(true)

	require.NoError(t, downloads.DownloadBook(ctx, "b1"))
	assert.Eventually(t, func() bool {
		return len(downloads.DownloadedBooks(ctx)) == 1
	}, time.Second, time.Millisecond)

	books := downloads.DownloadedBooks(ctx)
	assert.Equal(t, "Une si longue lettre", books[0].Title)

	require.NoError(t, downloads.DeleteBook(ctx, "b1"))
	assert.Empty(t, downloads.DownloadedBooks(ctx))
	assert.Equal(t, domain.ErrNoSuchBook, downloads.DeleteBook(ctx, "b1"))
}

func TestDeleteLessonAndCourse(t *testing.T) {
	ctx := context.Background()
	downloads := newTestDownloads(true)

	require.NoError(t, downloads.DownloadCourse(ctx, "1"))
	assert.Eventually(t, func() bool {
		return lessonCount(downloads, "1") == 8
	}, time.Second, time.Millisecond)

	require.NoError(t, downloads.DeleteLesson(ctx, "1", "l1"))
	assert.Equal(t, 7, lessonCount(downloads, "1"))
	assert.Equal(t, domain.ErrNoSuchLesson, downloads.DeleteLesson(ctx, "1", "l1"))

	require.NoError(t, downloads.DeleteCourse(ctx, "1"))
	assert.Empty(t, downloads.DownloadedCourses(ctx))
	assert.Equal(t, domain.ErrNoSuchCourse, downloads.DeleteCourse(ctx, "1"))
}
