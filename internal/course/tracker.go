package course

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// KeyPrefix namespace for course progress records
const KeyPrefix = "course_progress_"

// Tracker derives course completion from the set of completed lesson ids and
// fires the completion notification exactly once per course lifetime.
//
// The tracker is a best-effort subsystem: storage failures are logged and
// swallowed so a broken kv store can never block lesson playback.
type Tracker struct {
	kv       driver.KeyValueDB
	notifier domain.CompletionNotifier
	logger   *zap.Logger
}

var _ domain.CourseTracker = &Tracker{}

// NewTracker create a course completion tracker
func NewTracker(kv driver.KeyValueDB, notifier domain.CompletionNotifier, logger *zap.Logger) *Tracker {
	return &Tracker{kv: kv, notifier: notifier, logger: logger}
}

// GetCourseProgress implement domain.CourseTracker
func (t *Tracker) GetCourseProgress(ctx context.Context, courseID string) (*domain.CourseProgress, bool) {
	data, err := t.kv.Get(ctx, KeyPrefix+courseID)
	if err != nil {
		if !errors.Is(err, driver.ErrKeyNotFound) {
			t.logger.Error("Failed to read course progress",
				zap.String("course.id", courseID), zap.Error(err))
		}
		return nil, false
	}
	progress := new(domain.CourseProgress)
	if err := json.Unmarshal([]byte(data), progress); err != nil {
		t.logger.Error("Failed to decode course progress record",
			zap.String("course.id", courseID), zap.Error(err))
		return nil, false
	}
	return progress, true
}

// InitializeCourseProgress implement domain.CourseTracker
func (t *Tracker) InitializeCourseProgress(ctx context.Context, courseID, courseName string, totalLessons int) {
	if _, exists := t.GetCourseProgress(ctx, courseID); exists {
		// never overwrite existing progress, even with differing arguments
		return
	}
	progress := newProgress(courseID, courseName, totalLessons)
	t.persist(ctx, progress)
}

// MarkLessonCompleted implement domain.CourseTracker
func (t *Tracker) MarkLessonCompleted(ctx context.Context, courseID, courseName, lessonID string, totalLessons int) bool {
	span, ctx := apm.StartSpan(ctx, "Tracker.MarkLessonCompleted", "service")
	defer span.End()

	progress, exists := t.GetCourseProgress(ctx, courseID)
	if !exists {
		// lenient path kept for parity with persisted data: the arguments of
		// this call become the permanent record
		t.logger.Warn("Marking lesson on an uninitialized course",
			zap.String("course.id", courseID), zap.String("lesson.id", lessonID))
		progress = newProgress(courseID, courseName, totalLessons)
	}

	if progress.HasLesson(lessonID) {
		return len(progress.CompletedLessons) >= totalLessons
	}

	progress.CompletedLessons = append(progress.CompletedLessons, lessonID)
	progress.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	isComplete := len(progress.CompletedLessons) >= totalLessons
	if isComplete && !progress.NotificationSent {
		// notify before persisting: a crash in between re-notifies on retry,
		// which beats losing the alert entirely
		t.notifier.SendCourseCompletion(ctx, progress.CourseName)
		progress.NotificationSent = true
	}

	t.persist(ctx, progress)
	return isComplete
}

// IsLessonCompleted implement domain.CourseTracker
func (t *Tracker) IsLessonCompleted(ctx context.Context, courseID, lessonID string) bool {
	progress, exists := t.GetCourseProgress(ctx, courseID)
	if !exists {
		return false
	}
	return progress.HasLesson(lessonID)
}

// GetCourseCompletionPercentage implement domain.CourseTracker
func (t *Tracker) GetCourseCompletionPercentage(ctx context.Context, courseID string) int {
	progress, exists := t.GetCourseProgress(ctx, courseID)
	if !exists || progress.TotalLessons == 0 {
		return 0
	}
	ratio := float64(len(progress.CompletedLessons)) / float64(progress.TotalLessons)
	return int(math.Round(ratio * 100))
}

// ResetCourseProgress implement domain.CourseTracker
func (t *Tracker) ResetCourseProgress(ctx context.Context, courseID string) {
	if err := t.kv.Remove(ctx, KeyPrefix+courseID); err != nil {
		t.logger.Error("Failed to reset course progress",
			zap.String("course.id", courseID), zap.Error(err))
	}
}

func (t *Tracker) persist(ctx context.Context, progress *domain.CourseProgress) {
	data, err := json.Marshal(progress)
	if err != nil {
		t.logger.Error("Failed to encode course progress",
			zap.String("course.id", progress.CourseID), zap.Error(err))
		return
	}
	if err := t.kv.Set(ctx, KeyPrefix+progress.CourseID, string(data)); err != nil {
		t.logger.Error("Failed to save course progress",
			zap.String("course.id", progress.CourseID), zap.Error(err))
	}
}

func newProgress(courseID, courseName string, totalLessons int) *domain.CourseProgress {
	return &domain.CourseProgress{
		CourseID:         courseID,
		CourseName:       courseName,
		TotalLessons:     totalLessons,
		CompletedLessons: []string{},
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
		NotificationSent: false,
	}
}
