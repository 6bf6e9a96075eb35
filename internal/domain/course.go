package domain

import "context"

// CourseProgress tracks which lessons of a course the user has finished.
// CompletedLessons is append-only until the record is reset, and
// NotificationSent flips false to true exactly once.
type CourseProgress struct {
	CourseID         string   `json:"courseId"`
	CourseName       string   `json:"courseName"`
	TotalLessons     int      `json:"totalLessons"`
	CompletedLessons []string `json:"completedLessons"`
	LastUpdated      string   `json:"lastUpdated"`
	NotificationSent bool     `json:"notificationSent"`
}

// IsComplete reports whether every lesson of the course has been completed.
func (cp *CourseProgress) IsComplete() bool {
	return len(cp.CompletedLessons) >= cp.TotalLessons
}

// HasLesson reports whether the lesson is already in the completed list.
func (cp *CourseProgress) HasLesson(lessonID string) bool {
	for _, id := range cp.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// CourseTracker derives course completion from completed lesson ids and fires
// the completion notification the first time a course becomes complete.
// All of its write paths are best-effort: storage failures are logged, never
// returned.
type CourseTracker interface {
	GetCourseProgress(ctx context.Context, courseID string) (*CourseProgress, bool)
	// InitializeCourseProgress creates a zero-progress record only if none
	// exists. Existing records are never overwritten, even when the arguments
	// differ.
	InitializeCourseProgress(ctx context.Context, courseID, courseName string, totalLessons int)
	// MarkLessonCompleted appends the lesson to the completed list and returns
	// whether the course is now complete. Re-marking a completed lesson is a
	// no-op apart from the return value.
	MarkLessonCompleted(ctx context.Context, courseID, courseName, lessonID string, totalLessons int) bool
	IsLessonCompleted(ctx context.Context, courseID, lessonID string) bool
	// GetCourseCompletionPercentage returns an integer in [0,100], 0 when no
	// record exists or the course has no lessons.
	GetCourseCompletionPercentage(ctx context.Context, courseID string) int
	// ResetCourseProgress deletes the record entirely; a later completion can
	// notify again.
	ResetCourseProgress(ctx context.Context, courseID string)
}

// CompletionNotifier is the tracker's view of the notification scheduler.
type CompletionNotifier interface {
	SendCourseCompletion(ctx context.Context, courseName string)
}
