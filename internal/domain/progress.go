package domain

import "context"

// MediaType discriminates how Position is interpreted: milliseconds for
// video and audio, page number for pdf.
type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
	MediaTypePDF   MediaType = "pdf"
)

// MediaProgress records where the user left off in a lesson or book. At most
// one record exists per lesson, overwritten on every save.
type MediaProgress struct {
	LessonID    string    `json:"lessonId" validate:"required"`
	Position    int64     `json:"position" validate:"min=0"`
	Duration    int64     `json:"duration,omitempty"`
	LastUpdated string    `json:"lastUpdated"`
	Type        MediaType `json:"type" validate:"oneof=video audio pdf"`
}

type ProgressStore interface {
	// SaveProgress overwrites any prior record for the lesson. Write failures
	// propagate so the caller can surface a retry affordance.
	SaveProgress(ctx context.Context, progress *MediaProgress) error
	// GetProgress treats read and parse failures as "no progress".
	GetProgress(ctx context.Context, lessonID string) (*MediaProgress, bool)
	DeleteProgress(ctx context.Context, lessonID string) error
	// GetAllProgress discards unreadable entries silently.
	GetAllProgress(ctx context.Context) []*MediaProgress
	ClearAllProgress(ctx context.Context) error
}
