package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"go.uber.org/zap"
)

// DownloadConfig simulated transfer durations
type DownloadConfig struct {
	LessonDelay time.Duration // single lesson
	CourseDelay time.Duration // whole course
}

// Downloads simulates content downloads: starting one requires the
// connectivity gate to report connected, a timer then flips the downloaded
// state. No files are transferred or stored.
type Downloads struct {
	catalog domain.Catalog
	gate    domain.ConnectivityGate
	cfg     DownloadConfig
	logger  *zap.Logger

	mu      sync.Mutex
	courses map[string]*courseState // courseID → downloaded lessons
	books   map[string]string       // bookID → downloadedAt
}

type courseState struct {
	downloadedAt string
	lessons      map[string]bool
}

var _ domain.DownloadManager = &Downloads{}

// NewDownloads create a download manager over the catalog
func NewDownloads(catalog domain.Catalog, gate domain.ConnectivityGate, cfg DownloadConfig, logger *zap.Logger) *Downloads {
	return &Downloads{
		catalog: catalog,
		gate:    gate,
		cfg:     cfg,
		logger:  logger,
		courses: make(map[string]*courseState),
		books:   make(map[string]string),
	}
}

// DownloadLesson implement domain.DownloadManager
func (d *Downloads) DownloadLesson(ctx context.Context, courseID, lessonID string) error {
	if !d.gate.IsConnectedToKiosk() {
		return domain.ErrNotConnected
	}
	course, ok := d.catalog.Course(ctx, courseID)
	if !ok {
		return domain.ErrNoSuchCourse
	}
	if !hasLesson(course, lessonID) {
		return domain.ErrNoSuchLesson
	}
	time.AfterFunc(d.cfg.LessonDelay, func() {
		d.markLessons(courseID, lessonID)
		d.logger.Info("Lesson download finished",
			zap.String("course.id", courseID), zap.String("lesson.id", lessonID))
	})
	return nil
}

// DownloadCourse implement domain.DownloadManager
func (d *Downloads) DownloadCourse(ctx context.Context, courseID string) error {
	if !d.gate.IsConnectedToKiosk() {
		return domain.ErrNotConnected
	}
	course, ok := d.catalog.Course(ctx, courseID)
	if !ok {
		return domain.ErrNoSuchCourse
	}
	lessonIDs := make([]string, len(course.Lessons))
	for i, lesson := range course.Lessons {
		lessonIDs[i] = lesson.ID
	}
	time.AfterFunc(d.cfg.CourseDelay, func() {
		d.markLessons(courseID, lessonIDs...)
		d.logger.Info("Course download finished", zap.String("course.id", courseID))
	})
	return nil
}

// DownloadBook implement domain.DownloadManager
func (d *Downloads) DownloadBook(ctx context.Context, bookID string) error {
	if !d.gate.IsConnectedToKiosk() {
		return domain.ErrNotConnected
	}
	if _, ok := d.catalog.Book(ctx, bookID); !ok {
		return domain.ErrNoSuchBook
	}
	time.AfterFunc(d.cfg.LessonDelay, func() {
		d.mu.Lock()
		d.books[bookID] = now()
		d.mu.Unlock()
		d.logger.Info("Book download finished", zap.String("book.id", bookID))
	})
	return nil
}

// DeleteLesson implement domain.DownloadManager
func (d *Downloads) DeleteLesson(ctx context.Context, courseID, lessonID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	state, ok := d.courses[courseID]
	if !ok || !state.lessons[lessonID] {
		return domain.ErrNoSuchLesson
	}
	delete(state.lessons, lessonID)
	if len(state.lessons) == 0 {
		delete(d.courses, courseID)
	}
	return nil
}

// DeleteCourse implement domain.DownloadManager
func (d *Downloads) DeleteCourse(ctx context.Context, courseID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.courses[courseID]; !ok {
		return domain.ErrNoSuchCourse
	}
	delete(d.courses, courseID)
	return nil
}

// DeleteBook implement domain.DownloadManager
func (d *Downloads) DeleteBook(ctx context.Context, bookID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.books[bookID]; !ok {
		return domain.ErrNoSuchBook
	}
	delete(d.books, bookID)
	return nil
}

// DownloadedCourses implement domain.DownloadManager
func (d *Downloads) DownloadedCourses(ctx context.Context) []*domain.DownloadedCourse {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []*domain.DownloadedCourse
	for courseID, state := range d.courses {
		course, ok := d.catalog.Course(ctx, courseID)
		if !ok {
			continue
		}
		downloaded := &domain.DownloadedCourse{
			ID:           course.ID,
			Title:        course.Title,
			Thumbnail:    course.Thumbnail,
			DownloadedAt: state.downloadedAt,
		}
		for _, lesson := range course.Lessons {
			if state.lessons[lesson.ID] {
				lesson.IsDownloaded = true
				downloaded.Lessons = append(downloaded.Lessons, lesson)
			}
		}
		result = append(result, downloaded)
	}
	return result
}

// DownloadedBooks implement domain.DownloadManager
func (d *Downloads) DownloadedBooks(ctx context.Context) []*domain.DownloadedBook {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []*domain.DownloadedBook
	for bookID, downloadedAt := range d.books {
		book, ok := d.catalog.Book(ctx, bookID)
		if !ok {
			continue
		}
		result = append(result, &domain.DownloadedBook{
			ID:           book.ID,
			Title:        book.Title,
			Author:       book.Author,
			Thumbnail:    book.Thumbnail,
			DownloadedAt: downloadedAt,
			PDFURL:       book.PDFURL,
		})
	}
	return result
}

func (d *Downloads) markLessons(courseID string, lessonIDs ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	state, ok := d.courses[courseID]
	if !ok {
		state = &courseState{downloadedAt: now(), lessons: make(map[string]bool)}
		d.courses[courseID] = state
	}
	for _, id := range lessonIDs {
		state.lessons[id] = true
	}
}

func hasLesson(course *domain.Course, lessonID string) bool {
	for _, lesson := range course.Lessons {
		if lesson.ID == lessonID {
			return true
		}
	}
	return false
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
