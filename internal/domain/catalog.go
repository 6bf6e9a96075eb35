package domain

import "context"

// Course is a catalog entry, not a progress record.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	GradeLevel  string   `json:"gradeLevel"`
	Lessons     []Lesson `json:"lessons"`
}

type Lesson struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         MediaType `json:"type"`
	Size         string    `json:"size"`
	Duration     string    `json:"duration,omitempty"`
	IsDownloaded bool      `json:"isDownloaded"`
	MediaURL     string    `json:"mediaUrl,omitempty"`
}

type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	PDFURL      string `json:"pdfUrl,omitempty"`
}

// DownloadedCourse is a course the user holds locally, possibly a subset of
// its lessons.
type DownloadedCourse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Thumbnail    string   `json:"thumbnail"`
	Lessons      []Lesson `json:"lessons"`
	DownloadedAt string   `json:"downloadedAt"`
}

type DownloadedBook struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Thumbnail    string `json:"thumbnail"`
	DownloadedAt string `json:"downloadedAt"`
	PDFURL       string `json:"pdfUrl,omitempty"`
}

type Catalog interface {
	Courses(ctx context.Context) []*Course
	Course(ctx context.Context, courseID string) (*Course, bool)
	Books(ctx context.Context) []*Book
	Book(ctx context.Context, bookID string) (*Book, bool)
}

// DownloadManager simulates content downloads with timers. Starting a
// download requires the connectivity gate to report connected.
type DownloadManager interface {
	DownloadLesson(ctx context.Context, courseID, lessonID string) error
	DownloadCourse(ctx context.Context, courseID string) error
	DownloadBook(ctx context.Context, bookID string) error
	DeleteLesson(ctx context.Context, courseID, lessonID string) error
	DeleteCourse(ctx context.Context, courseID string) error
	DeleteBook(ctx context.Context, bookID string) error
	DownloadedCourses(ctx context.Context) []*DownloadedCourse
	DownloadedBooks(ctx context.Context) []*DownloadedBook
}
