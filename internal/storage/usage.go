package storage

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bonecole/appcore/internal/domain"
	"go.uber.org/zap"
)

const mbPerGB = 1024

var sizePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(MB|GB)`)

// Estimator computes aggregate downloaded-content size against a fixed device
// capacity. It holds no state beyond configuration; every method is a pure
// computation over its inputs.
type Estimator struct {
	capacityGB int
	bookSizeMB int // flat per-book estimate
	logger     *zap.Logger
}

// NewEstimator create an estimator for the given device capacity
func NewEstimator(capacityGB, averageBookSizeMB int, logger *zap.Logger) *Estimator {
	return &Estimator{capacityGB: capacityGB, bookSizeMB: averageBookSizeMB, logger: logger}
}

// ParseSizeToMB parses "25 MB" or "1.5 GB" style strings (unit
// case-insensitive). Unparseable input yields 0 and a warning, never an error.
func (e *Estimator) ParseSizeToMB(sizeString string) float64 {
	match := sizePattern.FindStringSubmatch(strings.ToUpper(sizeString))
	if match == nil {
		e.logger.Warn("Could not parse size string", zap.String("size", sizeString))
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		e.logger.Warn("Could not parse size string", zap.String("size", sizeString))
		return 0
	}
	if match[2] == "GB" {
		return value * mbPerGB
	}
	return value
}

// CalculateCourseSizeMB sum of the course's lesson sizes
func (e *Estimator) CalculateCourseSizeMB(course *domain.DownloadedCourse) float64 {
	var total float64
	for _, lesson := range course.Lessons {
		total += e.ParseSizeToMB(lesson.Size)
	}
	return total
}

// CalculateTotalCoursesSizeMB sum over all downloaded courses
func (e *Estimator) CalculateTotalCoursesSizeMB(courses []*domain.DownloadedCourse) float64 {
	var total float64
	for _, course := range courses {
		total += e.CalculateCourseSizeMB(course)
	}
	return total
}

// CalculateTotalBooksSizeMB flat per-book estimate times book count
func (e *Estimator) CalculateTotalBooksSizeMB(books []*domain.DownloadedBook) float64 {
	return float64(len(books) * e.bookSizeMB)
}

// CalculateTotalDownloadedSizeMB courses plus books
func (e *Estimator) CalculateTotalDownloadedSizeMB(courses []*domain.DownloadedCourse, books []*domain.DownloadedBook) float64 {
	return e.CalculateTotalCoursesSizeMB(courses) + e.CalculateTotalBooksSizeMB(books)
}

// FormatSize renders a size in MB with French units: Ko below 1 MB, Mo below
// 1 GB, Go above.
func FormatSize(sizeMB float64) string {
	if sizeMB < 1 {
		return fmt.Sprintf("%d Ko", int(math.Round(sizeMB*1024)))
	}
	if sizeMB < mbPerGB {
		return fmt.Sprintf("%d Mo", int(math.Round(sizeMB)))
	}
	return fmt.Sprintf("%.2f Go", sizeMB/mbPerGB)
}

// Status derived storage usage snapshot
type Status struct {
	UsedMB          float64 `json:"usedMB"`
	UsedFormatted   string  `json:"usedFormatted"`
	TotalGB         int     `json:"totalGB"`
	TotalFormatted  string  `json:"totalFormatted"`
	UsagePercentage float64 `json:"usagePercentage"`
	FreeFormatted   string  `json:"freeFormatted"`
}

// UsagePercentage used capacity in percent, clamped to 100
func (e *Estimator) UsagePercentage(usedMB float64) float64 {
	totalMB := float64(e.capacityGB * mbPerGB)
	return math.Min(usedMB/totalMB*100, 100)
}

// GetStorageStatus aggregate view over the downloaded content lists
func (e *Estimator) GetStorageStatus(courses []*domain.DownloadedCourse, books []*domain.DownloadedBook) *Status {
	usedMB := e.CalculateTotalDownloadedSizeMB(courses, books)
	totalMB := float64(e.capacityGB * mbPerGB)
	freeMB := math.Max(totalMB-usedMB, 0)
	return &Status{
		UsedMB:          usedMB,
		UsedFormatted:   FormatSize(usedMB),
		TotalGB:         e.capacityGB,
		TotalFormatted:  fmt.Sprintf("%d Go", e.capacityGB),
		UsagePercentage: e.UsagePercentage(usedMB),
		FreeFormatted:   FormatSize(freeMB),
	}
}
