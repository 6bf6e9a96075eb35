package storage

import (
	"testing"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestEstimator() *Estimator {
	return NewEstimator(32, 5, zap.NewNop())
}

func TestParseSizeToMB(t *testing.T) {
	e := newTestEstimator()

	cases := []struct {
		input string
		want  float64
	}{
		{"25 MB", 25},
		{"2.3 MB", 2.3},
		{"45MB", 45},
		{"1.5 GB", 1536},
		{"2 GB", 2048},
		{"12 mb", 12},
		{"garbage", 0},
		{"", 0},
		{"MB", 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, e.ParseSizeToMB(tc.input), 0.001, "input %q", tc.input)
	}
}

func TestCalculateCourseSizeMB(t *testing.T) {
	e := newTestEstimator()
	course := &domain.DownloadedCourse{
		Lessons: []domain.Lesson{
			{ID: "l1", Size: "45 MB"},
			{ID: "l2", Size: "2.3 MB"},
			{ID: "l3", Size: "not a size"},
		},
	}
	assert.InDelta(t, 47.3, e.CalculateCourseSizeMB(course), 0.001)
}

func TestCalculateTotalDownloadedSizeMB(t *testing.T) {
	e := newTestEstimator()
	courses := []*domain.DownloadedCourse{
		{Lessons: []domain.Lesson{{ID: "l1", Size: "100 MB"}}},
		{Lessons: []domain.Lesson{{ID: "l1", Size: "50 MB"}, {ID: "l2", Size: "50 MB"}}},
	}
	books := []*domain.DownloadedBook{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}

	// every book counts a flat 5 MB
	assert.InDelta(t, 215, e.CalculateTotalDownloadedSizeMB(courses, books), 0.001)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 Ko", FormatSize(0.5))
	assert.Equal(t, "25 Mo", FormatSize(25))
	assert.Equal(t, "1023 Mo", FormatSize(1023))
	assert.Equal(t, "1.50 Go", FormatSize(1536))
	assert.Equal(t, "32.00 Go", FormatSize(32*1024))
}

func TestUsagePercentageClamped(t *testing.T) {
	e := newTestEstimator()

	assert.InDelta(t, 0, e.UsagePercentage(0), 0.001)
	assert.InDelta(t, 50, e.UsagePercentage(16*1024), 0.001)
	// more content than the device holds still reads 100%
	assert.InDelta(t, 100, e.UsagePercentage(64*1024), 0.001)
}

func TestGetStorageStatus(t *testing.T) {
	e := newTestEstimator()
	courses := []*domain.DownloadedCourse{
		{Lessons: []domain.Lesson{{ID: "l1", Size: "1 GB"}}},
	}
	status := e.GetStorageStatus(courses, nil)

	assert.InDelta(t, 1024, status.UsedMB, 0.001)
	assert.Equal(t, 32, status.TotalGB)
	assert.Equal(t, "1.00 Go", status.UsedFormatted)
	assert.Equal(t, "32 Go", status.TotalFormatted)
	assert.InDelta(t, 100.0/32, status.UsagePercentage, 0.01)
}
