package progress

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"go.uber.org/zap"
)

// KeyPrefix namespace for media progress records
const KeyPrefix = "@media_progress_"

// Store persists MediaProgress records under KeyPrefix, one per lesson.
// Writes are last-write-wins at the kv store's granularity; in practice only
// one player screen writes a given lesson at a time.
type Store struct {
	kv     driver.KeyValueDB
	logger *zap.Logger
}

var _ domain.ProgressStore = &Store{}

// NewStore create a progress store over the shared kv store
func NewStore(kv driver.KeyValueDB, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// SaveProgress implement domain.ProgressStore
func (s *Store) SaveProgress(ctx context.Context, progress *domain.MediaProgress) error {
	progress.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyPrefix+progress.LessonID, string(data)); err != nil {
		s.logger.Error("Failed to save progress",
			zap.String("lesson.id", progress.LessonID), zap.Error(err))
		return err
	}
	return nil
}

// GetProgress implement domain.ProgressStore
func (s *Store) GetProgress(ctx context.Context, lessonID string) (*domain.MediaProgress, bool) {
	data, err := s.kv.Get(ctx, KeyPrefix+lessonID)
	if err != nil {
		if !errors.Is(err, driver.ErrKeyNotFound) {
			s.logger.Error("Failed to read progress",
				zap.String("lesson.id", lessonID), zap.Error(err))
		}
		return nil, false
	}
	progress := new(domain.MediaProgress)
	if err := json.Unmarshal([]byte(data), progress); err != nil {
		// a corrupt record reads as "no progress"
		s.logger.Error("Failed to decode progress record",
			zap.String("lesson.id", lessonID), zap.Error(err))
		return nil, false
	}
	return progress, true
}

// DeleteProgress implement domain.ProgressStore
func (s *Store) DeleteProgress(ctx context.Context, lessonID string) error {
	if err := s.kv.Remove(ctx, KeyPrefix+lessonID); err != nil {
		s.logger.Error("Failed to delete progress",
			zap.String("lesson.id", lessonID), zap.Error(err))
		return err
	}
	return nil
}

// GetAllProgress implement domain.ProgressStore
func (s *Store) GetAllProgress(ctx context.Context) []*domain.MediaProgress {
	keys, err := s.kv.ListKeys(ctx, KeyPrefix+"*")
	if err != nil {
		s.logger.Error("Failed to list progress keys", zap.Error(err))
		return nil
	}
	entries, err := s.kv.MultiGet(ctx, keys)
	if err != nil {
		s.logger.Error("Failed to bulk read progress", zap.Error(err))
		return nil
	}
	var result []*domain.MediaProgress
	for _, entry := range entries {
		if !entry.OK {
			continue
		}
		progress := new(domain.MediaProgress)
		if err := json.Unmarshal([]byte(entry.Value), progress); err != nil {
			s.logger.Warn("Skipping unreadable progress record",
				zap.String("kv.key", entry.Key), zap.Error(err))
			continue
		}
		result = append(result, progress)
	}
	return result
}

// ClearAllProgress implement domain.ProgressStore
func (s *Store) ClearAllProgress(ctx context.Context) error {
	keys, err := s.kv.ListKeys(ctx, KeyPrefix+"*")
	if err != nil {
		s.logger.Error("Failed to list progress keys", zap.Error(err))
		return err
	}
	if err := s.kv.MultiRemove(ctx, keys); err != nil {
		s.logger.Error("Failed to clear progress", zap.Error(err))
		return err
	}
	return nil
}
