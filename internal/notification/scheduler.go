package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"go.uber.org/zap"
)

// Storage slots owned by the scheduler.
const (
	PermissionAskedKey  = "notificationPermissionRequested"
	LastAppOpenKey      = "lastAppOpenTimestamp"
	InactivityHandleKey = "inactivityNotificationId"
	LessonHandlePrefix  = "lesson_reminder_"
)

// Reminder texts shown to the student.
const (
	inactivityTitle = "On dirait que vous nous avez manqué ! 🎓"
	inactivityBody  = "Revenez continuer votre apprentissage."
	completionTitle = "Félicitations ! 🎉"
	lessonTitle     = "N'oubliez pas votre leçon ! 📚"
)

// Config scheduler timing options
type Config struct {
	InactivityDelay time.Duration // delay before the inactivity reminder fires
	LessonDelay     time.Duration // delay before a lesson continuation reminder fires
}

// Scheduler coordinates reminders over the notification provider and the kv
// store. Every operation verifies permission first and silently does nothing
// without it; notification failures never reach the caller.
type Scheduler struct {
	provider Provider
	kv       driver.KeyValueDB
	cfg      Config
	logger   *zap.Logger
}

var _ domain.NotificationScheduler = &Scheduler{}

// NewScheduler create a notification scheduler
func NewScheduler(provider Provider, kv driver.KeyValueDB, cfg Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{provider: provider, kv: kv, cfg: cfg, logger: logger}
}

// RequestPermissions implement domain.NotificationScheduler
func (s *Scheduler) RequestPermissions(ctx context.Context) bool {
	granted, err := s.provider.PermissionGranted(ctx)
	if err != nil {
		s.logger.Error("Failed to query notification permission", zap.Error(err))
		return false
	}
	if !granted {
		granted, err = s.provider.RequestPermission(ctx)
		if err != nil {
			s.logger.Error("Failed to request notification permission", zap.Error(err))
			return false
		}
	}
	if !granted {
		s.logger.Info("Notification permission denied")
		return false
	}
	if err := s.provider.ConfigureChannel(ctx); err != nil {
		s.logger.Error("Failed to configure notification channel", zap.Error(err))
	}
	return true
}

// BootstrapFirstLaunch implement domain.NotificationScheduler
func (s *Scheduler) BootstrapFirstLaunch(ctx context.Context) {
	asked, err := s.kv.Exists(ctx, PermissionAskedKey)
	if err != nil {
		s.logger.Error("Failed to read first-launch flag", zap.Error(err))
		return
	}
	if asked {
		return
	}
	granted := s.RequestPermissions(ctx)
	if err := s.kv.Set(ctx, PermissionAskedKey, "true"); err != nil {
		s.logger.Error("Failed to persist first-launch flag", zap.Error(err))
	}
	if granted {
		s.scheduleInactivityReminder(ctx)
	}
}

// HandleAppForeground implement domain.NotificationScheduler
func (s *Scheduler) HandleAppForeground(ctx context.Context) {
	now := strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 10)
	if err := s.kv.Set(ctx, LastAppOpenKey, now); err != nil {
		s.logger.Error("Failed to persist last app open timestamp", zap.Error(err))
	}
	s.cancelInactivityReminder(ctx)
	s.scheduleInactivityReminder(ctx)
}

// ScheduleLessonReminder implement domain.NotificationScheduler
func (s *Scheduler) ScheduleLessonReminder(ctx context.Context, lessonID, lessonName string) {
	if !s.permissionGranted(ctx) {
		return
	}
	s.CancelLessonReminder(ctx, lessonID)

	handle, err := s.provider.Schedule(ctx, Content{
		Title: lessonTitle,
		Body:  fmt.Sprintf("N'oubliez pas de finir votre leçon de %s. Vous y étiez presque !", lessonName),
		Data:  map[string]string{"lessonId": lessonID},
	}, s.cfg.LessonDelay)
	if err != nil {
		s.logger.Error("Failed to schedule lesson reminder",
			zap.String("lesson.id", lessonID), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, LessonHandlePrefix+lessonID, handle); err != nil {
		s.logger.Error("Failed to persist lesson reminder handle",
			zap.String("lesson.id", lessonID), zap.Error(err))
	}
}

// CancelLessonReminder implement domain.NotificationScheduler
func (s *Scheduler) CancelLessonReminder(ctx context.Context, lessonID string) {
	s.cancelStored(ctx, LessonHandlePrefix+lessonID)
}

// SendCourseCompletion implement domain.CompletionNotifier
func (s *Scheduler) SendCourseCompletion(ctx context.Context, courseName string) {
	if !s.permissionGranted(ctx) {
		return
	}
	err := s.provider.Notify(ctx, Content{
		Title: completionTitle,
		Body:  fmt.Sprintf("Vous avez terminé le cours de %s. Excellent travail !", courseName),
	})
	if err != nil {
		s.logger.Error("Failed to send course completion notification",
			zap.String("course.name", courseName), zap.Error(err))
	}
}

// Scheduled list pending notifications, for the debug endpoint
func (s *Scheduler) Scheduled(ctx context.Context) []Request {
	requests, err := s.provider.Scheduled(ctx)
	if err != nil {
		s.logger.Error("Failed to list scheduled notifications", zap.Error(err))
		return nil
	}
	return requests
}

// scheduleInactivityReminder supersedes the single pending inactivity timer.
func (s *Scheduler) scheduleInactivityReminder(ctx context.Context) {
	if !s.permissionGranted(ctx) {
		return
	}
	s.cancelInactivityReminder(ctx)

	handle, err := s.provider.Schedule(ctx, Content{
		Title: inactivityTitle,
		Body:  inactivityBody,
	}, s.cfg.InactivityDelay)
	if err != nil {
		s.logger.Error("Failed to schedule inactivity reminder", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, InactivityHandleKey, handle); err != nil {
		s.logger.Error("Failed to persist inactivity reminder handle", zap.Error(err))
	}
}

func (s *Scheduler) cancelInactivityReminder(ctx context.Context) {
	s.cancelStored(ctx, InactivityHandleKey)
}

// cancelStored cancels the timer whose handle is stored under key; an absent
// handle is a silent no-op.
func (s *Scheduler) cancelStored(ctx context.Context, key string) {
	handle, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, driver.ErrKeyNotFound) {
			s.logger.Error("Failed to read notification handle",
				zap.String("kv.key", key), zap.Error(err))
		}
		return
	}
	if err := s.provider.Cancel(ctx, handle); err != nil {
		s.logger.Error("Failed to cancel notification",
			zap.String("kv.key", key), zap.Error(err))
	}
	if err := s.kv.Remove(ctx, key); err != nil {
		s.logger.Error("Failed to remove notification handle",
			zap.String("kv.key", key), zap.Error(err))
	}
}

func (s *Scheduler) permissionGranted(ctx context.Context) bool {
	granted, err := s.provider.PermissionGranted(ctx)
	if err != nil {
		s.logger.Error("Failed to query notification permission", zap.Error(err))
		return false
	}
	return granted
}
