package domain

import "context"

// NotificationScheduler drives the reminder lifecycle on top of the local
// notification provider. Every operation is permission-gated: when the user
// denied notifications the calls are silent no-ops, so callers never have to
// handle a notification failure.
type NotificationScheduler interface {
	// RequestPermissions is idempotent; it reports whether notifications are
	// ultimately granted.
	RequestPermissions(ctx context.Context) bool
	// BootstrapFirstLaunch requests permissions exactly once per install and,
	// when granted, schedules the first inactivity reminder.
	BootstrapFirstLaunch(ctx context.Context)
	// HandleAppForeground records the last-open timestamp and supersedes the
	// pending inactivity reminder with a fresh one.
	HandleAppForeground(ctx context.Context)
	// ScheduleLessonReminder supersedes any pending reminder for the lesson.
	ScheduleLessonReminder(ctx context.Context, lessonID, lessonName string)
	// CancelLessonReminder is a silent no-op when no reminder is pending.
	CancelLessonReminder(ctx context.Context, lessonID string)
	CompletionNotifier
}
