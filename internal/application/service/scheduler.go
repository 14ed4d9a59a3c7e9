package service

import (
	"context"

	"agenda/internal/domain/entity"
)

// SchedulerService defines the interface for scheduling operations.
type SchedulerService interface {
	// ArmReminder arms a persisted reminder in the engine. Past-due
	// reminders are armed as immediately due, never discarded.
	ArmReminder(ctx context.Context, reminder *entity.Reminder) error
	// DisarmReminder removes an armed-but-not-yet-fired reminder from the
	// engine. Best-effort: it reports false if firing has already begun.
	DisarmReminder(ctx context.Context, reminderID uint) bool
	// InitializeSchedules loads all pending reminders from the store and
	// arms them, ascending by trigger time. Called once on startup.
	InitializeSchedules(ctx context.Context) error
	// Start launches the firing loop, the notification worker and the
	// maintenance cron.
	Start()
	// Stop shuts everything down, draining in-flight notifications.
	Stop()
}
