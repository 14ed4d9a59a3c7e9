package service

import (
	"context"

	"agenda/internal/application/dto"
)

// ReminderService defines the interface for reminder and event business logic.
type ReminderService interface {
	// AddReminder resolves the time expression, durably persists the
	// reminder and arms it. On an unparseable expression nothing is
	// created or armed.
	AddReminder(ctx context.Context, req dto.CreateReminderRequest) (dto.ReminderResponse, error)
	// AddEvent resolves the start-time expression (and optional duration)
	// and persists a calendar event. Events never arm timers.
	AddEvent(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error)
	// ListPendingReminders returns all non-completed reminders, ascending
	// by trigger time.
	ListPendingReminders(ctx context.Context) ([]dto.ReminderResponse, error)
	// ListEvents returns all events.
	ListEvents(ctx context.Context) ([]dto.EventResponse, error)
	// ListUpcomingEvents returns events starting within the next N days.
	ListUpcomingEvents(ctx context.Context, days int) ([]dto.EventResponse, error)
	// CancelReminder disarms and completes a pending reminder. Returns
	// ErrReminderNotFound for unknown ids; cancelling a reminder that has
	// already begun firing succeeds as a no-op.
	CancelReminder(ctx context.Context, reminderID uint) error
}
