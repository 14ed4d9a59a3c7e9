package repository

import (
	"context"
	"time"

	"agenda/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder data operations.
// The store is the single source of truth: the scheduler's in-memory queue
// is a derived cache that can always be rebuilt from FindPending.
type ReminderRepository interface {
	// FindByID retrieves a reminder by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Reminder, error)
	// FindPending retrieves all reminders with completed = false, ordered
	// ascending by trigger time. Used for listing and for re-arming on startup.
	FindPending(ctx context.Context) ([]*entity.Reminder, error)
	// Create durably persists a new reminder before returning. The write is
	// observable by any subsequent FindPending call, including after a crash
	// between Create returning and the caller arming a timer.
	Create(ctx context.Context, reminder *entity.Reminder) (uint, error)
	// MarkCompleted atomically flips completed from false to true. It reports
	// whether this call performed the transition; marking an already-completed
	// reminder is a no-op with transitioned=false, not an error.
	MarkCompleted(ctx context.Context, id uint) (transitioned bool, err error)
	// CountPending returns the number of reminders with completed = false.
	CountPending(ctx context.Context) (int64, error)
	// DeleteCompletedBefore removes completed reminders whose trigger time is
	// older than the threshold. Retention only; the firing path never deletes.
	DeleteCompletedBefore(ctx context.Context, threshold time.Time) (int64, error)
}
