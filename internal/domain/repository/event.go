package repository

import (
	"context"
	"time"

	"agenda/internal/domain/entity"
)

// EventRepository defines the interface for calendar event data operations.
type EventRepository interface {
	// FindByID retrieves an event by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Event, error)
	// FindAll retrieves all events ordered ascending by start time.
	FindAll(ctx context.Context) ([]*entity.Event, error)
	// FindBetween retrieves events starting within [from, to), ordered
	// ascending by start time.
	FindBetween(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	// Create durably persists a new event. Returns the ID of the created event.
	Create(ctx context.Context, event *entity.Event) (uint, error)
}
