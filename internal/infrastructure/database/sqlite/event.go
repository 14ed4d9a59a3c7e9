package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agenda/internal/domain/entity"
	"agenda/internal/domain/repository"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

// FindByID retrieves an event by its ID.
func (r *eventRepository) FindByID(ctx context.Context, id uint) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find event by id %d: %w", id, err)
	}
	return &event, nil
}

// FindAll retrieves all events ordered ascending by start time.
func (r *eventRepository) FindAll(ctx context.Context) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.db.WithContext(ctx).Order("start_time asc").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find all events: %w", err)
	}
	return events, nil
}

// FindBetween retrieves events starting within [from, to).
func (r *eventRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time asc").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find events between %v and %v: %w", from, to, err)
	}
	return events, nil
}

// Create creates a new event. Returns the ID of the created event.
func (r *eventRepository) Create(ctx context.Context, event *entity.Event) (uint, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to create event %q: %w", event.Title, err)
	}
	return event.ID, nil
}
