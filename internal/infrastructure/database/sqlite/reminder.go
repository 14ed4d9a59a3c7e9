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

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// FindByID retrieves a reminder by its ID.
func (r *reminderRepository) FindByID(ctx context.Context, id uint) (*entity.Reminder, error) {
	var reminder entity.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reminder with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find reminder by id %d: %w", id, err)
	}
	return &reminder, nil
}

// FindPending retrieves all non-completed reminders, ascending by trigger time.
func (r *reminderRepository) FindPending(ctx context.Context) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	if err := r.db.WithContext(ctx).
		Where("completed = ?", false).
		Order("trigger_time asc").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find pending reminders: %w", err)
	}
	return reminders, nil
}

// Create creates a new reminder. Returns the ID of the created reminder.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) (uint, error) {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to create reminder %q: %w", reminder.Title, err)
	}
	return reminder.ID, nil
}

// MarkCompleted flips completed from false to true as a single guarded
// update. RowsAffected tells us whether this call won the transition, which
// is what keeps dispatch at-most-once under recovery races.
func (r *reminderRepository) MarkCompleted(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Reminder{}).
		Where("id = ? AND completed = ?", id, false).
		UpdateColumn("completed", true)
	if res.Error != nil {
		return false, fmt.Errorf("🔴 ERROR: failed to mark reminder %d completed: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountPending returns the number of non-completed reminders.
func (r *reminderRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Reminder{}).
		Where("completed = ?", false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to count pending reminders: %w", err)
	}
	return count, nil
}

// DeleteCompletedBefore removes completed reminders older than the threshold.
func (r *reminderRepository) DeleteCompletedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("completed = ? AND trigger_time < ?", true, threshold).
		Delete(&entity.Reminder{})
	if res.Error != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to delete completed reminders older than %v: %w", threshold, res.Error)
	}
	return res.RowsAffected, nil
}
