package dto

import (
	"time"

	"agenda/internal/domain/constant"
	"agenda/internal/domain/entity"
)

// CreateReminderRequest is the DTO for creating a new reminder. When holds
// the raw time expression ("in 10 minutes", "at 11:30 PM", ...).
type CreateReminderRequest struct {
	Title       string `json:"title"`
	When        string `json:"when"`
	Description string `json:"description,omitempty"`
}

// ReminderResponse is the DTO for sending reminder information to the client.
type ReminderResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TriggerTime time.Time `json:"trigger_time"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	status := constant.StateScheduled
	if r.Completed {
		status = constant.StateCompleted
	}
	return ReminderResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		TriggerTime: r.TriggerTime,
		CreatedAt:   r.CreatedAt,
		Status:      status.String(),
	}
}

// ToReminderResponseList converts a slice of entity.Reminder to a slice of ReminderResponse DTOs.
func ToReminderResponseList(reminders []*entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}
