package dto

import (
	"time"

	"agenda/internal/domain/entity"
)

// CreateEventRequest is the DTO for creating a new calendar event. When is
// the raw start-time expression; Duration optionally sets the end time
// ("for 2 hours").
type CreateEventRequest struct {
	Title       string `json:"title"`
	When        string `json:"when"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

// EventResponse is the DTO for sending event information to the client.
type EventResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToEventResponse converts an entity.Event to an EventResponse DTO.
func ToEventResponse(e *entity.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		CreatedAt:   e.CreatedAt,
	}
}

// ToEventResponseList converts a slice of entity.Event to a slice of EventResponse DTOs.
func ToEventResponseList(events []*entity.Event) []EventResponse {
	list := make([]EventResponse, len(events))
	for i, e := range events {
		list[i] = ToEventResponse(e)
	}
	return list
}
