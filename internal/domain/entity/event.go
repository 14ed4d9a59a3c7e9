package entity

import "time"

// Event is an informational calendar entry. Events are never armed in the
// scheduler and have no completion lifecycle.
type Event struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	Title       string     `gorm:"column:title;type:text;not null"`
	Description string     `gorm:"column:description;type:text"`
	StartTime   time.Time  `gorm:"column:start_time;index;not null"`
	EndTime     *time.Time `gorm:"column:end_time"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the Event entity.
func (Event) TableName() string {
	return "events"
}
