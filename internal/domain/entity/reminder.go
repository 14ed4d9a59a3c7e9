package entity

import "time"

// Reminder is a one-shot alert: it fires exactly once at TriggerTime and is
// then marked completed. TriggerTime is resolved once at creation and never
// recomputed; Completed only ever transitions from false to true.
type Reminder struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;type:text;not null"`
	Description string    `gorm:"column:description;type:text"`
	TriggerTime time.Time `gorm:"column:trigger_time;index;not null"`
	Completed   bool      `gorm:"column:completed;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the Reminder entity.
func (Reminder) TableName() string {
	return "reminders"
}
