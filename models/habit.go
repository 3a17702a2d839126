package models

import (
	"github.com/google/uuid"
)

// Habit represents a habit entity. Date and the time window use the typed
// wire values; Reminder is nil when the habit has no reminder offset.
type Habit struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Title       string          `json:"title"`
	Notes       *string         `json:"notes"`
	Date        Date            `json:"date"`
	FromTime    TimeOfDay       `json:"fromTime"`
	ToTime      TimeOfDay       `json:"toTime"`
	Reminder    *ReminderOffset `json:"reminder"`
	IsCompleted bool            `json:"isCompleted"`
}
