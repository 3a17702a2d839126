package models

import (
	"github.com/google/uuid"
)

// RemindAtLayout is the fire-at timestamp format produced by clients
// (local time, no zone).
const RemindAtLayout = "2006-01-02T15:04:05"

// Reminder represents a scheduled notification tied to one habit.
type Reminder struct {
	ID       uuid.UUID `json:"id"`
	HabitID  uuid.UUID `json:"habitId"`
	RemindAt string    `json:"remindAt"`
}
