package service

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the external uid.
	ErrUserNotFound = errors.New("user not found")
	// ErrHabitNotFound is returned when no habit matches the id.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrReminderNotFound is returned when no reminder matches the id.
	ErrReminderNotFound = errors.New("reminder not found")
	// ErrInvalidTimeRange is returned when a habit's end time is not after
	// its start time.
	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
