package service

import (
	"context"
	"errors"

	"habittracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReminderRepository is the persistence surface the reminder service needs.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	ListByHabit(ctx context.Context, habitID uuid.UUID) ([]*models.Reminder, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReminderService handles business logic for reminders
type ReminderService struct {
	reminderRepo ReminderRepository
	habitRepo    HabitRepository
}

// ReminderServiceOption is a functional option for ReminderService
type ReminderServiceOption func(*ReminderService)

// WithReminderRepository sets the reminder repository
func WithReminderRepository(repo ReminderRepository) ReminderServiceOption {
	return func(s *ReminderService) {
		s.reminderRepo = repo
	}
}

// ReminderWithHabitRepository sets the habit repository used to verify the
// owning habit exists
func ReminderWithHabitRepository(repo HabitRepository) ReminderServiceOption {
	return func(s *ReminderService) {
		s.habitRepo = repo
	}
}

// NewReminderService creates a new reminder service
func NewReminderService(opts ...ReminderServiceOption) *ReminderService {
	s := &ReminderService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReminder inserts a reminder for an existing habit.
func (s *ReminderService) CreateReminder(ctx context.Context, habitID uuid.UUID, remindAt string) (*models.Reminder, error) {
	if s.reminderRepo == nil || s.habitRepo == nil {
		return nil, errors.New("reminder service repositories not set")
	}

	if _, err := s.habitRepo.GetByID(ctx, habitID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}

	reminder := &models.Reminder{
		HabitID:  habitID,
		RemindAt: remindAt,
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

// ListReminders returns all reminders for a habit in insertion order.
func (s *ReminderService) ListReminders(ctx context.Context, habitID uuid.UUID) ([]*models.Reminder, error) {
	if s.reminderRepo == nil {
		return nil, errors.New("reminder repository not set")
	}

	reminders, err := s.reminderRepo.ListByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []*models.Reminder{}
	}

	return reminders, nil
}

// DeleteReminder removes a reminder by id.
func (s *ReminderService) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	if s.reminderRepo == nil {
		return errors.New("reminder repository not set")
	}

	deleted, err := s.reminderRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReminderNotFound
	}

	return nil
}
