package service

import (
	"context"
	"errors"

	"habittracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HabitRepository is the persistence surface the habit service needs.
type HabitRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Habit, error)
	Create(ctx context.Context, habit *models.Habit, idempotencyKey *uuid.UUID) error
	Update(ctx context.Context, habit *models.Habit) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// HabitService handles business logic for habits
type HabitService struct {
	habitRepo HabitRepository
	userRepo  UserRepository
}

// HabitServiceOption is a functional option for HabitService
type HabitServiceOption func(*HabitService)

// WithHabitRepository sets the habit repository
func WithHabitRepository(repo HabitRepository) HabitServiceOption {
	return func(s *HabitService) {
		s.habitRepo = repo
	}
}

// HabitWithUserRepository sets the user repository used to resolve owners
func HabitWithUserRepository(repo UserRepository) HabitServiceOption {
	return func(s *HabitService) {
		s.userRepo = repo
	}
}

// NewHabitService creates a new habit service
func NewHabitService(opts ...HabitServiceOption) *HabitService {
	s := &HabitService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HabitInput carries the mutable habit fields from a create or update
// payload. Date and times arrive already parsed against the wire formats.
type HabitInput struct {
	Title       string
	Notes       *string
	Date        models.Date
	FromTime    models.TimeOfDay
	ToTime      models.TimeOfDay
	Reminder    *models.ReminderOffset
	IsCompleted bool
}

func (in HabitInput) validate() error {
	if !in.FromTime.Before(in.ToTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

// ListHabits returns all habits owned by the user with the given external
// uid, ordered by date then start time. An unknown uid yields an empty
// list, matching the contract for the listing endpoint.
func (s *HabitService) ListHabits(ctx context.Context, externalUID string) ([]*models.Habit, error) {
	if s.habitRepo == nil || s.userRepo == nil {
		return nil, errors.New("habit service repositories not set")
	}

	owner, err := s.userRepo.GetByExternalUID(ctx, externalUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return []*models.Habit{}, nil
	}
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []*models.Habit{}
	}

	return habits, nil
}

// GetHabit retrieves a single habit by id.
func (s *HabitService) GetHabit(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	if s.habitRepo == nil {
		return nil, errors.New("habit repository not set")
	}

	habit, err := s.habitRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// CreateHabitRequest represents a request to create a habit
type CreateHabitRequest struct {
	ExternalUID    string
	Input          HabitInput
	IdempotencyKey *uuid.UUID
}

// CreateHabit inserts a habit for the user with the given external uid.
// The id is server-assigned; any id in the payload is ignored. A repeated
// idempotency key returns the originally created habit.
func (s *HabitService) CreateHabit(ctx context.Context, req CreateHabitRequest) (*models.Habit, error) {
	if s.habitRepo == nil || s.userRepo == nil {
		return nil, errors.New("habit service repositories not set")
	}

	if err := req.Input.validate(); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByExternalUID(ctx, req.ExternalUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	habit := &models.Habit{
		UserID:      owner.ID,
		Title:       req.Input.Title,
		Notes:       req.Input.Notes,
		Date:        req.Input.Date,
		FromTime:    req.Input.FromTime,
		ToTime:      req.Input.ToTime,
		Reminder:    req.Input.Reminder,
		IsCompleted: req.Input.IsCompleted,
	}

	if err := s.habitRepo.Create(ctx, habit, req.IdempotencyKey); err != nil {
		return nil, err
	}

	return habit, nil
}

// UpdateHabit overwrites all mutable fields of an existing habit.
func (s *HabitService) UpdateHabit(ctx context.Context, id uuid.UUID, input HabitInput) error {
	if s.habitRepo == nil {
		return errors.New("habit repository not set")
	}

	if err := input.validate(); err != nil {
		return err
	}

	habit := &models.Habit{
		ID:          id,
		Title:       input.Title,
		Notes:       input.Notes,
		Date:        input.Date,
		FromTime:    input.FromTime,
		ToTime:      input.ToTime,
		Reminder:    input.Reminder,
		IsCompleted: input.IsCompleted,
	}

	updated, err := s.habitRepo.Update(ctx, habit)
	if err != nil {
		return err
	}
	if !updated {
		return ErrHabitNotFound
	}

	return nil
}

// DeleteHabit removes a habit together with its reminders.
func (s *HabitService) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	if s.habitRepo == nil {
		return errors.New("habit repository not set")
	}

	deleted, err := s.habitRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrHabitNotFound
	}

	return nil
}
