package service

import (
	"context"
	"sort"

	"habittracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// In-memory repositories backing the service tests. They mirror the
// behavior of the real ones: pgx.ErrNoRows for missing rows, idempotent
// habit creates, list ordering by date then start time.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) GetByExternalUID(_ context.Context, externalUID string) (*models.User, error) {
	user, ok := r.users[externalUID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uuid.New()
	copied := *user
	r.users[user.ExternalUID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, externalUID string, user *models.User) (bool, error) {
	existing, ok := r.users[externalUID]
	if !ok {
		return false, nil
	}
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.BirthDate = user.BirthDate
	existing.Gender = user.Gender
	existing.AvatarFileID = user.AvatarFileID
	return true, nil
}

func (r *fakeUserRepo) SetAvatarFileID(_ context.Context, externalUID string, fileID string) (bool, error) {
	existing, ok := r.users[externalUID]
	if !ok {
		return false, nil
	}
	existing.AvatarFileID = &fileID
	return true, nil
}

type fakeHabitRepo struct {
	habits    map[uuid.UUID]*models.Habit
	byKey     map[uuid.UUID]uuid.UUID
	reminders *fakeReminderRepo
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{
		habits: make(map[uuid.UUID]*models.Habit),
		byKey:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *fakeHabitRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Habit, error) {
	var out []*models.Habit
	for _, habit := range r.habits {
		if habit.UserID == userID {
			copied := *habit
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Time.Before(out[j].Date.Time)
		}
		return out[i].FromTime.Before(out[j].FromTime)
	})
	return out, nil
}

func (r *fakeHabitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Habit, error) {
	habit, ok := r.habits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *habit
	return &copied, nil
}

func (r *fakeHabitRepo) Create(_ context.Context, habit *models.Habit, idempotencyKey *uuid.UUID) error {
	if idempotencyKey != nil {
		if existingID, ok := r.byKey[*idempotencyKey]; ok {
			*habit = *r.habits[existingID]
			return nil
		}
	}

	habit.ID = uuid.New()
	copied := *habit
	r.habits[habit.ID] = &copied
	if idempotencyKey != nil {
		r.byKey[*idempotencyKey] = habit.ID
	}
	return nil
}

func (r *fakeHabitRepo) Update(_ context.Context, habit *models.Habit) (bool, error) {
	existing, ok := r.habits[habit.ID]
	if !ok {
		return false, nil
	}
	userID := existing.UserID
	copied := *habit
	copied.UserID = userID
	r.habits[habit.ID] = &copied
	return true, nil
}

func (r *fakeHabitRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.habits[id]; !ok {
		return false, nil
	}
	delete(r.habits, id)
	if r.reminders != nil {
		r.reminders.deleteByHabit(id)
	}
	return true, nil
}

type fakeReminderRepo struct {
	reminders []*models.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{}
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder *models.Reminder) error {
	reminder.ID = uuid.New()
	copied := *reminder
	r.reminders = append(r.reminders, &copied)
	return nil
}

func (r *fakeReminderRepo) ListByHabit(_ context.Context, habitID uuid.UUID) ([]*models.Reminder, error) {
	var out []*models.Reminder
	for _, reminder := range r.reminders {
		if reminder.HabitID == habitID {
			copied := *reminder
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, reminder := range r.reminders {
		if reminder.ID == id {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReminderRepo) deleteByHabit(habitID uuid.UUID) {
	kept := r.reminders[:0]
	for _, reminder := range r.reminders {
		if reminder.HabitID != habitID {
			kept = append(kept, reminder)
		}
	}
	r.reminders = kept
}

func mustDate(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustTime(s string) models.TimeOfDay {
	t, err := models.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}
