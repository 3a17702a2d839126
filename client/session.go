package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"habittracker-backend/models"

	"github.com/google/uuid"
)

// HabitView is the client-side shape of a habit: the server record joined
// with its reminder metadata.
type HabitView struct {
	Habit               models.Habit
	RemindBeforeMinutes int
	Reminders           []models.Reminder
}

// HabitInput is what the UI hands the session when creating or editing a
// habit. RemindBeforeMinutes outside the fixed offset set means no
// reminder.
type HabitInput struct {
	Title               string
	Notes               string
	Date                models.Date
	FromTime            models.TimeOfDay
	ToTime              models.TimeOfDay
	RemindBeforeMinutes int
	IsCompleted         bool
}

func (in HabitInput) toHabit() models.Habit {
	habit := models.Habit{
		Title:       in.Title,
		Date:        in.Date,
		FromTime:    in.FromTime,
		ToTime:      in.ToTime,
		IsCompleted: in.IsCompleted,
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		habit.Notes = &notes
	}
	if offset, ok := models.OffsetForMinutes(in.RemindBeforeMinutes); ok {
		habit.Reminder = &offset
	}
	return habit
}

// Session keeps the signed-in user's habits in memory, consistent with the
// backend. Every mutation is applied locally only after its network call
// resolves; on failure the list stays at its last-known-good state.
type Session struct {
	mu     sync.Mutex
	api    *Client
	uid    string
	sched  Scheduler
	now    func() time.Time
	habits []HabitView
}

// SessionOption is a functional option for Session
type SessionOption func(*Session)

// WithScheduler sets the wake-up scheduler.
func WithScheduler(s Scheduler) SessionOption {
	return func(sess *Session) {
		sess.sched = s
	}
}

// WithClock overrides the time source; tests pin it.
func WithClock(now func() time.Time) SessionOption {
	return func(sess *Session) {
		sess.now = now
	}
}

// NewSession creates a session for one signed-in external uid.
func NewSession(api *Client, uid string, opts ...SessionOption) *Session {
	s := &Session{
		api: api,
		uid: uid,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the user's habits and, per habit, its reminders, replacing
// the in-memory list.
func (s *Session) Load(ctx context.Context) error {
	habits, err := s.api.Habits(ctx, s.uid)
	if err != nil {
		return fmt.Errorf("load habits: %w", err)
	}

	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		reminders, err := s.api.Reminders(ctx, habit.ID)
		if err != nil {
			return fmt.Errorf("load reminders for habit %s: %w", habit.ID, err)
		}

		view := HabitView{Habit: habit, Reminders: reminders}
		if habit.Reminder != nil {
			view.RemindBeforeMinutes = habit.Reminder.Minutes()
		}
		views = append(views, view)
	}

	s.mu.Lock()
	s.habits = views
	s.mu.Unlock()

	return nil
}

// Habits returns a snapshot of the in-memory list.
func (s *Session) Habits() []HabitView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]HabitView, len(s.habits))
	copy(out, s.habits)
	return out
}

// AddHabit creates a habit on the backend and, when a reminder offset is
// chosen, a companion reminder at start time minus the offset. The list is
// appended and a wake-up scheduled only after both calls succeed; a
// reminder fire time already in the past is not scheduled.
func (s *Session) AddHabit(ctx context.Context, in HabitInput) (HabitView, error) {
	payload := in.toHabit()

	created, err := s.api.CreateHabit(ctx, s.uid, payload, uuid.New())
	if err != nil {
		return HabitView{}, fmt.Errorf("create habit: %w", err)
	}

	view := HabitView{Habit: *created}
	if created.Reminder != nil {
		view.RemindBeforeMinutes = created.Reminder.Minutes()
	}

	var fireAt time.Time
	if view.RemindBeforeMinutes > 0 {
		fireAt = s.fireTime(*created)

		reminder, err := s.api.CreateReminder(ctx, created.ID, fireAt.Format(models.RemindAtLayout))
		if err != nil {
			// The habit row exists without its reminder; there is no
			// compensation here, the caller surfaces the failure.
			return HabitView{}, fmt.Errorf("create reminder: %w", err)
		}
		view.Reminders = []models.Reminder{*reminder}
	}

	s.mu.Lock()
	s.habits = append(s.habits, view)
	s.mu.Unlock()

	if s.sched != nil && view.RemindBeforeMinutes > 0 && fireAt.After(s.now()) {
		s.sched.Schedule(created.ID, fireAt)
	}

	return view, nil
}

// SetCompleted toggles a habit's completion flag by re-sending the full
// payload with the changed field.
func (s *Session) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	view, ok := s.find(id)
	if !ok {
		return fmt.Errorf("habit %s not in session", id)
	}

	payload := view.Habit
	payload.IsCompleted = completed

	if err := s.api.UpdateHabit(ctx, id, payload); err != nil {
		return fmt.Errorf("update habit: %w", err)
	}

	s.mu.Lock()
	for i := range s.habits {
		if s.habits[i].Habit.ID == id {
			s.habits[i].Habit.IsCompleted = completed
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// EditHabit overwrites a habit's fields and replaces its scheduled
// wake-up: the old one is cancelled and a new one scheduled from the
// edited date, start time and offset, unless the new fire time is past or
// the offset was removed.
func (s *Session) EditHabit(ctx context.Context, id uuid.UUID, in HabitInput) error {
	if _, ok := s.find(id); !ok {
		return fmt.Errorf("habit %s not in session", id)
	}

	payload := in.toHabit()
	payload.ID = id

	if err := s.api.UpdateHabit(ctx, id, payload); err != nil {
		return fmt.Errorf("update habit: %w", err)
	}

	s.mu.Lock()
	for i := range s.habits {
		if s.habits[i].Habit.ID == id {
			userID := s.habits[i].Habit.UserID
			reminders := s.habits[i].Reminders
			s.habits[i].Habit = payload
			s.habits[i].Habit.UserID = userID
			s.habits[i].Reminders = reminders
			s.habits[i].RemindBeforeMinutes = 0
			if payload.Reminder != nil {
				s.habits[i].RemindBeforeMinutes = payload.Reminder.Minutes()
			}
			break
		}
	}
	s.mu.Unlock()

	if s.sched != nil {
		s.sched.Cancel(id)
		if payload.Reminder != nil {
			if fireAt := s.fireTime(payload); fireAt.After(s.now()) {
				s.sched.Schedule(id, fireAt)
			}
		}
	}

	return nil
}

// DeleteHabit removes a habit; the backend deletes its reminders in the
// same transaction. Any pending wake-up is cancelled.
func (s *Session) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	if err := s.api.DeleteHabit(ctx, id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	s.mu.Lock()
	for i := range s.habits {
		if s.habits[i].Habit.ID == id {
			s.habits = append(s.habits[:i], s.habits[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if s.sched != nil {
		s.sched.Cancel(id)
	}

	return nil
}

func (s *Session) find(id uuid.UUID) (HabitView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, view := range s.habits {
		if view.Habit.ID == id {
			return view, true
		}
	}
	return HabitView{}, false
}

// fireTime derives a habit's reminder fire time: start datetime minus the
// offset.
func (s *Session) fireTime(habit models.Habit) time.Time {
	start := habit.Date.At(habit.FromTime)
	if habit.Reminder == nil {
		return start
	}
	return start.Add(-habit.Reminder.Duration())
}
