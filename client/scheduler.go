package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler is the seam where the host platform's alarm facility attaches.
// Scheduling is fire-and-forget: implementations do not report whether a
// wake-up was delivered.
type Scheduler interface {
	// Schedule requests a one-shot wake-up for a habit, replacing any
	// wake-up previously scheduled for the same habit.
	Schedule(habitID uuid.UUID, at time.Time)
	// Cancel drops a pending wake-up, if any.
	Cancel(habitID uuid.UUID)
}

// TimerScheduler is the in-process default Scheduler, keyed by habit id so
// rescheduling replaces the previous timer.
type TimerScheduler struct {
	mu     sync.Mutex
	notify func(habitID uuid.UUID)
	timers map[uuid.UUID]*time.Timer
}

// NewTimerScheduler creates a TimerScheduler that invokes notify when a
// wake-up fires. notify runs on the timer goroutine.
func NewTimerScheduler(notify func(habitID uuid.UUID)) *TimerScheduler {
	return &TimerScheduler{
		notify: notify,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(habitID uuid.UUID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[habitID]; ok {
		existing.Stop()
	}

	s.timers[habitID] = time.AfterFunc(time.Until(at), func() {
		s.mu.Lock()
		delete(s.timers, habitID)
		s.mu.Unlock()

		if s.notify != nil {
			s.notify(habitID)
		}
	})
}

// Cancel implements Scheduler.
func (s *TimerScheduler) Cancel(habitID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[habitID]; ok {
		timer.Stop()
		delete(s.timers, habitID)
	}
}

// Stop cancels every pending wake-up.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
