package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"habittracker-backend/models"

	"github.com/google/uuid"
)

// testBackend is a minimal in-memory stand-in for the habit service,
// speaking the same wire contract the real handlers do.
type testBackend struct {
	mu         sync.Mutex
	habits     map[uuid.UUID]models.Habit
	habitOrder []uuid.UUID
	reminders  []models.Reminder
	idemKeys   []string
	failNext   bool
}

func newTestBackend() *testBackend {
	return &testBackend{habits: make(map[uuid.UUID]models.Habit)}
}

func (b *testBackend) start(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func (b *testBackend) addHabit(habit models.Habit) models.Habit {
	b.mu.Lock()
	defer b.mu.Unlock()
	if habit.ID == uuid.Nil {
		habit.ID = uuid.New()
	}
	b.habits[habit.ID] = habit
	b.habitOrder = append(b.habitOrder, habit.ID)
	return habit
}

func (b *testBackend) addReminder(habitID uuid.UUID, remindAt string) models.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	reminder := models.Reminder{ID: uuid.New(), HabitID: habitID, RemindAt: remindAt}
	b.reminders = append(b.reminders, reminder)
	return reminder
}

func (b *testBackend) habitReminders(habitID uuid.UUID) []models.Reminder {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.Reminder
	for _, reminder := range b.reminders {
		if reminder.HabitID == habitID {
			out = append(out, reminder)
		}
	}
	return out
}

func (b *testBackend) habit(id uuid.UUID) (models.Habit, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	habit, ok := b.habits[id]
	return habit, ok
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (b *testBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	if b.failNext {
		b.failNext = false
		b.mu.Unlock()
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	b.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodGet && parts[0] == "habits" && len(parts) == 2:
		b.mu.Lock()
		out := make([]models.Habit, 0, len(b.habitOrder))
		for _, id := range b.habitOrder {
			out = append(out, b.habits[id])
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, out)

	case r.Method == http.MethodPost && parts[0] == "habits" && len(parts) == 2:
		var habit models.Habit
		if err := json.NewDecoder(r.Body).Decode(&habit); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		habit.ID = uuid.New()
		b.mu.Lock()
		if key := r.Header.Get("Idempotency-Key"); key != "" {
			b.idemKeys = append(b.idemKeys, key)
		}
		b.habits[habit.ID] = habit
		b.habitOrder = append(b.habitOrder, habit.ID)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, habit)

	case r.Method == http.MethodPut && parts[0] == "habits" && len(parts) == 2:
		id, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid habit ID format")
			return
		}
		var habit models.Habit
		if err := json.NewDecoder(r.Body).Decode(&habit); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		b.mu.Lock()
		existing, ok := b.habits[id]
		if ok {
			habit.ID = id
			habit.UserID = existing.UserID
			b.habits[id] = habit
		}
		b.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Habit not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "habit updated"})

	case r.Method == http.MethodDelete && parts[0] == "habits" && len(parts) == 2:
		id, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid habit ID format")
			return
		}
		b.mu.Lock()
		_, ok := b.habits[id]
		if ok {
			delete(b.habits, id)
			for i, hid := range b.habitOrder {
				if hid == id {
					b.habitOrder = append(b.habitOrder[:i], b.habitOrder[i+1:]...)
					break
				}
			}
			kept := b.reminders[:0]
			for _, reminder := range b.reminders {
				if reminder.HabitID != id {
					kept = append(kept, reminder)
				}
			}
			b.reminders = kept
		}
		b.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Habit not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "habit deleted"})

	case r.Method == http.MethodPost && parts[0] == "reminder" && len(parts) == 1:
		var req struct {
			HabitID  string `json:"habitId"`
			RemindAt string `json:"remindAt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		habitID, err := uuid.Parse(req.HabitID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_HABIT_ID", "Invalid habit ID format")
			return
		}
		b.mu.Lock()
		_, ok := b.habits[habitID]
		b.mu.Unlock()
		if !ok {
			writeError(w, http.StatusNotFound, "HABIT_NOT_FOUND", "Habit not found")
			return
		}
		writeJSON(w, http.StatusOK, b.addReminder(habitID, req.RemindAt))

	case r.Method == http.MethodGet && parts[0] == "reminder" && len(parts) == 2:
		habitID, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_HABIT_ID", "Invalid habit ID format")
			return
		}
		out := b.habitReminders(habitID)
		if out == nil {
			out = []models.Reminder{}
		}
		writeJSON(w, http.StatusOK, out)

	case r.Method == http.MethodDelete && parts[0] == "reminder" && len(parts) == 2:
		id, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid reminder ID format")
			return
		}
		b.mu.Lock()
		found := false
		for i, reminder := range b.reminders {
			if reminder.ID == id {
				b.reminders = append(b.reminders[:i], b.reminders[i+1:]...)
				found = true
				break
			}
		}
		b.mu.Unlock()
		if !found {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Reminder not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "reminder deleted"})

	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route")
	}
}
