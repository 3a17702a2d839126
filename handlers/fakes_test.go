package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"habittracker-backend/models"
	"habittracker-backend/service"
	"habittracker-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory repositories so the handler tests exercise the full router and
// service wiring without Postgres.

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) GetByExternalUID(_ context.Context, externalUID string) (*models.User, error) {
	user, ok := r.users[externalUID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uuid.New()
	copied := *user
	r.users[user.ExternalUID] = &copied
	return nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, externalUID string, user *models.User) (bool, error) {
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

func (r *memUserRepo) SetAvatarFileID(_ context.Context, externalUID string, fileID string) (bool, error) {
	existing, ok := r.users[externalUID]
	if !ok {
		return false, nil
	}
	existing.AvatarFileID = &fileID
	return true, nil
}

type memHabitRepo struct {
	habits    map[uuid.UUID]*models.Habit
	byKey     map[uuid.UUID]uuid.UUID
	reminders *memReminderRepo
}

func newMemHabitRepo(reminders *memReminderRepo) *memHabitRepo {
	return &memHabitRepo{
		habits:    make(map[uuid.UUID]*models.Habit),
		byKey:     make(map[uuid.UUID]uuid.UUID),
		reminders: reminders,
	}
}

func (r *memHabitRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Habit, error) {
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

func (r *memHabitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Habit, error) {
	habit, ok := r.habits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *habit
	return &copied, nil
}

func (r *memHabitRepo) Create(_ context.Context, habit *models.Habit, idempotencyKey *uuid.UUID) error {
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

func (r *memHabitRepo) Update(_ context.Context, habit *models.Habit) (bool, error) {
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

func (r *memHabitRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.habits[id]; !ok {
		return false, nil
	}
	delete(r.habits, id)
	r.reminders.deleteByHabit(id)
	return true, nil
}

type memReminderRepo struct {
	reminders []*models.Reminder
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{}
}

func (r *memReminderRepo) Create(_ context.Context, reminder *models.Reminder) error {
	reminder.ID = uuid.New()
	copied := *reminder
	r.reminders = append(r.reminders, &copied)
	return nil
}

func (r *memReminderRepo) ListByHabit(_ context.Context, habitID uuid.UUID) ([]*models.Reminder, error) {
	var out []*models.Reminder
	for _, reminder := range r.reminders {
		if reminder.HabitID == habitID {
			copied := *reminder
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memReminderRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, reminder := range r.reminders {
		if reminder.ID == id {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memReminderRepo) deleteByHabit(habitID uuid.UUID) {
	kept := r.reminders[:0]
	for _, reminder := range r.reminders {
		if reminder.HabitID != habitID {
			kept = append(kept, reminder)
		}
	}
	r.reminders = kept
}

type memAvatarRepo struct {
	files map[uuid.UUID]*models.AvatarFile
}

func newMemAvatarRepo() *memAvatarRepo {
	return &memAvatarRepo{files: make(map[uuid.UUID]*models.AvatarFile)}
}

func (r *memAvatarRepo) Create(_ context.Context, file *models.AvatarFile) error {
	copied := *file
	r.files[file.ID] = &copied
	return nil
}

func (r *memAvatarRepo) GetByID(_ context.Context, id uuid.UUID) (*models.AvatarFile, error) {
	file, ok := r.files[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *file
	return &copied, nil
}

func (r *memAvatarRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.files, id)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	userRepo := newMemUserRepo()
	reminderRepo := newMemReminderRepo()
	habitRepo := newMemHabitRepo(reminderRepo)
	avatarRepo := newMemAvatarRepo()

	userService := service.NewUserService(
		service.WithUserRepository(userRepo),
	)
	habitService := service.NewHabitService(
		service.WithHabitRepository(habitRepo),
		service.HabitWithUserRepository(userRepo),
	)
	reminderService := service.NewReminderService(
		service.WithReminderRepository(reminderRepo),
		service.ReminderWithHabitRepository(habitRepo),
	)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return NewRouter(
		NewUserHandler(userService),
		NewHabitHandler(habitService),
		NewReminderHandler(reminderService),
		NewAvatarHandler(userService, avatarRepo, store),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerUser(t *testing.T, router *gin.Engine, uid, email string) models.User {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/user/"+uid+"?email="+email, map[string]string{}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	decodeBody(t, w, &user)
	return user
}

func createHabit(t *testing.T, router *gin.Engine, uid string, payload map[string]interface{}) models.Habit {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/habits/"+uid, payload, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var habit models.Habit
	decodeBody(t, w, &habit)
	return habit
}

func habitPayload(title, date, from, to string) map[string]interface{} {
	return map[string]interface{}{
		"title":    title,
		"date":     date,
		"fromTime": from,
		"toTime":   to,
	}
}
