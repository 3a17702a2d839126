package handlers

import (
	"errors"
	"log"
	"net/http"

	"habittracker-backend/models"
	"habittracker-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HabitHandler handles HTTP requests for habits
type HabitHandler struct {
	habitService *service.HabitService
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

// HabitRequest represents the habit payload for create and update. Date
// and time strings are parsed strictly against the fixed wire formats
// during binding, so a malformed value fails the request up front.
type HabitRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Notes       *string                `json:"notes"`
	Date        models.Date            `json:"date" binding:"required"`
	FromTime    models.TimeOfDay       `json:"fromTime" binding:"required"`
	ToTime      models.TimeOfDay       `json:"toTime" binding:"required"`
	Reminder    *models.ReminderOffset `json:"reminder"`
	IsCompleted bool                   `json:"isCompleted"`
}

func (r HabitRequest) toInput() service.HabitInput {
	return service.HabitInput{
		Title:       r.Title,
		Notes:       r.Notes,
		Date:        r.Date,
		FromTime:    r.FromTime,
		ToTime:      r.ToTime,
		Reminder:    r.Reminder,
		IsCompleted: r.IsCompleted,
	}
}

// ListHabits handles GET /habits/:uid
func (h *HabitHandler) ListHabits(c *gin.Context) {
	uid := c.Param("uid")

	habits, err := h.habitService.ListHabits(c.Request.Context(), uid)
	if err != nil {
		log.Printf("list habits for %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, habits)
}

// GetHabit handles GET /habits/one/:id
func (h *HabitHandler) GetHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid habit ID format")
		return
	}

	habit, err := h.habitService.GetHabit(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Habit not found")
			return
		}
		log.Printf("get habit %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, habit)
}

// CreateHabit handles POST /habits/:uid
//
// The server assigns the habit id; an id in the payload is ignored. An
// optional Idempotency-Key header (uuid) makes a replayed create return
// the originally inserted habit instead of a duplicate.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	uid := c.Param("uid")

	var req HabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var idemKey *uuid.UUID
	if header := c.GetHeader("Idempotency-Key"); header != "" {
		key, err := uuid.Parse(header)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_IDEMPOTENCY_KEY", "Idempotency-Key must be a uuid")
			return
		}
		idemKey = &key
	}

	habit, err := h.habitService.CreateHabit(c.Request.Context(), service.CreateHabitRequest{
		ExternalUID:    uid,
		Input:          req.toInput(),
		IdempotencyKey: idemKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrInvalidTimeRange):
			respondError(c, http.StatusBadRequest, "INVALID_TIME_RANGE", err.Error())
		default:
			log.Printf("create habit for %s: %v", uid, err)
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit handles PUT /habits/:id
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid habit ID format")
		return
	}

	var req HabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.habitService.UpdateHabit(c.Request.Context(), id, req.toInput()); err != nil {
		switch {
		case errors.Is(err, service.ErrHabitNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Habit not found")
		case errors.Is(err, service.ErrInvalidTimeRange):
			respondError(c, http.StatusBadRequest, "INVALID_TIME_RANGE", err.Error())
		default:
			log.Printf("update habit %s: %v", id, err)
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "habit updated"})
}

// DeleteHabit handles DELETE /habits/:id
//
// Deleting a habit removes its reminders in the same transaction.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid habit ID format")
		return
	}

	if err := h.habitService.DeleteHabit(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Habit not found")
			return
		}
		log.Printf("delete habit %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "habit deleted"})
}
