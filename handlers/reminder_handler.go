package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"habittracker-backend/models"
	"habittracker-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReminderHandler handles HTTP requests for reminders
type ReminderHandler struct {
	reminderService *service.ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// ReminderRequest represents the payload for creating a reminder
type ReminderRequest struct {
	HabitID  string `json:"habitId" binding:"required"`
	RemindAt string `json:"remindAt" binding:"required"`
}

// CreateReminder handles POST /reminder
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	habitID, err := uuid.Parse(req.HabitID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_HABIT_ID", "Invalid habit ID format")
		return
	}

	if _, err := time.Parse(models.RemindAtLayout, req.RemindAt); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REMIND_AT", "remindAt must be a local ISO timestamp")
		return
	}

	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), habitID, req.RemindAt)
	if err != nil {
		if errors.Is(err, service.ErrHabitNotFound) {
			respondError(c, http.StatusNotFound, "HABIT_NOT_FOUND", "Habit not found")
			return
		}
		log.Printf("create reminder for habit %s: %v", habitID, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// ListReminders handles GET /reminder/:habitId
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	habitID, err := uuid.Parse(c.Param("habitId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_HABIT_ID", "Invalid habit ID format")
		return
	}

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), habitID)
	if err != nil {
		log.Printf("list reminders for habit %s: %v", habitID, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// DeleteReminder handles DELETE /reminder/:id
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid reminder ID format")
		return
	}

	if err := h.reminderService.DeleteReminder(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrReminderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Reminder not found")
			return
		}
		log.Printf("delete reminder %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}
