package handlers

import (
	"errors"
	"log"
	"net/http"

	"habittracker-backend/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ProfileRequest represents the user payload for register and update
type ProfileRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Birthday        string `json:"birthday"`
	Gender          string `json:"gender"`
	ProfileImageURL string `json:"profileImageUrl"`
}

func (r ProfileRequest) toInput() service.ProfileInput {
	return service.ProfileInput{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Birthday:        r.Birthday,
		Gender:          r.Gender,
		ProfileImageURL: r.ProfileImageURL,
	}
}

// GetUser handles GET /user/:uid
func (h *UserHandler) GetUser(c *gin.Context) {
	uid := c.Param("uid")

	user, err := h.userService.GetUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		log.Printf("get user %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, user)
}

// RegisterUser handles POST /user/:uid?email=
//
// Registering an already-known uid is a no-op that returns the existing
// record unchanged.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	uid := c.Param("uid")

	email := c.Query("email")
	if email == "" {
		respondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Missing email")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), service.RegisterUserRequest{
		ExternalUID: uid,
		Email:       email,
		Profile:     req.toInput(),
	})
	if err != nil {
		log.Printf("register user %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /user/:uid
func (h *UserHandler) UpdateUser(c *gin.Context) {
	uid := c.Param("uid")

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	err := h.userService.UpdateUser(c.Request.Context(), service.UpdateUserRequest{
		ExternalUID: uid,
		Profile:     req.toInput(),
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		log.Printf("update user %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}
