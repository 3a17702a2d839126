package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"habittracker-backend/models"
	"habittracker-backend/service"
	"habittracker-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AvatarHandler handles profile image upload and download
type AvatarHandler struct {
	userService *service.UserService
	avatarRepo  AvatarRepo
	storage     storage.Storage
	maxSize     int64
}

// AvatarRepo is the persistence surface the avatar handler needs.
type AvatarRepo interface {
	Create(ctx context.Context, file *models.AvatarFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AvatarFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// NewAvatarHandler creates a new avatar handler
func NewAvatarHandler(userService *service.UserService, avatarRepo AvatarRepo, store storage.Storage) *AvatarHandler {
	return &AvatarHandler{
		userService: userService,
		avatarRepo:  avatarRepo,
		storage:     store,
		maxSize:     5 * 1024 * 1024, // 5MB
	}
}

// UploadAvatar handles POST /user/:uid/avatar
func (h *AvatarHandler) UploadAvatar(c *gin.Context) {
	uid := c.Param("uid")

	user, err := h.userService.GetUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		log.Printf("upload avatar for %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "Avatar file is required")
		return
	}

	if fileHeader.Size > h.maxSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxSize))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = imageTypeFromExt(fileHeader.Filename)
	}
	if !allowedImageTypes[mimeType] {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
			"File type not allowed. Allowed types: PNG, JPEG, WEBP, GIF")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("open avatar upload for %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	defer file.Close()

	fileID := uuid.New()

	storagePath, err := h.storage.Upload(c.Request.Context(), fileID, fileHeader.Filename, file)
	if err != nil {
		log.Printf("store avatar for %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store avatar")
		return
	}

	record := &models.AvatarFile{
		ID:          fileID,
		UserID:      user.ID,
		Filename:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
		StoragePath: storagePath,
	}

	if err := h.avatarRepo.Create(c.Request.Context(), record); err != nil {
		// Don't leave an orphaned object behind.
		h.storage.Delete(c.Request.Context(), storagePath)
		log.Printf("save avatar record for %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	if err := h.userService.SetAvatar(c.Request.Context(), uid, fileID.String()); err != nil {
		log.Printf("set avatar reference for %s: %v", uid, err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	h.removePreviousAvatar(c.Request.Context(), user.AvatarFileID)

	c.JSON(http.StatusCreated, gin.H{"fileId": fileID.String()})
}

// GetAvatar handles GET /avatar/:fileId
func (h *AvatarHandler) GetAvatar(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid file ID format")
		return
	}

	record, err := h.avatarRepo.GetByID(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Avatar not found")
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), record.StoragePath)
	if err != nil {
		log.Printf("download avatar %s: %v", fileID, err)
		respondError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", "Failed to load avatar")
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, record.Size, record.MimeType, reader, nil)
}

// removePreviousAvatar drops the replaced image and its record once the
// user points at a new one. The reference may also hold an external URL
// set through the profile endpoints; those are left alone. Cleanup
// failures are logged, never surfaced: the new avatar is already live.
func (h *AvatarHandler) removePreviousAvatar(ctx context.Context, previous *string) {
	if previous == nil {
		return
	}

	oldID, err := uuid.Parse(*previous)
	if err != nil {
		return
	}

	record, err := h.avatarRepo.GetByID(ctx, oldID)
	if err != nil {
		return
	}

	if err := h.storage.Delete(ctx, record.StoragePath); err != nil {
		log.Printf("delete replaced avatar object %s: %v", oldID, err)
	}
	if err := h.avatarRepo.Delete(ctx, oldID); err != nil {
		log.Printf("delete replaced avatar record %s: %v", oldID, err)
	}
}

func imageTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
