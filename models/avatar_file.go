package models

import (
	"time"

	"github.com/google/uuid"
)

// AvatarFile records an uploaded profile image and where the storage
// backend keeps it.
type AvatarFile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
