package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user. ExternalUID is the opaque subject id
// issued by the identity provider; it is unique and never changes once the
// row exists. Optional profile fields are absent (nil) rather than empty.
type User struct {
	ID           uuid.UUID `json:"id"`
	ExternalUID  string    `json:"externalUid"`
	Email        string    `json:"email"`
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	BirthDate    *string   `json:"birthday"` // dd/mm/yyyy
	Gender       *string   `json:"gender"`
	AvatarFileID *string   `json:"profileImageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
