package service

import (
	"context"
	"errors"
	"strings"

	"habittracker-backend/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository is the persistence surface the user service needs.
type UserRepository interface {
	GetByExternalUID(ctx context.Context, externalUID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, externalUID string, user *models.User) (bool, error)
	SetAvatarFileID(ctx context.Context, externalUID string, fileID string) (bool, error)
}

// UserService handles business logic for users
type UserService struct {
	userRepo UserRepository
}

// UserServiceOption is a functional option for UserService
type UserServiceOption func(*UserService)

// WithUserRepository sets the user repository
func WithUserRepository(repo UserRepository) UserServiceOption {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// NewUserService creates a new user service
func NewUserService(opts ...UserServiceOption) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfileInput carries the mutable profile fields as the wire sends them.
// Blank strings mean "no value" and are stored as absent.
type ProfileInput struct {
	FirstName       string
	LastName        string
	Birthday        string
	Gender          string
	ProfileImageURL string
}

func (p ProfileInput) apply(user *models.User) {
	user.FirstName = optional(p.FirstName)
	user.LastName = optional(p.LastName)
	user.BirthDate = optional(p.Birthday)
	user.Gender = optional(p.Gender)
	user.AvatarFileID = optional(p.ProfileImageURL)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// GetUser retrieves a user by external uid.
func (s *UserService) GetUser(ctx context.Context, externalUID string) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	user, err := s.userRepo.GetByExternalUID(ctx, externalUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// RegisterUserRequest represents a request to register a user
type RegisterUserRequest struct {
	ExternalUID string
	Email       string
	Profile     ProfileInput
}

// RegisterUser creates a user on first sign-in. If a user with the same
// external uid already exists, the existing record is returned unchanged.
func (s *UserService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("user repository not set")
	}

	existing, err := s.userRepo.GetByExternalUID(ctx, req.ExternalUID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	user := &models.User{
		ExternalUID: req.ExternalUID,
		Email:       req.Email,
	}
	req.Profile.apply(user)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUserRequest represents a request to update a user's profile
type UpdateUserRequest struct {
	ExternalUID string
	Profile     ProfileInput
}

// UpdateUser overwrites the mutable profile fields of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, req UpdateUserRequest) error {
	if s.userRepo == nil {
		return errors.New("user repository not set")
	}

	user := &models.User{}
	req.Profile.apply(user)

	updated, err := s.userRepo.UpdateProfile(ctx, req.ExternalUID, user)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	return nil
}

// SetAvatar points the user's avatar reference at an uploaded file id.
func (s *UserService) SetAvatar(ctx context.Context, externalUID string, fileID string) error {
	if s.userRepo == nil {
		return errors.New("user repository not set")
	}

	updated, err := s.userRepo.SetAvatarFileID(ctx, externalUID, fileID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	return nil
}
