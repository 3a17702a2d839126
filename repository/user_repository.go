package repository

import (
	"context"

	"habittracker-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByExternalUID retrieves a user by the identity provider's subject id.
// Returns pgx.ErrNoRows when no such user exists.
func (r *UserRepository) GetByExternalUID(ctx context.Context, externalUID string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, external_uid, email, first_name, last_name, birth_date, gender, avatar_file_id, created_at
		FROM users
		WHERE external_uid = $1`

	err := r.db.QueryRow(ctx, query, externalUID).Scan(
		&user.ID,
		&user.ExternalUID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.BirthDate,
		&user.Gender,
		&user.AvatarFileID,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// Create inserts a new user row and fills in the generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (external_uid, email, first_name, last_name, birth_date, gender, avatar_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		user.ExternalUID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.BirthDate,
		user.Gender,
		user.AvatarFileID,
	).Scan(&user.ID, &user.CreatedAt)

	return err
}

// UpdateProfile overwrites the mutable profile fields of the user with the
// given external uid. Nil fields are stored as NULL. Reports whether a row
// was updated.
func (r *UserRepository) UpdateProfile(ctx context.Context, externalUID string, user *models.User) (bool, error) {
	query := `
		UPDATE users SET
			first_name = $2,
			last_name = $3,
			birth_date = $4,
			gender = $5,
			avatar_file_id = $6
		WHERE external_uid = $1`

	tag, err := r.db.Exec(
		ctx, query,
		externalUID,
		user.FirstName,
		user.LastName,
		user.BirthDate,
		user.Gender,
		user.AvatarFileID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// SetAvatarFileID points the user's avatar reference at an uploaded file.
func (r *UserRepository) SetAvatarFileID(ctx context.Context, externalUID string, fileID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET avatar_file_id = $2 WHERE external_uid = $1`,
		externalUID, fileID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
