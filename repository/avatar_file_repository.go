package repository

import (
	"context"

	"habittracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvatarFileRepository handles database operations for uploaded avatars
type AvatarFileRepository struct {
	db *pgxpool.Pool
}

// NewAvatarFileRepository creates a new avatar file repository
func NewAvatarFileRepository(db *pgxpool.Pool) *AvatarFileRepository {
	return &AvatarFileRepository{db: db}
}

// Create inserts an avatar file record.
func (r *AvatarFileRepository) Create(ctx context.Context, file *models.AvatarFile) error {
	query := `
		INSERT INTO avatar_files (id, user_id, filename, mime_type, size, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		file.ID,
		file.UserID,
		file.Filename,
		file.MimeType,
		file.Size,
		file.StoragePath,
	).Scan(&file.CreatedAt)
}

// GetByID retrieves an avatar file record by id. Returns pgx.ErrNoRows
// when absent.
func (r *AvatarFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AvatarFile, error) {
	file := &models.AvatarFile{}
	query := `
		SELECT id, user_id, filename, mime_type, size, storage_path, created_at
		FROM avatar_files
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.UserID,
		&file.Filename,
		&file.MimeType,
		&file.Size,
		&file.StoragePath,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return file, nil
}

// Delete removes an avatar file record.
func (r *AvatarFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM avatar_files WHERE id = $1`, id)
	return err
}
