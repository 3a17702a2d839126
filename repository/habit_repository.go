package repository

import (
	"context"
	"errors"

	"habittracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HabitRepository handles database operations for habits
type HabitRepository struct {
	db *pgxpool.Pool
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *pgxpool.Pool) *HabitRepository {
	return &HabitRepository{db: db}
}

const habitColumns = `id, user_id, title, notes, date, from_time, to_time, reminder, is_completed`

func scanHabit(row pgx.Row) (*models.Habit, error) {
	habit := &models.Habit{}
	err := row.Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Title,
		&habit.Notes,
		&habit.Date,
		&habit.FromTime,
		&habit.ToTime,
		&habit.Reminder,
		&habit.IsCompleted,
	)
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// ListByUser retrieves all habits owned by a user, ordered by date then
// start time ascending.
func (r *HabitRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = $1
		ORDER BY date ASC, from_time ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []*models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

// GetByID retrieves a habit by id. Returns pgx.ErrNoRows when absent.
func (r *HabitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`
	return scanHabit(r.db.QueryRow(ctx, query, id))
}

// Create inserts a new habit with a server-generated id. When an
// idempotency key is supplied and a habit with that key already exists,
// the existing row is loaded into habit instead of inserting a duplicate.
func (r *HabitRepository) Create(ctx context.Context, habit *models.Habit, idempotencyKey *uuid.UUID) error {
	query := `
		INSERT INTO habits (user_id, title, notes, date, from_time, to_time, reminder, is_completed, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING
		RETURNING id`

	err := r.db.QueryRow(
		ctx, query,
		habit.UserID,
		habit.Title,
		habit.Notes,
		habit.Date,
		habit.FromTime,
		habit.ToTime,
		habit.Reminder,
		habit.IsCompleted,
		idempotencyKey,
	).Scan(&habit.ID)

	if errors.Is(err, pgx.ErrNoRows) && idempotencyKey != nil {
		// Replayed create: hand back the original row.
		existing, lookupErr := scanHabit(r.db.QueryRow(ctx,
			`SELECT `+habitColumns+` FROM habits WHERE idempotency_key = $1`, idempotencyKey))
		if lookupErr != nil {
			return lookupErr
		}
		*habit = *existing
		return nil
	}

	return err
}

// Update overwrites all mutable fields of a habit. Reports whether a row
// was updated.
func (r *HabitRepository) Update(ctx context.Context, habit *models.Habit) (bool, error) {
	query := `
		UPDATE habits SET
			title = $2,
			notes = $3,
			date = $4,
			from_time = $5,
			to_time = $6,
			reminder = $7,
			is_completed = $8
		WHERE id = $1`

	tag, err := r.db.Exec(
		ctx, query,
		habit.ID,
		habit.Title,
		habit.Notes,
		habit.Date,
		habit.FromTime,
		habit.ToTime,
		habit.Reminder,
		habit.IsCompleted,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a habit and its reminders in one transaction. Reports
// whether the habit row existed.
func (r *HabitRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reminders WHERE habit_id = $1`, id); err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
