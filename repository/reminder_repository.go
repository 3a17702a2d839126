package repository

import (
	"context"

	"habittracker-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReminderRepository handles database operations for reminders
type ReminderRepository struct {
	db *pgxpool.Pool
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create inserts a new reminder with a server-generated id.
func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	query := `
		INSERT INTO reminders (habit_id, remind_at)
		VALUES ($1, $2)
		RETURNING id`

	return r.db.QueryRow(ctx, query, reminder.HabitID, reminder.RemindAt).Scan(&reminder.ID)
}

// ListByHabit retrieves all reminders for a habit in insertion order.
func (r *ReminderRepository) ListByHabit(ctx context.Context, habitID uuid.UUID) ([]*models.Reminder, error) {
	query := `
		SELECT id, habit_id, remind_at
		FROM reminders
		WHERE habit_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ID, &reminder.HabitID, &reminder.RemindAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, rows.Err()
}

// Delete removes a reminder by id. Reports whether a row was deleted.
func (r *ReminderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
