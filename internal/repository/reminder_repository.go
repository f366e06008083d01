package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kairu/internal/model"
)

const reminderColumns = `id, user_id, date, time, title, description, is_active, created_at`

func (r *SQLStore) AddReminder(ctx context.Context, reminder *model.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return fmt.Errorf("add reminder: %w", err)
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO reminders (`+reminderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reminder.ID,
		reminder.UserID,
		reminder.Date,
		reminder.Time,
		reminder.Title,
		reminder.Description,
		boolToInt(reminder.IsActive),
		formatTime(reminder.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("add reminder: %w", err)
	}
	return nil
}

func (r *SQLStore) DeleteReminder(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return expectAffected(result, "delete reminder")
}

func (r *SQLStore) SetReminderActive(ctx context.Context, userID, id string, active bool) (*model.Reminder, error) {
	var reminder *model.Reminder
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(
			ctx,
			`UPDATE reminders SET is_active = ? WHERE id = ? AND user_id = ?`,
			boolToInt(active),
			id,
			userID,
		)
		if err != nil {
			return fmt.Errorf("set reminder active: %w", err)
		}
		if err := expectAffected(result, "set reminder active"); err != nil {
			return err
		}

		row := tx.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)
		reminder, err = scanReminder(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// effectiveTimeColumn orders reminders without a time at the default hour.
const effectiveTimeColumn = `COALESCE(NULLIF(time, ''), '` + model.DefaultReminderTime + `')`

func (r *SQLStore) ListReminders(ctx context.Context, userID string) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 WHERE user_id = ?
		 ORDER BY date ASC, `+effectiveTimeColumn+` ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return collectReminders(rows)
}

func (r *SQLStore) ListActiveReminders(ctx context.Context, date string) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+reminderColumns+`
		 FROM reminders
		 WHERE date = ? AND is_active = 1
		 ORDER BY `+effectiveTimeColumn+` ASC, created_at ASC`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list active reminders: %w", err)
	}
	return collectReminders(rows)
}

func collectReminders(rows *sql.Rows) ([]model.Reminder, error) {
	defer rows.Close()

	reminders := make([]model.Reminder, 0)
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}
	return reminders, nil
}

func scanReminder(s scanner) (*model.Reminder, error) {
	reminder := model.Reminder{}
	var isActive int
	var createdAt string
	err := s.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Date,
		&reminder.Time,
		&reminder.Title,
		&reminder.Description,
		&isActive,
		&createdAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan reminder: %w", err)
	}
	reminder.IsActive = isActive != 0

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse reminder created_at: %w", err)
	}
	reminder.CreatedAt = parsedCreatedAt
	return &reminder, nil
}
