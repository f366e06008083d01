package repository

import (
	"context"
	"fmt"

	"kairu/internal/model"
)

func (r *SQLStore) CreateTimelineEntry(ctx context.Context, entry *model.TimelineEntry) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO timeline_entries (
			id, user_id, title, start_time, end_time, duration_minutes,
			date, tag, category, productivity, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Title,
		formatTime(entry.StartTime),
		formatTime(entry.EndTime),
		entry.DurationMinutes,
		entry.Date,
		entry.Tag,
		entry.Category,
		entry.Productivity,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create timeline entry: %w", err)
	}
	return nil
}

func (r *SQLStore) ListTimeline(ctx context.Context, userID string, limit int) ([]model.TimelineEntry, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, title, start_time, end_time, duration_minutes,
		        date, tag, category, productivity, created_at
		 FROM timeline_entries
		 WHERE user_id = ?
		 ORDER BY start_time DESC, created_at DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	defer rows.Close()

	entries := make([]model.TimelineEntry, 0, limit)
	for rows.Next() {
		var entry model.TimelineEntry
		var startTime, endTime, createdAt string
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Title,
			&startTime,
			&endTime,
			&entry.DurationMinutes,
			&entry.Date,
			&entry.Tag,
			&entry.Category,
			&entry.Productivity,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan timeline entry: %w", err)
		}
		if entry.StartTime, err = parseTime(startTime); err != nil {
			return nil, fmt.Errorf("parse timeline start_time: %w", err)
		}
		if entry.EndTime, err = parseTime(endTime); err != nil {
			return nil, fmt.Errorf("parse timeline end_time: %w", err)
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse timeline created_at: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeline: %w", err)
	}
	return entries, nil
}
