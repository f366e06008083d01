package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kairu/internal/model"
)

const sessionColumns = `id, user_id, duration, start_time, end_time, date, music_type`

func (r *SQLStore) CreateFocusSession(ctx context.Context, session *model.FocusSession) error {
	if session.Duration <= 0 {
		return fmt.Errorf("create focus session: duration must be positive, got %d", session.Duration)
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO focus_sessions (`+sessionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.Duration,
		formatTime(session.StartTime),
		formatTime(session.EndTime),
		session.Date,
		session.MusicType,
	)
	if err != nil {
		return fmt.Errorf("create focus session: %w", err)
	}
	return nil
}

func (r *SQLStore) ListSessionsByDate(ctx context.Context, userID, date string) ([]model.FocusSession, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM focus_sessions
		 WHERE user_id = ? AND date = ?
		 ORDER BY start_time ASC`,
		userID,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions by date: %w", err)
	}
	return collectSessions(rows)
}

func (r *SQLStore) ListSessions(ctx context.Context, userID string) ([]model.FocusSession, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+sessionColumns+`
		 FROM focus_sessions
		 WHERE user_id = ?
		 ORDER BY start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return collectSessions(rows)
}

func collectSessions(rows *sql.Rows) ([]model.FocusSession, error) {
	defer rows.Close()

	sessions := make([]model.FocusSession, 0)
	for rows.Next() {
		var session model.FocusSession
		var startTime string
		var endTime string
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Duration,
			&startTime,
			&endTime,
			&session.Date,
			&session.MusicType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if session.StartTime, err = parseTime(startTime); err != nil {
			return nil, fmt.Errorf("parse session start_time: %w", err)
		}
		if session.EndTime, err = parseTime(endTime); err != nil {
			return nil, fmt.Errorf("parse session end_time: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLStore) UpdateDailyStats(ctx context.Context, userID, date string, minutes int) (*model.DailyStats, error) {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO daily_stats (user_id, date, sessions_count, total_focus_minutes, updated_at)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		     sessions_count = sessions_count + 1,
		     total_focus_minutes = total_focus_minutes + excluded.total_focus_minutes,
		     updated_at = excluded.updated_at`,
		userID,
		date,
		minutes,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("update daily stats: %w", err)
	}
	return r.GetDailyStats(ctx, userID, date)
}

func (r *SQLStore) GetDailyStats(ctx context.Context, userID, date string) (*model.DailyStats, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT user_id, date, sessions_count, total_focus_minutes, updated_at
		 FROM daily_stats
		 WHERE user_id = ? AND date = ?`,
		userID,
		date,
	)
	return scanDailyStats(row)
}

func (r *SQLStore) ListDailyStats(ctx context.Context, userID string) ([]model.DailyStats, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT user_id, date, sessions_count, total_focus_minutes, updated_at
		 FROM daily_stats
		 WHERE user_id = ?
		 ORDER BY date ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	defer rows.Close()

	stats := make([]model.DailyStats, 0)
	for rows.Next() {
		day, err := scanDailyStats(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily stats: %w", err)
	}
	return stats, nil
}

func scanDailyStats(s scanner) (*model.DailyStats, error) {
	var stats model.DailyStats
	var updatedAt string
	err := s.Scan(&stats.UserID, &stats.Date, &stats.SessionsCount, &stats.TotalFocusMinutes, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan daily stats: %w", err)
	}
	if stats.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse daily stats updated_at: %w", err)
	}
	return &stats, nil
}
