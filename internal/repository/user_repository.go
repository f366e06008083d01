package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kairu/internal/model"
)

func (r *SQLStore) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("create user: %w", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *SQLStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE email = ?`,
		email,
	)
	return scanUser(row, "get user by email")
}

func (r *SQLStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE id = ?`,
		id,
	)
	return scanUser(row, "get user by id")
}

func scanUser(s scanner, action string) (*model.User, error) {
	var user model.User
	var createdAt string
	var updatedAt string
	if err := s.Scan(&user.ID, &user.Email, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse user created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse user updated_at: %w", err)
	}
	user.CreatedAt = parsedCreatedAt
	user.UpdatedAt = parsedUpdatedAt

	return &user, nil
}

func (r *SQLStore) CreateProfile(ctx context.Context, profile *model.UserProfile) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO profiles (user_id, name, email, max_work_hours, preparing_for, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.MaxWorkHours,
		profile.PreparingFor,
		formatTime(profile.CreatedAt),
		formatTime(profile.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("create profile: %w", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *SQLStore) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT user_id, name, email, max_work_hours, preparing_for, created_at, updated_at
		 FROM profiles
		 WHERE user_id = ?`,
		userID,
	)

	var profile model.UserProfile
	var createdAt string
	var updatedAt string
	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.MaxWorkHours,
		&profile.PreparingFor,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if profile.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse profile created_at: %w", err)
	}
	if profile.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse profile updated_at: %w", err)
	}

	reminders, err := r.ListReminders(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Reminders = reminders
	return &profile, nil
}

func (r *SQLStore) UpdateProfile(ctx context.Context, profile *model.UserProfile) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE profiles
		 SET name = ?,
		     email = ?,
		     max_work_hours = ?,
		     preparing_for = ?,
		     updated_at = ?
		 WHERE user_id = ?`,
		profile.Name,
		profile.Email,
		profile.MaxWorkHours,
		profile.PreparingFor,
		formatTime(profile.UpdatedAt),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return expectAffected(result, "update profile")
}
