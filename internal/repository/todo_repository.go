package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kairu/internal/model"
)

const todoColumns = `id, user_id, title, completed, priority, due_date, category, estimate_minutes, created_at, completed_at`

func (r *SQLStore) CreateTodo(ctx context.Context, todo *model.TodoItem) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO todos (`+todoColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID,
		todo.UserID,
		todo.Title,
		boolToInt(todo.Completed),
		todo.Priority,
		todo.DueDate,
		todo.Category,
		todo.EstimateMinutes,
		formatTime(todo.CreatedAt),
		completedAtValue(todo),
	)
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *SQLStore) GetTodo(ctx context.Context, userID, id string) (*model.TodoItem, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanTodo(row)
}

func (r *SQLStore) ListTodos(ctx context.Context, userID, category string) ([]model.TodoItem, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = ?`
	args := []interface{}{userID}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.TodoItem, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *SQLStore) UpdateTodo(ctx context.Context, todo *model.TodoItem) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE todos
		 SET title = ?,
		     completed = ?,
		     priority = ?,
		     due_date = ?,
		     category = ?,
		     estimate_minutes = ?,
		     completed_at = ?
		 WHERE id = ? AND user_id = ?`,
		todo.Title,
		boolToInt(todo.Completed),
		todo.Priority,
		todo.DueDate,
		todo.Category,
		todo.EstimateMinutes,
		completedAtValue(todo),
		todo.ID,
		todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return expectAffected(result, "update todo")
}

func (r *SQLStore) DeleteTodo(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return expectAffected(result, "delete todo")
}

func completedAtValue(todo *model.TodoItem) interface{} {
	if todo.CompletedAt == nil {
		return nil
	}
	return formatTime(*todo.CompletedAt)
}

func scanTodo(s scanner) (*model.TodoItem, error) {
	todo := model.TodoItem{}
	var completed int
	var createdAt string
	var completedAt sql.NullString
	err := s.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.Category,
		&todo.EstimateMinutes,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	todo.Completed = completed != 0

	if todo.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse todo created_at: %w", err)
	}
	if completedAt.Valid {
		parsed, parseErr := parseTime(completedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse todo completed_at: %w", parseErr)
		}
		todo.CompletedAt = &parsed
	}
	return &todo, nil
}
