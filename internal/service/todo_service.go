package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "kairu/internal/errors"
	"kairu/internal/model"
	"kairu/internal/repository"
)

type TodoService struct {
	store repository.TodoStore
	cal   Calendar
}

func NewTodoService(store repository.TodoStore, cal Calendar) *TodoService {
	return &TodoService{store: store, cal: cal}
}

type CreateTodoInput struct {
	Title           string
	Priority        string
	DueDate         string
	Category        string
	EstimateMinutes int
}

// UpdateTodoInput leaves nil fields unchanged.
type UpdateTodoInput struct {
	Title           *string
	Completed       *bool
	Priority        *string
	DueDate         *string
	Category        *string
	EstimateMinutes *int
}

func (s *TodoService) List(ctx context.Context, userID, category string) ([]model.TodoItem, *apperrors.APIError) {
	if category != "" && !model.IsValidCategory(category) {
		return nil, apperrors.BadRequest("invalid_category", "category must be daily, weekly or monthly")
	}
	todos, err := s.store.ListTodos(ctx, userID, category)
	if err != nil {
		return nil, apperrors.Internal("failed to list todos")
	}
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, input CreateTodoInput) (*model.TodoItem, *apperrors.APIError) {
	todo := model.TodoItem{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           strings.TrimSpace(input.Title),
		Priority:        input.Priority,
		DueDate:         strings.TrimSpace(input.DueDate),
		Category:        input.Category,
		EstimateMinutes: input.EstimateMinutes,
		CreatedAt:       s.cal.Now().UTC(),
	}
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	if todo.Category == "" {
		todo.Category = model.CategoryDaily
	}
	if apiErr := validateTodo(todo); apiErr != nil {
		return nil, apiErr
	}

	if err := s.store.CreateTodo(ctx, &todo); err != nil {
		return nil, apperrors.Internal("failed to create todo")
	}
	return &todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id string, input UpdateTodoInput) (*model.TodoItem, *apperrors.APIError) {
	todo, apiErr := s.get(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}

	if input.Title != nil {
		todo.Title = strings.TrimSpace(*input.Title)
	}
	if input.Priority != nil {
		todo.Priority = *input.Priority
	}
	if input.DueDate != nil {
		todo.DueDate = strings.TrimSpace(*input.DueDate)
	}
	if input.Category != nil {
		todo.Category = *input.Category
	}
	if input.EstimateMinutes != nil {
		todo.EstimateMinutes = *input.EstimateMinutes
	}
	if input.Completed != nil {
		s.setCompleted(todo, *input.Completed)
	}
	if apiErr := validateTodo(*todo); apiErr != nil {
		return nil, apiErr
	}
	return s.save(ctx, todo)
}

func (s *TodoService) Toggle(ctx context.Context, userID, id string) (*model.TodoItem, *apperrors.APIError) {
	todo, apiErr := s.get(ctx, userID, id)
	if apiErr != nil {
		return nil, apiErr
	}
	s.setCompleted(todo, !todo.Completed)
	return s.save(ctx, todo)
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.store.DeleteTodo(ctx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("todo_not_found", "todo not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete todo")
	}
	return nil
}

func (s *TodoService) get(ctx context.Context, userID, id string) (*model.TodoItem, *apperrors.APIError) {
	todo, err := s.store.GetTodo(ctx, userID, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("todo_not_found", "todo not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load todo")
	}
	return todo, nil
}

func (s *TodoService) save(ctx context.Context, todo *model.TodoItem) (*model.TodoItem, *apperrors.APIError) {
	err := s.store.UpdateTodo(ctx, todo)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("todo_not_found", "todo not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update todo")
	}
	return todo, nil
}

func (s *TodoService) setCompleted(todo *model.TodoItem, completed bool) {
	if completed == todo.Completed {
		return
	}
	todo.Completed = completed
	if completed {
		now := s.cal.Now().UTC()
		todo.CompletedAt = &now
	} else {
		todo.CompletedAt = nil
	}
}

func validateTodo(todo model.TodoItem) *apperrors.APIError {
	if todo.Title == "" {
		return apperrors.BadRequest("invalid_title", "title is required")
	}
	if !model.IsValidPriority(todo.Priority) {
		return apperrors.BadRequest("invalid_priority", "priority must be low, medium or high")
	}
	if !model.IsValidCategory(todo.Category) {
		return apperrors.BadRequest("invalid_category", "category must be daily, weekly or monthly")
	}
	if todo.EstimateMinutes < 0 {
		return apperrors.BadRequest("invalid_estimate", "estimateMinutes must not be negative")
	}
	if todo.DueDate != "" {
		if _, err := time.Parse(model.DateLayout, todo.DueDate); err != nil {
			return apperrors.BadRequest("invalid_due_date", "dueDate must be YYYY-MM-DD")
		}
	}
	return nil
}
