package repository

import (
	"context"
	"errors"

	"kairu/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// ProfileStore returns profiles with their reminders attached.
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile *model.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *model.UserProfile) error
}

type ReminderStore interface {
	AddReminder(ctx context.Context, reminder *model.Reminder) error
	DeleteReminder(ctx context.Context, userID, id string) error
	SetReminderActive(ctx context.Context, userID, id string, active bool) (*model.Reminder, error)
	ListReminders(ctx context.Context, userID string) ([]model.Reminder, error)
	// ListActiveReminders returns active reminders of every user dated date.
	ListActiveReminders(ctx context.Context, date string) ([]model.Reminder, error)
}

type SessionStore interface {
	CreateFocusSession(ctx context.Context, session *model.FocusSession) error
	ListSessionsByDate(ctx context.Context, userID, date string) ([]model.FocusSession, error)
	ListSessions(ctx context.Context, userID string) ([]model.FocusSession, error)
	UpdateDailyStats(ctx context.Context, userID, date string, minutes int) (*model.DailyStats, error)
	GetDailyStats(ctx context.Context, userID, date string) (*model.DailyStats, error)
	ListDailyStats(ctx context.Context, userID string) ([]model.DailyStats, error)
}

type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.TodoItem) error
	GetTodo(ctx context.Context, userID, id string) (*model.TodoItem, error)
	ListTodos(ctx context.Context, userID, category string) ([]model.TodoItem, error)
	UpdateTodo(ctx context.Context, todo *model.TodoItem) error
	DeleteTodo(ctx context.Context, userID, id string) error
}

type TimelineStore interface {
	CreateTimelineEntry(ctx context.Context, entry *model.TimelineEntry) error
	ListTimeline(ctx context.Context, userID string, limit int) ([]model.TimelineEntry, error)
}

// Store is the single persistence boundary. SQLStore backs normal operation
// and MemoryStore backs demo mode.
type Store interface {
	UserStore
	ProfileStore
	ReminderStore
	SessionStore
	TodoStore
	TimelineStore
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
