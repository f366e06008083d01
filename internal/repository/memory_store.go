package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"kairu/internal/model"
)

// MemoryStore keeps everything in process memory. It backs demo mode and
// loses all data on restart. Returned values are copies.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]model.User
	profiles  map[string]model.UserProfile
	reminders []model.Reminder
	sessions  []model.FocusSession
	stats     map[string]model.DailyStats
	todos     []model.TodoItem
	timeline  []model.TimelineEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]model.User),
		profiles: make(map[string]model.UserProfile),
		stats:    make(map[string]model.DailyStats),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email || existing.ID == user.ID {
			return fmt.Errorf("create user: %w", ErrConflict)
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryStore) CreateProfile(_ context.Context, profile *model.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[profile.ID]; !ok {
		return fmt.Errorf("create profile: unknown user %q", profile.ID)
	}
	if _, ok := m.profiles[profile.ID]; ok {
		return fmt.Errorf("create profile: %w", ErrConflict)
	}
	stored := *profile
	stored.Reminders = nil
	m.profiles[profile.ID] = stored
	return nil
}

func (m *MemoryStore) GetProfile(_ context.Context, userID string) (*model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	profile.Reminders = m.remindersFor(userID)
	return &profile, nil
}

func (m *MemoryStore) UpdateProfile(_ context.Context, profile *model.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.profiles[profile.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = profile.Name
	existing.Email = profile.Email
	existing.MaxWorkHours = profile.MaxWorkHours
	existing.PreparingFor = profile.PreparingFor
	existing.UpdatedAt = profile.UpdatedAt
	m.profiles[profile.ID] = existing
	return nil
}

func (m *MemoryStore) AddReminder(_ context.Context, reminder *model.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return fmt.Errorf("add reminder: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reminders {
		if existing.ID == reminder.ID {
			return fmt.Errorf("add reminder: %w", ErrConflict)
		}
	}
	m.reminders = append(m.reminders, *reminder)
	return nil
}

func (m *MemoryStore) DeleteReminder(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, reminder := range m.reminders {
		if reminder.ID == id && reminder.UserID == userID {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) SetReminderActive(_ context.Context, userID, id string, active bool) (*model.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.reminders {
		if m.reminders[i].ID == id && m.reminders[i].UserID == userID {
			m.reminders[i].IsActive = active
			reminder := m.reminders[i]
			return &reminder, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListReminders(_ context.Context, userID string) ([]model.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.remindersFor(userID), nil
}

func (m *MemoryStore) ListActiveReminders(_ context.Context, date string) ([]model.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Reminder, 0)
	for _, reminder := range m.reminders {
		if reminder.IsActive && reminder.Date == date {
			out = append(out, reminder)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ti, tj := out[i].EffectiveTime(), out[j].EffectiveTime(); ti != tj {
			return ti < tj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// remindersFor expects m.mu to be held.
func (m *MemoryStore) remindersFor(userID string) []model.Reminder {
	out := make([]model.Reminder, 0)
	for _, reminder := range m.reminders {
		if reminder.UserID == userID {
			out = append(out, reminder)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if ti, tj := out[i].EffectiveTime(), out[j].EffectiveTime(); ti != tj {
			return ti < tj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (m *MemoryStore) CreateFocusSession(_ context.Context, session *model.FocusSession) error {
	if session.Duration <= 0 {
		return fmt.Errorf("create focus session: duration must be positive, got %d", session.Duration)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, *session)
	return nil
}

func (m *MemoryStore) ListSessionsByDate(_ context.Context, userID, date string) ([]model.FocusSession, error) {
	return m.filterSessions(func(s model.FocusSession) bool {
		return s.UserID == userID && s.Date == date
	}), nil
}

func (m *MemoryStore) ListSessions(_ context.Context, userID string) ([]model.FocusSession, error) {
	return m.filterSessions(func(s model.FocusSession) bool {
		return s.UserID == userID
	}), nil
}

func (m *MemoryStore) filterSessions(keep func(model.FocusSession) bool) []model.FocusSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.FocusSession, 0)
	for _, session := range m.sessions {
		if keep(session) {
			out = append(out, session)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func statsKey(userID, date string) string {
	return userID + "|" + date
}

func (m *MemoryStore) UpdateDailyStats(_ context.Context, userID, date string, minutes int) (*model.DailyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := statsKey(userID, date)
	stats, ok := m.stats[key]
	if !ok {
		stats = model.DailyStats{UserID: userID, Date: date}
	}
	stats.SessionsCount++
	stats.TotalFocusMinutes += minutes
	stats.UpdatedAt = time.Now().UTC()
	m.stats[key] = stats
	return &stats, nil
}

func (m *MemoryStore) GetDailyStats(_ context.Context, userID, date string) (*model.DailyStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats, ok := m.stats[statsKey(userID, date)]
	if !ok {
		return nil, ErrNotFound
	}
	return &stats, nil
}

func (m *MemoryStore) ListDailyStats(_ context.Context, userID string) ([]model.DailyStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.DailyStats, 0)
	for _, stats := range m.stats {
		if stats.UserID == userID {
			out = append(out, stats)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *MemoryStore) CreateTodo(_ context.Context, todo *model.TodoItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.todos = append(m.todos, copyTodo(*todo))
	return nil
}

func (m *MemoryStore) GetTodo(_ context.Context, userID, id string) (*model.TodoItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, todo := range m.todos {
		if todo.ID == id && todo.UserID == userID {
			out := copyTodo(todo)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListTodos(_ context.Context, userID, category string) ([]model.TodoItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.TodoItem, 0)
	for _, todo := range m.todos {
		if todo.UserID != userID {
			continue
		}
		if category != "" && todo.Category != category {
			continue
		}
		out = append(out, copyTodo(todo))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateTodo(_ context.Context, todo *model.TodoItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.todos {
		if m.todos[i].ID == todo.ID && m.todos[i].UserID == todo.UserID {
			createdAt := m.todos[i].CreatedAt
			m.todos[i] = copyTodo(*todo)
			m.todos[i].CreatedAt = createdAt
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) DeleteTodo(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, todo := range m.todos {
		if todo.ID == id && todo.UserID == userID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func copyTodo(todo model.TodoItem) model.TodoItem {
	if todo.CompletedAt != nil {
		completedAt := *todo.CompletedAt
		todo.CompletedAt = &completedAt
	}
	return todo
}

func (m *MemoryStore) CreateTimelineEntry(_ context.Context, entry *model.TimelineEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeline = append(m.timeline, *entry)
	return nil
}

func (m *MemoryStore) ListTimeline(_ context.Context, userID string, limit int) ([]model.TimelineEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.TimelineEntry, 0)
	for _, entry := range m.timeline {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.After(out[j].StartTime)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
