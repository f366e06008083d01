package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "kairu/internal/errors"
	"kairu/internal/model"
	"kairu/internal/reminder"
	"kairu/internal/repository"
)

type ReminderService struct {
	store     repository.ReminderStore
	cal       Calendar
	tolerance int
}

func NewReminderService(store repository.ReminderStore, cal Calendar, tolerance int) *ReminderService {
	if tolerance <= 0 {
		tolerance = reminder.DefaultTolerance
	}
	return &ReminderService{store: store, cal: cal, tolerance: tolerance}
}

type AddReminderInput struct {
	Date        string
	Time        string
	Title       string
	Description string
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, *apperrors.APIError) {
	reminders, err := s.store.ListReminders(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list reminders")
	}
	return reminders, nil
}

func (s *ReminderService) Add(ctx context.Context, userID string, input AddReminderInput) (*model.Reminder, *apperrors.APIError) {
	r := model.Reminder{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        strings.TrimSpace(input.Date),
		Time:        strings.TrimSpace(input.Time),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		IsActive:    true,
		CreatedAt:   s.cal.Now().UTC(),
	}
	if r.Date == "" {
		r.Date = s.cal.Today()
	}
	if err := r.Validate(); err != nil {
		return nil, apperrors.BadRequest("invalid_reminder", err.Error())
	}

	if err := s.store.AddReminder(ctx, &r); err != nil {
		return nil, apperrors.Internal("failed to save reminder")
	}
	return &r, nil
}

func (s *ReminderService) Remove(ctx context.Context, userID, id string) *apperrors.APIError {
	err := s.store.DeleteReminder(ctx, userID, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("reminder_not_found", "reminder not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete reminder")
	}
	return nil
}

func (s *ReminderService) SetActive(ctx context.Context, userID, id string, active bool) (*model.Reminder, *apperrors.APIError) {
	r, err := s.store.SetReminderActive(ctx, userID, id, active)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("reminder_not_found", "reminder not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update reminder")
	}
	return r, nil
}

// Active scans the user's reminders at the current time.
func (s *ReminderService) Active(ctx context.Context, userID string) ([]model.Reminder, *apperrors.APIError) {
	reminders, apiErr := s.List(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	return reminder.Scan(reminders, s.cal.LocalNow(), s.tolerance), nil
}

// DueSource feeds a reminder.Scheduler with every user's active reminders
// for the scan day.
func (s *ReminderService) DueSource() reminder.Source {
	return func(ctx context.Context, now time.Time) ([]model.Reminder, error) {
		return s.store.ListActiveReminders(ctx, now.Format(model.DateLayout))
	}
}

// UserSource feeds a reminder.Scheduler with one user's reminders.
func (s *ReminderService) UserSource(userID string) reminder.Source {
	return func(ctx context.Context, _ time.Time) ([]model.Reminder, error) {
		return s.store.ListReminders(ctx, userID)
	}
}
