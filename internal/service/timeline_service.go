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

const (
	DefaultTimelineLimit = 50
	MaxTimelineLimit     = 500
)

type TimelineService struct {
	store repository.TimelineStore
	cal   Calendar
}

func NewTimelineService(store repository.TimelineStore, cal Calendar) *TimelineService {
	return &TimelineService{store: store, cal: cal}
}

type CreateTimelineInput struct {
	Title        string
	StartTime    time.Time
	EndTime      time.Time
	Tag          string
	Category     string
	Productivity int
}

func (s *TimelineService) List(ctx context.Context, userID string, limit int) ([]model.TimelineEntry, *apperrors.APIError) {
	if limit <= 0 {
		limit = DefaultTimelineLimit
	}
	if limit > MaxTimelineLimit {
		limit = MaxTimelineLimit
	}
	entries, err := s.store.ListTimeline(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list timeline")
	}
	return entries, nil
}

func (s *TimelineService) Create(ctx context.Context, userID string, input CreateTimelineInput) (*model.TimelineEntry, *apperrors.APIError) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.BadRequest("invalid_title", "title is required")
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, apperrors.BadRequest("invalid_time_range", "startTime and endTime are required")
	}
	if input.EndTime.Before(input.StartTime) {
		return nil, apperrors.BadRequest("invalid_time_range", "endTime must not be before startTime")
	}
	if input.Productivity < 0 || input.Productivity > 100 {
		return nil, apperrors.BadRequest("invalid_productivity", "productivity must be between 0 and 100")
	}

	tag := strings.TrimSpace(input.Tag)
	if tag == "" {
		tag = model.TimelineTagUntagged
	}
	entry := model.TimelineEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		StartTime:       input.StartTime.UTC(),
		EndTime:         input.EndTime.UTC(),
		DurationMinutes: int(input.EndTime.Sub(input.StartTime) / time.Minute),
		Date:            s.cal.DateOf(input.StartTime),
		Tag:             tag,
		Category:        strings.TrimSpace(input.Category),
		Productivity:    input.Productivity,
		CreatedAt:       s.cal.Now().UTC(),
	}
	if err := s.store.CreateTimelineEntry(ctx, &entry); err != nil {
		return nil, apperrors.Internal("failed to save timeline entry")
	}
	return &entry, nil
}
