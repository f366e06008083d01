package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kairu/internal/model"
	"kairu/internal/repository"
)

// FocusRecorder persists a completed focus phase: the session itself, the
// daily counters and a timeline entry.
type FocusRecorder struct {
	sessions repository.SessionStore
	timeline repository.TimelineStore
	cal      Calendar
}

func NewFocusRecorder(sessions repository.SessionStore, timeline repository.TimelineStore, cal Calendar) *FocusRecorder {
	return &FocusRecorder{sessions: sessions, timeline: timeline, cal: cal}
}

// Record stores a session of minutes that ended at end. The session is
// dated by its start in the configured zone.
func (r *FocusRecorder) Record(ctx context.Context, userID string, minutes int, end time.Time, musicType string) (*model.FocusSession, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("record focus session: duration must be positive, got %d", minutes)
	}
	start := end.Add(-time.Duration(minutes) * time.Minute)
	session := model.FocusSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Duration:  minutes,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Date:      r.cal.DateOf(start),
		MusicType: musicType,
	}
	if err := r.sessions.CreateFocusSession(ctx, &session); err != nil {
		return nil, err
	}
	if _, err := r.sessions.UpdateDailyStats(ctx, userID, session.Date, minutes); err != nil {
		return &session, err
	}

	entry := model.TimelineEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           model.TimelineCategoryFocus,
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
		DurationMinutes: minutes,
		Date:            session.Date,
		Tag:             model.TimelineTagUntagged,
		Category:        model.TimelineCategoryFocus,
		Productivity:    100,
		CreatedAt:       r.cal.Now().UTC(),
	}
	if err := r.timeline.CreateTimelineEntry(ctx, &entry); err != nil {
		return &session, err
	}
	return &session, nil
}
