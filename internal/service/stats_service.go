package service

import (
	"context"
	"time"

	"kairu/internal/achievement"
	apperrors "kairu/internal/errors"
	"kairu/internal/model"
	"kairu/internal/repository"
)

type StatsService struct {
	store    repository.SessionStore
	recorder *FocusRecorder
	cal      Calendar
}

func NewStatsService(store repository.SessionStore, recorder *FocusRecorder, cal Calendar) *StatsService {
	return &StatsService{store: store, recorder: recorder, cal: cal}
}

type TodayStats struct {
	Date         string `json:"date"`
	Sessions     int    `json:"sessions"`
	FocusMinutes int    `json:"focusMinutes"`
	FocusTime    string `json:"focusTime"`
}

type SummaryStats struct {
	CurrentStreak       int    `json:"currentStreak"`
	BestStreak          int    `json:"bestStreak"`
	DaysFocused         int    `json:"daysFocused"`
	TotalSessions       int    `json:"totalSessions"`
	TotalFocusMinutes   int    `json:"totalFocusMinutes"`
	TotalFocusTime      string `json:"totalFocusTime"`
	AverageFocusMinutes int    `json:"averageFocusMinutes"`
	AverageFocusTime    string `json:"averageFocusTime"`
}

type RecordSessionInput struct {
	Duration  int
	EndTime   *time.Time
	MusicType string
}

func (s *StatsService) TodaySessions(ctx context.Context, userID string) ([]model.FocusSession, *apperrors.APIError) {
	sessions, err := s.store.ListSessionsByDate(ctx, userID, s.cal.Today())
	if err != nil {
		return nil, apperrors.Internal("failed to list sessions")
	}
	return sessions, nil
}

func (s *StatsService) Today(ctx context.Context, userID string) (*TodayStats, *apperrors.APIError) {
	today := s.cal.Today()
	out := TodayStats{Date: today}

	stats, err := s.store.GetDailyStats(ctx, userID, today)
	switch {
	case err == repository.ErrNotFound:
	case err != nil:
		return nil, apperrors.Internal("failed to load daily stats")
	default:
		out.Sessions = stats.SessionsCount
		out.FocusMinutes = stats.TotalFocusMinutes
	}
	out.FocusTime = FormatMinutes(out.FocusMinutes)
	return &out, nil
}

func (s *StatsService) Summary(ctx context.Context, userID string) (*SummaryStats, *apperrors.APIError) {
	days, err := s.store.ListDailyStats(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load daily stats")
	}

	var out SummaryStats
	dates := make([]string, 0, len(days))
	for _, day := range days {
		out.TotalSessions += day.SessionsCount
		out.TotalFocusMinutes += day.TotalFocusMinutes
		if day.SessionsCount > 0 {
			dates = append(dates, day.Date)
			out.DaysFocused++
		}
	}
	out.CurrentStreak, out.BestStreak = achievement.Streaks(dates, s.cal.Today())
	if out.TotalSessions > 0 {
		out.AverageFocusMinutes = out.TotalFocusMinutes / out.TotalSessions
	}
	out.TotalFocusTime = FormatMinutes(out.TotalFocusMinutes)
	out.AverageFocusTime = FormatMinutes(out.AverageFocusMinutes)
	return &out, nil
}

// Record stores a session timed outside the server timer.
func (s *StatsService) Record(ctx context.Context, userID string, input RecordSessionInput) (*model.FocusSession, *apperrors.APIError) {
	if input.Duration <= 0 {
		return nil, apperrors.BadRequest("invalid_duration", "duration must be a positive number of minutes")
	}
	end := s.cal.Now()
	if input.EndTime != nil {
		end = *input.EndTime
	}
	session, err := s.recorder.Record(ctx, userID, input.Duration, end, input.MusicType)
	if err != nil && session == nil {
		return nil, apperrors.Internal("failed to record session")
	}
	if err != nil {
		return nil, apperrors.Internal("session saved but statistics were not updated")
	}
	return session, nil
}
