package service

import (
	"context"

	"kairu/internal/achievement"
	apperrors "kairu/internal/errors"
	"kairu/internal/model"
	"kairu/internal/repository"
)

type AchievementService struct {
	store   repository.Store
	catalog []model.Achievement
	cal     Calendar
}

func NewAchievementService(store repository.Store, catalog []model.Achievement, cal Calendar) *AchievementService {
	if catalog == nil {
		catalog = achievement.DefaultCatalog()
	}
	return &AchievementService{store: store, catalog: catalog, cal: cal}
}

type AchievementsView struct {
	Achievements []model.Achievement `json:"achievements"`
	Summary      achievement.Summary `json:"summary"`
	Metrics      achievement.Metrics `json:"metrics"`
}

func (s *AchievementService) List(ctx context.Context, userID string) (*AchievementsView, *apperrors.APIError) {
	sessions, err := s.store.ListSessions(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load sessions")
	}
	daily, err := s.store.ListDailyStats(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load daily stats")
	}
	todos, err := s.store.ListTodos(ctx, userID, "")
	if err != nil {
		return nil, apperrors.Internal("failed to load todos")
	}

	metrics := achievement.ComputeMetrics(achievement.History{
		Sessions: sessions,
		Daily:    daily,
		Todos:    todos,
		Today:    s.cal.Today(),
		Location: s.cal.Location,
	})
	evaluated := achievement.Evaluate(s.catalog, metrics)
	return &AchievementsView{
		Achievements: evaluated,
		Summary:      achievement.Summarize(evaluated),
		Metrics:      metrics,
	}, nil
}

func (s *AchievementService) Share(ctx context.Context, userID, id string) (string, *apperrors.APIError) {
	view, apiErr := s.List(ctx, userID)
	if apiErr != nil {
		return "", apiErr
	}
	for _, a := range view.Achievements {
		if a.ID == id {
			return achievement.ShareText(a, s.cal.Today()), nil
		}
	}
	return "", apperrors.NotFound("achievement_not_found", "achievement not found")
}
