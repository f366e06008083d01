package service

import (
	"context"
	"strings"

	apperrors "kairu/internal/errors"
	"kairu/internal/model"
	"kairu/internal/repository"
)

type ProfileService struct {
	store repository.ProfileStore
	cal   Calendar
}

func NewProfileService(store repository.ProfileStore, cal Calendar) *ProfileService {
	return &ProfileService{store: store, cal: cal}
}

// UpdateProfileInput carries the fields a user may change. Nil fields are
// left untouched.
type UpdateProfileInput struct {
	Name         *string
	MaxWorkHours *int
	PreparingFor *string
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.UserProfile, *apperrors.APIError) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("profile_not_found", "profile not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load profile")
	}
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, input UpdateProfileInput) (*model.UserProfile, *apperrors.APIError) {
	profile, apiErr := s.Get(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.BadRequest("invalid_name", "name must not be empty")
		}
		profile.Name = name
	}
	if input.MaxWorkHours != nil {
		hours := *input.MaxWorkHours
		if hours < 1 || hours > model.MaxWorkHoursLimit {
			return nil, apperrors.BadRequest("invalid_max_work_hours", "maxWorkHours must be between 1 and 24")
		}
		profile.MaxWorkHours = hours
	}
	if input.PreparingFor != nil {
		profile.PreparingFor = strings.TrimSpace(*input.PreparingFor)
	}
	profile.UpdatedAt = s.cal.Now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("profile_not_found", "profile not found")
		}
		return nil, apperrors.Internal("failed to update profile")
	}
	return profile, nil
}
