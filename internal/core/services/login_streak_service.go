package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

type LoginStreakService struct {
	repo domain.LoginStreakRepository
}

func NewLoginStreakService(repo domain.LoginStreakRepository) *LoginStreakService {
	return &LoginStreakService{repo: repo}
}

// RecordLogin registers a login on today and returns the updated streak together with
// the milestone it crossed, or 0.
func (s *LoginStreakService) RecordLogin(ctx context.Context, userID string, today domain.Date) (*domain.LoginStreak, int, error) {
	streak, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrLoginStreakNotFound) {
		streak = domain.NewLoginStreak(userID, today)
		if err := s.repo.Save(ctx, streak); err != nil {
			return nil, 0, err
		}
		return streak, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	changed, milestone := streak.RecordLogin(today)
	if !changed {
		return streak, 0, nil
	}

	if err := s.repo.Save(ctx, streak); err != nil {
		return nil, 0, err
	}

	if milestone > 0 {
		logger.InfoContext(ctx, "login streak milestone reached", "user_id", userID, "milestone", milestone)
	}
	return streak, milestone, nil
}
