package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type SubscriptionService struct {
	repo      domain.SubscriptionRepository
	freeLimit int
}

func NewSubscriptionService(repo domain.SubscriptionRepository, freeLimit int) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		freeLimit: freeLimit,
	}
}

type SubscriptionStatus struct {
	Status           string `json:"status"`
	IsPro            bool   `json:"is_pro"`
	HabitCount       int    `json:"habit_count"`
	HabitLimit       int    `json:"habit_limit"`
	CanAddMoreHabits bool   `json:"can_add_more_habits"`
}

// Get returns the user's subscription, creating a free one on first read.
func (s *SubscriptionService) Get(ctx context.Context, userID string) (*domain.Subscription, error) {
	sub, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, domain.ErrSubscriptionNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, domain.NewFreeSubscription(userID)); err != nil {
		return nil, err
	}
	// Re-read: a concurrent create or the payment collaborator may have won.
	return s.repo.GetByUserID(ctx, userID)
}

func (s *SubscriptionService) IsPro(ctx context.Context, userID string) (bool, error) {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return sub.IsPro(), nil
}

func (s *SubscriptionService) FreeLimit() int {
	return s.freeLimit
}

func (s *SubscriptionService) Status(ctx context.Context, userID string, habitCount int) (*SubscriptionStatus, error) {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &SubscriptionStatus{
		Status:           sub.Status,
		IsPro:            sub.IsPro(),
		HabitCount:       habitCount,
		CanAddMoreHabits: domain.CanAddMoreHabits(sub.IsPro(), habitCount, s.freeLimit),
	}
	if !status.IsPro {
		status.HabitLimit = s.freeLimit
	}
	return status, nil
}
