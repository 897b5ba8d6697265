package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

type HabitService struct {
	repo      domain.HabitRepository
	streaks   *StreakService
	seeds     []domain.HabitTemplate
	freeLimit int

	bootstrap singleflight.Group
}

func NewHabitService(repo domain.HabitRepository, streaks *StreakService, seeds []domain.HabitTemplate, freeLimit int) *HabitService {
	return &HabitService{
		repo:      repo,
		streaks:   streaks,
		seeds:     seeds,
		freeLimit: freeLimit,
	}
}

// CreateHabitInput is validated by the caller (see domain.ValidateHabitFields).
type CreateHabitInput struct {
	UserID string
	Name   string
	Emoji  string
	Goal   int
	IsPro  bool
}

type UpdateHabitInput struct {
	ID     string
	UserID string
	Name   *string
	Emoji  *string
	Goal   *int
}

// Create appends a habit to the end of the user's list. Free users are held to the
// configured habit limit.
func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	count, err := s.repo.CountByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if !domain.CanAddMoreHabits(input.IsPro, count, s.freeLimit) {
		return nil, domain.ErrHabitLimitReached
	}

	habit, err := domain.NewHabit(input.UserID, domain.HabitTemplate{
		Name:  input.Name,
		Emoji: input.Emoji,
		Goal:  input.Goal,
	}, count)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// List returns the user's habits. A user without any habit gets the demo habits
// first, exactly once even under concurrent first reads.
func (s *HabitService) List(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(habits) > 0 || len(s.seeds) == 0 {
		return habits, nil
	}

	v, err, _ := s.bootstrap.Do(userID, func() (any, error) {
		return s.seed(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Habit), nil
}

func (s *HabitService) seed(ctx context.Context, userID string) ([]*domain.Habit, error) {
	// Another request may have finished seeding between the first read and now.
	existing, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	habits := make([]*domain.Habit, 0, len(s.seeds))
	for i, tpl := range s.seeds {
		h, err := domain.NewHabit(userID, tpl, i)
		if err != nil {
			return nil, fmt.Errorf("seed habit %q: %w", tpl.Name, err)
		}
		habits = append(habits, h)
	}

	if err := s.repo.CreateBatch(ctx, habits); err != nil {
		return nil, err
	}

	metrics.AddSeededHabits(len(habits))
	logger.InfoContext(ctx, "seeded demo habits", "user_id", userID, "count", len(habits))
	return habits, nil
}

func (s *HabitService) Count(ctx context.Context, userID string) (int, error) {
	return s.repo.CountByUserID(ctx, userID)
}

// Get returns the habit when it belongs to userID, ErrHabitNotFound otherwise.
func (s *HabitService) Get(ctx context.Context, userID, id string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.Get(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	habit.Apply(domain.HabitPatch{
		Name:  input.Name,
		Emoji: input.Emoji,
		Goal:  input.Goal,
	})

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Delete removes the habit with its completions and streak. Purging the habit from
// cached months is up to the caller.
func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, userID)
}

// ResetHistory clears the habit's whole completion history and zeroes its streak.
// A failing streak write is logged and the returned streak is nil.
func (s *HabitService) ResetHistory(ctx context.Context, sess *Session, id string) (*domain.Streak, error) {
	if _, err := s.Get(ctx, sess.UserID, id); err != nil {
		return nil, err
	}

	if err := sess.Completions().ResetHistory(ctx, id); err != nil {
		return nil, err
	}

	streak, err := s.streaks.Recalculate(ctx, sess.UserID, id, sess.Location)
	if err != nil {
		return nil, fmt.Errorf("reset streak of habit %s: %w", id, err)
	}
	return streak, nil
}
