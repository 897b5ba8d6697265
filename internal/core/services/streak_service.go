package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

type StreakService struct {
	completions domain.CompletionRepository
	streaks     domain.StreakRepository
	now         func() time.Time
}

func NewStreakService(completions domain.CompletionRepository, streaks domain.StreakRepository) *StreakService {
	return &StreakService{
		completions: completions,
		streaks:     streaks,
		now:         time.Now,
	}
}

// WithClock replaces the time source used to determine "today".
func (s *StreakService) WithClock(now func() time.Time) *StreakService {
	s.now = now
	return s
}

// Recalculate rebuilds the habit's streak from its full completion history and
// overwrites the stored one. Today is taken in loc.
func (s *StreakService) Recalculate(ctx context.Context, userID, habitID string, loc *time.Location) (*domain.Streak, error) {
	streak, err := s.recalculate(ctx, userID, habitID, loc)
	metrics.RecordStreakRecalculation(err)
	if err != nil {
		logger.WarnContext(ctx, "streak recalculation failed", "user_id", userID, "habit_id", habitID, "error", err)
		return nil, err
	}
	return streak, nil
}

func (s *StreakService) recalculate(ctx context.Context, userID, habitID string, loc *time.Location) (*domain.Streak, error) {
	dates, err := s.completions.ListDatesByHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	stats := domain.ComputeStreak(dates, domain.Today(s.now(), loc))
	streak := domain.NewStreak(userID, habitID, stats)

	if err := s.streaks.Upsert(ctx, streak); err != nil {
		return nil, err
	}
	return streak, nil
}

func (s *StreakService) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	return s.streaks.ListByUserID(ctx, userID)
}

// ByHabit returns the user's stored streaks keyed by habit id.
func (s *StreakService) ByHabit(ctx context.Context, userID string) (map[string]*domain.Streak, error) {
	list, err := s.streaks.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*domain.Streak, len(list))
	for _, st := range list {
		out[st.HabitID] = st
	}
	return out, nil
}
