package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type StatsService struct {
	habits  *HabitService
	streaks *StreakService
}

func NewStatsService(habits *HabitService, streaks *StreakService) *StatsService {
	return &StatsService{
		habits:  habits,
		streaks: streaks,
	}
}

// Monthly builds the analytics view of one month. Completions come from the
// session's month cache.
func (s *StatsService) Monthly(ctx context.Context, sess *Session, key domain.MonthKey) (*domain.MonthlyStats, error) {
	var (
		habits      []*domain.Habit
		completions domain.MonthCompletions
		streaks     map[string]*domain.Streak
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		habits, err = s.habits.List(gctx, sess.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		completions, err = sess.Completions().LoadMonth(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		streaks, err = s.streaks.ByHabit(gctx, sess.UserID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.BuildMonthlyStats(key, habits, completions, streaks), nil
}
