package services

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// CompletionStore caches one user's completions per month. The cache only changes
// after the backing store confirmed a write, so a failed call leaves it untouched.
// Locks are never held across a store round trip.
type CompletionStore struct {
	userID string
	repo   domain.CompletionRepository

	mu     sync.RWMutex
	months map[domain.MonthKey]domain.MonthCompletions
	closed bool

	// gen counts purges; purged maps a habit to the gen of its latest purge.
	gen    uint64
	purged map[string]uint64
}

func NewCompletionStore(userID string, repo domain.CompletionRepository) *CompletionStore {
	return &CompletionStore{
		userID: userID,
		repo:   repo,
		months: make(map[domain.MonthKey]domain.MonthCompletions),
		purged: make(map[string]uint64),
	}
}

func (s *CompletionStore) cached(key domain.MonthKey) (domain.MonthCompletions, uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, 0, false, domain.ErrSessionClosed
	}
	m, ok := s.months[key]
	if !ok {
		return nil, s.gen, false, nil
	}
	return m.Clone(), s.gen, true, nil
}

// IsCached reports whether the month is already loaded.
func (s *CompletionStore) IsCached(key domain.MonthKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.months[key]
	return ok
}

// LoadMonth returns the completions of the month, fetching them on a cache miss.
// The returned map is a copy.
func (s *CompletionStore) LoadMonth(ctx context.Context, key domain.MonthKey) (domain.MonthCompletions, error) {
	m, gen, hit, err := s.cached(key)
	if err != nil {
		return nil, err
	}
	metrics.RecordCacheLookup(hit)
	if hit {
		return m, nil
	}

	rows, err := s.repo.ListByDateRange(ctx, s.userID, key.FirstDay(), key.LastDay())
	if err != nil {
		logger.WarnContext(ctx, "failed to load month", "user_id", s.userID, "month", key.String(), "error", err)
		return nil, err
	}

	fetched := make(domain.MonthCompletions)
	for _, c := range rows {
		if !key.Contains(c.CompletedDate) {
			continue
		}
		_, _, day := c.CompletedDate.Parts()
		fetched.Set(c.HabitID, day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domain.ErrSessionClosed
	}
	// A concurrent load or toggle may have populated the month meanwhile; keep its view.
	if existing, ok := s.months[key]; ok {
		return existing.Clone(), nil
	}
	// Habits purged while the fetch was in flight may still show up in its rows.
	if s.gen != gen {
		for habitID := range fetched {
			if s.purged[habitID] > gen {
				delete(fetched, habitID)
			}
		}
	}
	s.months[key] = fetched
	return fetched.Clone(), nil
}

// PreloadAdjacent loads the month and, when entitled, its neighbours in parallel.
func (s *CompletionStore) PreloadAdjacent(ctx context.Context, key domain.MonthKey, entitled bool) error {
	if !entitled {
		_, err := s.LoadMonth(ctx, key)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, k := range []domain.MonthKey{key.Prev(), key, key.Next()} {
		g.Go(func() error {
			_, err := s.LoadMonth(gctx, k)
			return err
		})
	}
	return g.Wait()
}

// Toggle flips the completion of habitID on the given day of the month and returns
// the new state.
func (s *CompletionStore) Toggle(ctx context.Context, habitID string, key domain.MonthKey, day int) (bool, error) {
	date, err := key.Date(day)
	if err != nil {
		return false, err
	}

	month, err := s.LoadMonth(ctx, key)
	if err != nil {
		return false, err
	}

	if month.IsCompleted(habitID, day) {
		if err := s.repo.Delete(ctx, s.userID, habitID, date); err != nil {
			metrics.RecordToggle(false, err)
			logger.WarnContext(ctx, "failed to remove completion", "user_id", s.userID, "habit_id", habitID, "date", date, "error", err)
			return true, err
		}
		metrics.RecordToggle(false, nil)
		return false, s.apply(key, func(m domain.MonthCompletions) { m.Clear(habitID, day) })
	}

	if err := s.repo.Upsert(ctx, domain.NewCompletion(s.userID, habitID, date)); err != nil {
		metrics.RecordToggle(true, err)
		logger.WarnContext(ctx, "failed to add completion", "user_id", s.userID, "habit_id", habitID, "date", date, "error", err)
		return false, err
	}
	metrics.RecordToggle(true, nil)
	return true, s.apply(key, func(m domain.MonthCompletions) { m.Set(habitID, day) })
}

func (s *CompletionStore) apply(key domain.MonthKey, fn func(domain.MonthCompletions)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}
	m, ok := s.months[key]
	if !ok {
		m = make(domain.MonthCompletions)
		s.months[key] = m
	}
	fn(m)
	return nil
}

// ResetHistory deletes every completion of the habit and forgets it in all cached months.
func (s *CompletionStore) ResetHistory(ctx context.Context, habitID string) error {
	if s.isClosed() {
		return domain.ErrSessionClosed
	}

	if err := s.repo.DeleteAllByHabit(ctx, s.userID, habitID); err != nil {
		logger.WarnContext(ctx, "failed to reset habit history", "user_id", s.userID, "habit_id", habitID, "error", err)
		return err
	}

	s.PurgeHabit(habitID)
	return nil
}

// PurgeHabit drops the habit from every cached month without touching the backing store.
// Month loads already in flight drop it as well.
func (s *CompletionStore) PurgeHabit(habitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.purged[habitID] = s.gen

	for _, m := range s.months {
		delete(m, habitID)
	}
}

func (s *CompletionStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Close drops the cache. Every later call fails with ErrSessionClosed.
func (s *CompletionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.months = make(map[domain.MonthKey]domain.MonthCompletions)
}
