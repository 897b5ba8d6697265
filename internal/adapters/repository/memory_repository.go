package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type completionKey struct {
	userID  string
	habitID string
	date    domain.Date
}

type streakKey struct {
	userID  string
	habitID string
}

// MemoryStore keeps every table in process memory. Deleting a habit cascades to its
// completions and streak, as the postgres schema does.
type MemoryStore struct {
	mu sync.RWMutex

	habits        map[string]*domain.Habit
	completions   map[completionKey]*domain.Completion
	streaks       map[streakKey]*domain.Streak
	subscriptions map[string]*domain.Subscription
	loginStreaks  map[string]*domain.LoginStreak
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits:        make(map[string]*domain.Habit),
		completions:   make(map[completionKey]*domain.Completion),
		streaks:       make(map[streakKey]*domain.Streak),
		subscriptions: make(map[string]*domain.Subscription),
		loginStreaks:  make(map[string]*domain.LoginStreak),
	}
}

func (s *MemoryStore) Habits() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{s: s}
}

func (s *MemoryStore) Completions() *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{s: s}
}

func (s *MemoryStore) Streaks() *InMemoryStreakRepository {
	return &InMemoryStreakRepository{s: s}
}

func (s *MemoryStore) Subscriptions() *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{s: s}
}

func (s *MemoryStore) LoginStreaks() *InMemoryLoginStreakRepository {
	return &InMemoryLoginStreakRepository{s: s}
}

var _ domain.HabitRepository = (*InMemoryHabitRepository)(nil)

type InMemoryHabitRepository struct {
	s *MemoryStore
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *habit
	r.s.habits[habit.ID] = &cp
	return nil
}

func (r *InMemoryHabitRepository) CreateBatch(ctx context.Context, habits []*domain.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range habits {
		cp := *h
		r.s.habits[h.ID] = &cp
	}
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	habit, ok := r.s.habits[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	cp := *habit
	return &cp, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.s.habits {
		if h.UserID == userID {
			cp := *h
			habits = append(habits, &cp)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, h := range r.s.habits {
		if h.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.habits[habit.ID]
	if !ok || existing.UserID != habit.UserID {
		return domain.ErrHabitNotFound
	}

	existing.Name = habit.Name
	existing.Emoji = habit.Emoji
	existing.Goal = habit.Goal
	existing.UpdatedAt = habit.UpdatedAt
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.habits[id]
	if !ok || h.UserID != userID {
		return domain.ErrHabitNotFound
	}

	delete(r.s.habits, id)
	for k := range r.s.completions {
		if k.habitID == id {
			delete(r.s.completions, k)
		}
	}
	for k := range r.s.streaks {
		if k.habitID == id {
			delete(r.s.streaks, k)
		}
	}
	return nil
}

var _ domain.CompletionRepository = (*InMemoryCompletionRepository)(nil)

type InMemoryCompletionRepository struct {
	s *MemoryStore
}

func (r *InMemoryCompletionRepository) ListByDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.Completion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Completion{}
	for k, c := range r.s.completions {
		if k.userID == userID && k.date >= from && k.date <= to {
			cp := *c
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedDate < out[j].CompletedDate
	})
	return out, nil
}

func (r *InMemoryCompletionRepository) ListDatesByHabit(ctx context.Context, userID, habitID string) ([]domain.Date, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	dates := []domain.Date{}
	for k := range r.s.completions {
		if k.userID == userID && k.habitID == habitID {
			dates = append(dates, k.date)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i] > dates[j]
	})
	return dates, nil
}

func (r *InMemoryCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if h, ok := r.s.habits[c.HabitID]; !ok || h.UserID != c.UserID {
		return domain.ErrHabitNotFound
	}

	key := completionKey{userID: c.UserID, habitID: c.HabitID, date: c.CompletedDate}
	if _, exists := r.s.completions[key]; exists {
		return nil
	}
	cp := *c
	r.s.completions[key] = &cp
	return nil
}

func (r *InMemoryCompletionRepository) Delete(ctx context.Context, userID, habitID string, date domain.Date) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.completions, completionKey{userID: userID, habitID: habitID, date: date})
	return nil
}

func (r *InMemoryCompletionRepository) DeleteAllByHabit(ctx context.Context, userID, habitID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for k := range r.s.completions {
		if k.userID == userID && k.habitID == habitID {
			delete(r.s.completions, k)
		}
	}
	return nil
}

var _ domain.StreakRepository = (*InMemoryStreakRepository)(nil)

type InMemoryStreakRepository struct {
	s *MemoryStore
}

func (r *InMemoryStreakRepository) Upsert(ctx context.Context, streak *domain.Streak) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if h, ok := r.s.habits[streak.HabitID]; !ok || h.UserID != streak.UserID {
		return domain.ErrHabitNotFound
	}

	cp := *streak
	r.s.streaks[streakKey{userID: streak.UserID, habitID: streak.HabitID}] = &cp
	return nil
}

func (r *InMemoryStreakRepository) GetByHabitID(ctx context.Context, userID, habitID string) (*domain.Streak, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := r.s.streaks[streakKey{userID: userID, habitID: habitID}]
	if !ok {
		return nil, domain.ErrStreakNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *InMemoryStreakRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Streak{}
	for k, s := range r.s.streaks {
		if k.userID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ domain.SubscriptionRepository = (*InMemorySubscriptionRepository)(nil)

type InMemorySubscriptionRepository struct {
	s *MemoryStore
}

func (r *InMemorySubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.subscriptions[userID]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *InMemorySubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.subscriptions[sub.UserID]; exists {
		return nil
	}
	cp := *sub
	r.s.subscriptions[sub.UserID] = &cp
	return nil
}

// Activate marks the user's subscription as paid. The payment collaborator does this
// in production; the memory store exposes it for local runs and tests.
func (r *InMemorySubscriptionRepository) Activate(userID string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[userID]
	if !ok {
		sub = domain.NewFreeSubscription(userID)
		r.s.subscriptions[userID] = sub
	}
	sub.Status = domain.SubscriptionActive
}

var _ domain.LoginStreakRepository = (*InMemoryLoginStreakRepository)(nil)

type InMemoryLoginStreakRepository struct {
	s *MemoryStore
}

func (r *InMemoryLoginStreakRepository) GetByUserID(ctx context.Context, userID string) (*domain.LoginStreak, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.loginStreaks[userID]
	if !ok {
		return nil, domain.ErrLoginStreakNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *InMemoryLoginStreakRepository) Save(ctx context.Context, l *domain.LoginStreak) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *l
	r.s.loginStreaks[l.UserID] = &cp
	return nil
}
