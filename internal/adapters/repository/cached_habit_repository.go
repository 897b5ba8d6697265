package repository

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

var _ domain.HabitRepository = (*CachedHabitRepository)(nil)

const (
	habitListKeyPrefix = "kanso:habits:"
	habitListTTL       = 30 * time.Minute
)

// CachedHabitRepository keeps each user's ordered habit list in redis and answers
// list and count reads from it. Writes go to the wrapped repository first and then
// drop the user's entry. Redis errors only cost a cache miss.
type CachedHabitRepository struct {
	next  domain.HabitRepository
	cache *redis.Client
}

func NewCachedHabitRepository(next domain.HabitRepository, cache *redis.Client) *CachedHabitRepository {
	return &CachedHabitRepository{
		next:  next,
		cache: cache,
	}
}

func habitListKey(userID string) string {
	return habitListKeyPrefix + userID
}

func (r *CachedHabitRepository) lookup(ctx context.Context, userID string) ([]*domain.Habit, bool) {
	key := habitListKey(userID)

	data, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WarnContext(ctx, "habit cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}

	var habits []*domain.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		logger.WarnContext(ctx, "dropping unreadable habit cache entry", "user_id", userID, "error", err)
		r.cache.Del(ctx, key)
		return nil, false
	}
	return habits, true
}

func (r *CachedHabitRepository) fill(ctx context.Context, userID string, habits []*domain.Habit) {
	// An empty list is about to be seeded.
	if len(habits) == 0 {
		return
	}

	data, err := json.Marshal(habits)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, habitListKey(userID), data, habitListTTL).Err(); err != nil {
		logger.WarnContext(ctx, "habit cache write failed", "user_id", userID, "error", err)
	}
}

func (r *CachedHabitRepository) invalidate(ctx context.Context, userIDs ...string) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, habitListKey(id))
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		logger.WarnContext(ctx, "habit cache invalidation failed", "keys", keys, "error", err)
	}
}

func (r *CachedHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if habits, ok := r.lookup(ctx, userID); ok {
		return habits, nil
	}

	habits, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, userID, habits)
	return habits, nil
}

func (r *CachedHabitRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	if habits, ok := r.lookup(ctx, userID); ok {
		return len(habits), nil
	}
	return r.next.CountByUserID(ctx, userID)
}

func (r *CachedHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Create(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) CreateBatch(ctx context.Context, habits []*domain.Habit) error {
	if err := r.next.CreateBatch(ctx, habits); err != nil {
		return err
	}
	if len(habits) == 0 {
		return nil
	}

	owners := make([]string, 0, len(habits))
	for _, h := range habits {
		owners = append(owners, h.UserID)
	}
	r.invalidate(ctx, owners...)
	return nil
}

func (r *CachedHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if err := r.next.Update(ctx, habit); err != nil {
		return err
	}
	r.invalidate(ctx, habit.UserID)
	return nil
}

func (r *CachedHabitRepository) Delete(ctx context.Context, id string, userID string) error {
	if err := r.next.Delete(ctx, id, userID); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}
