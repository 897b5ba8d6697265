package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func newHabit(t *testing.T, userID, name string, sortOrder int) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, domain.HabitTemplate{Name: name, Emoji: "💧", Goal: 20}, sortOrder)
	require.NoError(t, err)
	return h
}

func TestMemoryStore_Habits(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Habits()
	ctx := context.Background()

	b := newHabit(t, "u1", "Second", 1)
	a := newHabit(t, "u1", "First", 0)
	other := newHabit(t, "u2", "Other", 0)

	require.NoError(t, repo.CreateBatch(ctx, []*domain.Habit{b, a}))
	require.NoError(t, repo.Create(ctx, other))

	t.Run("List is ordered by sort order and scoped to user", func(t *testing.T) {
		list, err := repo.ListByUserID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "First", list[0].Name)
		assert.Equal(t, "Second", list[1].Name)

		count, err := repo.CountByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Returned habits are copies", func(t *testing.T) {
		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		got.Name = "Mutated"

		again, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", again.Name)
	})

	t.Run("Update requires ownership", func(t *testing.T) {
		hijack := *a
		hijack.UserID = "u2"
		hijack.Name = "Hijacked"
		assert.ErrorIs(t, repo.Update(ctx, &hijack), domain.ErrHabitNotFound)
	})

	t.Run("Delete requires ownership", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, a.ID, "u2"), domain.ErrHabitNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "missing", "u1"), domain.ErrHabitNotFound)
	})
}

func TestMemoryStore_DeleteCascades(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	h := newHabit(t, "u1", "Run", 0)
	require.NoError(t, store.Habits().Create(ctx, h))
	require.NoError(t, store.Completions().Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-03-01")))
	require.NoError(t, store.Completions().Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-04-01")))
	require.NoError(t, store.Streaks().Upsert(ctx, domain.NewStreak("u1", h.ID, domain.StreakStats{Current: 1, Longest: 1})))

	require.NoError(t, store.Habits().Delete(ctx, h.ID, "u1"))

	dates, err := store.Completions().ListDatesByHabit(ctx, "u1", h.ID)
	require.NoError(t, err)
	assert.Empty(t, dates)

	_, err = store.Streaks().GetByHabitID(ctx, "u1", h.ID)
	assert.ErrorIs(t, err, domain.ErrStreakNotFound)
}

func TestMemoryStore_Completions(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Completions()
	ctx := context.Background()

	h := newHabit(t, "u1", "Read", 0)
	require.NoError(t, store.Habits().Create(ctx, h))

	t.Run("Upsert collapses duplicates on the conflict key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-02-29")))
		require.NoError(t, repo.Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-02-29")))

		list, err := repo.ListByDateRange(ctx, "u1", "2024-02-01", "2024-02-29")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Upsert rejects a malformed completion", func(t *testing.T) {
		err := repo.Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-2-3"))
		assert.ErrorIs(t, err, domain.ErrInvalidCompletion)

		err = repo.Upsert(ctx, domain.NewCompletion("u1", "", "2024-02-03"))
		assert.ErrorIs(t, err, domain.ErrInvalidCompletion)

		list, err := repo.ListByDateRange(ctx, "u1", "2024-02-03", "2024-02-03")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Concurrent duplicate upserts leave one row", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-03-01")))
			}()
		}
		wg.Wait()

		list, err := repo.ListByDateRange(ctx, "u1", "2024-03-01", "2024-03-01")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Range bounds are inclusive", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, domain.NewCompletion("u1", h.ID, "2024-01-31")))

		list, err := repo.ListByDateRange(ctx, "u1", "2024-02-01", "2024-03-01")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, domain.Date("2024-02-29"), list[0].CompletedDate)
		assert.Equal(t, domain.Date("2024-03-01"), list[1].CompletedDate)
	})

	t.Run("Dates by habit are newest first", func(t *testing.T) {
		dates, err := repo.ListDatesByHabit(ctx, "u1", h.ID)
		require.NoError(t, err)
		assert.Equal(t, []domain.Date{"2024-03-01", "2024-02-29", "2024-01-31"}, dates)
	})

	t.Run("Delete of a missing row is not an error", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "u1", h.ID, "2020-01-01"))
	})

	t.Run("Upsert for an unknown habit fails", func(t *testing.T) {
		err := repo.Upsert(ctx, domain.NewCompletion("u1", "ghost", "2024-03-01"))
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("DeleteAllByHabit clears every month", func(t *testing.T) {
		require.NoError(t, repo.DeleteAllByHabit(ctx, "u1", h.ID))

		dates, err := repo.ListDatesByHabit(ctx, "u1", h.ID)
		require.NoError(t, err)
		assert.Empty(t, dates)
	})
}

func TestMemoryStore_Subscriptions(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Subscriptions()
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

	require.NoError(t, repo.Create(ctx, domain.NewFreeSubscription("u1")))
	repo.Activate("u1")
	require.NoError(t, repo.Create(ctx, domain.NewFreeSubscription("u1")))

	sub, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, sub.IsPro(), "create must not overwrite an existing row")
}
