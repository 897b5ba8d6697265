package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func ptr[T any](v T) *T {
	return &v
}

var demoHabits = []domain.HabitTemplate{
	{Name: "Drink 2L Water", Emoji: "💧", Goal: 1},
	{Name: "Exercise 30 mins", Emoji: "🏃", Goal: 1},
	{Name: "Read 10 pages", Emoji: "📚", Goal: 1},
	{Name: "Meditate", Emoji: "🧘", Goal: 1},
}

type habitFixture struct {
	store   *repository.MemoryStore
	habits  *services.HabitService
	streaks *services.StreakService
}

func newHabitFixture(seeds []domain.HabitTemplate) *habitFixture {
	store := repository.NewMemoryStore()
	streaks := services.NewStreakService(store.Completions(), store.Streaks())
	return &habitFixture{
		store:   store,
		streaks: streaks,
		habits:  services.NewHabitService(store.Habits(), streaks, seeds, domain.DefaultFreeHabitLimit),
	}
}

func TestHabitService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Sort order is the current habit count", func(t *testing.T) {
		f := newHabitFixture(nil)

		first, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Water", Emoji: "💧", Goal: 30})
		require.NoError(t, err)
		second, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Run", Goal: 12})
		require.NoError(t, err)

		assert.Equal(t, 0, first.SortOrder)
		assert.Equal(t, 1, second.SortOrder)
		assert.Equal(t, domain.DefaultEmoji, second.Emoji)
	})

	t.Run("Fail: Free tier limit", func(t *testing.T) {
		f := newHabitFixture(nil)
		for i := 0; i < domain.DefaultFreeHabitLimit; i++ {
			_, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "H", Goal: 1})
			require.NoError(t, err)
		}

		_, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "One more", Goal: 1})
		assert.ErrorIs(t, err, domain.ErrHabitLimitReached)

		pro, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "One more", Goal: 1, IsPro: true})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultFreeHabitLimit, pro.SortOrder)
	})

	t.Run("Fail: Store error", func(t *testing.T) {
		repo := new(MockHabitRepo)
		repo.On("CountByUserID", mock.Anything, testUser).Return(0, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrStoreUnavailable)

		svc := services.NewHabitService(repo, nil, nil, 3)
		_, err := svc.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Water", Goal: 1})

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestHabitService_List_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Seeds demo habits on first read", func(t *testing.T) {
		f := newHabitFixture(demoHabits)

		list, err := f.habits.List(ctx, testUser)
		require.NoError(t, err)
		require.Len(t, list, 4)
		for i, h := range list {
			assert.Equal(t, demoHabits[i].Name, h.Name)
			assert.Equal(t, i, h.SortOrder)
			assert.Equal(t, 1, h.Goal)
		}

		again, err := f.habits.List(ctx, testUser)
		require.NoError(t, err)
		assert.Len(t, again, 4)
	})

	t.Run("Success: Concurrent first reads seed once", func(t *testing.T) {
		f := newHabitFixture(demoHabits)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				list, err := f.habits.List(ctx, testUser)
				assert.NoError(t, err)
				assert.Len(t, list, 4)
			}()
		}
		wg.Wait()

		count, err := f.habits.Count(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("Success: Existing habits are not touched", func(t *testing.T) {
		f := newHabitFixture(demoHabits)
		_, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Mine", Goal: 5})
		require.NoError(t, err)

		list, err := f.habits.List(ctx, testUser)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Mine", list[0].Name)
	})

	t.Run("Fail: Seed write error", func(t *testing.T) {
		repo := new(MockHabitRepo)
		repo.On("ListByUserID", mock.Anything, testUser).Return([]*domain.Habit{}, nil)
		repo.On("CreateBatch", mock.Anything, mock.Anything).Return(domain.ErrStoreUnavailable)

		svc := services.NewHabitService(repo, nil, demoHabits, 3)
		_, err := svc.List(ctx, testUser)

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestHabitService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newHabitFixture(nil)

	h, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Read", Emoji: "📚", Goal: 10})
	require.NoError(t, err)

	t.Run("Success: Partial update", func(t *testing.T) {
		updated, err := f.habits.Update(ctx, services.UpdateHabitInput{ID: h.ID, UserID: testUser, Goal: ptr(20)})
		require.NoError(t, err)
		assert.Equal(t, "Read", updated.Name)
		assert.Equal(t, 20, updated.Goal)
		assert.Equal(t, 0, updated.SortOrder)
	})

	t.Run("Fail: Update of someone else's habit", func(t *testing.T) {
		_, err := f.habits.Update(ctx, services.UpdateHabitInput{ID: h.ID, UserID: "intruder", Name: ptr("Mine")})
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Fail: Delete of someone else's habit", func(t *testing.T) {
		assert.ErrorIs(t, f.habits.Delete(ctx, "intruder", h.ID), domain.ErrHabitNotFound)
	})

	t.Run("Success: Delete removes completions and streak", func(t *testing.T) {
		require.NoError(t, f.store.Completions().Upsert(ctx, domain.NewCompletion(testUser, h.ID, "2024-03-07")))
		_, err := f.streaks.Recalculate(ctx, testUser, h.ID, time.UTC)
		require.NoError(t, err)

		require.NoError(t, f.habits.Delete(ctx, testUser, h.ID))

		_, err = f.habits.Get(ctx, testUser, h.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
		dates, err := f.store.Completions().ListDatesByHabit(ctx, testUser, h.ID)
		require.NoError(t, err)
		assert.Empty(t, dates)
	})

	t.Run("Fail: Delete of a missing habit", func(t *testing.T) {
		assert.ErrorIs(t, f.habits.Delete(ctx, testUser, h.ID), domain.ErrHabitNotFound)
	})
}

func TestHabitService_ResetHistory(t *testing.T) {
	ctx := context.Background()
	f := newHabitFixture(nil)
	sessions := services.NewSessionManager(f.store.Completions(), nil, nil, time.UTC)
	defer sessions.Shutdown()

	h, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Read", Goal: 10})
	require.NoError(t, err)

	sess := sessions.Acquire(testUser, nil)
	feb := domain.NewMonthKey(2024, 1)
	mar := domain.NewMonthKey(2024, 2)
	_, err = sess.Completions().Toggle(ctx, h.ID, feb, 28)
	require.NoError(t, err)
	_, err = sess.Completions().Toggle(ctx, h.ID, mar, 1)
	require.NoError(t, err)
	_, err = f.streaks.Recalculate(ctx, testUser, h.ID, time.UTC)
	require.NoError(t, err)

	streak, err := f.habits.ResetHistory(ctx, sess, h.ID)
	require.NoError(t, err)
	require.NotNil(t, streak)
	assert.Zero(t, streak.CurrentStreak)
	assert.Zero(t, streak.LongestStreak)
	assert.Nil(t, streak.LastCompletedDate)

	f1, err := sess.Completions().LoadMonth(ctx, feb)
	require.NoError(t, err)
	m1, err := sess.Completions().LoadMonth(ctx, mar)
	require.NoError(t, err)
	assert.False(t, f1.IsCompleted(h.ID, 28))
	assert.False(t, m1.IsCompleted(h.ID, 1))

	dates, err := f.store.Completions().ListDatesByHabit(ctx, testUser, h.ID)
	require.NoError(t, err)
	assert.Empty(t, dates)

	t.Run("Fail: Unknown habit", func(t *testing.T) {
		_, err := f.habits.ResetHistory(ctx, sess, "ghost")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Fail: Streak write error is surfaced", func(t *testing.T) {
		store := repository.NewMemoryStore()
		streakRepo := new(MockStreakRepo)
		streakRepo.On("Upsert", mock.Anything, mock.Anything).Return(errStoreDown)
		habits := services.NewHabitService(store.Habits(), services.NewStreakService(store.Completions(), streakRepo), nil, domain.DefaultFreeHabitLimit)

		h, err := habits.Create(ctx, services.CreateHabitInput{UserID: testUser, Name: "Read", Goal: 10})
		require.NoError(t, err)

		other := services.NewSessionManager(store.Completions(), nil, nil, time.UTC)
		defer other.Shutdown()

		streak, err := habits.ResetHistory(ctx, other.Acquire(testUser, nil), h.ID)
		assert.ErrorIs(t, err, errStoreDown)
		assert.Nil(t, streak)
	})
}
