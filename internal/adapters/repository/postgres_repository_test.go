package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/migrations"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}

	require.NoError(t, migrations.Apply(context.Background(), db), "Failed to apply schema")
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE habit_completions, habit_streaks, habits, subscriptions, login_streaks CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func TestPostgresRepositories_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	ctx := context.Background()
	habits := NewPostgresHabitRepository(db)
	completions := NewPostgresCompletionRepository(db)
	streaks := NewPostgresStreakRepository(db)

	userID := "user-" + uuid.NewString()
	h := newHabit(t, userID, "Drink 2L Water", 0)

	t.Run("Success: Create and read habit", func(t *testing.T) {
		require.NoError(t, habits.Create(ctx, h))

		fetched, err := habits.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, h.Name, fetched.Name)
		assert.Equal(t, h.Goal, fetched.Goal)

		count, err := habits.CountByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Success: Batch insert keeps sort order", func(t *testing.T) {
		batch := []*domain.Habit{newHabit(t, userID, "Read", 1), newHabit(t, userID, "Meditate", 2)}
		require.NoError(t, habits.CreateBatch(ctx, batch))

		list, err := habits.ListByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"Drink 2L Water", "Read", "Meditate"}, []string{list[0].Name, list[1].Name, list[2].Name})
	})

	t.Run("Success: Update keeps sort order", func(t *testing.T) {
		name := "Drink 3L Water"
		h.Apply(domain.HabitPatch{Name: &name})
		require.NoError(t, habits.Update(ctx, h))

		fetched, err := habits.GetByID(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, name, fetched.Name)
		assert.Equal(t, 0, fetched.SortOrder)
	})

	t.Run("Success: Completion upsert is idempotent and dates are literal", func(t *testing.T) {
		require.NoError(t, completions.Upsert(ctx, domain.NewCompletion(userID, h.ID, "2024-02-29")))
		require.NoError(t, completions.Upsert(ctx, domain.NewCompletion(userID, h.ID, "2024-02-29")))
		require.NoError(t, completions.Upsert(ctx, domain.NewCompletion(userID, h.ID, "2024-03-01")))

		feb, err := completions.ListByDateRange(ctx, userID, "2024-02-01", "2024-02-29")
		require.NoError(t, err)
		require.Len(t, feb, 1)
		assert.Equal(t, domain.Date("2024-02-29"), feb[0].CompletedDate)

		dates, err := completions.ListDatesByHabit(ctx, userID, h.ID)
		require.NoError(t, err)
		assert.Equal(t, []domain.Date{"2024-03-01", "2024-02-29"}, dates)
	})

	t.Run("Fail: Completion for unknown habit", func(t *testing.T) {
		err := completions.Upsert(ctx, domain.NewCompletion(userID, uuid.NewString(), "2024-03-01"))
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Success: Streak upsert overwrites", func(t *testing.T) {
		last := domain.Date("2024-03-01")
		require.NoError(t, streaks.Upsert(ctx, domain.NewStreak(userID, h.ID, domain.StreakStats{Current: 2, Longest: 5, LastCompleted: &last})))
		require.NoError(t, streaks.Upsert(ctx, domain.NewStreak(userID, h.ID, domain.StreakStats{})))

		s, err := streaks.GetByHabitID(ctx, userID, h.ID)
		require.NoError(t, err)
		assert.Zero(t, s.CurrentStreak)
		assert.Zero(t, s.LongestStreak)
		assert.Nil(t, s.LastCompletedDate)
	})

	t.Run("Success: Delete cascades", func(t *testing.T) {
		require.NoError(t, habits.Delete(ctx, h.ID, userID))

		dates, err := completions.ListDatesByHabit(ctx, userID, h.ID)
		require.NoError(t, err)
		assert.Empty(t, dates)

		_, err = streaks.GetByHabitID(ctx, userID, h.ID)
		assert.ErrorIs(t, err, domain.ErrStreakNotFound)

		assert.ErrorIs(t, habits.Delete(ctx, h.ID, userID), domain.ErrHabitNotFound)
	})
}

func TestPostgresSubscriptionAndLoginStreak_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	ctx := context.Background()
	subs := NewPostgresSubscriptionRepository(db)
	logins := NewPostgresLoginStreakRepository(db)

	t.Run("Subscription create does not overwrite", func(t *testing.T) {
		_, err := subs.GetByUserID(ctx, "u1")
		assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)

		require.NoError(t, subs.Create(ctx, domain.NewFreeSubscription("u1")))
		_, err = db.Exec(`UPDATE subscriptions SET status = 'active' WHERE user_id = 'u1'`)
		require.NoError(t, err)
		require.NoError(t, subs.Create(ctx, domain.NewFreeSubscription("u1")))

		sub, err := subs.GetByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, sub.IsPro())
	})

	t.Run("Login streak round trip", func(t *testing.T) {
		l := domain.NewLoginStreak("u1", "2024-03-07")
		require.NoError(t, logins.Save(ctx, l))

		l.RecordLogin("2024-03-08")
		require.NoError(t, logins.Save(ctx, l))

		got, err := logins.GetByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentStreak)
		assert.Equal(t, domain.Date("2024-03-08"), got.LastLoginDate)
	})
}
