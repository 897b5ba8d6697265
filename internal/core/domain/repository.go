package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrMalformedRow     = errors.New("store returned a malformed row")
)

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// CreateBatch persists several habits at once, used to seed first-run demo habits.
	CreateBatch(ctx context.Context, habits []*Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits of a user ordered by sort order.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// CountByUserID returns how many habits a user owns.
	CountByUserID(ctx context.Context, userID string) (int, error)

	// Update overwrites name, emoji and goal of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete removes the habit together with its completions and streak.
	// It requires userID to ensure the user actually owns the habit.
	Delete(ctx context.Context, id string, userID string) error
}

type CompletionRepository interface {
	// ListByDateRange returns the user's completions with from <= completed_date <= to.
	ListByDateRange(ctx context.Context, userID string, from, to Date) ([]*Completion, error)

	// ListDatesByHabit returns every completion date of a habit, most recent first.
	ListDatesByHabit(ctx context.Context, userID, habitID string) ([]Date, error)

	// Upsert inserts a completion. A second upsert on the same
	// (user, habit, date) collapses into the existing row.
	Upsert(ctx context.Context, completion *Completion) error

	// Delete removes the completion keyed by (user, habit, date). Missing rows are not an error.
	Delete(ctx context.Context, userID, habitID string, date Date) error

	// DeleteAllByHabit removes the whole completion history of a habit.
	DeleteAllByHabit(ctx context.Context, userID, habitID string) error
}

type StreakRepository interface {
	// Upsert fully overwrites the stored streak keyed by (user, habit).
	Upsert(ctx context.Context, streak *Streak) error

	GetByHabitID(ctx context.Context, userID, habitID string) (*Streak, error)

	ListByUserID(ctx context.Context, userID string) ([]*Streak, error)
}

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)

	Create(ctx context.Context, sub *Subscription) error
}

type LoginStreakRepository interface {
	GetByUserID(ctx context.Context, userID string) (*LoginStreak, error)

	// Save upserts the streak keyed by user.
	Save(ctx context.Context, streak *LoginStreak) error
}
