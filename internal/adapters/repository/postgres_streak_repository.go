package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.StreakRepository = (*PostgresStreakRepository)(nil)

type PostgresStreakRepository struct {
	db *sqlx.DB
}

func NewPostgresStreakRepository(db *sqlx.DB) *PostgresStreakRepository {
	return &PostgresStreakRepository{db: db}
}

const streakColumns = `user_id, habit_id, current_streak, longest_streak,
        last_completed_date::text AS last_completed_date, updated_at`

type streakRow struct {
	UserID            string         `db:"user_id"`
	HabitID           string         `db:"habit_id"`
	CurrentStreak     int            `db:"current_streak"`
	LongestStreak     int            `db:"longest_streak"`
	LastCompletedDate sql.NullString `db:"last_completed_date"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (row streakRow) toDomain() (*domain.Streak, error) {
	s := &domain.Streak{
		UserID:        row.UserID,
		HabitID:       row.HabitID,
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.LastCompletedDate.Valid {
		d := domain.Date(row.LastCompletedDate.String)
		s.LastCompletedDate = &d
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresStreakRepository) Upsert(ctx context.Context, s *domain.Streak) error {
	query := `
        INSERT INTO habit_streaks (user_id, habit_id, current_streak, longest_streak, last_completed_date, updated_at)
        VALUES ($1, $2, $3, $4, $5::date, $6)
        ON CONFLICT (user_id, habit_id) DO UPDATE SET
            current_streak = EXCLUDED.current_streak,
            longest_streak = EXCLUDED.longest_streak,
            last_completed_date = EXCLUDED.last_completed_date,
            updated_at = EXCLUDED.updated_at`

	var last sql.NullString
	if s.LastCompletedDate != nil {
		last = sql.NullString{String: string(*s.LastCompletedDate), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, s.UserID, s.HabitID, s.CurrentStreak, s.LongestStreak, last, s.UpdatedAt)
	if err != nil {
		return classify("upsert streak", err)
	}
	return nil
}

func (r *PostgresStreakRepository) GetByHabitID(ctx context.Context, userID, habitID string) (*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM habit_streaks WHERE user_id = $1 AND habit_id = $2`

	var row streakRow
	if err := r.db.GetContext(ctx, &row, query, userID, habitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStreakNotFound
		}
		return nil, classify("get streak", err)
	}
	return row.toDomain()
}

func (r *PostgresStreakRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM habit_streaks WHERE user_id = $1`

	var rows []streakRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, classify("list streaks", err)
	}

	out := make([]*domain.Streak, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
