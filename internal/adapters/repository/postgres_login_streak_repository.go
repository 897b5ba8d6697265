package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.LoginStreakRepository = (*PostgresLoginStreakRepository)(nil)

type PostgresLoginStreakRepository struct {
	db *sqlx.DB
}

func NewPostgresLoginStreakRepository(db *sqlx.DB) *PostgresLoginStreakRepository {
	return &PostgresLoginStreakRepository{db: db}
}

func (r *PostgresLoginStreakRepository) GetByUserID(ctx context.Context, userID string) (*domain.LoginStreak, error) {
	query := `
        SELECT user_id, current_streak, longest_streak, last_login_date::text AS last_login_date, updated_at
        FROM login_streaks
        WHERE user_id = $1`

	var l domain.LoginStreak
	if err := r.db.GetContext(ctx, &l, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLoginStreakNotFound
		}
		return nil, classify("get login streak", err)
	}

	if _, err := domain.ParseDate(string(l.LastLoginDate)); err != nil {
		return nil, domain.ErrMalformedRow
	}
	return &l, nil
}

func (r *PostgresLoginStreakRepository) Save(ctx context.Context, l *domain.LoginStreak) error {
	query := `
        INSERT INTO login_streaks (user_id, current_streak, longest_streak, last_login_date, updated_at)
        VALUES ($1, $2, $3, $4::date, $5)
        ON CONFLICT (user_id) DO UPDATE SET
            current_streak = EXCLUDED.current_streak,
            longest_streak = EXCLUDED.longest_streak,
            last_login_date = EXCLUDED.last_login_date,
            updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, l.UserID, l.CurrentStreak, l.LongestStreak, string(l.LastLoginDate), l.UpdatedAt)
	if err != nil {
		return classify("save login streak", err)
	}
	return nil
}
