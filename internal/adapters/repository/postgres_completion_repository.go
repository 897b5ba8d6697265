package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.CompletionRepository = (*PostgresCompletionRepository)(nil)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// completed_date is always read back as its literal YYYY-MM-DD text.
type completionRow struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	HabitID       string `db:"habit_id"`
	CompletedDate string `db:"completed_date"`
}

func (row completionRow) toDomain() (*domain.Completion, error) {
	date, err := domain.ParseDate(row.CompletedDate)
	if err != nil {
		return nil, domain.ErrMalformedRow
	}
	return &domain.Completion{
		ID:            row.ID,
		UserID:        row.UserID,
		HabitID:       row.HabitID,
		CompletedDate: date,
	}, nil
}

func (r *PostgresCompletionRepository) ListByDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.Completion, error) {
	query := `
        SELECT id, user_id, habit_id, completed_date::text AS completed_date
        FROM habit_completions
        WHERE user_id = $1
          AND completed_date >= $2::date
          AND completed_date <= $3::date
        ORDER BY completed_date ASC`

	var rows []completionRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, string(from), string(to)); err != nil {
		return nil, classify("list completions", err)
	}

	out := make([]*domain.Completion, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *PostgresCompletionRepository) ListDatesByHabit(ctx context.Context, userID, habitID string) ([]domain.Date, error) {
	query := `
        SELECT completed_date::text
        FROM habit_completions
        WHERE user_id = $1 AND habit_id = $2
        ORDER BY completed_date DESC`

	var raw []string
	if err := r.db.SelectContext(ctx, &raw, query, userID, habitID); err != nil {
		return nil, classify("list completion dates", err)
	}

	dates := make([]domain.Date, 0, len(raw))
	for _, s := range raw {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, domain.ErrMalformedRow
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func (r *PostgresCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	if err := c.Validate(); err != nil {
		return err
	}

	query := `
        INSERT INTO habit_completions (id, user_id, habit_id, completed_date, created_at)
        VALUES ($1, $2, $3, $4::date, $5)
        ON CONFLICT (user_id, habit_id, completed_date)
        DO UPDATE SET completed_date = EXCLUDED.completed_date`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.HabitID, string(c.CompletedDate), c.CreatedAt)
	if err != nil {
		return classify("upsert completion", err)
	}
	return nil
}

func (r *PostgresCompletionRepository) Delete(ctx context.Context, userID, habitID string, date domain.Date) error {
	query := `
        DELETE FROM habit_completions
        WHERE user_id = $1 AND habit_id = $2 AND completed_date = $3::date`

	if _, err := r.db.ExecContext(ctx, query, userID, habitID, string(date)); err != nil {
		return classify("delete completion", err)
	}
	return nil
}

func (r *PostgresCompletionRepository) DeleteAllByHabit(ctx context.Context, userID, habitID string) error {
	query := `DELETE FROM habit_completions WHERE user_id = $1 AND habit_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, habitID); err != nil {
		return classify("delete completion history", err)
	}
	return nil
}
