package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

const habitColumns = `id, user_id, name, emoji, goal, sort_order, created_at, updated_at`

const insertHabitQuery = `
        INSERT INTO habits (` + habitColumns + `)
        VALUES (:id, :user_id, :name, :emoji, :goal, :sort_order, :created_at, :updated_at)`

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	if _, err := r.db.NamedExecContext(ctx, insertHabitQuery, h); err != nil {
		return classify("insert habit", err)
	}
	return nil
}

func (r *PostgresHabitRepository) CreateBatch(ctx context.Context, habits []*domain.Habit) error {
	if len(habits) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify("begin habit batch", err)
	}
	defer tx.Rollback()

	for _, h := range habits {
		if _, err := tx.NamedExecContext(ctx, insertHabitQuery, h); err != nil {
			return classify("insert habit batch", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify("commit habit batch", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	var h domain.Habit
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, classify("get habit", err)
	}
	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1
        ORDER BY sort_order ASC, created_at ASC`

	habits := []*domain.Habit{}
	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, classify("list habits", err)
	}
	return habits, nil
}

func (r *PostgresHabitRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM habits WHERE user_id = $1`, userID); err != nil {
		return 0, classify("count habits", err)
	}
	return count, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET
            name = $1, emoji = $2, goal = $3, updated_at = NOW()
        WHERE id = $4 AND user_id = $5
        RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, h.Name, h.Emoji, h.Goal, h.ID, h.UserID).Scan(&h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return classify("update habit", err)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE to drop the habit's completions and streak.
func (r *PostgresHabitRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return classify("delete habit", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
