package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)

// PostgresSubscriptionRepository reads the rows maintained by the payment collaborator.
type PostgresSubscriptionRepository struct {
	db *sqlx.DB
}

func NewPostgresSubscriptionRepository(db *sqlx.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

func (r *PostgresSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*domain.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, status, current_period_end, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
	`

	var sub domain.Subscription

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Status,
		&sub.CurrentPeriodEnd,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, classify("get subscription", err)
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return &sub, nil
}

// Create inserts the row unless one already exists for the user.
func (r *PostgresSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO subscriptions (id, user_id, status, current_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.Status,
		sub.CurrentPeriodEnd,
		sub.CreatedAt,
		sub.UpdatedAt,
	)

	if err != nil {
		return classify("create subscription", err)
	}

	return nil
}
