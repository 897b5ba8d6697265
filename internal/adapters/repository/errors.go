package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const (
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02"
)

// pgCode extracts the SQLSTATE from either driver's error type.
func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify converts a driver error into a domain error. A missing referenced habit
// becomes ErrHabitNotFound, everything else ErrStoreUnavailable.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}

	switch pgCode(err) {
	case codeForeignKeyViolation, codeInvalidTextRep:
		return domain.ErrHabitNotFound
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
