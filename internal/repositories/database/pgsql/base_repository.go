package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
)

// lockNotAvailable is the SQLSTATE raised when lock_timeout expires.
const lockNotAvailable = "55P03"

// BaseRepository provides common functionality for all repositories.
type BaseRepository struct {
	Pool        *pgxpool.Pool
	LockTimeout time.Duration
}

// WithTransaction runs fn inside a single database transaction with the
// configured lock timeout applied. A lock-wait failure surfaces as
// apperrors.ErrContention so callers can retry; any other error from fn rolls
// the transaction back unchanged.
func (r *BaseRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			// Rollback after a successful commit is expected to fail; anything
			// else is already covered by the returned error.
			_ = rbErr
		}
	}()

	if r.LockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())); err != nil {
			return apperrors.NewAppError(500, "failed to set lock timeout", err)
		}
	}

	if err := fn(ctx, tx); err != nil {
		return mapLockError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", mapLockError(err))
	}
	return nil
}

// mapLockError translates lock-wait failures into the retryable contention
// sentinel; other errors pass through untouched.
func mapLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
		return fmt.Errorf("%w: %v", apperrors.ErrContention, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrContention, err)
	}
	return err
}
