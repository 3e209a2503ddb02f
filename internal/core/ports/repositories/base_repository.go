package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager runs a function inside a single database transaction. Every
// multi-row engine operation (order creation, cancellation, transfer
// approval, ledger posting) goes through it so that either all of its writes
// commit or none do. Implementations apply the configured lock timeout and
// translate lock-wait failures into apperrors.ErrContention.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
