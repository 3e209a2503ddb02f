package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// MovementRepositoryFacade persists export/import notes and their lines.
type MovementRepositoryFacade interface {
	SaveMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement, lines []domain.StockMovementLine) error

	// FindMovementByIDForUpdate locks the movement header so approval and
	// cancellation of the same movement cannot run concurrently.
	FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.StockMovement, error)

	// FindMovementByOrderIDForUpdate locks the order-scoped export note, used
	// by order cancellation.
	FindMovementByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.StockMovement, error)

	UpdateMovementStatus(ctx context.Context, tx pgx.Tx, movementID string, status domain.MovementStatus, userID string, now time.Time) error

	FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)
	FindMovementLines(ctx context.Context, movementID string) ([]domain.StockMovementLine, error)
}

// MovementRepositoryWithTx combines movement persistence with transaction control.
type MovementRepositoryWithTx interface {
	MovementRepositoryFacade
	TxManager
}
