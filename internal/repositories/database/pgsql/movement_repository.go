package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
)

// PgxMovementRepository persists export/import notes and their lines.
type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.MovementRepositoryWithTx {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

var _ portsrepo.MovementRepositoryWithTx = (*PgxMovementRepository)(nil)

const movementColumns = `
	movement_id, order_id, from_store_id, to_store_id, creater_id, total_quantity,
	status, movement_type, note, created_at, created_by, last_updated_at, last_updated_by`

// SaveMovement inserts the movement header and its lines as part of the
// caller's transaction.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement, lines []domain.StockMovementLine) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		movement.MovementID,
		movement.OrderID,
		movement.FromStoreID,
		movement.ToStoreID,
		movement.CreaterID,
		movement.TotalQuantity,
		movement.Status,
		movement.Type,
		movement.Note,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock movement "+movement.MovementID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			INSERT INTO stock_movement_lines (line_id, movement_id, product_id, quantity)
			VALUES ($1, $2, $3, $4);
		`, line.LineID, line.MovementID, line.ProductID, line.Quantity)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert stock movement lines", err)
		}
	}
	return nil
}

// FindMovementByIDForUpdate locks the movement header row.
func (r *PgxMovementRepository) FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.StockMovement, error) {
	row := tx.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE movement_id = $1 FOR UPDATE;`, movementID)
	return scanMovement(row)
}

// FindMovementByOrderIDForUpdate locks the order-scoped export note.
func (r *PgxMovementRepository) FindMovementByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.StockMovement, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+movementColumns+` FROM stock_movements
		WHERE order_id = $1 AND movement_type = $2
		FOR UPDATE;
	`, orderID, domain.MovementExport)
	return scanMovement(row)
}

// FindMovementByID reads a committed movement.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE movement_id = $1;`, movementID)
	return scanMovement(row)
}

func scanMovement(row pgx.Row) (*domain.StockMovement, error) {
	var movement domain.StockMovement
	err := row.Scan(
		&movement.MovementID,
		&movement.OrderID,
		&movement.FromStoreID,
		&movement.ToStoreID,
		&movement.CreaterID,
		&movement.TotalQuantity,
		&movement.Status,
		&movement.Type,
		&movement.Note,
		&movement.CreatedAt,
		&movement.CreatedBy,
		&movement.LastUpdatedAt,
		&movement.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan stock movement row", err)
	}
	return &movement, nil
}

// UpdateMovementStatus moves a movement through its lifecycle.
func (r *PgxMovementRepository) UpdateMovementStatus(ctx context.Context, tx pgx.Tx, movementID string, status domain.MovementStatus, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE stock_movements
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE movement_id = $1;
	`, movementID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMovementLines returns the lines of a movement.
func (r *PgxMovementRepository) FindMovementLines(ctx context.Context, movementID string) ([]domain.StockMovementLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, movement_id, product_id, quantity
		FROM stock_movement_lines
		WHERE movement_id = $1
		ORDER BY product_id;
	`, movementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock movement lines", err)
	}
	defer rows.Close()

	var lines []domain.StockMovementLine
	for rows.Next() {
		var line domain.StockMovementLine
		if err := rows.Scan(&line.LineID, &line.MovementID, &line.ProductID, &line.Quantity); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock movement line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock movement lines", err)
	}
	return lines, nil
}
