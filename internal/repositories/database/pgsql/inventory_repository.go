package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
)

// PgxInventoryRepository is the per (store, product) stock counter backed by
// the inventory_records table.
type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// ReserveStock locks the row, checks sufficiency and decrements, all under
// the row lock so concurrent reservations serialize. This is the property
// that prevents overselling.
func (r *PgxInventoryRepository) ReserveStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	var current int64
	err := tx.QueryRow(ctx, `
		SELECT quantity FROM inventory_records
		WHERE store_id = $1 AND product_id = $2
		FOR UPDATE;
	`, storeID, productID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock inventory row", err)
	}

	if current < quantity {
		return fmt.Errorf("%w: have %d, requested %d", apperrors.ErrInsufficientStock, current, quantity)
	}

	_, err = tx.Exec(ctx, `
		UPDATE inventory_records
		SET quantity = quantity - $3, last_updated_at = $4, last_updated_by = $5
		WHERE store_id = $1 AND product_id = $2;
	`, storeID, productID, quantity, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decrement inventory", err)
	}
	return nil
}

// ReleaseStock adds quantity back, creating the row if stock was never
// provisioned at this store. It never fails on a missing row so cancellation
// can always return stock.
func (r *PgxInventoryRepository) ReleaseStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	return r.upsertIncrement(ctx, tx, storeID, productID, quantity, userID, now)
}

// ProvisionStock creates the row or increments an existing one.
func (r *PgxInventoryRepository) ProvisionStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	return r.upsertIncrement(ctx, tx, storeID, productID, quantity, userID, now)
}

func (r *PgxInventoryRepository) upsertIncrement(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory_records (store_id, product_id, quantity, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = inventory_records.quantity + EXCLUDED.quantity,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`, storeID, productID, quantity, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to increment inventory", err)
	}
	return nil
}

// FindInventory reads the committed counter.
func (r *PgxInventoryRepository) FindInventory(ctx context.Context, storeID, productID string) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	err := r.Pool.QueryRow(ctx, `
		SELECT store_id, product_id, quantity, created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_records
		WHERE store_id = $1 AND product_id = $2;
	`, storeID, productID).Scan(
		&record.StoreID,
		&record.ProductID,
		&record.Quantity,
		&record.CreatedAt,
		&record.CreatedBy,
		&record.LastUpdatedAt,
		&record.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find inventory record", err)
	}
	return &record, nil
}
