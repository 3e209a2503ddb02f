package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// InventoryRepositoryFacade is the per (store, product) stock counter.
// Reserve, Release and Provision must be called inside the caller's
// transaction; they lock the row so no concurrent reservation can interleave
// between the sufficiency check and the decrement.
type InventoryRepositoryFacade interface {
	// ReserveStock atomically checks and decrements the counter. Returns
	// apperrors.ErrNotFound if no row exists for the pair and
	// apperrors.ErrInsufficientStock if the row holds less than quantity.
	ReserveStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error

	// ReleaseStock adds quantity back to an existing row. Used by order
	// cancellation and transfer cancellation.
	ReleaseStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error

	// ProvisionStock creates the row or increments it if it already exists.
	// Used by transfer approval at the destination store.
	ProvisionStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error

	// FindInventory reads the committed counter outside any transaction.
	FindInventory(ctx context.Context, storeID, productID string) (*domain.InventoryRecord, error)
}
