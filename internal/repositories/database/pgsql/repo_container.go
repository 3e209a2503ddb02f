package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	inventoryRepo := newPgxInventoryRepository(dbPool, lockTimeout)
	orderRepo := newPgxOrderRepository(dbPool, lockTimeout)
	ledgerRepo := newPgxLedgerRepository(dbPool, lockTimeout)
	movementRepo := newPgxMovementRepository(dbPool, lockTimeout)
	catalogRepo := newPgxCatalogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InventoryRepo: inventoryRepo,
		OrderRepo:     orderRepo,
		LedgerRepo:    ledgerRepo,
		MovementRepo:  movementRepo,
		CatalogRepo:   catalogRepo,
	}
}
