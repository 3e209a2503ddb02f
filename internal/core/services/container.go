package services

import (
	"github.com/sellora/retail_backoffice_app/internal/cache"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, snapshots cache.AggregateSnapshotCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger service comes first since the order coordinator posts
	// through it.
	container.Ledger = NewLedgerService(repos.LedgerRepo, snapshots)

	container.Order = NewOrderService(
		repos.OrderRepo,
		repos.InventoryRepo,
		repos.MovementRepo,
		repos.CatalogRepo,
		container.Ledger,
	)

	container.Transfer = NewTransferService(
		repos.MovementRepo,
		repos.InventoryRepo,
		repos.CatalogRepo,
	)

	return container
}
