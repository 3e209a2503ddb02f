package repositories

import (
	"context"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// CatalogRepositoryFacade is the read-only view of the product catalog, the
// store registry and the customer directory. The engine never writes through
// it.
type CatalogRepositoryFacade interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error)
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}
