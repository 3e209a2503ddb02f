package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
)

// PgxCatalogRepository is the read-only view over products, stores and
// customers. The engine only looks rows up by id; CRUD lives elsewhere.
type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func (r *PgxCatalogRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	err := r.Pool.QueryRow(ctx, `
		SELECT product_id, name, sku, price FROM products WHERE product_id = $1;
	`, productID).Scan(&product.ProductID, &product.Name, &product.SKU, &product.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find product", err)
	}
	return &product, nil
}

func (r *PgxCatalogRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]domain.Product{}, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT product_id, name, sku, price FROM products WHERE product_id = ANY($1);
	`, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by ids", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ProductID, &product.Name, &product.SKU, &product.Price); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products[product.ProductID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return products, nil
}

func (r *PgxCatalogRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	var store domain.Store
	err := r.Pool.QueryRow(ctx, `
		SELECT store_id, name, owner_id FROM stores WHERE store_id = $1;
	`, storeID).Scan(&store.StoreID, &store.Name, &store.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find store", err)
	}
	return &store, nil
}

func (r *PgxCatalogRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.Pool.QueryRow(ctx, `
		SELECT customer_id, name, phone FROM customers WHERE customer_id = $1;
	`, customerID).Scan(&customer.CustomerID, &customer.Name, &customer.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find customer", err)
	}
	return &customer, nil
}
