package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// OrderRepositoryFacade persists orders, their lines and their payments.
type OrderRepositoryFacade interface {
	// SaveOrder inserts the order header, its lines and the initial payment
	// records as part of the caller's transaction.
	SaveOrder(ctx context.Context, tx pgx.Tx, order domain.Order, lines []domain.OrderLine, payments []domain.PaymentRecord) error

	// SavePayment appends one payment record to an existing order.
	SavePayment(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord) error

	// UpdateOrder writes the mutable header fields (statuses, amounts,
	// soft-delete flag, audit fields) back to the order row.
	UpdateOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error

	// FindOrderByIDForUpdate loads the order row with a row lock, serialising
	// concurrent cancellations and payments against the same order.
	FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.Order, error)

	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	FindOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error)
	FindPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.PaymentRecord, error)
}

// OrderRepositoryWithTx combines order persistence with transaction control.
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TxManager
}
