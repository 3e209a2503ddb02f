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

// PgxOrderRepository persists orders, their lines and their payments.
type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

const orderColumns = `
	order_id, store_id, creater_id, customer_id, quantity, total_amount, discount,
	payed_amount, remain_amount, order_status, payment_status, shipping_status,
	is_deleted, created_at, created_by, last_updated_at, last_updated_by`

// SaveOrder inserts the order header, its lines and the initial payments as
// part of the caller's transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, tx pgx.Tx, order domain.Order, lines []domain.OrderLine, payments []domain.PaymentRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`,
		order.OrderID,
		order.StoreID,
		order.CreaterID,
		order.CustomerID,
		order.Quantity,
		order.TotalAmount,
		order.Discount,
		order.PayedAmount,
		order.RemainAmount,
		order.OrderStatus,
		order.PaymentStatus,
		order.ShippingStatus,
		order.IsDeleted,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert order "+order.OrderID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			INSERT INTO order_lines (order_line_id, order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, line.OrderLineID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice)
	}
	for _, payment := range payments {
		batch.Queue(`
			INSERT INTO order_payments (payment_id, order_id, amount, payment_method, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, payment.PaymentID, payment.OrderID, payment.Amount, payment.PaymentMethod, payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert order lines and payments", err)
		}
	}
	return nil
}

// SavePayment appends one payment record to an existing order.
func (r *PgxOrderRepository) SavePayment(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO order_payments (payment_id, order_id, amount, payment_method, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, payment.PaymentID, payment.OrderID, payment.Amount, payment.PaymentMethod, payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for order "+payment.OrderID, err)
	}
	return nil
}

// UpdateOrder writes the mutable header fields back to the order row.
func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET payed_amount = $2, remain_amount = $3, order_status = $4, payment_status = $5,
		    shipping_status = $6, is_deleted = $7, last_updated_at = $8, last_updated_by = $9
		WHERE order_id = $1;
	`,
		order.OrderID,
		order.PayedAmount,
		order.RemainAmount,
		order.OrderStatus,
		order.PaymentStatus,
		order.ShippingStatus,
		order.IsDeleted,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order "+order.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindOrderByIDForUpdate loads the order row with a row lock.
func (r *PgxOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.Order, error) {
	row := tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1 FOR UPDATE;`, orderID)
	return scanOrder(row)
}

// FindOrderByID reads a committed order outside any transaction.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1;`, orderID)
	return scanOrder(row)
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.OrderID,
		&order.StoreID,
		&order.CreaterID,
		&order.CustomerID,
		&order.Quantity,
		&order.TotalAmount,
		&order.Discount,
		&order.PayedAmount,
		&order.RemainAmount,
		&order.OrderStatus,
		&order.PaymentStatus,
		&order.ShippingStatus,
		&order.IsDeleted,
		&order.CreatedAt,
		&order.CreatedBy,
		&order.LastUpdatedAt,
		&order.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan order row", err)
	}
	return &order, nil
}

// FindOrderLines returns the immutable lines of an order.
func (r *PgxOrderRepository) FindOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT order_line_id, order_id, product_id, quantity, unit_price, total_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY product_id;
	`, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query order lines", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.OrderLineID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice, &line.TotalPrice); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order lines", err)
	}
	return lines, nil
}

// FindPaymentsByOrderID returns the payments recorded for an order.
func (r *PgxOrderRepository) FindPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.PaymentRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT payment_id, order_id, amount, payment_method, created_at, created_by, last_updated_at, last_updated_by
		FROM order_payments
		WHERE order_id = $1
		ORDER BY created_at;
	`, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query order payments", err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		var payment domain.PaymentRecord
		if err := rows.Scan(&payment.PaymentID, &payment.OrderID, &payment.Amount, &payment.PaymentMethod,
			&payment.CreatedAt, &payment.CreatedBy, &payment.LastUpdatedAt, &payment.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}
