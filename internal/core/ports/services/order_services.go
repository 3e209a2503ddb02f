package services

import (
	"context"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	"github.com/sellora/retail_backoffice_app/internal/dto"
)

// OrderSvcFacade is the order transaction coordinator: the only entry point
// that may move inventory, order rows, payments and ledger entries together.
// Every mutating operation either fully commits or leaves no state behind.
type OrderSvcFacade interface {
	// CreateOrder reserves stock for every item, computes totals, persists
	// the order with its lines and payments, posts one THU entry per payment
	// and records the order-scoped export movement, all in one transaction.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, createrID string) (*dto.OrderDetailResponse, error)

	// CancelOrder compensates a committed order: releases stock back to the
	// originating store, reverses the order's ledger entries, cancels the
	// export movement and soft-deletes the order. Cancelling an already
	// cancelled order returns apperrors.ErrConflict.
	CancelOrder(ctx context.Context, orderID string, userID string) error

	// AddPayment appends a payment instrument to a pending order and posts
	// the matching THU entry. Overpayment is rejected.
	AddPayment(ctx context.Context, orderID string, req dto.AddPaymentRequest, userID string) (*domain.Order, error)

	UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, userID string) (*domain.Order, error)
	UpdateShippingStatus(ctx context.Context, orderID string, req dto.UpdateShippingStatusRequest, userID string) (*domain.Order, error)

	// GetOrder reads a committed order with its lines and payments.
	GetOrder(ctx context.Context, orderID string) (*dto.OrderDetailResponse, error)
}
