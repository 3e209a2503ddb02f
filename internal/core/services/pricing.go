package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	"github.com/sellora/retail_backoffice_app/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

// OrderTotals is the result of the payment and discount computation for one
// order: quantities, amounts and the derived statuses.
type OrderTotals struct {
	TotalQuantity int64
	GrossAmount   decimal.Decimal
	NetAmount     decimal.Decimal
	PaidAmount    decimal.Decimal
	RemainAmount  decimal.Decimal
	Discount      int64
	OrderStatus   domain.OrderStatus
	PaymentStatus domain.PaymentStatus
}

// ComputeOrderTotals derives an order's financial state from its items,
// optional percent discount and supplied payments. It is a pure function: all
// persistence decisions stay with the coordinator.
//
// The order is completed/paid only when the payments settle the net amount
// exactly. Payments above the net amount are rejected, never clamped.
func ComputeOrderTotals(items []dto.OrderItemRequest, discount *int64, payments []dto.PaymentRequest) (OrderTotals, error) {
	if len(items) == 0 {
		return OrderTotals{}, fmt.Errorf("%w: order must contain at least one item", apperrors.ErrValidation)
	}

	discountPercent := int64(0)
	if discount != nil {
		discountPercent = *discount
	}
	if discountPercent < 0 || discountPercent > 100 {
		return OrderTotals{}, fmt.Errorf("%w: discount must be between 0 and 100, got %d", apperrors.ErrValidation, discountPercent)
	}

	totalQuantity := int64(0)
	gross := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return OrderTotals{}, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		if item.UnitPrice.IsNegative() {
			return OrderTotals{}, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, item.ProductID)
		}
		totalQuantity += item.Quantity
		gross = gross.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}

	net := gross.Mul(oneHundred.Sub(decimal.NewFromInt(discountPercent))).Div(oneHundred)

	paid := decimal.Zero
	for _, payment := range payments {
		if !payment.PaymentMethod.Valid() {
			return OrderTotals{}, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, payment.PaymentMethod)
		}
		if payment.Amount.LessThanOrEqual(decimal.Zero) {
			return OrderTotals{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		paid = paid.Add(payment.Amount)
	}

	remain := net.Sub(paid)
	if remain.IsNegative() {
		return OrderTotals{}, fmt.Errorf("%w: paid %s against %s due", apperrors.ErrOverpayment, paid.String(), net.String())
	}

	totals := OrderTotals{
		TotalQuantity: totalQuantity,
		GrossAmount:   gross,
		NetAmount:     net,
		PaidAmount:    paid,
		RemainAmount:  remain,
		Discount:      discountPercent,
		OrderStatus:   domain.OrderPending,
		PaymentStatus: domain.PaymentPending,
	}
	if remain.IsZero() {
		totals.OrderStatus = domain.OrderCompleted
		totals.PaymentStatus = domain.PaymentPaid
	}
	return totals, nil
}
