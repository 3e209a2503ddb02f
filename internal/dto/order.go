package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// OrderItemRequest is one line of a create-order request.
type OrderItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// PaymentRequest is one payment instrument supplied with an order.
type PaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank"`
}

// CreateOrderRequest carries everything the coordinator needs to build an
// order. Discount is a whole percent; nil means no discount.
type CreateOrderRequest struct {
	StoreID    string             `json:"storeID" binding:"required"`
	CustomerID *string            `json:"customerID"`
	Discount   *int64             `json:"discount"`
	Note       string             `json:"note"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Payments   []PaymentRequest   `json:"payments" binding:"dive"`
}

// AddPaymentRequest appends a payment to a pending order.
type AddPaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank"`
}

// UpdateOrderStatusRequest moves the order between pending/completed/cancelled.
type UpdateOrderStatusRequest struct {
	OrderStatus   domain.OrderStatus    `json:"orderStatus" binding:"required,oneof=pending completed cancelled"`
	PaymentStatus *domain.PaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=pending paid cancelled"`
}

// UpdateShippingStatusRequest moves the independently tracked shipping status.
type UpdateShippingStatusRequest struct {
	ShippingStatus domain.ShippingStatus `json:"shippingStatus" binding:"required,oneof=processing completed cancelled"`
}

// OrderResponse is the order header returned to callers.
type OrderResponse struct {
	OrderID        string          `json:"orderID"`
	StoreID        string          `json:"storeID"`
	CreaterID      string          `json:"createrID"`
	CustomerID     *string         `json:"customerID,omitempty"`
	Quantity       int64           `json:"quantity"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Discount       int64           `json:"discount"`
	PayedAmount    decimal.Decimal `json:"payedAmount"`
	RemainAmount   decimal.Decimal `json:"remainAmount"`
	OrderStatus    string          `json:"orderStatus"`
	PaymentStatus  string          `json:"paymentStatus"`
	ShippingStatus string          `json:"shippingStatus"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// OrderLineResponse is one line of an order.
type OrderLineResponse struct {
	ProductID  string          `json:"productID"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderDetailResponse is the composed result of createOrder and getOrder.
type OrderDetailResponse struct {
	Order         OrderResponse         `json:"order"`
	Lines         []OrderLineResponse   `json:"lines"`
	Payments      []PaymentResponse     `json:"payments,omitempty"`
	LedgerEntries []LedgerEntryResponse `json:"ledgerEntries,omitempty"`
}

// PaymentResponse is one recorded payment instrument.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToOrderResponse converts a domain.Order to its response DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:        o.OrderID,
		StoreID:        o.StoreID,
		CreaterID:      o.CreaterID,
		CustomerID:     o.CustomerID,
		Quantity:       o.Quantity,
		TotalAmount:    o.TotalAmount,
		Discount:       o.Discount,
		PayedAmount:    o.PayedAmount,
		RemainAmount:   o.RemainAmount,
		OrderStatus:    string(o.OrderStatus),
		PaymentStatus:  string(o.PaymentStatus),
		ShippingStatus: string(o.ShippingStatus),
		CreatedAt:      o.CreatedAt,
	}
}

// ToOrderLineResponses converts a slice of domain.OrderLine.
func ToOrderLineResponses(lines []domain.OrderLine) []OrderLineResponse {
	responses := make([]OrderLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = OrderLineResponse{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		}
	}
	return responses
}

// ToPaymentResponses converts a slice of domain.PaymentRecord.
func ToPaymentResponses(payments []domain.PaymentRecord) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = PaymentResponse{
			PaymentID:     p.PaymentID,
			Amount:        p.Amount,
			PaymentMethod: string(p.PaymentMethod),
			CreatedAt:     p.CreatedAt,
		}
	}
	return responses
}
