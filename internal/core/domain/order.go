package domain

import "github.com/shopspring/decimal"

// OrderStatus indicates the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus indicates how much of the order's net amount has been settled.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// ShippingStatus is tracked independently of the order status.
type ShippingStatus string

const (
	ShippingProcessing ShippingStatus = "processing"
	ShippingCompleted  ShippingStatus = "completed"
	ShippingCancelled  ShippingStatus = "cancelled"
)

// Order is the header row of a purchase. Amounts are post-discount; Quantity
// is the sum of the line quantities. Orders are soft-deleted, never removed.
type Order struct {
	OrderID        string          `json:"orderID"`
	StoreID        string          `json:"storeID"`
	CreaterID      string          `json:"createrID"`
	CustomerID     *string         `json:"customerID,omitempty"`
	Quantity       int64           `json:"quantity"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Discount       int64           `json:"discount"` // percent, 0..100
	PayedAmount    decimal.Decimal `json:"payedAmount"`
	RemainAmount   decimal.Decimal `json:"remainAmount"`
	OrderStatus    OrderStatus     `json:"orderStatus"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	ShippingStatus ShippingStatus  `json:"shippingStatus"`
	IsDeleted      bool            `json:"isDeleted"`
	AuditFields
}

// OrderLine is one item of an order. Immutable once created and owned
// exclusively by its order.
type OrderLine struct {
	OrderLineID string          `json:"orderLineID"`
	OrderID     string          `json:"orderID"`
	ProductID   string          `json:"productID"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// PaymentRecord is one payment instrument applied to an order. Append-only.
type PaymentRecord struct {
	PaymentID     string          `json:"paymentID"`
	OrderID       string          `json:"orderID"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	AuditFields
}
