package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// PaymentMethod routes an amount to the matching aggregate-ledger balance.
type PaymentMethod string

const (
	Cash PaymentMethod = "cash"
	Bank PaymentMethod = "bank"
)

// Valid reports whether the payment method is one of the supported instruments.
func (m PaymentMethod) Valid() bool {
	return m == Cash || m == Bank
}
