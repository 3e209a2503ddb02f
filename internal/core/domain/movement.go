package domain

// MovementType distinguishes outbound (export) from inbound (import) notes.
type MovementType string

const (
	MovementExport MovementType = "export"
	MovementImport MovementType = "import"
)

// MovementStatus is the lifecycle of a stock movement. Order-driven exports
// are created completed; manual transfers start pending and move to completed
// via approval, or to cancelled.
type MovementStatus string

const (
	MovementPending   MovementStatus = "pending"
	MovementCompleted MovementStatus = "completed"
	MovementCancelled MovementStatus = "cancelled"
)

// StockMovement records product quantity leaving a store, either out to a
// customer (order-driven, ToStoreID nil) or to another store.
type StockMovement struct {
	MovementID    string         `json:"movementID"`
	OrderID       *string        `json:"orderID,omitempty"`
	FromStoreID   string         `json:"fromStoreID"`
	ToStoreID     *string        `json:"toStoreID,omitempty"`
	CreaterID     string         `json:"createrID"`
	TotalQuantity int64          `json:"totalQuantity"`
	Status        MovementStatus `json:"status"`
	Type          MovementType   `json:"type"`
	Note          string         `json:"note"`
	AuditFields
}

// StockMovementLine is one product of a stock movement.
type StockMovementLine struct {
	LineID     string `json:"lineID"`
	MovementID string `json:"movementID"`
	ProductID  string `json:"productID"`
	Quantity   int64  `json:"quantity"`
}
