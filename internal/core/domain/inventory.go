package domain

// InventoryRecord is the per (store, product) stock counter. Exactly one row
// exists per pair once the product has been provisioned at the store, and
// quantity never goes negative.
type InventoryRecord struct {
	StoreID   string `json:"storeID"`
	ProductID string `json:"productID"`
	Quantity  int64  `json:"quantity"`
	AuditFields
}
