package domain

import "github.com/shopspring/decimal"

// Product is the read-only catalog view consumed by the engine. Product CRUD
// lives outside this service.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
}

// Store is the read-only store-registry view consumed by the engine.
type Store struct {
	StoreID string `json:"storeID"`
	Name    string `json:"name"`
	OwnerID string `json:"ownerID"`
}

// Customer is the read-only identity view used to validate customer ids
// supplied with an order.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}
