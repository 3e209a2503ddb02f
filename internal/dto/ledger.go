package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// CreateLedgerEntryRequest creates an ad hoc receipt note not tied to any order.
type CreateLedgerEntryRequest struct {
	StoreID       string               `json:"storeID" binding:"required"`
	TotalAmount   decimal.Decimal      `json:"totalAmount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank"`
	Type          domain.EntryType     `json:"type" binding:"required,oneof=THU CHI"`
	Note          string               `json:"note"`
	Counterparty  string               `json:"counterparty"`
}

// LedgerEntryResponse is one receipt note returned to callers.
type LedgerEntryResponse struct {
	EntryID       string          `json:"entryID"`
	OrderID       *string         `json:"orderID,omitempty"`
	StoreID       string          `json:"storeID"`
	CreaterID     string          `json:"createrID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Note          string          `json:"note,omitempty"`
	Counterparty  string          `json:"counterparty,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AggregateLedgerResponse is the running-totals snapshot.
type AggregateLedgerResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	BankBalance  decimal.Decimal `json:"bankBalance"`
	AsOf         time.Time       `json:"asOf"`
}

// ListLedgerEntriesParams pages entries for one store.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerEntriesResponse is one page of entries plus the cursor for the next.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		OrderID:       e.OrderID,
		StoreID:       e.StoreID,
		CreaterID:     e.CreaterID,
		TotalAmount:   e.TotalAmount,
		PaymentMethod: string(e.PaymentMethod),
		Type:          string(e.Type),
		Status:        string(e.Status),
		Note:          e.Note,
		Counterparty:  e.Counterparty,
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(&e)
	}
	return responses
}

// ToAggregateLedgerResponse converts the singleton totals row.
func ToAggregateLedgerResponse(a *domain.AggregateLedger) AggregateLedgerResponse {
	return AggregateLedgerResponse{
		TotalIncome:  a.TotalIncome,
		TotalExpense: a.TotalExpense,
		CashBalance:  a.CashBalance,
		BankBalance:  a.BankBalance,
		AsOf:         a.LastUpdatedAt,
	}
}
