package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	"github.com/sellora/retail_backoffice_app/internal/dto"
)

// LedgerPosting describes one amount to post when the coordinator settles an
// order's payments.
type LedgerPosting struct {
	Amount        decimal.Decimal
	PaymentMethod domain.PaymentMethod
	Note          string
}

// LedgerSvcFacade owns receipt notes and the aggregate-ledger singleton. The
// Tx-suffixed methods participate in a caller-owned transaction so that
// ledger effects commit or roll back together with the order mutation that
// triggered them; the rest open their own transaction.
type LedgerSvcFacade interface {
	// PostEntriesTx creates one completed entry per posting and applies all
	// of them to the locked aggregate row in a single pass.
	PostEntriesTx(ctx context.Context, tx pgx.Tx, orderID *string, storeID, createrID string, postings []LedgerPosting, entryType domain.EntryType, counterparty string, now time.Time) ([]domain.LedgerEntry, error)

	// ReverseEntryTx cancels one entry and reverts its aggregate effect.
	// Reversing an already-cancelled entry is a no-op.
	ReverseEntryTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error

	// ReverseOrderEntriesTx reverses every completed entry of an order.
	ReverseOrderEntriesTx(ctx context.Context, tx pgx.Tx, orderID string, userID string, now time.Time) error

	// CreateEntry posts an ad hoc THU/CHI receipt note.
	CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, createrID string) (*domain.LedgerEntry, error)

	// ReverseEntry cancels a standalone entry in its own transaction.
	ReverseEntry(ctx context.Context, entryID string, userID string) error

	// InvalidateSnapshot drops the cached aggregate snapshot. Callers of the
	// Tx-suffixed methods invoke it once their transaction has committed.
	InvalidateSnapshot(ctx context.Context)

	// GetAggregate returns the committed running totals, served from cache
	// when fresh.
	GetAggregate(ctx context.Context) (*domain.AggregateLedger, error)

	ListEntries(ctx context.Context, storeID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}
