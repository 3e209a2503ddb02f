package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// LedgerRepositoryFacade persists receipt notes and the aggregate-ledger
// singleton. The aggregate row is only ever read with a row lock inside a
// transaction; plain reads go through GetAggregate.
type LedgerRepositoryFacade interface {
	SaveEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// UpdateEntryStatus flips a single entry between completed and cancelled.
	UpdateEntryStatus(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, userID string, now time.Time) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByOrderIDForUpdate locks every entry posted for the order,
	// used by cancellation to reverse them without racing another reversal.
	FindEntriesByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) ([]domain.LedgerEntry, error)

	// GetAggregateForUpdate locks and returns the singleton totals row.
	GetAggregateForUpdate(ctx context.Context, tx pgx.Tx) (*domain.AggregateLedger, error)
	UpdateAggregate(ctx context.Context, tx pgx.Tx, aggregate domain.AggregateLedger) error

	GetAggregate(ctx context.Context) (*domain.AggregateLedger, error)

	// ListEntriesByStore pages committed entries newest-first using an opaque
	// cursor token.
	ListEntriesByStore(ctx context.Context, storeID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerRepositoryWithTx combines ledger persistence with transaction control.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TxManager
}
