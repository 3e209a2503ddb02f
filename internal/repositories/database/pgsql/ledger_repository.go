package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
	"github.com/sellora/retail_backoffice_app/internal/utils/pagination"
)

// PgxLedgerRepository persists receipt notes and the aggregate-ledger
// singleton row.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool, LockTimeout: lockTimeout}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const entryColumns = `
	entry_id, order_id, store_id, creater_id, total_amount, payment_method,
	entry_type, status, note, counterparty, created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry inserts one receipt note as part of the caller's transaction.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		entry.EntryID,
		entry.OrderID,
		entry.StoreID,
		entry.CreaterID,
		entry.TotalAmount,
		entry.PaymentMethod,
		entry.Type,
		entry.Status,
		entry.Note,
		entry.Counterparty,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+entry.EntryID, err)
	}
	return nil
}

// UpdateEntryStatus flips a single entry between completed and cancelled.
func (r *PgxLedgerRepository) UpdateEntryStatus(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE ledger_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`, entryID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEntryByID reads one committed entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE entry_id = $1;`, entryID)
	return scanEntry(row)
}

// FindEntryByIDForUpdate locks and returns one entry.
func (r *PgxLedgerRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	row := tx.QueryRow(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE entry_id = $1 FOR UPDATE;`, entryID)
	return scanEntry(row)
}

// FindEntriesByOrderIDForUpdate locks every entry posted for an order, in
// creation order.
func (r *PgxLedgerRepository) FindEntriesByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) ([]domain.LedgerEntry, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE order_id = $1
		ORDER BY created_at, entry_id
		FOR UPDATE;
	`, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock ledger entries for order "+orderID, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	err := row.Scan(
		&entry.EntryID,
		&entry.OrderID,
		&entry.StoreID,
		&entry.CreaterID,
		&entry.TotalAmount,
		&entry.PaymentMethod,
		&entry.Type,
		&entry.Status,
		&entry.Note,
		&entry.Counterparty,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
	}
	return &entry, nil
}

func scanEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.OrderID,
			&entry.StoreID,
			&entry.CreaterID,
			&entry.TotalAmount,
			&entry.PaymentMethod,
			&entry.Type,
			&entry.Status,
			&entry.Note,
			&entry.Counterparty,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

const aggregateColumns = `
	ledger_id, total_income, total_expense, cash_balance, bank_balance,
	created_at, created_by, last_updated_at, last_updated_by`

// GetAggregateForUpdate locks and returns the singleton totals row. The row
// is seeded by the migrations, so a missing row is an infrastructure error.
func (r *PgxLedgerRepository) GetAggregateForUpdate(ctx context.Context, tx pgx.Tx) (*domain.AggregateLedger, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+aggregateColumns+` FROM aggregate_ledger WHERE ledger_id = $1 FOR UPDATE;
	`, domain.AggregateLedgerID)
	return scanAggregate(row)
}

// GetAggregate reads the committed totals row.
func (r *PgxLedgerRepository) GetAggregate(ctx context.Context) (*domain.AggregateLedger, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+aggregateColumns+` FROM aggregate_ledger WHERE ledger_id = $1;
	`, domain.AggregateLedgerID)
	return scanAggregate(row)
}

func scanAggregate(row pgx.Row) (*domain.AggregateLedger, error) {
	var aggregate domain.AggregateLedger
	err := row.Scan(
		&aggregate.LedgerID,
		&aggregate.TotalIncome,
		&aggregate.TotalExpense,
		&aggregate.CashBalance,
		&aggregate.BankBalance,
		&aggregate.CreatedAt,
		&aggregate.CreatedBy,
		&aggregate.LastUpdatedAt,
		&aggregate.LastUpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "aggregate ledger row is missing", err)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan aggregate ledger row", err)
	}
	return &aggregate, nil
}

// UpdateAggregate writes the totals back to the singleton row.
func (r *PgxLedgerRepository) UpdateAggregate(ctx context.Context, tx pgx.Tx, aggregate domain.AggregateLedger) error {
	_, err := tx.Exec(ctx, `
		UPDATE aggregate_ledger
		SET total_income = $2, total_expense = $3, cash_balance = $4, bank_balance = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE ledger_id = $1;
	`,
		domain.AggregateLedgerID,
		aggregate.TotalIncome,
		aggregate.TotalExpense,
		aggregate.CashBalance,
		aggregate.BankBalance,
		aggregate.LastUpdatedAt,
		aggregate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update aggregate ledger", err)
	}
	return nil
}

// ListEntriesByStore pages committed entries newest-first using a keyset
// cursor of (created_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByStore(ctx context.Context, storeID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE store_id = $1`
	args := []interface{}{storeID}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		encoded := pagination.EncodeCursor(last.CreatedAt, last.EntryID)
		token = &encoded
	}
	return entries, token, nil
}
