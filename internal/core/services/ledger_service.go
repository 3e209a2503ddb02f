package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/cache"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

const aggregateSnapshotTTL = 30 * time.Second

// ledgerService owns receipt notes and the aggregate-ledger singleton.
// The aggregate row is only mutated under a row lock, in the same transaction
// as the entries that move it.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	snapshots  cache.AggregateSnapshotCache
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, snapshots cache.AggregateSnapshotCache) portssvc.LedgerSvcFacade {
	if snapshots == nil {
		snapshots = cache.NoopAggregateCache{}
	}
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		snapshots:  snapshots,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostEntriesTx creates one completed entry per posting and applies all of
// them to the aggregate row while it is locked. Runs inside the caller's
// transaction.
func (s *ledgerService) PostEntriesTx(ctx context.Context, tx pgx.Tx, orderID *string, storeID, createrID string, postings []portssvc.LedgerPosting, entryType domain.EntryType, counterparty string, now time.Time) ([]domain.LedgerEntry, error) {
	if !entryType.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entryType)
	}

	entries := make([]domain.LedgerEntry, 0, len(postings))
	for _, posting := range postings {
		if posting.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
		}
		if !posting.PaymentMethod.Valid() {
			return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, posting.PaymentMethod)
		}
		entries = append(entries, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			OrderID:       orderID,
			StoreID:       storeID,
			CreaterID:     createrID,
			TotalAmount:   posting.Amount,
			PaymentMethod: posting.PaymentMethod,
			Type:          entryType,
			Status:        domain.EntryCompleted,
			Note:          posting.Note,
			Counterparty:  counterparty,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createrID,
				LastUpdatedAt: now,
				LastUpdatedBy: createrID,
			},
		})
	}
	if len(entries) == 0 {
		return entries, nil
	}

	for _, entry := range entries {
		if err := s.ledgerRepo.SaveEntry(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to save ledger entry: %w", err)
		}
	}

	aggregate, err := s.ledgerRepo.GetAggregateForUpdate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock aggregate ledger: %w", err)
	}
	for _, entry := range entries {
		aggregate.Apply(entry)
	}
	aggregate.LastUpdatedAt = now
	aggregate.LastUpdatedBy = createrID
	if err := s.ledgerRepo.UpdateAggregate(ctx, tx, *aggregate); err != nil {
		return nil, fmt.Errorf("failed to update aggregate ledger: %w", err)
	}

	return entries, nil
}

// ReverseEntryTx cancels a single entry and reverts its aggregate effect.
// Idempotent: an already-cancelled entry is left untouched.
func (s *ledgerService) ReverseEntryTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error {
	entry, err := s.ledgerRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}
	return s.reverseLockedEntry(ctx, tx, *entry, userID, now)
}

// ReverseOrderEntriesTx reverses every completed entry posted for an order.
func (s *ledgerService) ReverseOrderEntriesTx(ctx context.Context, tx pgx.Tx, orderID string, userID string, now time.Time) error {
	entries, err := s.ledgerRepo.FindEntriesByOrderIDForUpdate(ctx, tx, orderID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.reverseLockedEntry(ctx, tx, entry, userID, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *ledgerService) reverseLockedEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, userID string, now time.Time) error {
	if entry.Status == domain.EntryCancelled {
		return nil
	}

	if err := s.ledgerRepo.UpdateEntryStatus(ctx, tx, entry.EntryID, domain.EntryCancelled, userID, now); err != nil {
		return fmt.Errorf("failed to cancel ledger entry %s: %w", entry.EntryID, err)
	}

	aggregate, err := s.ledgerRepo.GetAggregateForUpdate(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to lock aggregate ledger: %w", err)
	}
	aggregate.Revert(entry)
	aggregate.LastUpdatedAt = now
	aggregate.LastUpdatedBy = userID
	if err := s.ledgerRepo.UpdateAggregate(ctx, tx, *aggregate); err != nil {
		return fmt.Errorf("failed to update aggregate ledger: %w", err)
	}
	return nil
}

// CreateEntry posts an ad hoc THU/CHI receipt note in its own transaction.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, createrID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	var created domain.LedgerEntry
	err := s.ledgerRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		entries, err := s.PostEntriesTx(ctx, tx, nil, req.StoreID, createrID,
			[]portssvc.LedgerPosting{{Amount: req.TotalAmount, PaymentMethod: req.PaymentMethod, Note: req.Note}},
			req.Type, req.Counterparty, now)
		if err != nil {
			return err
		}
		created = entries[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateSnapshot(ctx)
	logger.Info("Ledger entry created", "entryID", created.EntryID, "type", string(req.Type))
	return &created, nil
}

// ReverseEntry cancels a standalone entry in its own transaction.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, userID string) error {
	now := time.Now()
	err := s.ledgerRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.ReverseEntryTx(ctx, tx, entryID, userID, now)
	})
	if err != nil {
		return err
	}
	s.InvalidateSnapshot(ctx)
	return nil
}

// GetAggregate returns the committed running totals, served from the snapshot
// cache when fresh.
func (s *ledgerService) GetAggregate(ctx context.Context) (*domain.AggregateLedger, error) {
	if snapshot, ok, err := s.snapshots.Get(ctx); err == nil && ok {
		return snapshot, nil
	} else if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Aggregate snapshot cache read failed", "error", err)
	}

	aggregate, err := s.ledgerRepo.GetAggregate(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.snapshots.Set(ctx, aggregate, aggregateSnapshotTTL); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Aggregate snapshot cache write failed", "error", err)
	}
	return aggregate, nil
}

// ListEntries pages committed entries for one store, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, storeID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.ledgerRepo.ListEntriesByStore(ctx, storeID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// InvalidateSnapshot drops the cached aggregate snapshot so the next read
// hits the database. Coordinators committing order-driven postings call it
// alongside the ad hoc entry paths.
func (s *ledgerService) InvalidateSnapshot(ctx context.Context) {
	if err := s.snapshots.Invalidate(ctx); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Aggregate snapshot cache invalidation failed", "error", err)
	}
}
