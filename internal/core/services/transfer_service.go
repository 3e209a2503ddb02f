package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

// transferService runs the two-phase inter-store transfer: a pending export
// note that reserves stock at the source, completed by an approval that
// provisions the destination and records the mirrored import note.
type transferService struct {
	movementRepo  portsrepo.MovementRepositoryWithTx
	inventoryRepo portsrepo.InventoryRepositoryFacade
	catalogRepo   portsrepo.CatalogRepositoryFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	movementRepo portsrepo.MovementRepositoryWithTx,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	catalogRepo portsrepo.CatalogRepositoryFacade,
) portssvc.TransferSvcFacade {
	return &transferService{
		movementRepo:  movementRepo,
		inventoryRepo: inventoryRepo,
		catalogRepo:   catalogRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// CreateTransfer reserves stock at the source store and records the pending
// export note with its lines in one transaction. Insufficient stock on any
// line aborts with nothing created.
func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, createrID string) (*dto.MovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromStoreID == req.ToStoreID {
		return nil, fmt.Errorf("%w: source and destination store must differ", apperrors.ErrValidation)
	}
	if _, err := s.catalogRepo.FindStoreByID(ctx, req.FromStoreID); err != nil {
		return nil, fmt.Errorf("store %s: %w", req.FromStoreID, err)
	}
	if _, err := s.catalogRepo.FindStoreByID(ctx, req.ToStoreID); err != nil {
		return nil, fmt.Errorf("store %s: %w", req.ToStoreID, err)
	}

	now := time.Now()
	movementID := uuid.NewString()
	totalQuantity := int64(0)
	lines := make([]domain.StockMovementLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, item.ProductID)
		}
		totalQuantity += item.Quantity
		lines = append(lines, domain.StockMovementLine{
			LineID:     uuid.NewString(),
			MovementID: movementID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}

	movement := domain.StockMovement{
		MovementID:    movementID,
		FromStoreID:   req.FromStoreID,
		ToStoreID:     &req.ToStoreID,
		CreaterID:     createrID,
		TotalQuantity: totalQuantity,
		Status:        domain.MovementPending,
		Type:          domain.MovementExport,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createrID,
			LastUpdatedAt: now,
			LastUpdatedBy: createrID,
		},
	}

	err := s.movementRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, line := range sortedLines(lines) {
			if err := s.inventoryRepo.ReserveStock(ctx, tx, req.FromStoreID, line.ProductID, line.Quantity, createrID, now); err != nil {
				return fmt.Errorf("product %s: %w", line.ProductID, err)
			}
		}
		return s.movementRepo.SaveMovement(ctx, tx, movement, lines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock transfer created", "movementID", movementID, "fromStoreID", req.FromStoreID, "toStoreID", req.ToStoreID)
	resp := dto.ToMovementResponse(&movement, lines)
	return &resp, nil
}

// ApproveTransfer completes a pending export note: it provisions every line
// at the destination store, flips the source note to completed and records
// the mirrored import note. The movement row lock plus the pending check make
// approval exactly-once; a second approval fails with ErrConflict and the
// destination is credited only once.
func (s *transferService) ApproveTransfer(ctx context.Context, movementID string, approverID string) (*dto.MovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	var imported domain.StockMovement
	var importLines []domain.StockMovementLine
	err := s.movementRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		movement, err := s.movementRepo.FindMovementByIDForUpdate(ctx, tx, movementID)
		if err != nil {
			return err
		}
		if movement.Status != domain.MovementPending {
			return fmt.Errorf("%w: movement %s is %s, expected pending", apperrors.ErrConflict, movementID, movement.Status)
		}
		if movement.ToStoreID == nil {
			return fmt.Errorf("%w: movement %s has no destination store", apperrors.ErrConflict, movementID)
		}

		lines, err := s.movementRepo.FindMovementLines(ctx, movementID)
		if err != nil {
			return err
		}

		for _, line := range sortedLines(lines) {
			if err := s.inventoryRepo.ProvisionStock(ctx, tx, *movement.ToStoreID, line.ProductID, line.Quantity, approverID, now); err != nil {
				return err
			}
		}

		if err := s.movementRepo.UpdateMovementStatus(ctx, tx, movementID, domain.MovementCompleted, approverID, now); err != nil {
			return err
		}

		imported = domain.StockMovement{
			MovementID:    uuid.NewString(),
			FromStoreID:   movement.FromStoreID,
			ToStoreID:     movement.ToStoreID,
			CreaterID:     approverID,
			TotalQuantity: movement.TotalQuantity,
			Status:        domain.MovementCompleted,
			Type:          domain.MovementImport,
			Note:          movement.Note,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     approverID,
				LastUpdatedAt: now,
				LastUpdatedBy: approverID,
			},
		}
		importLines = make([]domain.StockMovementLine, 0, len(lines))
		for _, line := range lines {
			importLines = append(importLines, domain.StockMovementLine{
				LineID:     uuid.NewString(),
				MovementID: imported.MovementID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
			})
		}
		return s.movementRepo.SaveMovement(ctx, tx, imported, importLines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock transfer approved", "movementID", movementID, "importMovementID", imported.MovementID)
	resp := dto.ToMovementResponse(&imported, importLines)
	return &resp, nil
}

// CancelTransfer releases the reserved quantities back to the source store
// and marks the pending note cancelled.
func (s *transferService) CancelTransfer(ctx context.Context, movementID string, userID string) (*dto.MovementResponse, error) {
	now := time.Now()

	var cancelled *domain.StockMovement
	var lines []domain.StockMovementLine
	err := s.movementRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		movement, err := s.movementRepo.FindMovementByIDForUpdate(ctx, tx, movementID)
		if err != nil {
			return err
		}
		if movement.Status != domain.MovementPending {
			return fmt.Errorf("%w: movement %s is %s, expected pending", apperrors.ErrConflict, movementID, movement.Status)
		}

		lines, err = s.movementRepo.FindMovementLines(ctx, movementID)
		if err != nil {
			return err
		}
		for _, line := range sortedLines(lines) {
			if err := s.inventoryRepo.ReleaseStock(ctx, tx, movement.FromStoreID, line.ProductID, line.Quantity, userID, now); err != nil {
				return err
			}
		}

		if err := s.movementRepo.UpdateMovementStatus(ctx, tx, movementID, domain.MovementCancelled, userID, now); err != nil {
			return err
		}
		movement.Status = domain.MovementCancelled
		cancelled = movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ToMovementResponse(cancelled, lines)
	return &resp, nil
}

// GetMovement reads a committed movement with its lines.
func (s *transferService) GetMovement(ctx context.Context, movementID string) (*dto.MovementResponse, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	lines, err := s.movementRepo.FindMovementLines(ctx, movementID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToMovementResponse(movement, lines)
	return &resp, nil
}

// sortedLines returns a copy ordered by product id, matching the inventory
// lock acquisition order used everywhere else.
func sortedLines(lines []domain.StockMovementLine) []domain.StockMovementLine {
	sorted := make([]domain.StockMovementLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })
	return sorted
}
