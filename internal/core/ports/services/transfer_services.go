package services

import (
	"context"

	"github.com/sellora/retail_backoffice_app/internal/dto"
)

// TransferSvcFacade is the two-phase inter-store stock transfer workflow.
type TransferSvcFacade interface {
	// CreateTransfer reserves stock at the source store and records a
	// pending export note. Insufficient stock aborts with nothing created.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, createrID string) (*dto.MovementResponse, error)

	// ApproveTransfer provisions every line at the destination store, flips
	// the export note to completed and records the mirrored import note.
	// Approving a non-pending movement returns apperrors.ErrConflict.
	ApproveTransfer(ctx context.Context, movementID string, approverID string) (*dto.MovementResponse, error)

	// CancelTransfer releases the reserved stock back to the source store.
	// Only pending movements can be cancelled.
	CancelTransfer(ctx context.Context, movementID string, userID string) (*dto.MovementResponse, error)

	GetMovement(ctx context.Context, movementID string) (*dto.MovementResponse, error)
}
