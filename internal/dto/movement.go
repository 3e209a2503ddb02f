package dto

import (
	"time"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

// TransferItemRequest is one product of an inter-store transfer.
type TransferItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateTransferRequest starts a pending export note from one store to another.
type CreateTransferRequest struct {
	FromStoreID string                `json:"fromStoreID" binding:"required"`
	ToStoreID   string                `json:"toStoreID" binding:"required"`
	Note        string                `json:"note"`
	Items       []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// MovementLineResponse is one product of a stock movement.
type MovementLineResponse struct {
	ProductID string `json:"productID"`
	Quantity  int64  `json:"quantity"`
}

// MovementResponse is the movement snapshot returned by the transfer workflow.
type MovementResponse struct {
	MovementID    string                 `json:"movementID"`
	OrderID       *string                `json:"orderID,omitempty"`
	FromStoreID   string                 `json:"fromStoreID"`
	ToStoreID     *string                `json:"toStoreID,omitempty"`
	CreaterID     string                 `json:"createrID"`
	TotalQuantity int64                  `json:"totalQuantity"`
	Status        string                 `json:"status"`
	Type          string                 `json:"type"`
	Note          string                 `json:"note,omitempty"`
	Lines         []MovementLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToMovementResponse converts a movement and its lines to the response DTO.
func ToMovementResponse(m *domain.StockMovement, lines []domain.StockMovementLine) MovementResponse {
	resp := MovementResponse{
		MovementID:    m.MovementID,
		OrderID:       m.OrderID,
		FromStoreID:   m.FromStoreID,
		ToStoreID:     m.ToStoreID,
		CreaterID:     m.CreaterID,
		TotalQuantity: m.TotalQuantity,
		Status:        string(m.Status),
		Type:          string(m.Type),
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, MovementLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return resp
}
