package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

// transferHandler handles HTTP requests for inter-store stock transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: transferService}
}

func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	createrID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", createrID),
		slog.String("from_store_id", req.FromStoreID),
		slog.String("to_store_id", req.ToStoreID),
	)

	movement, err := h.transferService.CreateTransfer(c.Request.Context(), req, createrID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to create transfer")
		return
	}

	logger.Info("Transfer created successfully", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, movement)
}

func (h *transferHandler) approveTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("movement_id", movementID), slog.String("approver_id", approverID))

	movement, err := h.transferService.ApproveTransfer(c.Request.Context(), movementID, approverID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to approve transfer")
		return
	}

	logger.Info("Transfer approved successfully")
	c.JSON(http.StatusOK, movement)
}

func (h *transferHandler) cancelTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("movement_id", movementID), slog.String("user_id", userID))

	movement, err := h.transferService.CancelTransfer(c.Request.Context(), movementID, userID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to cancel transfer")
		return
	}

	logger.Info("Transfer cancelled successfully")
	c.JSON(http.StatusOK, movement)
}

func (h *transferHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("movementID")

	movement, err := h.transferService.GetMovement(c.Request.Context(), movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Movement not found", slog.String("movement_id", movementID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
			return
		}
		logger.Error("Failed to get movement from service", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement"})
		return
	}

	c.JSON(http.StatusOK, movement)
}

// registerTransferRoutes registers stock-transfer routes
func registerTransferRoutes(group *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	transferHandler := newTransferHandler(transferService)

	transfers := group.Group("/transfers")
	{
		transfers.POST("", transferHandler.createTransfer)
		transfers.GET("/:movementID", transferHandler.getMovement)
		transfers.POST("/:movementID/approve", transferHandler.approveTransfer)
		transfers.POST("/:movementID/cancel", transferHandler.cancelTransfer)
	}
}
