package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for receipt notes and the aggregate totals.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	createrID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", createrID), slog.String("entry_type", string(req.Type)))

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), req, createrID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to create ledger entry")
		return
	}

	logger.Info("Ledger entry created successfully", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("entry_id", entryID), slog.String("user_id", userID))

	if err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, userID); err != nil {
		respondWithServiceError(c, logger, err, "Failed to reverse ledger entry")
		return
	}

	logger.Info("Ledger entry reversed successfully")
	c.JSON(http.StatusOK, gin.H{"entryID": entryID, "status": "cancelled"})
}

func (h *ledgerHandler) getAggregate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	aggregate, err := h.ledgerService.GetAggregate(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to retrieve aggregate ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToAggregateLedgerResponse(aggregate))
}

func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	storeID := c.Param("storeID")

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), storeID, params)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to list ledger entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

// registerLedgerRoutes registers receipt-note and aggregate-ledger routes
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	ledgerHandler := newLedgerHandler(ledgerService)

	ledger := group.Group("/ledger")
	{
		ledger.POST("/entries", ledgerHandler.createEntry)
		ledger.POST("/entries/:entryID/reverse", ledgerHandler.reverseEntry)
		ledger.GET("/aggregate", ledgerHandler.getAggregate)
		ledger.GET("/stores/:storeID/entries", ledgerHandler.listEntries)
	}
}
