package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
)

// respondWithServiceError maps the service layer's sentinel errors onto HTTP
// statuses. Infra failures fall through to the generic message so internal
// detail never leaks to the client.
func respondWithServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("State conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		logger.Warn("Insufficient stock", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrOverpayment):
		logger.Warn("Overpayment rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrContention):
		logger.Warn("Row contention, client should retry", slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Resource is busy, please retry"})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			logger.Error(fallbackMsg, slog.String("error", appErr.Error()), slog.Int("code", appErr.Code))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
