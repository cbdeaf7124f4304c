package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
)

// respondServiceError translates a service error into the HTTP status the
// caller can act on. Configuration problems are 422 so operators can tell
// them apart from bad request payloads; conflicts and duplicates are 409 and
// safe to retry thanks to idempotent references; a blown transaction budget
// is 504.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case apperrors.IsConfigurationError(err):
		logger.Warn("Account configuration error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		logger.Warn("Concurrency conflict, caller may retry", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent modification detected, please retry"})
	case errors.Is(err, apperrors.ErrTimeout):
		logger.Error("Reconciliation timed out", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Operation timed out and was rolled back"})
	default:
		logger.Error("Unexpected service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
