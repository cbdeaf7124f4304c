package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/insighthub/commerce-ledger/internal/middleware"
)

// reconcileHandler handles HTTP requests that trigger event reconciliation.
type reconcileHandler struct {
	reconcilerService portssvc.ReconcilerSvcFacade
}

// newReconcileHandler creates a new reconcileHandler.
func newReconcileHandler(reconcilerService portssvc.ReconcilerSvcFacade) *reconcileHandler {
	return &reconcileHandler{reconcilerService: reconcilerService}
}

// reconcileSale posts the journal entry for a committed sale and applies its
// stock movements in one transaction.
func (h *reconcileHandler) reconcileSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcileSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reconcilerService.ReconcileSale(
		c.Request.Context(),
		req.Sale.ToDomainSale(),
		dto.ToDomainSaleItems(req.Sale.SaleID, req.Items),
		userID,
	)
	if err != nil {
		respondServiceError(c, logger, err, "reconcile sale")
		return
	}

	logger.Info("Sale reconciled",
		slog.String("sale_id", req.Sale.SaleID),
		slog.String("journal_entry_id", result.Journal.JournalEntryID),
		slog.Bool("already_posted", result.AlreadyPosted),
		slog.Int("shortfalls", len(result.Shortfalls)),
	)
	c.JSON(http.StatusOK, result)
}

// reconcilePurchase posts the journal entry for a committed purchase and
// applies its stock movements in one transaction.
func (h *reconcileHandler) reconcilePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcilePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcilePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reconcilerService.ReconcilePurchase(
		c.Request.Context(),
		req.Purchase.ToDomainPurchase(),
		dto.ToDomainPurchaseItems(req.Purchase.PurchaseID, req.Items),
		userID,
	)
	if err != nil {
		respondServiceError(c, logger, err, "reconcile purchase")
		return
	}

	logger.Info("Purchase reconciled",
		slog.String("purchase_id", req.Purchase.PurchaseID),
		slog.String("journal_entry_id", result.Journal.JournalEntryID),
		slog.Bool("already_posted", result.AlreadyPosted),
	)
	c.JSON(http.StatusOK, result)
}

// reconcileExpense posts the journal entry for a committed expense.
func (h *reconcileHandler) reconcileExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcileExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reconcilerService.ReconcileExpense(c.Request.Context(), req.ToDomainExpense(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "reconcile expense")
		return
	}

	logger.Info("Expense reconciled",
		slog.String("expense_id", req.ExpenseID),
		slog.String("journal_entry_id", result.Journal.JournalEntryID),
		slog.Bool("already_posted", result.AlreadyPosted),
	)
	c.JSON(http.StatusOK, result)
}

// reconcileReturn reverses part of a sale line: a correcting journal entry
// plus an inbound stock movement.
func (h *reconcileHandler) reconcileReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReconcileReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcileReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.reconcilerService.ReconcileReturn(
		c.Request.Context(),
		req.Sale.ToDomainSale(),
		req.Item.ToDomainSaleItem(req.Sale.SaleID),
		req.Quantity,
		req.Reason,
		userID,
	)
	if err != nil {
		respondServiceError(c, logger, err, "reconcile return")
		return
	}

	logger.Info("Return reconciled",
		slog.String("sale_item_id", req.Item.SaleItemID),
		slog.Int64("quantity", req.Quantity),
	)
	c.JSON(http.StatusOK, gin.H{"movement": movement})
}
