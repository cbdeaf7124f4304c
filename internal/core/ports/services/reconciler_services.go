package services

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
)

// ReconcilerSvcFacade is the orchestrator invoked once per commercial event.
// Every method runs exactly one transaction spanning account resolution,
// journal posting and all stock applications; any failure rolls back the
// whole event. There are no internal retries — callers retry using the
// idempotent event reference.
type ReconcilerSvcFacade interface {
	ReconcileSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, userID string) (*domain.ReconcileResult, error)
	ReconcilePurchase(ctx context.Context, purchase domain.Purchase, items []domain.PurchaseItem, userID string) (*domain.ReconcileResult, error)
	ReconcileExpense(ctx context.Context, expense domain.Expense, userID string) (*domain.ReconcileResult, error)
	ReconcileReturn(ctx context.Context, sale domain.Sale, item domain.SaleItem, quantity int64, reason string, userID string) (*domain.StockMovement, error)
}
