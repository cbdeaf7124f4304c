package services

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// StockSvcFacade is the stock ledger. Applications are serialized per product
// by a row lock held for the duration of the read-modify-write; outbound
// movements clamp the counter at zero and report the shortfall instead of
// failing.
type StockSvcFacade interface {
	// ApplyInTx applies one movement inside the caller's transaction.
	ApplyInTx(ctx context.Context, tx pgx.Tx, req dto.ApplyStockRequest, userID string) (*domain.StockApplication, error)

	// GetProduct returns the product with its current stock level.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListMovements returns the movement history for a product, newest first.
	ListMovements(ctx context.Context, productID string, limit, offset int) ([]domain.StockMovement, error)
}
