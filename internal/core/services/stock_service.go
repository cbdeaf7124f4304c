package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/insighthub/commerce-ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// stockService is the stock ledger. The product row lock taken by
// FindProductForUpdate serializes concurrent applications per product, so no
// two reconciliations compute stock deltas from the same stale read.
type stockService struct {
	stockRepo portsrepo.StockRepositoryFacade
}

// NewStockService creates a new stock ledger service.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// ApplyInTx applies one movement inside the caller's transaction. Outbound
// movements that exceed available stock clamp the counter at zero and report
// the shortfall on the application; the movement row records the full
// requested quantity either way. Service products carry no stock: the
// application is skipped and a nil application is returned.
func (s *stockService) ApplyInTx(ctx context.Context, tx pgx.Tx, req dto.ApplyStockRequest, userID string) (*domain.StockApplication, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: movement quantity must be positive, got %d", apperrors.ErrValidation, req.Quantity)
	}
	if req.Direction != domain.MovementIn && req.Direction != domain.MovementOut {
		return nil, fmt.Errorf("%w: unknown movement direction %q", apperrors.ErrValidation, req.Direction)
	}

	product, err := s.stockRepo.FindProductForUpdate(ctx, tx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %s for stock application: %w", req.ProductID, err)
	}
	if product.IsService {
		return nil, nil
	}

	applied := req.Quantity
	newStock := product.Stock
	switch req.Direction {
	case domain.MovementIn:
		newStock = product.Stock + req.Quantity
	case domain.MovementOut:
		// Never go negative: clamp at zero and flag the shortfall. The
		// movement row still records the full requested quantity so the
		// discrepancy stays observable.
		if req.Quantity > product.Stock {
			applied = product.Stock
		}
		newStock = product.Stock - applied
	}

	now := time.Now().UTC()
	if err := s.stockRepo.UpdateProductStockInTx(ctx, tx, req.ProductID, newStock, userID, now); err != nil {
		return nil, err
	}

	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		ProductID:  req.ProductID,
		VariantID:  req.VariantID,
		Direction:  req.Direction,
		Quantity:   req.Quantity,
		Reference:  req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.stockRepo.SaveStockMovementInTx(ctx, tx, movement); err != nil {
		return nil, err
	}

	application := &domain.StockApplication{
		Movement:   movement,
		StockAfter: newStock,
	}
	if applied < req.Quantity {
		application.Shortfall = &domain.Shortfall{
			ProductID: req.ProductID,
			Requested: req.Quantity,
			Applied:   applied,
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Stock shortfall on outbound movement",
			slog.String("product_id", req.ProductID),
			slog.Int64("requested", req.Quantity),
			slog.Int64("applied", applied),
			slog.String("reference", req.Reference),
		)
	}

	return application, nil
}

// GetProduct returns the product with its current stock level.
func (s *stockService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.stockRepo.FindProductByID(ctx, productID)
}

// ListMovements returns the movement history for a product, newest first.
func (s *stockService) ListMovements(ctx context.Context, productID string, limit, offset int) ([]domain.StockMovement, error) {
	return s.stockRepo.ListMovementsByProduct(ctx, productID, limit, offset)
}
