package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
)

// lowStockObservation is one post-commit stock level to check against the
// product's alert threshold.
type lowStockObservation struct {
	ProductID  string
	StockAfter int64
}

// LowStockNotifier watches committed stock levels and logs an alert when a
// product drops to or below its configured threshold. Observations are
// dropped rather than ever blocking a reconciliation.
type LowStockNotifier struct {
	stockRepo portsrepo.StockReader
	logger    *slog.Logger
	ch        chan lowStockObservation
	done      chan struct{}
}

// NewLowStockNotifier creates a notifier with a bounded observation queue.
func NewLowStockNotifier(stockRepo portsrepo.StockReader, logger *slog.Logger) *LowStockNotifier {
	return &LowStockNotifier{
		stockRepo: stockRepo,
		logger:    logger,
		ch:        make(chan lowStockObservation, 256),
		done:      make(chan struct{}),
	}
}

// Start launches the worker goroutine. Call Stop to drain and shut it down.
func (n *LowStockNotifier) Start(ctx context.Context) {
	go func() {
		defer close(n.done)
		for {
			select {
			case obs, ok := <-n.ch:
				if !ok {
					return
				}
				n.check(ctx, obs)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop closes the queue and waits for the worker to finish.
func (n *LowStockNotifier) Stop() {
	close(n.ch)
	<-n.done
}

// Observe enqueues a committed stock level. Non-blocking: if the queue is
// full the observation is dropped and counted in the log.
func (n *LowStockNotifier) Observe(productID string, stockAfter int64) {
	select {
	case n.ch <- lowStockObservation{ProductID: productID, StockAfter: stockAfter}:
	default:
		n.logger.Warn("Low stock observation dropped, queue full", slog.String("product_id", productID))
	}
}

func (n *LowStockNotifier) check(ctx context.Context, obs lowStockObservation) {
	product, err := n.stockRepo.FindProductByID(ctx, obs.ProductID)
	if err != nil {
		n.logger.Error("Failed to load product for low stock check",
			slog.String("product_id", obs.ProductID),
			slog.String("error", err.Error()),
		)
		return
	}
	if product.LowStockAlert <= 0 || obs.StockAfter > product.LowStockAlert {
		return
	}
	n.logger.Warn("Product stock at or below alert threshold",
		slog.String("product_id", product.ProductID),
		slog.String("sku", product.SKU),
		slog.Int64("stock", obs.StockAfter),
		slog.Int64("threshold", product.LowStockAlert),
	)
}
