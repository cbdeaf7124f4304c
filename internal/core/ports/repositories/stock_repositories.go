package repositories

import (
	"context"
	"time"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StockReader defines read operations for products and movement history.
type StockReader interface {
	// FindProductByID retrieves a product by its identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListMovementsByProduct retrieves a paginated movement history for a
	// product, most recent first.
	ListMovementsByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.StockMovement, error)
}

// StockTransactionSupport defines the in-transaction read-modify-write cycle
// for the stock counter. FindProductForUpdate takes the row lock that
// serializes concurrent applications per product.
type StockTransactionSupport interface {
	// FindProductForUpdate selects the product row and locks it for update
	// within the transaction.
	FindProductForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error)

	// UpdateProductStockInTx sets the stock counter of a locked product row.
	UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, stock int64, userID string, now time.Time) error

	// SaveStockMovementInTx inserts one append-only movement row.
	SaveStockMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error

	// FindMovementByReferenceInTx retrieves the movement recorded under an
	// event reference, if any.
	FindMovementByReferenceInTx(ctx context.Context, tx pgx.Tx, reference string) (*domain.StockMovement, error)
}

// StockRepositoryFacade combines all stock-related repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockTransactionSupport
}

// StockRepositoryWithTx extends StockRepositoryFacade with transaction
// capabilities.
type StockRepositoryWithTx interface {
	StockRepositoryFacade
	TransactionManager
}
