package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	"github.com/insighthub/commerce-ledger/internal/models"
	"github.com/insighthub/commerce-ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for product stock and
// movement data.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepositoryWithTx {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepositoryWithTx = (*PgxStockRepository)(nil)

const productColumns = `product_id, business_id, sku, name, price, stock, low_stock_alert, is_service, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.BusinessID,
		&m.SKU,
		&m.Name,
		&m.Price,
		&m.Stock,
		&m.LowStockAlert,
		&m.IsService,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindProductByID retrieves a product without locking.
func (r *PgxStockRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}

	p := mapping.ToDomainProduct(*m)
	return &p, nil
}

// FindProductForUpdate selects the product row FOR UPDATE. The lock is held
// until the surrounding transaction ends, serializing concurrent stock
// applications on the same product.
func (r *PgxStockRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE;`

	m, err := scanProduct(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock product %s: %w", productID, classifyPgError(err))
	}

	p := mapping.ToDomainProduct(*m)
	return &p, nil
}

// UpdateProductStockInTx sets the stock counter of a locked product row.
func (r *PgxStockRepository) UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, stock int64, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET stock = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE product_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, productID, stock, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update stock for product %s: %w", productID, classifyPgError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}

// SaveStockMovementInTx inserts one append-only movement row. Movement rows
// are never updated or deleted.
func (r *PgxStockRepository) SaveStockMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)

	query := `
		INSERT INTO stock_movements (movement_id, product_id, variant_id, direction, quantity, reference, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.ProductID,
		m.VariantID,
		m.Direction,
		m.Quantity,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", m.MovementID, classifyPgError(err))
	}
	return nil
}

// FindMovementByReferenceInTx retrieves the movement recorded under an event
// reference within the transaction.
func (r *PgxStockRepository) FindMovementByReferenceInTx(ctx context.Context, tx pgx.Tx, reference string) (*domain.StockMovement, error) {
	query := `
		SELECT movement_id, product_id, variant_id, direction, quantity, reference, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE reference = $1;
	`
	var m models.StockMovement
	err := tx.QueryRow(ctx, query, reference).Scan(
		&m.MovementID,
		&m.ProductID,
		&m.VariantID,
		&m.Direction,
		&m.Quantity,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock movement by reference %s: %w", reference, classifyPgError(err))
	}

	movement := mapping.ToDomainStockMovement(m)
	return &movement, nil
}

// ListMovementsByProduct retrieves a paginated movement history for a
// product, most recent first.
func (r *PgxStockRepository) ListMovementsByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.StockMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT movement_id, product_id, variant_id, direction, quantity, reference, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, movement_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements for product %s: %w", productID, err)
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(
			&m.MovementID,
			&m.ProductID,
			&m.VariantID,
			&m.Direction,
			&m.Quantity,
			&m.Reference,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement row for product %s: %w", productID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement rows for product %s: %w", productID, err)
	}

	return mapping.ToDomainStockMovementSlice(movements), nil
}
