package models

import "github.com/shopspring/decimal"

// StockMovement represents one append-only stock audit row.
type StockMovement struct {
	MovementID string  `db:"movement_id"`
	ProductID  string  `db:"product_id"`
	VariantID  *string `db:"variant_id"`
	Direction  string  `db:"direction"`
	Quantity   int64   `db:"quantity"`
	Reference  string  `db:"reference"`
	AuditFields
}

// Product represents the product row the stock ledger locks and updates.
type Product struct {
	ProductID     string          `db:"product_id"`
	BusinessID    string          `db:"business_id"`
	SKU           string          `db:"sku"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	Stock         int64           `db:"stock"`
	LowStockAlert int64           `db:"low_stock_alert"`
	IsService     bool            `db:"is_service"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
