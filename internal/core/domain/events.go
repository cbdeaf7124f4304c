package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The types below are consumed, not owned, by the reconciliation core. The
// surrounding commerce layer persists them before reconciliation; the core
// reads their committed fields only.

// Business is one tenant of the platform.
type Business struct {
	BusinessID string `json:"businessID"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Product carries the stock counter the Stock Ledger owns. Stock is mutated
// only through Stock Ledger operations and never observed below zero.
type Product struct {
	ProductID     string          `json:"productID"`
	BusinessID    string          `json:"businessID"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Stock         int64           `json:"stock"`
	LowStockAlert int64           `json:"lowStockAlert"`
	IsService     bool            `json:"isService"` // service products carry no stock
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// ProductVariant is an optional refinement of a product for movement audit
// purposes. The stock counter lives on the product row.
type ProductVariant struct {
	VariantID string `json:"variantID"`
	ProductID string `json:"productID"`
	Name      string `json:"name"`
	AuditFields
}

// Sale is a committed sales event awaiting reconciliation.
type Sale struct {
	SaleID        string          `json:"saleID"`
	BusinessID    string          `json:"businessID"`
	CustomerID    *string         `json:"customerID,omitempty"`
	SaleDate      time.Time       `json:"saleDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// SaleItem is one line of a sale. Price is a snapshot of the product price
// at the time of sale.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID"`
	SaleID     string          `json:"saleID"`
	ProductID  string          `json:"productID"`
	VariantID  *string         `json:"variantID,omitempty"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// Purchase is a committed supplier purchase awaiting reconciliation.
type Purchase struct {
	PurchaseID    string          `json:"purchaseID"`
	BusinessID    string          `json:"businessID"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// PurchaseItem is one line of a purchase.
type PurchaseItem struct {
	PurchaseItemID string          `json:"purchaseItemID"`
	PurchaseID     string          `json:"purchaseID"`
	ProductID      string          `json:"productID"`
	VariantID      *string         `json:"variantID,omitempty"`
	Quantity       int64           `json:"quantity"`
	CostPrice      decimal.Decimal `json:"costPrice"`
}

// Expense is a committed operating expense awaiting reconciliation.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	BusinessID    string          `json:"businessID"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}

// ReconcileResult is the outcome of a successful reconciliation: the posted
// (or previously posted) journal entry, the stock applications performed in
// the same transaction, and any shortfalls observed while applying them.
type ReconcileResult struct {
	Journal       JournalEntry       `json:"journal"`
	Applications  []StockApplication `json:"applications,omitempty"`
	Shortfalls    []Shortfall        `json:"shortfalls,omitempty"`
	AlreadyPosted bool               `json:"alreadyPosted"`
}

// EventReference builds the idempotency key tying a journal entry back to its
// commercial event, e.g. "sale_42".
func EventReference(kind, id string) string {
	return fmt.Sprintf("%s_%s", kind, id)
}
