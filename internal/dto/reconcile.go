package dto

import (
	"time"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleData mirrors the committed sale record the commerce layer hands to the
// reconciler. The sale itself is persisted elsewhere; this is read-only input.
type SaleData struct {
	SaleID        string          `json:"saleID" binding:"required"`
	BusinessID    string          `json:"businessID" binding:"required"`
	CustomerID    *string         `json:"customerID,omitempty"`
	SaleDate      time.Time       `json:"saleDate" binding:"required"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash card online"`
}

// SaleItemData is one committed sale line.
type SaleItemData struct {
	SaleItemID string          `json:"saleItemID" binding:"required"`
	ProductID  string          `json:"productID" binding:"required"`
	VariantID  *string         `json:"variantID,omitempty"`
	Quantity   int64           `json:"quantity" binding:"required,gt=0"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// ReconcileSaleRequest triggers reconciliation of one sale event.
type ReconcileSaleRequest struct {
	Sale  SaleData       `json:"sale" binding:"required"`
	Items []SaleItemData `json:"items" binding:"required,min=1,dive"`
}

// PurchaseData mirrors the committed purchase record.
type PurchaseData struct {
	PurchaseID    string          `json:"purchaseID" binding:"required"`
	BusinessID    string          `json:"businessID" binding:"required"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	PurchaseDate  time.Time       `json:"purchaseDate" binding:"required"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash online credit"`
}

// PurchaseItemData is one committed purchase line.
type PurchaseItemData struct {
	PurchaseItemID string          `json:"purchaseItemID" binding:"required"`
	ProductID      string          `json:"productID" binding:"required"`
	VariantID      *string         `json:"variantID,omitempty"`
	Quantity       int64           `json:"quantity" binding:"required,gt=0"`
	CostPrice      decimal.Decimal `json:"costPrice" binding:"required"`
}

// ReconcilePurchaseRequest triggers reconciliation of one purchase event.
type ReconcilePurchaseRequest struct {
	Purchase PurchaseData       `json:"purchase" binding:"required"`
	Items    []PurchaseItemData `json:"items" binding:"required,min=1,dive"`
}

// ReconcileExpenseRequest triggers reconciliation of one expense event.
type ReconcileExpenseRequest struct {
	ExpenseID     string          `json:"expenseID" binding:"required"`
	BusinessID    string          `json:"businessID" binding:"required"`
	ExpenseDate   time.Time       `json:"expenseDate" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash card online"`
}

// ReconcileReturnRequest triggers reconciliation of a partial or full return
// of one sale line.
type ReconcileReturnRequest struct {
	Sale     SaleData     `json:"sale" binding:"required"`
	Item     SaleItemData `json:"item" binding:"required"`
	Quantity int64        `json:"quantity" binding:"required,gt=0"`
	Reason   string       `json:"reason"`
}

// ToDomainSale converts request data to the domain sale the core consumes.
func (s SaleData) ToDomainSale() domain.Sale {
	return domain.Sale{
		SaleID:        s.SaleID,
		BusinessID:    s.BusinessID,
		CustomerID:    s.CustomerID,
		SaleDate:      s.SaleDate,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: domain.PaymentMethod(s.PaymentMethod),
	}
}

// ToDomainSaleItems converts request items to domain sale items.
func ToDomainSaleItems(saleID string, items []SaleItemData) []domain.SaleItem {
	out := make([]domain.SaleItem, len(items))
	for i, it := range items {
		out[i] = domain.SaleItem{
			SaleItemID: it.SaleItemID,
			SaleID:     saleID,
			ProductID:  it.ProductID,
			VariantID:  it.VariantID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Subtotal:   it.Subtotal,
		}
	}
	return out
}

// ToDomainPurchase converts request data to the domain purchase.
func (p PurchaseData) ToDomainPurchase() domain.Purchase {
	return domain.Purchase{
		PurchaseID:    p.PurchaseID,
		BusinessID:    p.BusinessID,
		SupplierID:    p.SupplierID,
		PurchaseDate:  p.PurchaseDate,
		TotalAmount:   p.TotalAmount,
		PaymentMethod: domain.PaymentMethod(p.PaymentMethod),
	}
}

// ToDomainPurchaseItems converts request items to domain purchase items.
func ToDomainPurchaseItems(purchaseID string, items []PurchaseItemData) []domain.PurchaseItem {
	out := make([]domain.PurchaseItem, len(items))
	for i, it := range items {
		out[i] = domain.PurchaseItem{
			PurchaseItemID: it.PurchaseItemID,
			PurchaseID:     purchaseID,
			ProductID:      it.ProductID,
			VariantID:      it.VariantID,
			Quantity:       it.Quantity,
			CostPrice:      it.CostPrice,
		}
	}
	return out
}

// ToDomainExpense converts the request to the domain expense.
func (r ReconcileExpenseRequest) ToDomainExpense() domain.Expense {
	return domain.Expense{
		ExpenseID:     r.ExpenseID,
		BusinessID:    r.BusinessID,
		ExpenseDate:   r.ExpenseDate,
		Amount:        r.Amount,
		Category:      r.Category,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

// ToDomainSaleItem converts a single item for the return flow.
func (it SaleItemData) ToDomainSaleItem(saleID string) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID: it.SaleItemID,
		SaleID:     saleID,
		ProductID:  it.ProductID,
		VariantID:  it.VariantID,
		Quantity:   it.Quantity,
		Price:      it.Price,
		Subtotal:   it.Subtotal,
	}
}
