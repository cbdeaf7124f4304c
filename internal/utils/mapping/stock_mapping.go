package mapping

import (
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/insighthub/commerce-ledger/internal/models"
)

// ToModelStockMovement converts a domain StockMovement to its model form.
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID:  d.MovementID,
		ProductID:   d.ProductID,
		VariantID:   d.VariantID,
		Direction:   string(d.Direction),
		Quantity:    d.Quantity,
		Reference:   d.Reference,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockMovement converts a model StockMovement to its domain form.
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID:  m.MovementID,
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		Direction:   domain.MovementDirection(m.Direction),
		Quantity:    m.Quantity,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockMovementSlice converts a slice of model StockMovements.
func ToDomainStockMovementSlice(ms []models.StockMovement) []domain.StockMovement {
	ds := make([]domain.StockMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockMovement(m)
	}
	return ds
}

// ToDomainProduct converts a model Product to its domain form.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:     m.ProductID,
		BusinessID:    m.BusinessID,
		SKU:           m.SKU,
		Name:          m.Name,
		Price:         m.Price,
		Stock:         m.Stock,
		LowStockAlert: m.LowStockAlert,
		IsService:     m.IsService,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
