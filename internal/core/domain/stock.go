package domain

// MovementDirection tags a stock movement as an inflow or outflow.
type MovementDirection string

const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// Opposite returns the reversing direction for a movement.
func (d MovementDirection) Opposite() MovementDirection {
	if d == MovementIn {
		return MovementOut
	}
	return MovementIn
}

// StockMovement is one append-only audit row for a product quantity change.
// It records the full requested quantity even when the stock counter was
// clamped at zero; the discrepancy is reported separately as a Shortfall.
type StockMovement struct {
	MovementID string            `json:"movementID"` // Primary key (UUID)
	ProductID  string            `json:"productID"`
	VariantID  *string           `json:"variantID,omitempty"`
	Direction  MovementDirection `json:"direction"`
	Quantity   int64             `json:"quantity"`  // always the requested quantity, > 0
	Reference  string            `json:"reference"` // originating event/line item
	AuditFields
}

// Shortfall reports an outbound movement that requested more stock than was
// available. The stock counter is clamped at zero and the reconciliation
// still succeeds; the shortfall is business data, not an error.
type Shortfall struct {
	ProductID string `json:"productID"`
	Requested int64  `json:"requested"`
	Applied   int64  `json:"applied"`
}

// None reports whether the movement was fully covered by available stock.
func (s Shortfall) None() bool {
	return s.Requested == s.Applied
}

// StockApplication is the outcome of one Stock Ledger apply: the audit row
// plus the shortfall (if any) and the stock level after commit.
type StockApplication struct {
	Movement   StockMovement `json:"movement"`
	Shortfall  *Shortfall    `json:"shortfall,omitempty"`
	StockAfter int64         `json:"stockAfter"`
}
