package dto

import (
	"time"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
)

// PostingRequest is the input to the journal posting engine. Reference is the
// idempotency key: a repeat post for the same (business, reference) returns
// the existing entry instead of double-posting.
type PostingRequest struct {
	BusinessID  string
	EntryDate   time.Time
	Description string
	Reference   string
	Lines       []domain.PostingLine
}

// ApplyStockRequest is the input to one stock ledger application.
type ApplyStockRequest struct {
	ProductID string
	VariantID *string
	Direction domain.MovementDirection
	Quantity  int64
	Reference string
}
