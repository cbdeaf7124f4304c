package services

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// PostingSvcFacade is the journal posting engine. It validates the
// double-entry invariant and commits a journal entry with its ledger rows as
// one atomic unit inside the caller's transaction.
type PostingSvcFacade interface {
	// PostInTx posts a balanced entry, or returns the existing entry (with
	// existed=true) when the (business, reference) key was already posted.
	PostInTx(ctx context.Context, tx pgx.Tx, req dto.PostingRequest, userID string) (*domain.JournalEntry, bool, error)

	// GetJournalEntry returns a posted entry and its ledger rows.
	GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, []domain.LedgerEntry, error)

	// ListJournalEntries returns posted entries for a business, newest first.
	ListJournalEntries(ctx context.Context, businessID string, limit, offset int) ([]domain.JournalEntry, error)
}
