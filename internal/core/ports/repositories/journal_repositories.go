package repositories

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalEntryByID retrieves a journal entry by its identifier.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindLedgerEntriesByJournalID retrieves the ledger rows of a journal
	// entry in insertion order.
	FindLedgerEntriesByJournalID(ctx context.Context, journalEntryID string) ([]domain.LedgerEntry, error)

	// ListJournalEntriesByBusiness retrieves a paginated list of journal
	// entries for a business, most recent first.
	ListJournalEntriesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.JournalEntry, error)
}

// JournalTransactionSupport defines the in-transaction posting operations.
// Both methods run inside the single per-event transaction owned by the
// reconciler so a failure at any later step rolls the posting back.
type JournalTransactionSupport interface {
	// FindJournalEntryByReferenceInTx looks up a previously posted entry for
	// the (business, reference) idempotency key. Returns apperrors.ErrNotFound
	// when no entry exists.
	FindJournalEntryByReferenceInTx(ctx context.Context, tx pgx.Tx, businessID, reference string) (*domain.JournalEntry, error)

	// SaveJournalEntryInTx inserts the journal entry and all its ledger rows
	// as one atomic unit. Returns apperrors.ErrDuplicate if the
	// (business, reference) key is already taken.
	SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.LedgerEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction
// capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
