package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/insighthub/commerce-ledger/internal/middleware"
	"github.com/insighthub/commerce-ledger/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
)

var (
	ErrPostingNoLines     = errors.New("posting must have at least one line")
	ErrReferenceMissing   = errors.New("posting reference is required")
	ErrDescriptionMissing = errors.New("posting description is required")
)

// postingService is the journal posting engine. Entries are immutable once
// committed; a repeat post for the same (business, reference) returns the
// existing entry instead of double-posting.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewPostingService creates a new journal posting engine.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{journalRepo: journalRepo}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostInTx validates and posts a balanced entry inside the caller's
// transaction. The bool result reports whether the entry already existed.
func (s *postingService) PostInTx(ctx context.Context, tx pgx.Tx, req dto.PostingRequest, userID string) (*domain.JournalEntry, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, false, ErrPostingNoLines
	}
	if req.Reference == "" {
		return nil, false, ErrReferenceMissing
	}
	if req.Description == "" {
		return nil, false, ErrDescriptionMissing
	}
	for _, line := range req.Lines {
		if line.Account.BusinessID != req.BusinessID {
			return nil, false, fmt.Errorf("%w: account %s belongs to business %s, posting is for %s",
				apperrors.ErrValidation, line.Account.AccountID, line.Account.BusinessID, req.BusinessID)
		}
	}

	// An unbalanced posting is a programming error in the caller, never a
	// user input problem. Log loudly and refuse.
	if err := accounting.ValidatePostingBalance(req.Lines); err != nil {
		logger.Error("Unbalanced posting rejected",
			slog.String("business_id", req.BusinessID),
			slog.String("reference", req.Reference),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("%w: %v", apperrors.ErrUnbalanced, err)
	}

	// Idempotency check: the triggering layer may fire more than once for
	// the same event.
	existing, err := s.journalRepo.FindJournalEntryByReferenceInTx(ctx, tx, req.BusinessID, req.Reference)
	if err == nil {
		logger.Info("Journal entry already posted, returning existing",
			slog.String("reference", req.Reference),
			slog.String("journal_entry_id", existing.JournalEntryID),
		)
		return existing, true, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		BusinessID:     req.BusinessID,
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		Reference:      req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	lines := make([]domain.LedgerEntry, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = domain.LedgerEntry{
			LedgerEntryID:  uuid.NewString(),
			JournalEntryID: entry.JournalEntryID,
			AccountID:      line.Account.AccountID,
			Debit:          line.Debit.Round(domain.MoneyScale),
			Credit:         line.Credit.Round(domain.MoneyScale),
			AuditFields:    entry.AuditFields,
		}
	}

	if err := s.journalRepo.SaveJournalEntryInTx(ctx, tx, entry, lines); err != nil {
		// A duplicate here means another transaction posted the same
		// reference between our check and our insert. Surface it as a
		// retryable conflict; the retry will hit the idempotency path.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, false, fmt.Errorf("%w: reference %s", apperrors.ErrConcurrencyConflict, req.Reference)
		}
		return nil, false, err
	}

	return &entry, false, nil
}

// GetJournalEntry returns a posted entry and its ledger rows.
func (s *postingService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, []domain.LedgerEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.journalRepo.FindLedgerEntriesByJournalID(ctx, journalEntryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, lines, nil
}

// ListJournalEntries returns posted entries for a business, newest first.
func (s *postingService) ListJournalEntries(ctx context.Context, businessID string, limit, offset int) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListJournalEntriesByBusiness(ctx, businessID, limit, offset)
}
