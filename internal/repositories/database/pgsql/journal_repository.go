package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	"github.com/insighthub/commerce-ledger/internal/models"
	"github.com/insighthub/commerce-ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and
// ledger entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `journal_entry_id, business_id, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.BusinessID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
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

// SaveJournalEntryInTx inserts the journal entry and all its ledger rows as
// one atomic unit within the caller's transaction. Journal entries are never
// mutated after this insert; corrections are reversing entries.
func (r *PgxJournalRepository) SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.LedgerEntry) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (journal_entry_id, business_id, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.JournalEntryID,
		modelEntry.BusinessID,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		classified := classifyPgError(err)
		if errors.Is(classified, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: journal entry reference %s for business %s", apperrors.ErrDuplicate, modelEntry.Reference, modelEntry.BusinessID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.JournalEntryID, classified)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_entries (ledger_entry_id, journal_entry_id, account_id, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelLedgerEntry(line)
		batch.Queue(lineQuery,
			modelLine.LedgerEntryID,
			modelLine.JournalEntryID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute ledger entry batch for journal entry %s: %w", modelEntry.JournalEntryID, classifyPgError(err))
	}

	return nil
}

// FindJournalEntryByReferenceInTx looks up a previously posted entry by its
// (business, reference) idempotency key inside the caller's transaction.
func (r *PgxJournalRepository) FindJournalEntryByReferenceInTx(ctx context.Context, tx pgx.Tx, businessID, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE business_id = $1 AND reference = $2;`

	m, err := scanJournalEntry(tx.QueryRow(ctx, query, businessID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by reference %s for business %s: %w", reference, businessID, classifyPgError(err))
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindJournalEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", journalEntryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindLedgerEntriesByJournalID retrieves all ledger rows of a journal entry.
func (r *PgxJournalRepository) FindLedgerEntriesByJournalID(ctx context.Context, journalEntryID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ledger_entry_id, journal_entry_id, account_id, debit, credit, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE journal_entry_id = $1
		ORDER BY ledger_entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for journal entry %s: %w", journalEntryID, err)
	}
	defer rows.Close()

	lines := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.LedgerEntryID,
			&m.JournalEntryID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row for journal entry %s: %w", journalEntryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows for journal entry %s: %w", journalEntryID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(lines), nil
}

// ListJournalEntriesByBusiness retrieves journal entries for a business,
// most recent first.
func (r *PgxJournalRepository) ListJournalEntriesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE business_id = $1 ORDER BY entry_date DESC, created_at DESC LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for business %s: %w", businessID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row for business %s: %w", businessID, err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows for business %s: %w", businessID, err)
	}

	return entries, nil
}
