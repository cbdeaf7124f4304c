package mapping

import (
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/insighthub/commerce-ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		BusinessID:     d.BusinessID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      d.Reference,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		BusinessID:     m.BusinessID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		Reference:      m.Reference,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID:  d.LedgerEntryID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:  m.LedgerEntryID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
