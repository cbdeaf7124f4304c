package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry row. Reference is unique per
// business and carries the idempotency key for posting.
type JournalEntry struct {
	JournalEntryID string    `db:"journal_entry_id"`
	BusinessID     string    `db:"business_id"`
	EntryDate      time.Time `db:"entry_date"`
	Description    string    `db:"description"`
	Reference      string    `db:"reference"`
	AuditFields
}

// LedgerEntry represents one debit/credit line of a journal entry.
type LedgerEntry struct {
	LedgerEntryID  string          `db:"ledger_entry_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	AuditFields
}
