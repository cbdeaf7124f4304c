package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single, balanced financial event. It is created
// exactly once per triggering commercial event and never mutated afterwards;
// corrections are reversing entries.
type JournalEntry struct {
	JournalEntryID string    `json:"journalEntryID"` // Primary key (UUID)
	BusinessID     string    `json:"businessID"`
	EntryDate      time.Time `json:"entryDate"`
	Description    string    `json:"description"`
	Reference      string    `json:"reference"` // event kind + id, e.g. "sale_42"; unique per business
	AuditFields
}

// LedgerEntry is one row of a journal entry, affecting exactly one account.
// Exactly one of Debit and Credit is nonzero, both are >= 0, and the rows of
// a journal entry sum to equal total debits and total credits.
type LedgerEntry struct {
	LedgerEntryID  string          `json:"ledgerEntryID"` // Primary key (UUID)
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	AuditFields
}

// PostingLine is the account/amount triple a caller hands to the posting
// engine before ledger entry rows exist.
type PostingLine struct {
	Account Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TotalDebits sums the debit side of a set of ledger entries.
func TotalDebits(entries []LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Debit)
	}
	return sum
}

// TotalCredits sums the credit side of a set of ledger entries.
func TotalCredits(entries []LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Credit)
	}
	return sum
}
