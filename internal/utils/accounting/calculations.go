package accounting

import (
	"fmt"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineSides sums the debit and credit sides of a set of posting lines.
func LineSides(lines []domain.PostingLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// ValidateLine checks a single posting line: amounts must be non-negative
// and exactly one of debit/credit nonzero (simple entries only).
func ValidateLine(l domain.PostingLine) error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("amounts must be non-negative for account %s: debit %s, credit %s",
			l.Account.AccountID, l.Debit.String(), l.Credit.String())
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("exactly one of debit/credit must be nonzero for account %s", l.Account.AccountID)
	}
	return nil
}

// ValidatePostingBalance checks that the lines of a posting are well formed
// and that total debits equal total credits at the configured money scale.
func ValidatePostingBalance(lines []domain.PostingLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("posting must have at least one line")
	}
	for _, l := range lines {
		if err := ValidateLine(l); err != nil {
			return err
		}
	}
	debits, credits := LineSides(lines)
	if !debits.Round(domain.MoneyScale).Equal(credits.Round(domain.MoneyScale)) {
		return fmt.Errorf("debits sum is %s and credits sum is %s", debits.String(), credits.String())
	}
	return nil
}

// SignedAmount applies the accounting convention sign to a ledger entry based
// on the account type. Used for balance reporting.
// DEBIT to ASSET/EXPENSE -> positive; CREDIT to ASSET/EXPENSE -> negative;
// DEBIT to LIABILITY/EQUITY/INCOME -> negative; CREDIT -> positive.
func SignedAmount(entry domain.LedgerEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	amount := entry.Debit.Sub(entry.Credit)
	switch accountType {
	case domain.Asset, domain.ExpenseAccount:
		return amount, nil
	case domain.Liability, domain.Equity, domain.Income:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, entry.AccountID)
	}
}
