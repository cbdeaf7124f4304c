package repositories

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a business.
	FindAccountByCode(ctx context.Context, businessID, code string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for a business.
	ListAccounts(ctx context.Context, businessID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account and mapping setup.
// Accounts are configuration data; the reconciliation core never calls these.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpsertRoleMapping creates or replaces the role mapping for a
	// (business, role) pair.
	UpsertRoleMapping(ctx context.Context, mapping domain.AccountRoleMapping) error
}

// DirectorySupport defines the in-transaction resolution reads used by the
// account directory. Resolution runs inside the event transaction so the
// mapping read and the posting write see the same snapshot.
type DirectorySupport interface {
	// FindAccountsByRoleInTx returns every active account mapped to the role
	// for the business, in deterministic order. Zero or multiple results are
	// interpreted by the directory service.
	FindAccountsByRoleInTx(ctx context.Context, tx pgx.Tx, businessID string, role domain.AccountRole) ([]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	DirectorySupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction
// capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
