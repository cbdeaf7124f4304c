package services

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/insighthub/commerce-ledger/internal/dto"
)

// AccountSvcFacade covers the setup plumbing around the directory: creating
// accounts and binding roles to them. The reconciliation core only reads
// this configuration.
type AccountSvcFacade interface {
	// CreateAccount persists a new account for a business.
	CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpsertRoleMapping binds a role to an account code for a business. The
	// referenced account must exist.
	UpsertRoleMapping(ctx context.Context, businessID string, req dto.UpsertRoleMappingRequest, userID string) (*domain.AccountRoleMapping, error)

	// GetAccountByID retrieves one account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts for a business.
	ListAccounts(ctx context.Context, businessID string, limit, offset int) ([]domain.Account, error)
}
