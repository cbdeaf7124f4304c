package services

import (
	"context"
	"fmt"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// directoryService resolves semantic account roles to concrete accounts.
// The mapping table is configuration data owned outside the core; the
// directory treats it as authoritative and total.
type directoryService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewDirectoryService creates a new account directory.
func NewDirectoryService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.DirectorySvcFacade {
	return &directoryService{accountRepo: accountRepo}
}

var _ portssvc.DirectorySvcFacade = (*directoryService)(nil)

// ResolveInTx resolves one role for a business inside the caller's
// transaction. Exactly one active account must match.
func (s *directoryService) ResolveInTx(ctx context.Context, tx pgx.Tx, businessID string, role domain.AccountRole) (*domain.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown account role %q", apperrors.ErrValidation, role)
	}

	accounts, err := s.accountRepo.FindAccountsByRoleInTx(ctx, tx, businessID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role %s for business %s: %w", role, businessID, err)
	}

	switch len(accounts) {
	case 0:
		return nil, &apperrors.AccountNotConfiguredError{BusinessID: businessID, Role: string(role)}
	case 1:
		return &accounts[0], nil
	default:
		return nil, &apperrors.AmbiguousAccountError{BusinessID: businessID, Role: string(role), Matches: len(accounts)}
	}
}

// ResolveManyInTx resolves every role an event needs. The first
// unresolvable role fails the whole resolution, before any mutation.
func (s *directoryService) ResolveManyInTx(ctx context.Context, tx pgx.Tx, businessID string, roles []domain.AccountRole) (map[domain.AccountRole]domain.Account, error) {
	resolved := make(map[domain.AccountRole]domain.Account, len(roles))
	for _, role := range roles {
		if _, ok := resolved[role]; ok {
			continue
		}
		account, err := s.ResolveInTx(ctx, tx, businessID, role)
		if err != nil {
			return nil, err
		}
		resolved[role] = *account
	}
	return resolved, nil
}
