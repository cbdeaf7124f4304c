package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
)

// accountService covers the setup plumbing for accounts and role mappings.
// The reconciliation core never creates accounts at runtime.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account setup service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account for a business.
func (s *accountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  businessID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: domain.AccountType(req.AccountType),
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpsertRoleMapping binds a role to an account code for a business. The
// referenced account must already exist.
func (s *accountService) UpsertRoleMapping(ctx context.Context, businessID string, req dto.UpsertRoleMappingRequest, userID string) (*domain.AccountRoleMapping, error) {
	role := domain.AccountRole(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown account role %q", apperrors.ErrValidation, req.Role)
	}

	if _, err := s.accountRepo.FindAccountByCode(ctx, businessID, req.AccountCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account code %s does not exist in business %s", apperrors.ErrValidation, req.AccountCode, businessID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	roleMapping := domain.AccountRoleMapping{
		MappingID:   uuid.NewString(),
		BusinessID:  businessID,
		Role:        role,
		AccountCode: req.AccountCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.UpsertRoleMapping(ctx, roleMapping); err != nil {
		return nil, err
	}
	return &roleMapping, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves accounts for a business.
func (s *accountService) ListAccounts(ctx context.Context, businessID string, limit, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, businessID, limit, offset)
}
