package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/core/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	businessID      string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on hand",
		AccountType: "ASSET",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.businessID, account.BusinessID)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpsertRoleMapping_Success() {
	ctx := context.Background()
	req := dto.UpsertRoleMappingRequest{Role: "cash", AccountCode: "1000"}
	account := &domain.Account{AccountID: uuid.NewString(), BusinessID: suite.businessID, Code: "1000", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.businessID, "1000").Return(account, nil).Once()
	suite.mockAccountRepo.On("UpsertRoleMapping", ctx, mock.AnythingOfType("domain.AccountRoleMapping")).Return(nil).Once()

	roleMapping, err := suite.service.UpsertRoleMapping(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleCash, roleMapping.Role)
	suite.Equal("1000", roleMapping.AccountCode)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpsertRoleMapping_UnknownRole() {
	ctx := context.Background()
	req := dto.UpsertRoleMappingRequest{Role: "slush_fund", AccountCode: "1000"}

	_, err := suite.service.UpsertRoleMapping(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpsertRoleMapping_AccountMissing() {
	ctx := context.Background()
	req := dto.UpsertRoleMappingRequest{Role: "cash", AccountCode: "9999"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.businessID, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpsertRoleMapping(ctx, suite.businessID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpsertRoleMapping", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
