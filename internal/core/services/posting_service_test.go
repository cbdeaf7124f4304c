package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/core/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	service         portssvc.PostingSvcFacade
	businessID      string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewPostingService(suite.mockJournalRepo)
	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  suite.businessID,
		Code:        "cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BusinessID:  suite.businessID,
		Code:        "sales_revenue",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *PostingServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.PostingRequest {
	return dto.PostingRequest{
		BusinessID:  suite.businessID,
		EntryDate:   time.Now().UTC(),
		Description: "Sale of goods",
		Reference:   "sale_" + uuid.NewString(),
		Lines: []domain.PostingLine{
			{Account: suite.cashAccount, Debit: amount},
			{Account: suite.revenueAccount, Credit: amount},
		},
	}
}

func (suite *PostingServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromFloat(59.97))

	suite.mockJournalRepo.On("FindJournalEntryByReferenceInTx", ctx, nil, suite.businessID, req.Reference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("SaveJournalEntryInTx", ctx, nil, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(nil).Once()

	entry, existed, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(existed)
	suite.NotEmpty(entry.JournalEntryID)
	suite.Equal(suite.businessID, entry.BusinessID)
	suite.Equal(req.Reference, entry.Reference)
	suite.Equal(suite.userID, entry.CreatedBy)

	savedLines := suite.mockJournalRepo.Calls[1].Arguments.Get(3).([]domain.LedgerEntry)
	suite.Require().Len(savedLines, 2)
	suite.True(domain.TotalDebits(savedLines).Equal(domain.TotalCredits(savedLines)))
	suite.True(savedLines[0].Debit.Equal(decimal.NewFromFloat(59.97)))
	suite.Equal(suite.cashAccount.AccountID, savedLines[0].AccountID)
	suite.Equal(suite.revenueAccount.AccountID, savedLines[1].AccountID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPost_Unbalanced() {
	ctx := context.Background()
	req := dto.PostingRequest{
		BusinessID:  suite.businessID,
		EntryDate:   time.Now().UTC(),
		Description: "Broken posting",
		Reference:   "sale_broken",
		Lines: []domain.PostingLine{
			{Account: suite.cashAccount, Debit: decimal.NewFromInt(100)},
			{Account: suite.revenueAccount, Credit: decimal.NewFromInt(90)},
		},
	}

	_, _, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_AlreadyPosted() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(25))
	existing := &domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		BusinessID:     suite.businessID,
		Reference:      req.Reference,
	}

	suite.mockJournalRepo.On("FindJournalEntryByReferenceInTx", ctx, nil, suite.businessID, req.Reference).
		Return(existing, nil).Once()

	entry, existed, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(existed)
	suite.Equal(existing.JournalEntryID, entry.JournalEntryID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_DuplicateRaceBecomesConflict() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(10))

	suite.mockJournalRepo.On("FindJournalEntryByReferenceInTx", ctx, nil, suite.businessID, req.Reference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("SaveJournalEntryInTx", ctx, nil, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(apperrors.ErrDuplicate).Once()

	_, _, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrencyConflict)
}

func (suite *PostingServiceTestSuite) TestPost_NoLines() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(10))
	req.Lines = nil

	_, _, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPostingNoLines)
}

func (suite *PostingServiceTestSuite) TestPost_MissingReference() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(10))
	req.Reference = ""

	_, _, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReferenceMissing)
}

func (suite *PostingServiceTestSuite) TestPost_ForeignBusinessAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(10))
	req.Lines[1].Account.BusinessID = uuid.NewString()

	_, _, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalEntryByReferenceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPost_RoundsAmountsToMoneyScale() {
	ctx := context.Background()
	amount := decimal.RequireFromString("19.999")
	req := dto.PostingRequest{
		BusinessID:  suite.businessID,
		EntryDate:   time.Now().UTC(),
		Description: "Rounding check",
		Reference:   "sale_rounding",
		Lines: []domain.PostingLine{
			{Account: suite.cashAccount, Debit: amount},
			{Account: suite.revenueAccount, Credit: amount},
		},
	}

	suite.mockJournalRepo.On("FindJournalEntryByReferenceInTx", ctx, nil, suite.businessID, req.Reference).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("SaveJournalEntryInTx", ctx, nil, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.LedgerEntry")).
		Return(nil).Once()

	_, _, err := suite.service.PostInTx(ctx, nil, req, suite.userID)

	suite.Require().NoError(err)
	savedLines := suite.mockJournalRepo.Calls[1].Arguments.Get(3).([]domain.LedgerEntry)
	suite.True(savedLines[0].Debit.Equal(decimal.NewFromFloat(20.00)))
	suite.True(savedLines[1].Credit.Equal(decimal.NewFromFloat(20.00)))
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
