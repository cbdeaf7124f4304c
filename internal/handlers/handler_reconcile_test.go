package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/insighthub/commerce-ledger/internal/handlers"
	"github.com/insighthub/commerce-ledger/pkg/config"
)

// --- Mock ReconcilerService ---
type MockReconcilerService struct {
	mock.Mock
}

var _ portssvc.ReconcilerSvcFacade = (*MockReconcilerService)(nil)

func (m *MockReconcilerService) ReconcileSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, userID string) (*domain.ReconcileResult, error) {
	args := m.Called(ctx, sale, items, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileResult), args.Error(1)
}

func (m *MockReconcilerService) ReconcilePurchase(ctx context.Context, purchase domain.Purchase, items []domain.PurchaseItem, userID string) (*domain.ReconcileResult, error) {
	args := m.Called(ctx, purchase, items, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileResult), args.Error(1)
}

func (m *MockReconcilerService) ReconcileExpense(ctx context.Context, expense domain.Expense, userID string) (*domain.ReconcileResult, error) {
	args := m.Called(ctx, expense, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileResult), args.Error(1)
}

func (m *MockReconcilerService) ReconcileReturn(ctx context.Context, sale domain.Sale, item domain.SaleItem, quantity int64, reason string, userID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, sale, item, quantity, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

// --- Test Suite ---
type ReconcileHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockReconciler *MockReconcilerService
	jwtSecret      string
	userID         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReconcileHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReconcileHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.mockReconciler = new(MockReconcilerService)

	cfg := &config.Config{
		JWTSecret:        suite.jwtSecret,
		ReconcileTimeout: 5 * time.Second,
		CORSAllowOrigins: []string{"http://localhost:3000"},
	}
	rate, err := limiter.NewRateFromFormatted("1000-M")
	suite.Require().NoError(err)
	limiterInstance := limiter.New(memorystore.NewStore(), rate)

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Reconciler: suite.mockReconciler,
	}, limiterInstance)
}

func (suite *ReconcileHandlerTestSuite) saleRequest() dto.ReconcileSaleRequest {
	return dto.ReconcileSaleRequest{
		Sale: dto.SaleData{
			SaleID:        uuid.NewString(),
			BusinessID:    uuid.NewString(),
			SaleDate:      time.Now().UTC(),
			TotalAmount:   decimal.NewFromFloat(59.97),
			PaymentMethod: "cash",
		},
		Items: []dto.SaleItemData{{
			SaleItemID: uuid.NewString(),
			ProductID:  uuid.NewString(),
			Quantity:   3,
			Price:      decimal.NewFromFloat(19.99),
		}},
	}
}

func (suite *ReconcileHandlerTestSuite) postSale(body dto.ReconcileSaleRequest, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile/sales", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReconcileHandlerTestSuite) TestReconcileSale_Success() {
	body := suite.saleRequest()
	entry := domain.JournalEntry{
		JournalEntryID: uuid.NewString(),
		BusinessID:     body.Sale.BusinessID,
		Reference:      domain.EventReference("sale", body.Sale.SaleID),
	}

	suite.mockReconciler.On("ReconcileSale", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), suite.userID).
		Return(&domain.ReconcileResult{Journal: entry}, nil).Once()

	w := suite.postSale(body, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusOK, w.Code)
	var result domain.ReconcileResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.Equal(entry.JournalEntryID, result.Journal.JournalEntryID)
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *ReconcileHandlerTestSuite) TestReconcileSale_MissingToken() {
	w := suite.postSale(suite.saleRequest(), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReconciler.AssertNotCalled(suite.T(), "ReconcileSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcileHandlerTestSuite) TestReconcileSale_InvalidPaymentMethod() {
	body := suite.saleRequest()
	body.Sale.PaymentMethod = "barter"

	w := suite.postSale(body, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReconciler.AssertNotCalled(suite.T(), "ReconcileSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcileHandlerTestSuite) TestReconcileSale_AccountNotConfigured() {
	body := suite.saleRequest()

	suite.mockReconciler.On("ReconcileSale", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), suite.userID).
		Return(nil, &apperrors.AccountNotConfiguredError{BusinessID: body.Sale.BusinessID, Role: "card_clearing"}).Once()

	w := suite.postSale(body, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *ReconcileHandlerTestSuite) TestReconcileSale_Timeout() {
	body := suite.saleRequest()

	suite.mockReconciler.On("ReconcileSale", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), suite.userID).
		Return(nil, apperrors.ErrTimeout).Once()

	w := suite.postSale(body, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusGatewayTimeout, w.Code)
}

func (suite *ReconcileHandlerTestSuite) TestReconcileSale_ConcurrencyConflict() {
	body := suite.saleRequest()

	suite.mockReconciler.On("ReconcileSale", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleItem"), suite.userID).
		Return(nil, apperrors.ErrConcurrencyConflict).Once()

	w := suite.postSale(body, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusConflict, w.Code)
}

func TestReconcileHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileHandlerTestSuite))
}
