package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, businessID, code string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, businessID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpsertRoleMapping(ctx context.Context, mapping domain.AccountRoleMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByRoleInTx(ctx context.Context, tx pgx.Tx, businessID string, role domain.AccountRole) ([]domain.Account, error) {
	args := m.Called(ctx, tx, businessID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLedgerEntriesByJournalID(ctx context.Context, journalEntryID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntriesByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindJournalEntryByReferenceInTx(ctx context.Context, tx pgx.Tx, businessID, reference string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, businessID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

var _ portsrepo.StockRepositoryWithTx = (*MockStockRepository)(nil)

func (m *MockStockRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockStockRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStockRepository) ListMovementsByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockStockRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStockRepository) UpdateProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, stock int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, productID, stock, userID, now)
	return args.Error(0)
}

func (m *MockStockRepository) SaveStockMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockStockRepository) FindMovementByReferenceInTx(ctx context.Context, tx pgx.Tx, reference string) (*domain.StockMovement, error) {
	args := m.Called(ctx, tx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

// --- Mock DirectoryService ---
type MockDirectoryService struct {
	mock.Mock
}

var _ portssvc.DirectorySvcFacade = (*MockDirectoryService)(nil)

func (m *MockDirectoryService) ResolveInTx(ctx context.Context, tx pgx.Tx, businessID string, role domain.AccountRole) (*domain.Account, error) {
	args := m.Called(ctx, tx, businessID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockDirectoryService) ResolveManyInTx(ctx context.Context, tx pgx.Tx, businessID string, roles []domain.AccountRole) (map[domain.AccountRole]domain.Account, error) {
	args := m.Called(ctx, tx, businessID, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountRole]domain.Account), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostInTx(ctx context.Context, tx pgx.Tx, req dto.PostingRequest, userID string) (*domain.JournalEntry, bool, error) {
	args := m.Called(ctx, tx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Bool(1), args.Error(2)
}

func (m *MockPostingService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, []domain.LedgerEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Get(1).([]domain.LedgerEntry), args.Error(2)
}

func (m *MockPostingService) ListJournalEntries(ctx context.Context, businessID string, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

func (m *MockStockService) ApplyInTx(ctx context.Context, tx pgx.Tx, req dto.ApplyStockRequest, userID string) (*domain.StockApplication, error) {
	args := m.Called(ctx, tx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockApplication), args.Error(1)
}

func (m *MockStockService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStockService) ListMovements(ctx context.Context, productID string, limit, offset int) ([]domain.StockMovement, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}
