package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/dto"
	"github.com/insighthub/commerce-ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// reconcilerService orchestrates one commercial event end to end: resolve the
// accounts the event needs, post the balanced journal entry, apply the stock
// movements. All of it happens in a single transaction so the books and the
// stock counters never disagree about an event.
type reconcilerService struct {
	txManager portsrepo.TransactionManager
	stockRepo portsrepo.StockRepositoryWithTx
	directory portssvc.DirectorySvcFacade
	posting   portssvc.PostingSvcFacade
	stock     portssvc.StockSvcFacade
	notifier  *LowStockNotifier
	timeout   time.Duration
}

// NewReconcilerService creates the event reconciler. The notifier may be nil;
// timeout bounds each event's transaction.
func NewReconcilerService(
	txManager portsrepo.TransactionManager,
	stockRepo portsrepo.StockRepositoryWithTx,
	directory portssvc.DirectorySvcFacade,
	posting portssvc.PostingSvcFacade,
	stock portssvc.StockSvcFacade,
	notifier *LowStockNotifier,
	timeout time.Duration,
) portssvc.ReconcilerSvcFacade {
	return &reconcilerService{
		txManager: txManager,
		stockRepo: stockRepo,
		directory: directory,
		posting:   posting,
		stock:     stock,
		notifier:  notifier,
		timeout:   timeout,
	}
}

var _ portssvc.ReconcilerSvcFacade = (*reconcilerService)(nil)

// paymentRole maps a settlement method to the account role it debits on a
// sale or credits on a purchase/expense.
func paymentRole(method domain.PaymentMethod) (domain.AccountRole, error) {
	switch method {
	case domain.PaymentCash:
		return domain.RoleCash, nil
	case domain.PaymentCard:
		return domain.RoleCardClearing, nil
	case domain.PaymentOnline:
		return domain.RoleOnlineGateway, nil
	case domain.PaymentCredit:
		return domain.RolePayables, nil
	default:
		return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
}

// ReconcileSale posts the sale's journal entry and decrements stock for every
// physical item, in one transaction. A sale already reconciled under the same
// reference returns the existing entry with AlreadyPosted set and touches
// nothing.
func (s *reconcilerService) ReconcileSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, userID string) (result *domain.ReconcileResult, err error) {
	if sale.PaymentMethod == domain.PaymentCredit {
		return nil, fmt.Errorf("%w: payment method %q is not valid for sales", apperrors.ErrValidation, sale.PaymentMethod)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: sale %s has no items", apperrors.ErrValidation, sale.SaleID)
	}
	if sale.TotalAmount.IsNegative() || sale.TotalAmount.IsZero() {
		return nil, fmt.Errorf("%w: sale %s total must be positive", apperrors.ErrValidation, sale.SaleID)
	}
	payRole, err := paymentRole(sale.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = s.txManager.Rollback(ctx, tx)
			err = s.classifyTimeout(ctx, err)
		}
	}()

	accounts, err := s.directory.ResolveManyInTx(ctx, tx, sale.BusinessID, []domain.AccountRole{payRole, domain.RoleSalesRevenue})
	if err != nil {
		return nil, err
	}

	reference := domain.EventReference("sale", sale.SaleID)
	entry, existed, err := s.posting.PostInTx(ctx, tx, dto.PostingRequest{
		BusinessID:  sale.BusinessID,
		EntryDate:   sale.SaleDate,
		Description: fmt.Sprintf("Sale %s (%s)", sale.SaleID, sale.PaymentMethod),
		Reference:   reference,
		Lines: []domain.PostingLine{
			{Account: accounts[payRole], Debit: sale.TotalAmount},
			{Account: accounts[domain.RoleSalesRevenue], Credit: sale.TotalAmount},
		},
	}, userID)
	if err != nil {
		return nil, err
	}
	if existed {
		// The original reconciliation committed journal and stock together,
		// so a repeat must not touch stock again.
		if err = s.txManager.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &domain.ReconcileResult{Journal: *entry, AlreadyPosted: true}, nil
	}

	applications, shortfalls, err := s.applyItems(ctx, tx, saleMovements(items, reference), userID)
	if err != nil {
		return nil, err
	}

	if err = s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.notifyApplications(applications)
	s.logShortfalls(ctx, reference, shortfalls)

	return &domain.ReconcileResult{
		Journal:      *entry,
		Applications: applications,
		Shortfalls:   shortfalls,
	}, nil
}

// ReconcilePurchase posts the purchase's journal entry and increments stock
// for every physical item, in one transaction.
func (s *reconcilerService) ReconcilePurchase(ctx context.Context, purchase domain.Purchase, items []domain.PurchaseItem, userID string) (result *domain.ReconcileResult, err error) {
	if purchase.PaymentMethod == domain.PaymentCard {
		return nil, fmt.Errorf("%w: payment method %q is not valid for purchases", apperrors.ErrValidation, purchase.PaymentMethod)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: purchase %s has no items", apperrors.ErrValidation, purchase.PurchaseID)
	}
	if purchase.TotalAmount.IsNegative() || purchase.TotalAmount.IsZero() {
		return nil, fmt.Errorf("%w: purchase %s total must be positive", apperrors.ErrValidation, purchase.PurchaseID)
	}
	payRole, err := paymentRole(purchase.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = s.txManager.Rollback(ctx, tx)
			err = s.classifyTimeout(ctx, err)
		}
	}()

	accounts, err := s.directory.ResolveManyInTx(ctx, tx, purchase.BusinessID, []domain.AccountRole{domain.RoleInventoryAsset, payRole})
	if err != nil {
		return nil, err
	}

	reference := domain.EventReference("purchase", purchase.PurchaseID)
	entry, existed, err := s.posting.PostInTx(ctx, tx, dto.PostingRequest{
		BusinessID:  purchase.BusinessID,
		EntryDate:   purchase.PurchaseDate,
		Description: fmt.Sprintf("Purchase %s (%s)", purchase.PurchaseID, purchase.PaymentMethod),
		Reference:   reference,
		Lines: []domain.PostingLine{
			{Account: accounts[domain.RoleInventoryAsset], Debit: purchase.TotalAmount},
			{Account: accounts[payRole], Credit: purchase.TotalAmount},
		},
	}, userID)
	if err != nil {
		return nil, err
	}
	if existed {
		if err = s.txManager.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &domain.ReconcileResult{Journal: *entry, AlreadyPosted: true}, nil
	}

	applications, shortfalls, err := s.applyItems(ctx, tx, purchaseMovements(items, reference), userID)
	if err != nil {
		return nil, err
	}

	if err = s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.notifyApplications(applications)
	s.logShortfalls(ctx, reference, shortfalls)

	return &domain.ReconcileResult{
		Journal:      *entry,
		Applications: applications,
		Shortfalls:   shortfalls,
	}, nil
}

// ReconcileExpense posts the expense's journal entry. Expenses carry no
// stock impact.
func (s *reconcilerService) ReconcileExpense(ctx context.Context, expense domain.Expense, userID string) (result *domain.ReconcileResult, err error) {
	if expense.PaymentMethod == domain.PaymentCredit {
		return nil, fmt.Errorf("%w: payment method %q is not valid for expenses", apperrors.ErrValidation, expense.PaymentMethod)
	}
	if expense.Amount.IsNegative() || expense.Amount.IsZero() {
		return nil, fmt.Errorf("%w: expense %s amount must be positive", apperrors.ErrValidation, expense.ExpenseID)
	}
	payRole, err := paymentRole(expense.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = s.txManager.Rollback(ctx, tx)
			err = s.classifyTimeout(ctx, err)
		}
	}()

	accounts, err := s.directory.ResolveManyInTx(ctx, tx, expense.BusinessID, []domain.AccountRole{domain.RoleExpenseDefault, payRole})
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Expense %s", expense.ExpenseID)
	if expense.Category != "" {
		description = fmt.Sprintf("Expense %s (%s)", expense.ExpenseID, expense.Category)
	}

	reference := domain.EventReference("expense", expense.ExpenseID)
	entry, existed, err := s.posting.PostInTx(ctx, tx, dto.PostingRequest{
		BusinessID:  expense.BusinessID,
		EntryDate:   expense.ExpenseDate,
		Description: description,
		Reference:   reference,
		Lines: []domain.PostingLine{
			{Account: accounts[domain.RoleExpenseDefault], Debit: expense.Amount},
			{Account: accounts[payRole], Credit: expense.Amount},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	if err = s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.ReconcileResult{Journal: *entry, AlreadyPosted: existed}, nil
}

// ReconcileReturn reverses part or all of one sale line: a journal entry
// undoing the revenue and settlement of the returned quantity, plus an
// inbound stock movement, in one transaction. Corrections never rewrite the
// original rows.
func (s *reconcilerService) ReconcileReturn(ctx context.Context, sale domain.Sale, item domain.SaleItem, quantity int64, reason string, userID string) (movement *domain.StockMovement, err error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: return quantity must be positive, got %d", apperrors.ErrValidation, quantity)
	}
	if quantity > item.Quantity {
		return nil, fmt.Errorf("%w: cannot return %d of item %s, only %d were sold", apperrors.ErrValidation, quantity, item.SaleItemID, item.Quantity)
	}
	payRole, err := paymentRole(sale.PaymentMethod)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = s.txManager.Rollback(ctx, tx)
			err = s.classifyTimeout(ctx, err)
		}
	}()

	accounts, err := s.directory.ResolveManyInTx(ctx, tx, sale.BusinessID, []domain.AccountRole{domain.RoleSalesRevenue, payRole})
	if err != nil {
		return nil, err
	}

	amount := item.Price.Mul(decimal.NewFromInt(quantity)).Round(domain.MoneyScale)
	description := fmt.Sprintf("Return of %d x item %s from sale %s", quantity, item.SaleItemID, sale.SaleID)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}

	reference := domain.EventReference("sale_return", item.SaleItemID)
	_, existed, err := s.posting.PostInTx(ctx, tx, dto.PostingRequest{
		BusinessID:  sale.BusinessID,
		EntryDate:   time.Now().UTC(),
		Description: description,
		Reference:   reference,
		Lines: []domain.PostingLine{
			{Account: accounts[domain.RoleSalesRevenue], Debit: amount},
			{Account: accounts[payRole], Credit: amount},
		},
	}, userID)
	if err != nil {
		return nil, err
	}
	if existed {
		existing, findErr := s.stockRepo.FindMovementByReferenceInTx(ctx, tx, reference)
		if findErr != nil && !errors.Is(findErr, apperrors.ErrNotFound) {
			err = findErr
			return nil, err
		}
		if err = s.txManager.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return existing, nil
	}

	application, err := s.stock.ApplyInTx(ctx, tx, dto.ApplyStockRequest{
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Direction: domain.MovementIn,
		Quantity:  quantity,
		Reference: reference,
	}, userID)
	if err != nil {
		return nil, err
	}

	if err = s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	if application == nil {
		return nil, nil
	}
	return &application.Movement, nil
}

// saleMovements converts sale items into outbound movement requests, ordered
// by product so concurrent events lock product rows in the same order.
func saleMovements(items []domain.SaleItem, reference string) []dto.ApplyStockRequest {
	reqs := make([]dto.ApplyStockRequest, len(items))
	for i, item := range items {
		reqs[i] = dto.ApplyStockRequest{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Direction: domain.MovementOut,
			Quantity:  item.Quantity,
			Reference: reference,
		}
	}
	sortMovements(reqs)
	return reqs
}

// purchaseMovements converts purchase items into inbound movement requests.
func purchaseMovements(items []domain.PurchaseItem, reference string) []dto.ApplyStockRequest {
	reqs := make([]dto.ApplyStockRequest, len(items))
	for i, item := range items {
		reqs[i] = dto.ApplyStockRequest{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Direction: domain.MovementIn,
			Quantity:  item.Quantity,
			Reference: reference,
		}
	}
	sortMovements(reqs)
	return reqs
}

func sortMovements(reqs []dto.ApplyStockRequest) {
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ProductID < reqs[j].ProductID })
}

// applyItems runs the stock applications in order, collecting results and
// shortfalls. Service products yield no application and are skipped.
func (s *reconcilerService) applyItems(ctx context.Context, tx pgx.Tx, reqs []dto.ApplyStockRequest, userID string) ([]domain.StockApplication, []domain.Shortfall, error) {
	applications := make([]domain.StockApplication, 0, len(reqs))
	var shortfalls []domain.Shortfall
	for _, req := range reqs {
		application, err := s.stock.ApplyInTx(ctx, tx, req, userID)
		if err != nil {
			return nil, nil, err
		}
		if application == nil {
			continue
		}
		applications = append(applications, *application)
		if application.Shortfall != nil {
			shortfalls = append(shortfalls, *application.Shortfall)
		}
	}
	return applications, shortfalls, nil
}

// notifyApplications feeds committed stock levels to the low stock notifier.
func (s *reconcilerService) notifyApplications(applications []domain.StockApplication) {
	if s.notifier == nil {
		return
	}
	for _, application := range applications {
		if application.Movement.Direction == domain.MovementOut {
			s.notifier.Observe(application.Movement.ProductID, application.StockAfter)
		}
	}
}

func (s *reconcilerService) logShortfalls(ctx context.Context, reference string, shortfalls []domain.Shortfall) {
	if len(shortfalls) == 0 {
		return
	}
	middleware.GetLoggerFromCtx(ctx).Warn("Event reconciled with stock shortfalls",
		slog.String("reference", reference),
		slog.Int("shortfall_count", len(shortfalls)),
	)
}

// classifyTimeout maps a deadline expiry on the event budget to the timeout
// error the handler layer reports as such.
func (s *reconcilerService) classifyTimeout(ctx context.Context, err error) error {
	if errors.Is(err, apperrors.ErrTimeout) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: reconciliation exceeded its time budget: %v", apperrors.ErrTimeout, err)
	}
	return err
}
