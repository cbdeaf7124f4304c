package services

import (
	"time"

	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
)

// NewServiceContainer wires the repository provider into the service facades
// handed to the handler layer.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier *LowStockNotifier, reconcileTimeout time.Duration) *portssvc.ServiceContainer {
	directory := NewDirectoryService(repos.AccountRepo)
	posting := NewPostingService(repos.JournalRepo)
	stock := NewStockService(repos.StockRepo)

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo),
		Directory: directory,
		Posting:   posting,
		Stock:     stock,
		Reconciler: NewReconcilerService(
			repos.JournalRepo,
			repos.StockRepo,
			directory,
			posting,
			stock,
			notifier,
			reconcileTimeout,
		),
	}
}
