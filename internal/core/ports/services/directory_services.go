package services

import (
	"context"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DirectorySvcFacade resolves semantic account roles to concrete accounts for
// one business. The mapping is authoritative: a missing mapping surfaces as
// *apperrors.AccountNotConfiguredError, an inconsistent one as
// *apperrors.AmbiguousAccountError. Resolution runs inside the caller's
// transaction so it shares the event's snapshot.
type DirectorySvcFacade interface {
	// ResolveInTx resolves one role for a business.
	ResolveInTx(ctx context.Context, tx pgx.Tx, businessID string, role domain.AccountRole) (*domain.Account, error)

	// ResolveManyInTx resolves every role an event needs, failing fast on the
	// first unresolvable role before any mutation happens.
	ResolveManyInTx(ctx context.Context, tx pgx.Tx, businessID string, roles []domain.AccountRole) (map[domain.AccountRole]domain.Account, error)
}
