package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/insighthub/commerce-ledger/internal/apperrors"
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portsrepo "github.com/insighthub/commerce-ledger/internal/core/ports/repositories"
	"github.com/insighthub/commerce-ledger/internal/models"
	"github.com/insighthub/commerce-ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account and role
// mapping data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, business_id, code, name, account_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.BusinessID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, business_id, code, name, account_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.BusinessID,
		modelAcc.Code,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.Description,
		modelAcc.IsActive,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if classified := classifyPgError(err); errors.Is(classified, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: account code %s already exists in business %s", apperrors.ErrDuplicate, modelAcc.Code, modelAcc.BusinessID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// UpsertRoleMapping creates or replaces the mapping for (business, role).
func (r *PgxAccountRepository) UpsertRoleMapping(ctx context.Context, roleMapping domain.AccountRoleMapping) error {
	m := mapping.ToModelRoleMapping(roleMapping)

	query := `
		INSERT INTO account_role_mappings (mapping_id, business_id, role, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (business_id, role)
		DO UPDATE SET account_code = EXCLUDED.account_code,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MappingID,
		m.BusinessID,
		m.Role,
		m.AccountCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert role mapping %s/%s: %w", m.BusinessID, m.Role, err)
	}
	return nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountByCode retrieves an account by its code within a business.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, businessID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = $1 AND code = $2;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, businessID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s in business %s: %w", code, businessID, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// ListAccounts retrieves a paginated list of accounts for a business.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, businessID string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE business_id = $1 ORDER BY code LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for business %s: %w", businessID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for business %s: %w", businessID, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for business %s: %w", businessID, err)
	}

	return accounts, nil
}

// FindAccountsByRoleInTx returns every active account mapped to the role for
// the business, ordered by account id for deterministic ambiguity reporting.
// Runs inside the event transaction so resolution shares its snapshot.
func (r *PgxAccountRepository) FindAccountsByRoleInTx(ctx context.Context, tx pgx.Tx, businessID string, role domain.AccountRole) ([]domain.Account, error) {
	query := `
		SELECT a.account_id, a.business_id, a.code, a.name, a.account_type, a.description, a.is_active,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM account_role_mappings m
		JOIN accounts a ON a.business_id = m.business_id AND a.code = m.account_code
		WHERE m.business_id = $1 AND m.role = $2 AND a.is_active = TRUE
		ORDER BY a.account_id;
	`
	rows, err := tx.Query(ctx, query, businessID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query role mapping %s for business %s: %w", role, businessID, classifyPgError(err))
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mapped account for role %s: %w", role, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mapped accounts for role %s: %w", role, classifyPgError(err))
	}

	return accounts, nil
}
