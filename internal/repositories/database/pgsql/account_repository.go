package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	account_id, ledger_id, number, name, account_type, vat_class,
	gross_amounts, tracks_open_items, counter_account,
	depreciation_method, depreciation_percent, hidden,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.LedgerID,
		&m.Number,
		&m.Name,
		&m.AccountType,
		&m.VatClass,
		&m.GrossAmounts,
		&m.TracksOpenItems,
		&m.CounterAccount,
		&m.DepreciationMethod,
		&m.DepreciationPercent,
		&m.Hidden,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. A unique violation on (ledger_id, number)
// is reported as apperrors.ErrDuplicateNumber.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.LedgerID,
		modelAcc.Number,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.VatClass,
		modelAcc.GrossAmounts,
		modelAcc.TracksOpenItems,
		modelAcc.CounterAccount,
		modelAcc.DepreciationMethod,
		modelAcc.DepreciationPercent,
		modelAcc.Hidden,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicateNumber
		}
		return apperrors.NewAppError(500, "failed to insert account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its surrogate key.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountByNumber retrieves an account by its number within a ledger.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, ledgerID string, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ledger_id = $1 AND number = $2;`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, ledgerID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by number "+number, err)
	}
	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return result, nil
}

// ListAccounts retrieves the chart of accounts for a ledger, ordered by number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, ledgerID string, includeHidden bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ledger_id = $1`
	if !includeHidden {
		query += ` AND hidden = FALSE`
	}
	query += ` ORDER BY number;`

	rows, err := r.pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts for ledger "+ledgerID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// IsReferenced reports whether any posting references the account.
func (r *PgxAccountRepository) IsReferenced(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM postings WHERE account_id = $1);`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check references for account "+accountID, err)
	}
	return exists, nil
}

// UpdateAccount updates an existing account's details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, vat_class = $3, gross_amounts = $4, tracks_open_items = $5,
		    counter_account = $6, depreciation_method = $7, depreciation_percent = $8,
		    hidden = $9, last_updated_at = $10, last_updated_by = $11
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.VatClass,
		modelAcc.GrossAmounts,
		modelAcc.TracksOpenItems,
		modelAcc.CounterAccount,
		modelAcc.DepreciationMethod,
		modelAcc.DepreciationPercent,
		modelAcc.Hidden,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HideAccount marks an account hidden. There is no delete.
func (r *PgxAccountRepository) HideAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET hidden = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to hide account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
