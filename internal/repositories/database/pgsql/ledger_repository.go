package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// newPgxLedgerRepository creates a new repository for ledger configuration.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveLedger inserts a new ledger.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	modelLedger := mapping.ToModelLedger(ledger)
	query := `
		INSERT INTO ledgers (
			ledger_id, name, business_id, currency_code, numbering_scheme, vat_basis,
			vat_clearing_sales, vat_clearing_purchase,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		modelLedger.LedgerID,
		modelLedger.Name,
		modelLedger.BusinessID,
		modelLedger.CurrencyCode,
		modelLedger.NumberingScheme,
		modelLedger.VatBasis,
		modelLedger.VatClearingSales,
		modelLedger.VatClearingPurchase,
		modelLedger.CreatedAt,
		modelLedger.CreatedBy,
		modelLedger.LastUpdatedAt,
		modelLedger.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert ledger "+modelLedger.LedgerID, err)
	}
	return nil
}

// FindLedgerByID retrieves a ledger by its ID.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `
		SELECT ledger_id, name, business_id, currency_code, numbering_scheme, vat_basis,
		       vat_clearing_sales, vat_clearing_purchase,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledgers
		WHERE ledger_id = $1;
	`
	var m models.Ledger
	err := r.pool.QueryRow(ctx, query, ledgerID).Scan(
		&m.LedgerID,
		&m.Name,
		&m.BusinessID,
		&m.CurrencyCode,
		&m.NumberingScheme,
		&m.VatBasis,
		&m.VatClearingSales,
		&m.VatClearingPurchase,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger by ID "+ledgerID, err)
	}

	domainLedger := mapping.ToDomainLedger(m)
	return &domainLedger, nil
}

// HasRecordedVouchers reports whether any voucher has ever been recorded in
// the ledger. Deleted vouchers count: their numbers were consumed.
func (r *PgxLedgerRepository) HasRecordedVouchers(ctx context.Context, ledgerID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vouchers WHERE ledger_id = $1 AND sequence IS NOT NULL);`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, ledgerID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check recorded vouchers for ledger "+ledgerID, err)
	}
	return exists, nil
}

// UpdateLedger updates mutable ledger metadata.
func (r *PgxLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.Ledger) error {
	modelLedger := mapping.ToModelLedger(ledger)
	query := `
		UPDATE ledgers
		SET name = $2, business_id = $3, numbering_scheme = $4, vat_basis = $5,
		    vat_clearing_sales = $6, vat_clearing_purchase = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE ledger_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		modelLedger.LedgerID,
		modelLedger.Name,
		modelLedger.BusinessID,
		modelLedger.NumberingScheme,
		modelLedger.VatBasis,
		modelLedger.VatClearingSales,
		modelLedger.VatClearingPurchase,
		modelLedger.LastUpdatedAt,
		modelLedger.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger "+modelLedger.LedgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
