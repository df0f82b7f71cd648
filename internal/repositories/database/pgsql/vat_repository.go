package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
)

type PgxVatRepository struct {
	pool *pgxpool.Pool
}

// newPgxVatRepository creates a new repository for VAT rates and returns.
func newPgxVatRepository(pool *pgxpool.Pool) portsrepo.VatRepositoryFacade {
	return &PgxVatRepository{pool: pool}
}

// Ensure PgxVatRepository implements portsrepo.VatRepositoryFacade
var _ portsrepo.VatRepositoryFacade = (*PgxVatRepository)(nil)

const vatRateColumns = `
	rate_id, ledger_id, class, percent, effective_from, effective_to,
	created_at, created_by, last_updated_at, last_updated_by
`

const vatReturnColumns = `
	return_id, ledger_id, period_start, period_end, due_date,
	payable, deductible, net, lines, filed_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanVatRate(row pgx.Row) (models.VatRate, error) {
	var m models.VatRate
	err := row.Scan(
		&m.RateID,
		&m.LedgerID,
		&m.Class,
		&m.Percent,
		&m.EffectiveFrom,
		&m.EffectiveTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanVatReturn(row pgx.Row) (models.VatReturn, error) {
	var m models.VatReturn
	err := row.Scan(
		&m.ReturnID,
		&m.LedgerID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.DueDate,
		&m.Payable,
		&m.Deductible,
		&m.Net,
		&m.Lines,
		&m.FiledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindRateForDate retrieves the rate version of a class effective on the date.
func (r *PgxVatRepository) FindRateForDate(ctx context.Context, ledgerID string, class domain.VatClass, date time.Time) (*domain.VatRate, error) {
	query := `
		SELECT ` + vatRateColumns + ` FROM vat_rates
		WHERE ledger_id = $1 AND class = $2 AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC
		LIMIT 1;
	`
	m, err := scanVatRate(r.pool.QueryRow(ctx, query, ledgerID, string(class), date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoRateForDate
		}
		return nil, apperrors.NewAppError(500, "failed to find VAT rate for ledger "+ledgerID, err)
	}
	d := mapping.ToDomainVatRate(m)
	return &d, nil
}

// ListRates retrieves all rate versions of a ledger.
func (r *PgxVatRepository) ListRates(ctx context.Context, ledgerID string) ([]domain.VatRate, error) {
	query := `SELECT ` + vatRateColumns + ` FROM vat_rates WHERE ledger_id = $1 ORDER BY class, effective_from;`
	rows, err := r.pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query VAT rates for ledger "+ledgerID, err)
	}
	defer rows.Close()

	rates := []models.VatRate{}
	for rows.Next() {
		m, err := scanVatRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan VAT rate row", err)
		}
		rates = append(rates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating VAT rate rows", err)
	}
	return mapping.ToDomainVatRateSlice(rates), nil
}

// SaveRate persists a new rate version, closing the previous open-ended
// version of the same class the day before the new one takes effect.
func (r *PgxVatRepository) SaveRate(ctx context.Context, rate domain.VatRate) error {
	m := mapping.ToModelVatRate(rate)
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE vat_rates
		 SET effective_to = $3::date - INTERVAL '1 day', last_updated_at = $4, last_updated_by = $5
		 WHERE ledger_id = $1 AND class = $2 AND effective_to IS NULL AND effective_from < $3;`,
		m.LedgerID, m.Class, m.EffectiveFrom, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close previous VAT rate version", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO vat_rates (`+vatRateColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.RateID,
		m.LedgerID,
		m.Class,
		m.Percent,
		m.EffectiveFrom,
		m.EffectiveTo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert VAT rate "+m.RateID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit VAT rate "+m.RateID, err)
	}
	return nil
}

// FindReturnOverlapping retrieves a filed return whose range intersects [start, end].
func (r *PgxVatRepository) FindReturnOverlapping(ctx context.Context, ledgerID string, start, end time.Time) (*domain.VatReturn, error) {
	query := `
		SELECT ` + vatReturnColumns + ` FROM vat_returns
		WHERE ledger_id = $1 AND filed_at IS NOT NULL
		  AND period_start <= $3 AND period_end >= $2
		ORDER BY period_start
		LIMIT 1;
	`
	m, err := scanVatReturn(r.pool.QueryRow(ctx, query, ledgerID, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find overlapping VAT return for ledger "+ledgerID, err)
	}
	d, err := mapping.ToDomainVatReturn(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode VAT return "+m.ReturnID, err)
	}
	return &d, nil
}

// ListReturns retrieves the ledger's returns ordered by period start.
func (r *PgxVatRepository) ListReturns(ctx context.Context, ledgerID string) ([]domain.VatReturn, error) {
	query := `SELECT ` + vatReturnColumns + ` FROM vat_returns WHERE ledger_id = $1 ORDER BY period_start;`
	rows, err := r.pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query VAT returns for ledger "+ledgerID, err)
	}
	defer rows.Close()

	returns := []domain.VatReturn{}
	for rows.Next() {
		m, err := scanVatReturn(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan VAT return row", err)
		}
		d, err := mapping.ToDomainVatReturn(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode VAT return "+m.ReturnID, err)
		}
		returns = append(returns, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating VAT return rows", err)
	}
	return returns, nil
}

// FindTaxablePostings retrieves recorded postings carrying a VAT annotation
// and dated inside the range.
func (r *PgxVatRepository) FindTaxablePostings(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error) {
	query := `
		SELECT ` + prefixedPostingColumns("p") + `
		FROM postings p
		JOIN vouchers v ON p.voucher_id = v.voucher_id
		WHERE v.ledger_id = $1 AND v.state = 'RECORDED'
		  AND v.date >= $2 AND v.date <= $3
		  AND p.vat_class IS NOT NULL
		ORDER BY v.date, v.sequence, p.posting_id;
	`
	rows, err := r.pool.Query(ctx, query, ledgerID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query taxable postings for ledger "+ledgerID, err)
	}
	defer rows.Close()

	postings := []models.Posting{}
	for rows.Next() {
		m, err := scanPosting(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan taxable posting row", err)
		}
		postings = append(postings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating taxable posting rows", err)
	}
	return mapping.ToDomainPostingSlice(postings), nil
}

// FindTaxablePostingsByPaymentDate retrieves recorded postings carrying a VAT
// annotation whose voucher was settled inside the range. A voucher that opens
// no items settles on its own date; one that opens items settles on the day
// the last of them reached zero balance, and stays out of any return until
// every opened item is settled.
func (r *PgxVatRepository) FindTaxablePostingsByPaymentDate(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error) {
	query := `
		WITH settlement AS (
			SELECT np.voucher_id,
			       bool_and(oi.settled) AS all_settled,
			       MAX(oi.last_updated_at::date) AS settled_date
			FROM postings np
			JOIN open_items oi ON oi.item_id = np.open_item_id
			WHERE np.open_item_choice = 'NEW'
			GROUP BY np.voucher_id
		)
		SELECT ` + prefixedPostingColumns("p") + `
		FROM postings p
		JOIN vouchers v ON p.voucher_id = v.voucher_id
		LEFT JOIN settlement s ON s.voucher_id = v.voucher_id
		WHERE v.ledger_id = $1 AND v.state = 'RECORDED'
		  AND p.vat_class IS NOT NULL
		  AND (
		        (s.voucher_id IS NULL AND v.date >= $2 AND v.date <= $3)
		     OR (s.all_settled AND s.settled_date >= $2 AND s.settled_date <= $3)
		  )
		ORDER BY v.date, v.sequence, p.posting_id;
	`
	rows, err := r.pool.Query(ctx, query, ledgerID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settled taxable postings for ledger "+ledgerID, err)
	}
	defer rows.Close()

	postings := []models.Posting{}
	for rows.Next() {
		m, err := scanPosting(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan taxable posting row", err)
		}
		postings = append(postings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating taxable posting rows", err)
	}
	return mapping.ToDomainPostingSlice(postings), nil
}

// SaveReturnAndSeal stores a filed return and marks the annotations of every
// covered posting sealed, in one transaction.
func (r *PgxVatRepository) SaveReturnAndSeal(ctx context.Context, ret domain.VatReturn) error {
	m, err := mapping.ToModelVatReturn(ret)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode VAT return "+ret.ReturnID, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO vat_returns (`+vatReturnColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		m.ReturnID,
		m.LedgerID,
		m.PeriodStart,
		m.PeriodEnd,
		m.DueDate,
		m.Payable,
		m.Deductible,
		m.Net,
		m.Lines,
		m.FiledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert VAT return "+m.ReturnID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE postings p
		 SET vat_sealed = TRUE, last_updated_at = $4, last_updated_by = $5
		 FROM vouchers v
		 WHERE p.voucher_id = v.voucher_id
		   AND v.ledger_id = $1 AND v.state = 'RECORDED'
		   AND v.date >= $2 AND v.date <= $3
		   AND p.vat_class IS NOT NULL;`,
		m.LedgerID, m.PeriodStart, m.PeriodEnd, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to seal postings for VAT return "+m.ReturnID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit VAT return "+m.ReturnID, err)
	}
	return nil
}

// prefixedPostingColumns qualifies the posting column list with a table alias
// for joined queries.
func prefixedPostingColumns(alias string) string {
	return alias + `.posting_id, ` + alias + `.voucher_id, ` + alias + `.account_id, ` +
		alias + `.amount, ` + alias + `.side, ` + alias + `.description, ` + alias + `.allocation_id, ` +
		alias + `.open_item_choice, ` + alias + `.open_item_id, ` + alias + `.counterparty, ` + alias + `.overpayment, ` +
		alias + `.vat_class, ` + alias + `.vat_percent, ` + alias + `.vat_basis, ` + alias + `.vat_tax, ` +
		alias + `.vat_deductible, ` + alias + `.vat_sealed, ` +
		alias + `.created_at, ` + alias + `.created_by, ` + alias + `.last_updated_at, ` + alias + `.last_updated_by`
}
