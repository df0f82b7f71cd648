package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new read-only repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{pool: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// FindPostings retrieves recorded postings matching the filter, joined with
// their voucher headers, ordered by date and voucher number.
func (r *PgxReportingRepository) FindPostings(ctx context.Context, ledgerID string, filter domain.PostingFilter) ([]domain.ReportPosting, error) {
	query := `
		SELECT ` + prefixedPostingColumns("p") + `,
		       v.series, v.sequence, v.date, v.title
		FROM postings p
		JOIN vouchers v ON p.voucher_id = v.voucher_id
		WHERE v.ledger_id = $1 AND v.state = 'RECORDED'
		  AND v.date >= $2 AND v.date <= $3
	`
	args := []interface{}{ledgerID, filter.StartDate, filter.EndDate}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += ` AND p.account_id = $4`
	}
	if filter.AllocationID != "" {
		args = append(args, filter.AllocationID)
		if filter.AccountID != "" {
			query += ` AND p.allocation_id = $5`
		} else {
			query += ` AND p.allocation_id = $4`
		}
	}
	query += ` ORDER BY v.date, v.sequence, p.posting_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings for ledger "+ledgerID, err)
	}
	defer rows.Close()

	result := []domain.ReportPosting{}
	for rows.Next() {
		var m models.Posting
		var series string
		var sequence int64
		var date time.Time
		var title string
		err := rows.Scan(
			&m.PostingID,
			&m.VoucherID,
			&m.AccountID,
			&m.Amount,
			&m.Side,
			&m.Description,
			&m.AllocationID,
			&m.OpenItemChoice,
			&m.OpenItemID,
			&m.Counterparty,
			&m.Overpayment,
			&m.VatClass,
			&m.VatPercent,
			&m.VatBasis,
			&m.VatTax,
			&m.VatDeductible,
			&m.VatSealed,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&series,
			&sequence,
			&date,
			&title,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan report posting row", err)
		}
		result = append(result, domain.ReportPosting{
			Posting:         mapping.ToDomainPosting(m),
			VoucherSeries:   series,
			VoucherSequence: sequence,
			VoucherDate:     date,
			VoucherTitle:    title,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating report posting rows", err)
	}
	return result, nil
}

// AccountBalance computes an account's balance over [start, end] from its
// recorded postings, as the sum of debits minus credits.
func (r *PgxReportingRepository) AccountBalance(ctx context.Context, ledgerID string, accountID string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN p.side = 'DEBIT' THEN p.amount ELSE -p.amount END), 0)
		FROM postings p
		JOIN vouchers v ON p.voucher_id = v.voucher_id
		WHERE v.ledger_id = $1 AND v.state = 'RECORDED'
		  AND p.account_id = $2
		  AND v.date >= $3 AND v.date <= $4;
	`
	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, ledgerID, accountID, start, end).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return balance, nil
}

// TrialBalance computes per-account debit/credit sums over the range.
func (r *PgxReportingRepository) TrialBalance(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.number, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN p.side = 'DEBIT' THEN p.amount ELSE 0 END), 0) AS debit_total,
		       COALESCE(SUM(CASE WHEN p.side = 'CREDIT' THEN p.amount ELSE 0 END), 0) AS credit_total
		FROM accounts a
		JOIN postings p ON p.account_id = a.account_id
		JOIN vouchers v ON p.voucher_id = v.voucher_id
		WHERE a.ledger_id = $1 AND v.state = 'RECORDED'
		  AND v.date >= $2 AND v.date <= $3
		GROUP BY a.number, a.name, a.account_type
		ORDER BY a.number;
	`
	rows, err := r.pool.Query(ctx, query, ledgerID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for ledger "+ledgerID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountNumber, &row.AccountName, &row.AccountType, &row.DebitTotal, &row.CreditTotal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		row.Balance = row.DebitTotal.Sub(row.CreditTotal)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}
