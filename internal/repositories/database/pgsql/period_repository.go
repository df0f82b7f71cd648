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

type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

// newPgxPeriodRepository creates a new repository for fiscal periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{pool: pool}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `
	period_id, ledger_id, start_date, end_date, state, opening, avg_headcount,
	statement_ref, statement_finalized, lock_acknowledged_by, lock_acknowledged_at,
	archive_status, archive_ref,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.LedgerID,
		&m.StartDate,
		&m.EndDate,
		&m.State,
		&m.Opening,
		&m.AvgHeadcount,
		&m.StatementRef,
		&m.StatementFinalized,
		&m.LockAcknowledgedBy,
		&m.LockAcknowledgedAt,
		&m.ArchiveStatus,
		&m.ArchiveRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new fiscal period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PeriodID,
		m.LedgerID,
		m.StartDate,
		m.EndDate,
		m.State,
		m.Opening,
		m.AvgHeadcount,
		m.StatementRef,
		m.StatementFinalized,
		m.LockAcknowledgedBy,
		m.LockAcknowledgedAt,
		m.ArchiveStatus,
		m.ArchiveRef,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fiscal period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`
	m, err := scanPeriod(r.pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period by ID "+periodID, err)
	}
	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindPeriodForDate retrieves the period containing the given date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + periodColumns + ` FROM fiscal_periods
		WHERE ledger_id = $1 AND start_date <= $2 AND end_date >= $2;
	`
	m, err := scanPeriod(r.pool.QueryRow(ctx, query, ledgerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal period for date in ledger "+ledgerID, err)
	}
	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// ListPeriods retrieves all periods of a ledger ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, ledgerID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE ledger_id = $1 ORDER BY start_date;`
	rows, err := r.pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal periods for ledger "+ledgerID, err)
	}
	defer rows.Close()

	periods := []models.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal period row", err)
		}
		periods = append(periods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal period rows", err)
	}
	return mapping.ToDomainFiscalPeriodSlice(periods), nil
}

// UpdatePeriodState transitions the period's state under a row lock, recording
// the lock acknowledgment when present.
func (r *PgxPeriodRepository) UpdatePeriodState(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var current models.PeriodState
	err = tx.QueryRow(ctx,
		`SELECT state FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`, m.PeriodID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock fiscal period "+m.PeriodID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE fiscal_periods
		 SET state = $2, lock_acknowledged_by = $3, lock_acknowledged_at = $4,
		     last_updated_at = $5, last_updated_by = $6
		 WHERE period_id = $1;`,
		m.PeriodID, m.State, m.LockAcknowledgedBy, m.LockAcknowledgedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal period "+m.PeriodID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit fiscal period update "+m.PeriodID, err)
	}
	return nil
}

// UpdateArchiveStatus records the advisory outcome of an archive request. A
// successful archive also moves a locked period to ARCHIVED.
func (r *PgxPeriodRepository) UpdateArchiveStatus(ctx context.Context, periodID string, status domain.ArchiveStatus, ref string, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET archive_status = $2, archive_ref = $3,
		    state = CASE WHEN $2 = 'DONE' AND state = 'LOCKED' THEN 'ARCHIVED' ELSE state END,
		    last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, periodID, string(status), ref, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update archive status for period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetStatement links the financial-statement artifact and its finalized flag.
func (r *PgxPeriodRepository) SetStatement(ctx context.Context, periodID string, ref string, finalized bool, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET statement_ref = $2, statement_finalized = $3, last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, periodID, ref, finalized, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set statement for period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateHeadcount stores the average-headcount reporting metadata.
func (r *PgxPeriodRepository) UpdateHeadcount(ctx context.Context, periodID string, headcount int, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET avg_headcount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, periodID, headcount, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update headcount for period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
