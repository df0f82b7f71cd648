package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/mapping"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/pagination"
)

type PgxVoucherRepository struct {
	BaseRepository
	openItemRepo portsrepo.OpenItemTransactionSupport
}

// newPgxVoucherRepository creates a new repository for voucher and posting data.
func newPgxVoucherRepository(pool *pgxpool.Pool, openItemRepo portsrepo.OpenItemTransactionSupport) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		openItemRepo:   openItemRepo,
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryWithTx
var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

const voucherColumns = `
	voucher_id, ledger_id, type, series, sequence, period_id, date, title, state,
	created_at, created_by, last_updated_at, last_updated_by
`

const postingColumns = `
	posting_id, voucher_id, account_id, amount, side, description, allocation_id,
	open_item_choice, open_item_id, counterparty, overpayment,
	vat_class, vat_percent, vat_basis, vat_tax, vat_deductible, vat_sealed,
	created_at, created_by, last_updated_at, last_updated_by
`

const postingInsertQuery = `
	INSERT INTO postings (` + postingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
`

func scanVoucher(row pgx.Row) (models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.LedgerID,
		&m.Type,
		&m.Series,
		&m.Sequence,
		&m.PeriodID,
		&m.Date,
		&m.Title,
		&m.State,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPosting(row pgx.Row) (models.Posting, error) {
	var m models.Posting
	err := row.Scan(
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
	)
	return m, err
}

func queuePostingInsert(batch *pgx.Batch, m models.Posting) {
	batch.Queue(postingInsertQuery,
		m.PostingID,
		m.VoucherID,
		m.AccountID,
		m.Amount,
		m.Side,
		m.Description,
		m.AllocationID,
		m.OpenItemChoice,
		m.OpenItemID,
		m.Counterparty,
		m.Overpayment,
		m.VatClass,
		m.VatPercent,
		m.VatBasis,
		m.VatTax,
		m.VatDeductible,
		m.VatSealed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

func insertAuditEntry(ctx context.Context, tx pgx.Tx, voucherID string, userID string, now time.Time, from, to domain.VoucherState) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO voucher_audit (voucher_id, timestamp, user_id, from_state, to_state)
		 VALUES ($1, $2, $3, $4, $5);`,
		voucherID, now, userID, string(from), string(to),
	)
	return err
}

// SaveDraft persists a new draft voucher together with its postings and the
// opening audit entry, within one database transaction.
func (r *PgxVoucherRepository) SaveDraft(ctx context.Context, voucher domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelVoucher := mapping.ToModelVoucher(voucher)
	_, err = tx.Exec(ctx,
		`INSERT INTO vouchers (`+voucherColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		modelVoucher.VoucherID,
		modelVoucher.LedgerID,
		modelVoucher.Type,
		modelVoucher.Series,
		modelVoucher.Sequence,
		modelVoucher.PeriodID,
		modelVoucher.Date,
		modelVoucher.Title,
		modelVoucher.State,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert voucher "+modelVoucher.VoucherID, err)
	}

	if len(voucher.Postings) > 0 {
		batch := &pgx.Batch{}
		for _, p := range voucher.Postings {
			queuePostingInsert(batch, mapping.ToModelPosting(p))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert postings for voucher "+modelVoucher.VoucherID, err)
		}
	}

	for i, ref := range voucher.Attachments {
		_, err = tx.Exec(ctx,
			`INSERT INTO voucher_attachments (voucher_id, ref, position) VALUES ($1, $2, $3);`,
			modelVoucher.VoucherID, ref, i,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert attachment for voucher "+modelVoucher.VoucherID, err)
		}
	}

	if err := insertAuditEntry(ctx, tx, modelVoucher.VoucherID, voucher.CreatedBy, voucher.CreatedAt, "", domain.Draft); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry for voucher "+modelVoucher.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}

// FindVoucherByID retrieves a voucher with its postings, attachments, and audit log.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	m, err := scanVoucher(r.Pool.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE voucher_id = $1;`, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher by ID "+voucherID, err)
	}
	voucher := mapping.ToDomainVoucher(m)

	rows, err := r.Pool.Query(ctx,
		`SELECT `+postingColumns+` FROM postings WHERE voucher_id = $1 ORDER BY created_at, posting_id;`,
		voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings for voucher "+voucherID, err)
	}
	defer rows.Close()

	postings := []models.Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting row for voucher "+voucherID, err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rows for voucher "+voucherID, err)
	}
	voucher.Postings = mapping.ToDomainPostingSlice(postings)

	attachRows, err := r.Pool.Query(ctx,
		`SELECT ref FROM voucher_attachments WHERE voucher_id = $1 ORDER BY position;`, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attachments for voucher "+voucherID, err)
	}
	defer attachRows.Close()
	for attachRows.Next() {
		var ref string
		if err := attachRows.Scan(&ref); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attachment row for voucher "+voucherID, err)
		}
		voucher.Attachments = append(voucher.Attachments, ref)
	}
	if err := attachRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attachment rows for voucher "+voucherID, err)
	}

	auditRows, err := r.Pool.Query(ctx,
		`SELECT entry_id, voucher_id, timestamp, user_id, from_state, to_state
		 FROM voucher_audit WHERE voucher_id = $1 ORDER BY entry_id;`, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit log for voucher "+voucherID, err)
	}
	defer auditRows.Close()
	for auditRows.Next() {
		var e models.VoucherAuditEntry
		if err := auditRows.Scan(&e.EntryID, &e.VoucherID, &e.Timestamp, &e.UserID, &e.FromState, &e.ToState); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row for voucher "+voucherID, err)
		}
		voucher.AuditLog = append(voucher.AuditLog, mapping.ToDomainVoucherAuditEntry(e))
	}
	if err := auditRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows for voucher "+voucherID, err)
	}

	return &voucher, nil
}

// ListVouchersByLedger retrieves a paginated list of vouchers for a ledger using
// token-based pagination. It returns the vouchers, a token for the next page,
// and an error.
func (r *PgxVoucherRepository) ListVouchersByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string, includeDeleted bool) ([]domain.Voucher, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + voucherColumns + ` FROM vouchers`
	filterClause := `WHERE ledger_id = $1`
	if !includeDeleted {
		filterClause += ` AND state != 'DELETED'`
	}
	// Ordering must be stable: date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{ledgerID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vouchers for ledger "+ledgerID, err)
	}
	defer rows.Close()

	vouchers := make([]models.Voucher, 0, fetchLimit)
	for rows.Next() {
		m, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan voucher row for ledger "+ledgerID, err)
		}
		vouchers = append(vouchers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating voucher rows for ledger "+ledgerID, err)
	}

	var nextTokenVal *string
	if len(vouchers) > limit {
		last := vouchers[limit-1] // last item included in this page
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		vouchers = vouchers[:limit]
	}

	result := make([]domain.Voucher, len(vouchers))
	for i, m := range vouchers {
		result[i] = mapping.ToDomainVoucher(m)
	}
	return result, nextTokenVal, nil
}

// CountDraftVouchersInRange counts draft vouchers dated inside the range.
func (r *PgxVoucherRepository) CountDraftVouchersInRange(ctx context.Context, ledgerID string, start, end time.Time) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM vouchers
		 WHERE ledger_id = $1 AND state = 'DRAFT' AND date >= $2 AND date <= $3;`,
		ledgerID, start, end,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count draft vouchers for ledger "+ledgerID, err)
	}
	return count, nil
}

// ReplaceDraftPostings rewrites the posting set of a draft voucher.
func (r *PgxVoucherRepository) ReplaceDraftPostings(ctx context.Context, voucher domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `DELETE FROM postings WHERE voucher_id = $1;`, voucher.VoucherID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear postings for voucher "+voucher.VoucherID, err)
	}

	batch := &pgx.Batch{}
	for _, p := range voucher.Postings {
		queuePostingInsert(batch, mapping.ToModelPosting(p))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert postings for voucher "+voucher.VoucherID, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE vouchers SET last_updated_at = $2, last_updated_by = $3 WHERE voucher_id = $1;`,
		voucher.VoucherID, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to touch voucher "+voucher.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateVoucherHeader updates the date and title of a voucher.
func (r *PgxVoucherRepository) UpdateVoucherHeader(ctx context.Context, voucher domain.Voucher) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE vouchers SET date = $2, title = $3, last_updated_at = $4, last_updated_by = $5
		 WHERE voucher_id = $1;`,
		voucher.VoucherID, voucher.Date, voucher.Title, voucher.LastUpdatedAt, voucher.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+voucher.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// nextSequence claims the next value of the (ledger, period, series) counter.
// The upsert takes a row lock, so concurrent commits on the same counter
// serialize; under stricter isolation a serialization failure surfaces as
// apperrors.ErrSequenceConflict for the service-level retry.
func nextSequence(ctx context.Context, tx pgx.Tx, ledgerID, periodID, series string) (int64, error) {
	var seq int64
	err := tx.QueryRow(ctx,
		`INSERT INTO voucher_sequences (ledger_id, period_id, series, next_value)
		 VALUES ($1, $2, $3, 2)
		 ON CONFLICT (ledger_id, period_id, series)
		 DO UPDATE SET next_value = voucher_sequences.next_value + 1
		 RETURNING next_value - 1;`,
		ledgerID, periodID, series,
	).Scan(&seq)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
			return 0, apperrors.ErrSequenceConflict
		}
		return 0, apperrors.NewAppError(500, "failed to claim sequence for series "+series, err)
	}
	return seq, nil
}

// RecordVoucher commits a draft atomically: claims the next sequence number of
// the voucher's (ledger, period, series) counter, flips the state to RECORDED,
// rewrites the postings' open-item and VAT columns, applies the open-item
// mutations, and appends the audit entry. The returned voucher carries the
// assigned sequence.
func (r *PgxVoucherRepository) RecordVoucher(ctx context.Context, voucher domain.Voucher, periodID string, mutations []domain.OpenItemMutation) (*domain.Voucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := voucher.LastUpdatedAt
	userID := voucher.LastUpdatedBy

	seq, err := nextSequence(ctx, tx, voucher.LedgerID, periodID, voucher.Series)
	if err != nil {
		return nil, err
	}
	voucher.Sequence = &seq
	voucher.PeriodID = periodID
	voucher.State = domain.Recorded

	tag, err := tx.Exec(ctx,
		`UPDATE vouchers
		 SET series = $2, sequence = $3, period_id = $4, state = $5, last_updated_at = $6, last_updated_by = $7
		 WHERE voucher_id = $1 AND state = 'DRAFT';`,
		voucher.VoucherID, voucher.Series, seq, periodID, string(domain.Recorded), now, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Another transaction claimed the same number; the service retries
			// with a fresh one.
			return nil, apperrors.ErrSequenceConflict
		}
		return nil, apperrors.NewAppError(500, "failed to record voucher "+voucher.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		// Lost a race: the voucher was recorded or deleted concurrently.
		return nil, apperrors.ErrConflict
	}

	// Rewrite the open-item/VAT columns: item IDs for NEW items are assigned
	// at record time and the annotations may have been recomputed.
	batch := &pgx.Batch{}
	for _, p := range voucher.Postings {
		m := mapping.ToModelPosting(p)
		batch.Queue(
			`UPDATE postings
			 SET open_item_choice = $2, open_item_id = $3, counterparty = $4, overpayment = $5,
			     vat_class = $6, vat_percent = $7, vat_basis = $8, vat_tax = $9,
			     vat_deductible = $10, vat_sealed = $11,
			     last_updated_at = $12, last_updated_by = $13
			 WHERE posting_id = $1;`,
			m.PostingID,
			m.OpenItemChoice,
			m.OpenItemID,
			m.Counterparty,
			m.Overpayment,
			m.VatClass,
			m.VatPercent,
			m.VatBasis,
			m.VatTax,
			m.VatDeductible,
			m.VatSealed,
			now,
			userID,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update postings for voucher "+voucher.VoucherID, err)
	}

	if err := r.openItemRepo.ApplyMutationsInTx(ctx, tx, mutations, userID, now); err != nil {
		return nil, err
	}

	if err := insertAuditEntry(ctx, tx, voucher.VoucherID, userID, now, domain.Draft, domain.Recorded); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert audit entry for voucher "+voucher.VoucherID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &voucher, nil
}

// MarkVoucherDeleted transitions a recorded voucher to DELETED, applying the
// reversing open-item mutations in the same transaction. The sequence number
// stays consumed.
func (r *PgxVoucherRepository) MarkVoucherDeleted(ctx context.Context, voucherID string, userID string, now time.Time, mutations []domain.OpenItemMutation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx,
		`UPDATE vouchers SET state = 'DELETED', last_updated_at = $2, last_updated_by = $3
		 WHERE voucher_id = $1 AND state = 'RECORDED';`,
		voucherID, now, userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.openItemRepo.ApplyMutationsInTx(ctx, tx, mutations, userID, now); err != nil {
		return err
	}

	if err := insertAuditEntry(ctx, tx, voucherID, userID, now, domain.Recorded, domain.Deleted); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry for voucher "+voucherID, err)
	}

	return r.Commit(ctx, tx)
}
