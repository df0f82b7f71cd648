package repositories

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher with its postings and audit log.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchersByLedger retrieves a paginated list of vouchers for a ledger
	// using token-based pagination. It returns the vouchers, a token for the
	// next page, and an error.
	ListVouchersByLedger(ctx context.Context, ledgerID string, limit int, nextToken *string, includeDeleted bool) ([]domain.Voucher, *string, error)

	// CountDraftVouchersInRange counts draft vouchers dated inside the range.
	// Used to surface period-lock warnings.
	CountDraftVouchersInRange(ctx context.Context, ledgerID string, start, end time.Time) (int, error)
}

// VoucherWriter defines write operations for voucher data
type VoucherWriter interface {
	// SaveDraft persists a new draft voucher together with its postings.
	SaveDraft(ctx context.Context, voucher domain.Voucher) error

	// ReplaceDraftPostings rewrites the posting set of a draft voucher.
	ReplaceDraftPostings(ctx context.Context, voucher domain.Voucher) error

	// UpdateVoucherHeader updates the date and title of a voucher.
	UpdateVoucherHeader(ctx context.Context, voucher domain.Voucher) error

	// RecordVoucher commits a draft atomically: assigns the next sequence
	// number of the (ledger, period, series) counter under a row lock, stores
	// the postings' VAT annotations, applies the open-item mutations, appends
	// the audit entry, and flips the state to RECORDED. A serialization
	// conflict on the counter is reported as apperrors.ErrSequenceConflict so
	// the caller can retry.
	RecordVoucher(ctx context.Context, voucher domain.Voucher, periodID string, mutations []domain.OpenItemMutation) (*domain.Voucher, error)

	// MarkVoucherDeleted transitions a voucher to DELETED, applying the
	// reversing open-item mutations in the same transaction. The sequence
	// number is not reused.
	MarkVoucherDeleted(ctx context.Context, voucherID string, userID string, now time.Time, mutations []domain.OpenItemMutation) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
