package services

import (
	"context"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// VoucherReaderSvc defines read operations for vouchers
type VoucherReaderSvc interface {
	// GetVoucherByID retrieves a voucher with its postings.
	GetVoucherByID(ctx context.Context, ledgerID string, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a paginated list of vouchers.
	ListVouchers(ctx context.Context, ledgerID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error)
}

// VoucherWriterSvc defines the voucher lifecycle operations
type VoucherWriterSvc interface {
	// CreateDraft opens a new draft voucher. The date must fall inside an
	// open fiscal period.
	CreateDraft(ctx context.Context, ledgerID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error)

	// AddPosting appends a posting line to a draft voucher, validating the
	// account, the amount, the allocation's validity, and the open-item
	// resolution for tracking accounts. Taxable postings get their VAT
	// annotation computed here.
	AddPosting(ctx context.Context, ledgerID string, voucherID string, spec dto.PostingSpec, userID string) (*domain.Voucher, error)

	// UpdateVoucher updates the header of a voucher whose period is unlocked.
	UpdateVoucher(ctx context.Context, ledgerID string, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// Record commits a draft: checks the balance invariant and the period
	// gate, assigns the next sequence number of the voucher's series, and
	// applies the open-item side effects atomically.
	Record(ctx context.Context, ledgerID string, voucherID string, userID string) (*domain.Voucher, error)

	// Delete marks a recorded voucher deleted, reversing its open-item
	// effects. Fails with apperrors.ErrPeriodLocked while the enclosing
	// period is locked. The sequence number is never reused.
	Delete(ctx context.Context, ledgerID string, voucherID string, userID string) error

	// ImportBatch drives a batch of import voucher specs through the
	// standard draft/posting/record contract, reporting per-voucher outcomes.
	ImportBatch(ctx context.Context, ledgerID string, req dto.ImportBatchRequest, userID string) (*dto.ImportBatchResponse, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces.
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherWriterSvc
}
