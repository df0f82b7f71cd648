package repositories

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// VatRateReader defines read operations for versioned VAT rates
type VatRateReader interface {
	// FindRateForDate retrieves the rate version of a class effective on the
	// date, or apperrors.ErrNoRateForDate when no version covers it.
	FindRateForDate(ctx context.Context, ledgerID string, class domain.VatClass, date time.Time) (*domain.VatRate, error)

	// ListRates retrieves all rate versions of a ledger.
	ListRates(ctx context.Context, ledgerID string) ([]domain.VatRate, error)
}

// VatRateWriter defines write operations for versioned VAT rates
type VatRateWriter interface {
	// SaveRate persists a new rate version, closing the previous open-ended
	// version of the same class at effectiveFrom-1 day.
	SaveRate(ctx context.Context, rate domain.VatRate) error
}

// VatReturnReader defines read operations for VAT returns
type VatReturnReader interface {
	// FindReturnOverlapping retrieves a filed return whose range intersects
	// [start, end], if one exists.
	FindReturnOverlapping(ctx context.Context, ledgerID string, start, end time.Time) (*domain.VatReturn, error)

	// ListReturns retrieves the ledger's returns ordered by period start.
	ListReturns(ctx context.Context, ledgerID string) ([]domain.VatReturn, error)

	// FindTaxablePostings retrieves recorded postings carrying a VAT
	// annotation and dated inside the range.
	FindTaxablePostings(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error)

	// FindTaxablePostingsByPaymentDate retrieves recorded postings carrying a
	// VAT annotation whose voucher was settled inside the range. A voucher
	// without open-item tracking settles on its own date; one that opens items
	// settles when the last of them is fully applied.
	FindTaxablePostingsByPaymentDate(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error)
}

// VatReturnWriter defines write operations for VAT returns
type VatReturnWriter interface {
	// SaveReturnAndSeal stores a filed return and marks the annotations of
	// every covered posting sealed, in one transaction.
	SaveReturnAndSeal(ctx context.Context, ret domain.VatReturn) error
}

// VatRepositoryFacade combines all VAT-related repository interfaces.
type VatRepositoryFacade interface {
	VatRateReader
	VatRateWriter
	VatReturnReader
	VatReturnWriter
}
