package repositories

import (
	"context"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger configuration
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger's configuration by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// HasRecordedVouchers reports whether any voucher has been recorded in the
	// ledger. Numbering scheme and VAT basis are frozen once this is true.
	HasRecordedVouchers(ctx context.Context, ledgerID string) (bool, error)
}

// LedgerWriter defines write operations for ledger configuration
type LedgerWriter interface {
	// SaveLedger persists a new ledger.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error

	// UpdateLedger updates ledger metadata (name, business id, clearing accounts).
	UpdateLedger(ctx context.Context, ledger domain.Ledger) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
