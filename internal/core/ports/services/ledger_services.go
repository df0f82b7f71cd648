package services

import (
	"context"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// LedgerSvcFacade manages set-of-books configuration.
type LedgerSvcFacade interface {
	// CreateLedger initializes a new set of books. Numbering scheme and VAT
	// basis are fixed once the first voucher is recorded.
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creatorUserID string) (*domain.Ledger, error)

	// GetLedgerByID retrieves the ledger configuration.
	GetLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// UpdateLedger updates mutable ledger metadata.
	UpdateLedger(ctx context.Context, ledgerID string, req dto.UpdateLedgerRequest, userID string) (*domain.Ledger, error)
}
