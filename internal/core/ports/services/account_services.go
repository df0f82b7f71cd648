package services

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by its surrogate key.
	GetAccountByID(ctx context.Context, ledgerID string, accountID string) (*domain.Account, error)

	// GetAccountByNumber retrieves an account by its number.
	GetAccountByNumber(ctx context.Context, ledgerID string, number string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, ledgerID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by number.
	ListAccounts(ctx context.Context, ledgerID string, includeHidden bool) ([]domain.Account, error)

	// BalanceAsOf computes the account balance on a date. Balance-sheet
	// accounts accumulate from the ledger's start, result accounts within the
	// date's fiscal period.
	BalanceAsOf(ctx context.Context, ledgerID string, accountID string, date time.Time) (decimal.Decimal, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// DefineAccount adds an account to the chart. Fails with
	// apperrors.ErrDuplicateNumber if the number is taken.
	DefineAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates name/counter-account/visibility metadata.
	UpdateAccount(ctx context.Context, ledgerID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// ReclassifyAccount changes the VAT class for future postings. Recorded
	// postings keep the annotations computed under the old class.
	ReclassifyAccount(ctx context.Context, ledgerID string, accountID string, req dto.ReclassifyAccountRequest, userID string) (*domain.Account, error)

	// HideAccount hides an account from entry. Referenced accounts are never
	// deleted, only hidden.
	HideAccount(ctx context.Context, ledgerID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
