package repositories

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its surrogate key.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its number within a ledger.
	FindAccountByNumber(ctx context.Context, ledgerID string, number string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts for a ledger, ordered by number.
	ListAccounts(ctx context.Context, ledgerID string, includeHidden bool) ([]domain.Account, error)

	// IsReferenced reports whether any posting references the account.
	IsReferenced(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicateNumber
	// if the number is already defined in the ledger.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// HideAccount marks an account hidden. There is no delete.
	HideAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
