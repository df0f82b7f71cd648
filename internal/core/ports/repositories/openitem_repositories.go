package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenItemReader defines read operations for the open-item subledger
type OpenItemReader interface {
	// FindItemByID retrieves a single open item.
	FindItemByID(ctx context.Context, itemID string) (*domain.OpenItem, error)

	// FindItemsByIDs retrieves multiple open items by their IDs.
	FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.OpenItem, error)

	// ListItemsByAccount retrieves the open items of one account's subledger.
	ListItemsByAccount(ctx context.Context, accountID string, includeSettled bool) ([]domain.OpenItem, error)

	// SubledgerTotal sums the running balances of an account's open items.
	// The invariant is that this equals the account's tracked balance.
	SubledgerTotal(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// OpenItemTransactionSupport applies subledger mutations inside a caller-owned
// database transaction. Items are never mutated outside a voucher commit, so
// there is no standalone write surface.
type OpenItemTransactionSupport interface {
	// ApplyMutationsInTx applies open/apply mutations under row locks. An
	// application that would flip an item's sign without the overpayment flag
	// fails with apperrors.ErrOverApplication; items reaching zero are marked
	// settled.
	ApplyMutationsInTx(ctx context.Context, tx pgx.Tx, mutations []domain.OpenItemMutation, userID string, now time.Time) error
}

// OpenItemRepositoryFacade combines all open-item repository interfaces.
type OpenItemRepositoryFacade interface {
	OpenItemReader
	OpenItemTransactionSupport
}
