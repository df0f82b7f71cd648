package services

import (
	"context"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// OpenItemSvcFacade is the read-only surface over the open-item subledger.
// Mutations happen exclusively inside voucher commits.
type OpenItemSvcFacade interface {
	// GetItemByID retrieves a single open item.
	GetItemByID(ctx context.Context, ledgerID string, itemID string) (*domain.OpenItem, error)

	// ListItemsByAccount retrieves an account's open items.
	ListItemsByAccount(ctx context.Context, ledgerID string, accountID string, includeSettled bool) ([]domain.OpenItem, error)

	// Reconcile compares the subledger total of an account against its
	// ledger balance. The invariant is that they match.
	Reconcile(ctx context.Context, ledgerID string, accountID string) (*dto.ReconciliationResponse, error)
}
