package services

import (
	"context"
	"fmt"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// openItemService is the read-only surface over the open-item subledger.
// All mutations flow through voucher commits.
type openItemService struct {
	openItemRepo  portsrepo.OpenItemReader
	accountRepo   portsrepo.AccountReader
	periodRepo    portsrepo.PeriodReader
	reportingRepo portsrepo.ReportingReader
}

// NewOpenItemService creates a new OpenItemService.
func NewOpenItemService(
	openItemRepo portsrepo.OpenItemReader,
	accountRepo portsrepo.AccountReader,
	periodRepo portsrepo.PeriodReader,
	reportingRepo portsrepo.ReportingReader,
) portssvc.OpenItemSvcFacade {
	return &openItemService{
		openItemRepo:  openItemRepo,
		accountRepo:   accountRepo,
		periodRepo:    periodRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure openItemService implements the portssvc.OpenItemSvcFacade interface
var _ portssvc.OpenItemSvcFacade = (*openItemService)(nil)

// GetItemByID retrieves a single open item, verifying ledger ownership.
func (s *openItemService) GetItemByID(ctx context.Context, ledgerID string, itemID string) (*domain.OpenItem, error) {
	item, err := s.openItemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}
	return item, nil
}

// trackingAccount resolves the account and checks it tracks open items.
func (s *openItemService) trackingAccount(ctx context.Context, ledgerID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}
	if !account.TracksOpenItems {
		return nil, fmt.Errorf("%w: account %s does not track open items", apperrors.ErrValidation, account.Number)
	}
	return account, nil
}

// ListItemsByAccount retrieves an account's open items.
func (s *openItemService) ListItemsByAccount(ctx context.Context, ledgerID string, accountID string, includeSettled bool) ([]domain.OpenItem, error) {
	if _, err := s.trackingAccount(ctx, ledgerID, accountID); err != nil {
		return nil, err
	}
	return s.openItemRepo.ListItemsByAccount(ctx, accountID, includeSettled)
}

// Reconcile compares the subledger total of an account against its ledger
// balance over the ledger's full lifetime. The two always match while every
// posting on the account carries an open-item resolution.
func (s *openItemService) Reconcile(ctx context.Context, ledgerID string, accountID string) (*dto.ReconciliationResponse, error) {
	account, err := s.trackingAccount(ctx, ledgerID, accountID)
	if err != nil {
		return nil, err
	}

	subledgerTotal, err := s.openItemRepo.SubledgerTotal(ctx, accountID)
	if err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListPeriods(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: ledger has no fiscal periods", apperrors.ErrIncompleteData)
	}

	start := periods[0].StartDate
	end := periods[len(periods)-1].EndDate
	ledgerBalance, err := s.reportingRepo.AccountBalance(ctx, ledgerID, account.AccountID, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.ReconciliationResponse{
		AccountID:      accountID,
		SubledgerTotal: subledgerTotal,
		LedgerBalance:  ledgerBalance,
		Matches:        subledgerTotal.Equal(ledgerBalance),
	}, nil
}
