package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/kirjuri-app/kirjuri_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	periodRepo    portsrepo.PeriodReader
	reportingRepo portsrepo.ReportingReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithPeriodReader adds the period reader used for balance range resolution
func WithPeriodReader(repo portsrepo.PeriodReader) AccountServiceOption {
	return func(s *accountService) {
		s.periodRepo = repo
	}
}

// WithReportingReader adds the reporting reader used for balance computation
func WithReportingReader(repo portsrepo.ReportingReader) AccountServiceOption {
	return func(s *accountService) {
		s.reportingRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// DefineAccount adds an account to the chart.
func (s *accountService) DefineAccount(ctx context.Context, ledgerID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	vatClass := domain.VatClass(req.VatClass)
	if vatClass == "" {
		vatClass = domain.VatNone
	}
	depMethod := domain.DepreciationMethod(req.DepreciationMethod)
	if depMethod == "" {
		depMethod = domain.DepreciationNone
	}
	if depMethod != domain.DepreciationNone && req.DepreciationPercent.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: depreciation percent must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:           uuid.NewString(),
		LedgerID:            ledgerID,
		Number:              req.Number,
		Name:                req.Name,
		Type:                domain.AccountType(req.Type),
		VatClass:            vatClass,
		GrossAmounts:        req.GrossAmounts,
		TracksOpenItems:     req.TracksOpenItems,
		CounterAccount:      req.CounterAccount,
		DepreciationMethod:  depMethod,
		DepreciationPercent: req.DepreciationPercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Warn("Failed to define account", slog.String("number", req.Number), slog.String("error", err.Error()))
		return nil, err
	}
	return &account, nil
}

// GetAccountByID retrieves an account, verifying ledger ownership.
func (s *accountService) GetAccountByID(ctx context.Context, ledgerID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by its number.
func (s *accountService) GetAccountByNumber(ctx context.Context, ledgerID string, number string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, ledgerID, number)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID, all scoped to the ledger.
func (s *accountService) GetAccountsByIDs(ctx context.Context, ledgerID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for id, acc := range accounts {
		if acc.LedgerID != ledgerID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves the chart of accounts ordered by number.
func (s *accountService) ListAccounts(ctx context.Context, ledgerID string, includeHidden bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, ledgerID, includeHidden)
}

// BalanceAsOf computes the account balance on a date. Balance-sheet accounts
// accumulate from the ledger's first fiscal day; result accounts restart at
// zero each period, so their range starts at the enclosing period's start.
func (s *accountService) BalanceAsOf(ctx context.Context, ledgerID string, accountID string, date time.Time) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, ledgerID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	var start time.Time
	if account.Type.IsBalanceSheet() {
		periods, err := s.periodRepo.ListPeriods(ctx, ledgerID)
		if err != nil {
			return decimal.Zero, err
		}
		if len(periods) == 0 {
			return decimal.Zero, fmt.Errorf("%w: ledger has no fiscal periods", apperrors.ErrIncompleteData)
		}
		start = periods[0].StartDate
	} else {
		period, err := s.periodRepo.FindPeriodForDate(ctx, ledgerID, date)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: no fiscal period covers %s", apperrors.ErrPeriodDateOutOfRange, date.Format("2006-01-02"))
		}
		start = period.StartDate
	}

	return s.reportingRepo.AccountBalance(ctx, ledgerID, accountID, start, date)
}

// UpdateAccount updates name/counter-account/visibility metadata.
func (s *accountService) UpdateAccount(ctx context.Context, ledgerID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, ledgerID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.CounterAccount != nil {
		account.CounterAccount = *req.CounterAccount
	}
	if req.Hidden != nil {
		account.Hidden = *req.Hidden
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// ReclassifyAccount changes the VAT class for future postings. Recorded
// postings keep the annotations computed under the old class.
func (s *accountService) ReclassifyAccount(ctx context.Context, ledgerID string, accountID string, req dto.ReclassifyAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, ledgerID, accountID)
	if err != nil {
		return nil, err
	}

	account.VatClass = domain.VatClass(req.VatClass)
	if req.GrossAmounts != nil {
		account.GrossAmounts = *req.GrossAmounts
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	logger.Info("Account reclassified",
		slog.String("account_id", accountID),
		slog.String("vat_class", req.VatClass))
	return account, nil
}

// HideAccount hides an account from entry. Referenced accounts are never
// deleted, only hidden, so historical vouchers keep resolving.
func (s *accountService) HideAccount(ctx context.Context, ledgerID string, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, ledgerID, accountID); err != nil {
		return err
	}
	return s.accountRepo.HideAccount(ctx, accountID, userID, time.Now().UTC())
}
