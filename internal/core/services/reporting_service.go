package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// reportingService is the read-only query surface for reports and the period
// archive snapshot.
type reportingService struct {
	reportingRepo portsrepo.ReportingReader
	ledgerRepo    portsrepo.LedgerReader
	accountRepo   portsrepo.AccountReader
	periodRepo    portsrepo.PeriodReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	reportingRepo portsrepo.ReportingReader,
	ledgerRepo portsrepo.LedgerReader,
	accountRepo portsrepo.AccountReader,
	periodRepo portsrepo.PeriodReader,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		ledgerRepo:    ledgerRepo,
		accountRepo:   accountRepo,
		periodRepo:    periodRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Postings retrieves recorded postings matching the query.
func (s *reportingService) Postings(ctx context.Context, ledgerID string, params dto.PostingQueryParams) ([]domain.ReportPosting, error) {
	if params.EndDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: query range ends before it starts", apperrors.ErrValidation)
	}
	return s.reportingRepo.FindPostings(ctx, ledgerID, domain.PostingFilter{
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		AccountID:    params.AccountID,
		AllocationID: params.AllocationID,
	})
}

// TrialBalance computes per-account debit/credit totals over a range.
func (s *reportingService) TrialBalance(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range ends before it starts", apperrors.ErrValidation)
	}
	return s.reportingRepo.TrialBalance(ctx, ledgerID, start, end)
}

// periodSnapshot is the archival export of one locked period. The format is
// plain JSON so the artifact stays readable without this system.
type periodSnapshot struct {
	Ledger       domain.Ledger           `json:"ledger"`
	Period       domain.FiscalPeriod     `json:"period"`
	Accounts     []domain.Account        `json:"accounts"`
	TrialBalance []domain.TrialBalanceRow `json:"trialBalance"`
	Postings     []domain.ReportPosting  `json:"postings"`
	GeneratedAt  time.Time               `json:"generatedAt"`
}

// PeriodSnapshot builds the read-only export of a period for archival.
func (s *reportingService) PeriodSnapshot(ctx context.Context, ledgerID string, periodID string) ([]byte, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, ledgerID, true)
	if err != nil {
		return nil, err
	}

	trialBalance, err := s.reportingRepo.TrialBalance(ctx, ledgerID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}

	postings, err := s.reportingRepo.FindPostings(ctx, ledgerID, domain.PostingFilter{
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
	})
	if err != nil {
		return nil, err
	}

	snapshot := periodSnapshot{
		Ledger:       *ledger,
		Period:       *period,
		Accounts:     accounts,
		TrialBalance: trialBalance,
		Postings:     postings,
		GeneratedAt:  time.Now().UTC(),
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode period snapshot", err)
	}
	return data, nil
}
