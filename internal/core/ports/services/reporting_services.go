package services

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// ReportingSvcFacade is the read-only query surface for reporting and
// printing collaborators. There is no mutation path.
type ReportingSvcFacade interface {
	// Postings retrieves recorded postings by date range, account, and
	// allocation, joined with their voucher headers.
	Postings(ctx context.Context, ledgerID string, params dto.PostingQueryParams) ([]domain.ReportPosting, error)

	// TrialBalance computes per-account debit/credit totals over a range.
	TrialBalance(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.TrialBalanceRow, error)

	// PeriodSnapshot builds the read-only export of a period for archival:
	// the ledger configuration, chart of accounts, trial balance, and every
	// recorded posting of the range, encoded as JSON.
	PeriodSnapshot(ctx context.Context, ledgerID string, periodID string) ([]byte, error)
}
