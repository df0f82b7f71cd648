package repositories

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingReader is the read-only query surface backing reports and the
// archive snapshot. It never mutates anything.
type ReportingReader interface {
	// FindPostings retrieves recorded postings matching the filter, joined
	// with their voucher headers, ordered by date and voucher number.
	FindPostings(ctx context.Context, ledgerID string, filter domain.PostingFilter) ([]domain.ReportPosting, error)

	// AccountBalance computes an account's balance over [start, end] from its
	// recorded postings. Callers pick the range per account type: balance
	// sheet accounts accumulate from the ledger's first day, result accounts
	// from the enclosing fiscal period's start.
	AccountBalance(ctx context.Context, ledgerID string, accountID string, start, end time.Time) (decimal.Decimal, error)

	// TrialBalance computes per-account debit/credit sums over the range.
	TrialBalance(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.TrialBalanceRow, error)
}

// ReportingRepositoryFacade is the facade over the reporting reader.
type ReportingRepositoryFacade interface {
	ReportingReader
}
