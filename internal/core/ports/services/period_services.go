package services

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal periods
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a fiscal period.
	GetPeriodByID(ctx context.Context, ledgerID string, periodID string) (*domain.FiscalPeriod, error)

	// GetPeriodForDate retrieves the period containing the date.
	GetPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context, ledgerID string) ([]domain.FiscalPeriod, error)

	// LockWarnings surfaces the advisory conditions outstanding for a period:
	// an unfiled VAT return covering part of it, draft vouchers dated inside it.
	LockWarnings(ctx context.Context, ledgerID string, periodID string) ([]domain.PeriodWarning, error)
}

// PeriodWriterSvc drives the period state machine
type PeriodWriterSvc interface {
	// AddPeriod appends a fiscal period. Contiguity is enforced: the start
	// must be the day after the last period's end (or the end the day before
	// the first period's start). Fails with apperrors.ErrOverlap otherwise.
	AddPeriod(ctx context.Context, ledgerID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error)

	// Lock transitions an open period to LOCKED. Outstanding warnings must be
	// acknowledged (the acknowledgment is recorded); the lock triggers an
	// asynchronous archive snapshot whose outcome is advisory.
	Lock(ctx context.Context, ledgerID string, periodID string, acknowledgeWarnings bool, userID string) (*domain.FiscalPeriod, error)

	// Unlock returns a locked period to OPEN. Fails with
	// apperrors.ErrStatementFinalized once a statement is finalized for it.
	Unlock(ctx context.Context, ledgerID string, periodID string, userID string) (*domain.FiscalPeriod, error)

	// SetStatement links the financial-statement artifact; finalizing it
	// freezes the period against unlocking.
	SetStatement(ctx context.Context, ledgerID string, periodID string, req dto.SetStatementRequest, userID string) (*domain.FiscalPeriod, error)

	// UpdateHeadcount stores the average-headcount reporting metadata.
	UpdateHeadcount(ctx context.Context, ledgerID string, periodID string, headcount int, userID string) error
}

// PeriodSvcFacade combines all period-related service interfaces.
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}

// PeriodArchiver stores a point-in-time read-only export of a locked period
// and returns a reference to the stored artifact. Implementations run outside
// the ledger's transaction boundary; failures are advisory.
type PeriodArchiver interface {
	Store(ctx context.Context, ledgerID string, periodID string, snapshot []byte) (string, error)
}
