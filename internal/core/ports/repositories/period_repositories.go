package repositories

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// PeriodReader defines read operations for fiscal periods
type PeriodReader interface {
	// FindPeriodByID retrieves a fiscal period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period containing the given date, or
	// apperrors.ErrNotFound if no period covers it.
	FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods of a ledger ordered by start date.
	ListPeriods(ctx context.Context, ledgerID string) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal periods
type PeriodWriter interface {
	// SavePeriod persists a new fiscal period.
	SavePeriod(ctx context.Context, period domain.FiscalPeriod) error

	// UpdatePeriodState transitions the period's state under a row lock,
	// recording the lock acknowledgment when present.
	UpdatePeriodState(ctx context.Context, period domain.FiscalPeriod) error

	// UpdateArchiveStatus records the advisory outcome of an archive request.
	UpdateArchiveStatus(ctx context.Context, periodID string, status domain.ArchiveStatus, ref string, userID string, now time.Time) error

	// SetStatement links the financial-statement artifact and its finalized flag.
	SetStatement(ctx context.Context, periodID string, ref string, finalized bool, userID string, now time.Time) error

	// UpdateHeadcount stores the average-headcount reporting metadata.
	UpdateHeadcount(ctx context.Context, periodID string, headcount int, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
