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
)

// periodService drives the fiscal period state machine and the advisory
// archive snapshot taken on lock.
type periodService struct {
	periodRepo   portsrepo.PeriodRepositoryFacade
	voucherRepo  portsrepo.VoucherReader
	vatRepo      portsrepo.VatReturnReader
	reportingSvc portssvc.ReportingSvcFacade
	archiver     portssvc.PeriodArchiver
}

// PeriodServiceOption configures optional collaborators of the period service.
type PeriodServiceOption func(*periodService)

// WithArchiver wires the archive store used for the lock-time snapshot. Without
// it the snapshot is skipped and the archive status reports FAILED.
func WithArchiver(archiver portssvc.PeriodArchiver) PeriodServiceOption {
	return func(s *periodService) {
		s.archiver = archiver
	}
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(
	periodRepo portsrepo.PeriodRepositoryFacade,
	voucherRepo portsrepo.VoucherReader,
	vatRepo portsrepo.VatReturnReader,
	reportingSvc portssvc.ReportingSvcFacade,
	opts ...PeriodServiceOption,
) portssvc.PeriodSvcFacade {
	svc := &periodService{
		periodRepo:   periodRepo,
		voucherRepo:  voucherRepo,
		vatRepo:      vatRepo,
		reportingSvc: reportingSvc,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Ensure periodService implements the portssvc.PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// GetPeriodByID retrieves a fiscal period, verifying ledger ownership.
func (s *periodService) GetPeriodByID(ctx context.Context, ledgerID string, periodID string) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}
	return period, nil
}

// GetPeriodForDate retrieves the period containing the date.
func (s *periodService) GetPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriodForDate(ctx, ledgerID, date)
}

// ListPeriods retrieves all periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, ledgerID string) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, ledgerID)
}

// AddPeriod appends a fiscal period. Periods must stay contiguous and
// non-overlapping, so the new range has to touch the existing chain at one
// end exactly.
func (s *periodService) AddPeriod(ctx context.Context, ledgerID string, req dto.CreatePeriodRequest, userID string) (*domain.FiscalPeriod, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end must be after its start", apperrors.ErrValidation)
	}

	existing, err := s.periodRepo.ListPeriods(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		first := existing[0]
		last := existing[len(existing)-1]
		prepends := req.EndDate.AddDate(0, 0, 1).Equal(first.StartDate)
		appends := req.StartDate.Equal(last.EndDate.AddDate(0, 0, 1))
		if !prepends && !appends {
			return nil, fmt.Errorf("%w: period %s..%s does not join the existing chain %s..%s",
				apperrors.ErrOverlap,
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
				first.StartDate.Format("2006-01-02"), last.EndDate.Format("2006-01-02"))
		}
		if req.Opening && !prepends {
			return nil, fmt.Errorf("%w: only the first period can be the opening period", apperrors.ErrValidation)
		}
		if req.Opening && first.Opening {
			return nil, fmt.Errorf("%w: ledger already has an opening period", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	period := domain.FiscalPeriod{
		PeriodID:      uuid.NewString(),
		LedgerID:      ledgerID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		State:         domain.PeriodOpen,
		Opening:       req.Opening,
		ArchiveStatus: domain.ArchiveNone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		return nil, err
	}
	return &period, nil
}

// LockWarnings surfaces the advisory conditions outstanding for a period.
func (s *periodService) LockWarnings(ctx context.Context, ledgerID string, periodID string) ([]domain.PeriodWarning, error) {
	period, err := s.GetPeriodByID(ctx, ledgerID, periodID)
	if err != nil {
		return nil, err
	}

	warnings := []domain.PeriodWarning{}

	drafts, err := s.voucherRepo.CountDraftVouchersInRange(ctx, ledgerID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	if drafts > 0 {
		warnings = append(warnings, domain.PeriodWarning{
			Code:    domain.WarnDraftVouchers,
			Message: fmt.Sprintf("%d draft vouchers are dated inside the period", drafts),
		})
	}

	taxable, err := s.vatRepo.FindTaxablePostings(ctx, ledgerID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, err
	}
	if len(taxable) > 0 {
		unsealed := false
		for _, p := range taxable {
			if p.Vat != nil && !p.Vat.Sealed {
				unsealed = true
				break
			}
		}
		if unsealed {
			warnings = append(warnings, domain.PeriodWarning{
				Code:    domain.WarnUnfiledVatReturn,
				Message: "taxable postings in the period are not covered by a filed VAT return",
			})
		}
	}

	return warnings, nil
}

// Lock transitions an open period to LOCKED. Warnings never block the lock,
// but locking past them requires an explicit acknowledgment that is recorded
// on the period. The lock kicks off an asynchronous archive snapshot whose
// outcome is advisory.
func (s *periodService) Lock(ctx context.Context, ledgerID string, periodID string, acknowledgeWarnings bool, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.GetPeriodByID(ctx, ledgerID, periodID)
	if err != nil {
		return nil, err
	}
	if period.State != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period is %s", apperrors.ErrConflict, period.State)
	}

	warnings, err := s.LockWarnings(ctx, ledgerID, periodID)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 && !acknowledgeWarnings {
		return nil, fmt.Errorf("%w: %d warnings outstanding", apperrors.ErrIncompleteVoucherCheck, len(warnings))
	}

	now := time.Now().UTC()
	period.State = domain.PeriodLocked
	period.ArchiveStatus = domain.ArchiveRequested
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	if len(warnings) > 0 {
		period.LockAcknowledgedBy = userID
		period.LockAcknowledgedAt = &now
	}

	if err := s.periodRepo.UpdatePeriodState(ctx, *period); err != nil {
		return nil, err
	}

	logger.Info("Period locked",
		slog.String("period_id", periodID),
		slog.Int("acknowledged_warnings", len(warnings)))

	go s.archivePeriod(context.WithoutCancel(ctx), ledgerID, periodID, userID)

	return period, nil
}

// archivePeriod builds the read-only snapshot of a locked period and stores
// it. It runs outside the lock transaction; a failure leaves the period
// locked with an advisory FAILED status.
func (s *periodService) archivePeriod(ctx context.Context, ledgerID string, periodID string, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if s.archiver == nil {
		_ = s.periodRepo.UpdateArchiveStatus(ctx, periodID, domain.ArchiveFailed, "", userID, now)
		logger.Warn("No archive store configured, period snapshot skipped", slog.String("period_id", periodID))
		return
	}

	snapshot, err := s.reportingSvc.PeriodSnapshot(ctx, ledgerID, periodID)
	if err != nil {
		logger.Error("Failed to build period snapshot", slog.String("period_id", periodID), slog.String("error", err.Error()))
		_ = s.periodRepo.UpdateArchiveStatus(ctx, periodID, domain.ArchiveFailed, "", userID, time.Now().UTC())
		return
	}

	ref, err := s.archiver.Store(ctx, ledgerID, periodID, snapshot)
	if err != nil {
		logger.Error("Failed to store period snapshot", slog.String("period_id", periodID), slog.String("error", err.Error()))
		_ = s.periodRepo.UpdateArchiveStatus(ctx, periodID, domain.ArchiveFailed, "", userID, time.Now().UTC())
		return
	}

	if err := s.periodRepo.UpdateArchiveStatus(ctx, periodID, domain.ArchiveDone, ref, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to record archive status", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return
	}
	logger.Info("Period archived", slog.String("period_id", periodID), slog.String("archive_ref", ref))
}

// Unlock returns a locked period to OPEN. An archived period stays closed for
// good, and a finalized statement freezes the period as well.
func (s *periodService) Unlock(ctx context.Context, ledgerID string, periodID string, userID string) (*domain.FiscalPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.GetPeriodByID(ctx, ledgerID, periodID)
	if err != nil {
		return nil, err
	}
	if period.State == domain.PeriodArchived {
		return nil, fmt.Errorf("%w: an archived period cannot be reopened", apperrors.ErrConflict)
	}
	if period.State != domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period is %s", apperrors.ErrConflict, period.State)
	}
	if period.StatementFinalized {
		return nil, apperrors.ErrStatementFinalized
	}

	period.State = domain.PeriodOpen
	period.LastUpdatedAt = time.Now().UTC()
	period.LastUpdatedBy = userID

	if err := s.periodRepo.UpdatePeriodState(ctx, *period); err != nil {
		return nil, err
	}

	logger.Info("Period unlocked", slog.String("period_id", periodID), slog.String("user_id", userID))
	return period, nil
}

// SetStatement links the financial-statement artifact to a locked period.
// Finalizing the statement freezes the period against unlocking.
func (s *periodService) SetStatement(ctx context.Context, ledgerID string, periodID string, req dto.SetStatementRequest, userID string) (*domain.FiscalPeriod, error) {
	period, err := s.GetPeriodByID(ctx, ledgerID, periodID)
	if err != nil {
		return nil, err
	}
	if period.State == domain.PeriodOpen {
		return nil, fmt.Errorf("%w: statement requires a locked period", apperrors.ErrConflict)
	}
	if period.StatementFinalized {
		return nil, apperrors.ErrStatementFinalized
	}

	now := time.Now().UTC()
	if err := s.periodRepo.SetStatement(ctx, periodID, req.StatementRef, req.Finalized, userID, now); err != nil {
		return nil, err
	}

	period.StatementRef = req.StatementRef
	period.StatementFinalized = req.Finalized
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID
	return period, nil
}

// UpdateHeadcount stores the average-headcount reporting metadata.
func (s *periodService) UpdateHeadcount(ctx context.Context, ledgerID string, periodID string, headcount int, userID string) error {
	if headcount < 0 {
		return fmt.Errorf("%w: headcount cannot be negative", apperrors.ErrValidation)
	}
	period, err := s.GetPeriodByID(ctx, ledgerID, periodID)
	if err != nil {
		return err
	}
	if period.State == domain.PeriodArchived {
		return fmt.Errorf("%w: period is archived", apperrors.ErrConflict)
	}
	return s.periodRepo.UpdateHeadcount(ctx, periodID, headcount, userID, time.Now().UTC())
}
