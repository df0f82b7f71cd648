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

// ledgerService manages set-of-books configuration.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateLedger initializes a new set of books.
func (s *ledgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creatorUserID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	scheme := domain.NumberingScheme(req.NumberingScheme)
	switch scheme {
	case domain.SchemeSingle, domain.SchemeByType, domain.SchemeCashSeparate:
	default:
		return nil, fmt.Errorf("%w: unknown numbering scheme %q", apperrors.ErrValidation, req.NumberingScheme)
	}
	basis := domain.VatBasis(req.VatBasis)
	switch basis {
	case domain.BasisInvoice, domain.BasisCash:
	default:
		return nil, fmt.Errorf("%w: unknown VAT basis %q", apperrors.ErrValidation, req.VatBasis)
	}
	if basis == domain.BasisCash && (req.VatClearingSales == "" || req.VatClearingPurchase == "") {
		return nil, fmt.Errorf("%w: cash basis requires both VAT clearing accounts", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	ledger := domain.Ledger{
		LedgerID:            uuid.NewString(),
		Name:                req.Name,
		BusinessID:          req.BusinessID,
		CurrencyCode:        req.CurrencyCode,
		NumberingScheme:     scheme,
		VatBasis:            basis,
		VatClearingSales:    req.VatClearingSales,
		VatClearingPurchase: req.VatClearingPurchase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		logger.Error("Failed to save ledger", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("name", ledger.Name))
	return &ledger, nil
}

// GetLedgerByID retrieves the ledger configuration.
func (s *ledgerService) GetLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	return s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
}

// UpdateLedger updates mutable ledger metadata. Once a voucher has been
// recorded the numbering scheme and VAT basis are frozen: a changed value is
// rejected rather than silently renumbering history.
func (s *ledgerService) UpdateLedger(ctx context.Context, ledgerID string, req dto.UpdateLedgerRequest, userID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	schemeChanged := req.NumberingScheme != nil && domain.NumberingScheme(*req.NumberingScheme) != ledger.NumberingScheme
	basisChanged := req.VatBasis != nil && domain.VatBasis(*req.VatBasis) != ledger.VatBasis
	if schemeChanged || basisChanged {
		hasRecorded, err := s.ledgerRepo.HasRecordedVouchers(ctx, ledgerID)
		if err != nil {
			return nil, err
		}
		if hasRecorded {
			logger.Warn("Rejected numbering/VAT basis change on active ledger", slog.String("ledger_id", ledgerID))
			return nil, fmt.Errorf("%w: numbering scheme and VAT basis are fixed once vouchers exist", apperrors.ErrConflict)
		}
	}

	if req.Name != nil {
		ledger.Name = *req.Name
	}
	if req.BusinessID != nil {
		ledger.BusinessID = *req.BusinessID
	}
	if req.NumberingScheme != nil {
		ledger.NumberingScheme = domain.NumberingScheme(*req.NumberingScheme)
	}
	if req.VatBasis != nil {
		ledger.VatBasis = domain.VatBasis(*req.VatBasis)
	}
	if req.VatClearingSales != nil {
		ledger.VatClearingSales = *req.VatClearingSales
	}
	if req.VatClearingPurchase != nil {
		ledger.VatClearingPurchase = *req.VatClearingPurchase
	}
	if ledger.RequiresClearingAccounts() && (ledger.VatClearingSales == "" || ledger.VatClearingPurchase == "") {
		return nil, fmt.Errorf("%w: cash basis requires both VAT clearing accounts", apperrors.ErrValidation)
	}

	ledger.LastUpdatedAt = time.Now().UTC()
	ledger.LastUpdatedBy = userID

	if err := s.ledgerRepo.UpdateLedger(ctx, *ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}
