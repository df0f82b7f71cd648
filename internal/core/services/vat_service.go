package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/kirjuri-app/kirjuri_backend/internal/middleware"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// vatService implements the VAT engine: per-posting annotation, versioned
// rates, and periodic returns.
type vatService struct {
	vatRepo     portsrepo.VatRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
	accountRepo portsrepo.AccountReader
}

// NewVatService creates a new VatService.
func NewVatService(vatRepo portsrepo.VatRepositoryFacade, ledgerRepo portsrepo.LedgerReader, accountRepo portsrepo.AccountReader) portssvc.VatSvcFacade {
	return &vatService{
		vatRepo:     vatRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure vatService implements the portssvc.VatSvcFacade interface
var _ portssvc.VatSvcFacade = (*vatService)(nil)

// Annotate computes the VAT annotation for an amount posted on the given
// account at the given date. Gross-amount accounts carry tax-inclusive
// figures, so the tax is derived out of the amount; net accounts have it
// computed on top.
func (s *vatService) Annotate(ctx context.Context, ledger *domain.Ledger, account *domain.Account, amount decimal.Decimal, date time.Time) (*domain.VatAnnotation, error) {
	class := account.VatClass
	if !class.Taxable() {
		return nil, nil
	}

	rate, err := s.vatRepo.FindRateForDate(ctx, ledger.LedgerID, class, date)
	if err != nil {
		return nil, err
	}

	annotation := &domain.VatAnnotation{
		Class:      class,
		Percent:    rate.Percent,
		Deductible: class.Deductible(),
	}
	if account.GrossAmounts {
		annotation.Tax = accounting.VatFromGross(amount, rate.Percent)
		annotation.Basis = amount.Sub(annotation.Tax)
	} else {
		annotation.Basis = amount
		annotation.Tax = accounting.VatFromNet(amount, rate.Percent)
	}
	return annotation, nil
}

// CreateRate adds a rate version effective from the given date, closing the
// previous open-ended version of the same class.
func (s *vatService) CreateRate(ctx context.Context, ledgerID string, req dto.CreateVatRateRequest, userID string) (*domain.VatRate, error) {
	if req.Percent.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: VAT percent must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.VatRate{
		RateID:        uuid.NewString(),
		LedgerID:      ledgerID,
		Class:         domain.VatClass(req.Class),
		Percent:       req.Percent,
		EffectiveFrom: req.EffectiveFrom,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.vatRepo.SaveRate(ctx, rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListRates retrieves all rate versions.
func (s *vatService) ListRates(ctx context.Context, ledgerID string) ([]domain.VatRate, error) {
	return s.vatRepo.ListRates(ctx, ledgerID)
}

type vatLineKey struct {
	class   domain.VatClass
	percent string
}

// BuildReturn aggregates the recorded postings of the range into a payable and
// deductible total with a per-rate breakdown. Nothing is stored.
func (s *vatService) BuildReturn(ctx context.Context, ledgerID string, periodStart, periodEnd time.Time) (*domain.VatReturn, error) {
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("%w: return period ends before it starts", apperrors.ErrValidation)
	}

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if ledger.RequiresClearingAccounts() {
		// Cash basis parks tax on clearing accounts between invoice and
		// payment; the return cannot be built without them in the chart.
		for _, number := range []string{ledger.VatClearingSales, ledger.VatClearingPurchase} {
			if number == "" {
				return nil, apperrors.ErrIncompleteData
			}
			if _, err := s.accountRepo.FindAccountByNumber(ctx, ledgerID, number); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: clearing account %s missing from chart", apperrors.ErrIncompleteData, number)
				}
				return nil, err
			}
		}
	}

	var postings []domain.Posting
	if ledger.VatBasis == domain.BasisCash {
		// Cash basis recognizes tax when the invoice is settled, not when it
		// is booked. The query resolves each voucher's payment date from its
		// open items and filters on that instead of the voucher date.
		postings, err = s.vatRepo.FindTaxablePostingsByPaymentDate(ctx, ledgerID, periodStart, periodEnd)
	} else {
		postings, err = s.vatRepo.FindTaxablePostings(ctx, ledgerID, periodStart, periodEnd)
	}
	if err != nil {
		return nil, err
	}

	payable := decimal.Zero
	deductible := decimal.Zero
	lineMap := make(map[vatLineKey]*domain.VatReturnLine)
	for _, p := range postings {
		if p.Vat == nil {
			continue
		}
		// A posting on the natural side of its class adds to the return; the
		// opposite side is a reversal (credit note, correction) and subtracts.
		// Sales classes post credit, deductible purchase classes post debit.
		sign := decimal.NewFromInt(1)
		if (p.Vat.Deductible && p.Side == domain.CreditSide) || (!p.Vat.Deductible && p.Side == domain.DebitSide) {
			sign = decimal.NewFromInt(-1)
		}
		tax := p.Vat.Tax.Mul(sign)
		basis := p.Vat.Basis.Mul(sign)
		if p.Vat.Deductible {
			deductible = deductible.Add(tax)
		} else {
			payable = payable.Add(tax)
		}
		key := vatLineKey{class: p.Vat.Class, percent: p.Vat.Percent.String()}
		line, ok := lineMap[key]
		if !ok {
			line = &domain.VatReturnLine{Class: p.Vat.Class, Percent: p.Vat.Percent}
			lineMap[key] = line
		}
		line.Basis = line.Basis.Add(basis)
		line.Tax = line.Tax.Add(tax)
	}

	lines := make([]domain.VatReturnLine, 0, len(lineMap))
	for _, line := range lineMap {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Class != lines[j].Class {
			return lines[i].Class < lines[j].Class
		}
		return lines[i].Percent.LessThan(lines[j].Percent)
	})

	return &domain.VatReturn{
		LedgerID:    ledgerID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		DueDate:     domain.VatReturnDueDate(periodEnd),
		Payable:     payable,
		Deductible:  deductible,
		Net:         payable.Sub(deductible),
		Lines:       lines,
	}, nil
}

// FileReturn seals the return: stores it and marks the covered postings
// VAT-immutable. A filed return covering any part of the range blocks refiling.
func (s *vatService) FileReturn(ctx context.Context, ledgerID string, req dto.BuildVatReturnRequest, userID string) (*domain.VatReturn, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.vatRepo.FindReturnOverlapping(ctx, ledgerID, req.PeriodStart, req.PeriodEnd)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyFiled
	}

	ret, err := s.BuildReturn(ctx, ledgerID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ret.ReturnID = uuid.NewString()
	ret.FiledAt = &now
	ret.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.vatRepo.SaveReturnAndSeal(ctx, *ret); err != nil {
		return nil, err
	}

	logger.Info("VAT return filed",
		slog.String("ledger_id", ledgerID),
		slog.String("return_id", ret.ReturnID),
		slog.String("net", ret.Net.StringFixed(2)))
	return ret, nil
}

// ListReturns retrieves the ledger's filed returns.
func (s *vatService) ListReturns(ctx context.Context, ledgerID string) ([]domain.VatReturn, error) {
	return s.vatRepo.ListReturns(ctx, ledgerID)
}
