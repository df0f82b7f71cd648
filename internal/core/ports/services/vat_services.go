package services

import (
	"context"
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// VatAnnotatorSvc computes per-posting tax. Used by the voucher store when a
// posting lands on a taxable account.
type VatAnnotatorSvc interface {
	// Annotate computes the VAT annotation for an amount posted on the given
	// account at the given date. Gross-amount accounts have the tax derived
	// out of the amount, net accounts have it added on top. Fails with
	// apperrors.ErrNoRateForDate when no rate version covers the date.
	Annotate(ctx context.Context, ledger *domain.Ledger, account *domain.Account, amount decimal.Decimal, date time.Time) (*domain.VatAnnotation, error)
}

// VatReturnSvc builds and files periodic VAT returns.
type VatReturnSvc interface {
	// BuildReturn aggregates the recorded postings of the range into a
	// payable/refundable total with a per-rate breakdown. Fails with
	// apperrors.ErrIncompleteData if the ledger's VAT basis requires clearing
	// accounts that are absent from the chart.
	BuildReturn(ctx context.Context, ledgerID string, periodStart, periodEnd time.Time) (*domain.VatReturn, error)

	// FileReturn seals the return: stores it, marks the covered postings
	// VAT-immutable, and fails with apperrors.ErrAlreadyFiled when a filed
	// return already covers any part of the range.
	FileReturn(ctx context.Context, ledgerID string, req dto.BuildVatReturnRequest, userID string) (*domain.VatReturn, error)

	// ListReturns retrieves the ledger's filed returns.
	ListReturns(ctx context.Context, ledgerID string) ([]domain.VatReturn, error)
}

// VatRateSvc manages versioned rates.
type VatRateSvc interface {
	// CreateRate adds a rate version effective from the given date.
	CreateRate(ctx context.Context, ledgerID string, req dto.CreateVatRateRequest, userID string) (*domain.VatRate, error)

	// ListRates retrieves all rate versions.
	ListRates(ctx context.Context, ledgerID string) ([]domain.VatRate, error)
}

// VatSvcFacade combines all VAT engine interfaces.
type VatSvcFacade interface {
	VatAnnotatorSvc
	VatReturnSvc
	VatRateSvc
}
