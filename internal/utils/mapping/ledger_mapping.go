package mapping

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		LedgerID:            d.LedgerID,
		Name:                d.Name,
		BusinessID:          d.BusinessID,
		CurrencyCode:        d.CurrencyCode,
		NumberingScheme:     models.NumberingScheme(d.NumberingScheme),
		VatBasis:            models.VatBasis(d.VatBasis),
		VatClearingSales:    d.VatClearingSales,
		VatClearingPurchase: d.VatClearingPurchase,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedger converts a model Ledger to a domain Ledger
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:            m.LedgerID,
		Name:                m.Name,
		BusinessID:          m.BusinessID,
		CurrencyCode:        m.CurrencyCode,
		NumberingScheme:     domain.NumberingScheme(m.NumberingScheme),
		VatBasis:            domain.VatBasis(m.VatBasis),
		VatClearingSales:    m.VatClearingSales,
		VatClearingPurchase: m.VatClearingPurchase,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
