package mapping

import (
	"encoding/json"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelVatRate converts a domain VatRate to a model VatRate
func ToModelVatRate(d domain.VatRate) models.VatRate {
	return models.VatRate{
		RateID:        d.RateID,
		LedgerID:      d.LedgerID,
		Class:         models.VatClass(d.Class),
		Percent:       d.Percent,
		EffectiveFrom: d.EffectiveFrom,
		EffectiveTo:   d.EffectiveTo,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVatRate converts a model VatRate to a domain VatRate
func ToDomainVatRate(m models.VatRate) domain.VatRate {
	return domain.VatRate{
		RateID:        m.RateID,
		LedgerID:      m.LedgerID,
		Class:         domain.VatClass(m.Class),
		Percent:       m.Percent,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVatRateSlice converts a slice of model VatRates to a slice of domain VatRates
func ToDomainVatRateSlice(ms []models.VatRate) []domain.VatRate {
	ds := make([]domain.VatRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVatRate(m)
	}
	return ds
}

// ToModelVatReturn converts a domain VatReturn to a model VatReturn. The
// per-rate breakdown is serialized into the jsonb column.
func ToModelVatReturn(d domain.VatReturn) (models.VatReturn, error) {
	lines, err := json.Marshal(d.Lines)
	if err != nil {
		return models.VatReturn{}, err
	}
	return models.VatReturn{
		ReturnID:    d.ReturnID,
		LedgerID:    d.LedgerID,
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		DueDate:     d.DueDate,
		Payable:     d.Payable,
		Deductible:  d.Deductible,
		Net:         d.Net,
		Lines:       lines,
		FiledAt:     d.FiledAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainVatReturn converts a model VatReturn to a domain VatReturn.
func ToDomainVatReturn(m models.VatReturn) (domain.VatReturn, error) {
	d := domain.VatReturn{
		ReturnID:    m.ReturnID,
		LedgerID:    m.LedgerID,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		DueDate:     m.DueDate,
		Payable:     m.Payable,
		Deductible:  m.Deductible,
		Net:         m.Net,
		FiledAt:     m.FiledAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if len(m.Lines) > 0 {
		if err := json.Unmarshal(m.Lines, &d.Lines); err != nil {
			return domain.VatReturn{}, err
		}
	}
	return d, nil
}
