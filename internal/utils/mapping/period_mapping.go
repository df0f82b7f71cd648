package mapping

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:           d.PeriodID,
		LedgerID:           d.LedgerID,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		State:              models.PeriodState(d.State),
		Opening:            d.Opening,
		AvgHeadcount:       d.AvgHeadcount,
		StatementRef:       d.StatementRef,
		StatementFinalized: d.StatementFinalized,
		LockAcknowledgedBy: d.LockAcknowledgedBy,
		LockAcknowledgedAt: d.LockAcknowledgedAt,
		ArchiveStatus:      models.ArchiveStatus(d.ArchiveStatus),
		ArchiveRef:         d.ArchiveRef,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:           m.PeriodID,
		LedgerID:           m.LedgerID,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		State:              domain.PeriodState(m.State),
		Opening:            m.Opening,
		AvgHeadcount:       m.AvgHeadcount,
		StatementRef:       m.StatementRef,
		StatementFinalized: m.StatementFinalized,
		LockAcknowledgedBy: m.LockAcknowledgedBy,
		LockAcknowledgedAt: m.LockAcknowledgedAt,
		ArchiveStatus:      domain.ArchiveStatus(m.ArchiveStatus),
		ArchiveRef:         m.ArchiveRef,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFiscalPeriodSlice converts a slice of model FiscalPeriods to a slice of domain FiscalPeriods
func ToDomainFiscalPeriodSlice(ms []models.FiscalPeriod) []domain.FiscalPeriod {
	ds := make([]domain.FiscalPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFiscalPeriod(m)
	}
	return ds
}
