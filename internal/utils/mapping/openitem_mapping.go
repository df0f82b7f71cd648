package mapping

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelOpenItem converts a domain OpenItem to a model OpenItem
func ToModelOpenItem(d domain.OpenItem) models.OpenItem {
	return models.OpenItem{
		ItemID:         d.ItemID,
		LedgerID:       d.LedgerID,
		AccountID:      d.AccountID,
		Counterparty:   d.Counterparty,
		Description:    d.Description,
		OriginalAmount: d.OriginalAmount,
		Balance:        d.Balance,
		CreatedDate:    d.CreatedDate,
		Settled:        d.Settled,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOpenItem converts a model OpenItem to a domain OpenItem
func ToDomainOpenItem(m models.OpenItem) domain.OpenItem {
	return domain.OpenItem{
		ItemID:         m.ItemID,
		LedgerID:       m.LedgerID,
		AccountID:      m.AccountID,
		Counterparty:   m.Counterparty,
		Description:    m.Description,
		OriginalAmount: m.OriginalAmount,
		Balance:        m.Balance,
		CreatedDate:    m.CreatedDate,
		Settled:        m.Settled,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpenItemSlice converts a slice of model OpenItems to a slice of domain OpenItems
func ToDomainOpenItemSlice(ms []models.OpenItem) []domain.OpenItem {
	ds := make([]domain.OpenItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpenItem(m)
	}
	return ds
}
