package mapping

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:           d.AccountID,
		LedgerID:            d.LedgerID,
		Number:              d.Number,
		Name:                d.Name,
		AccountType:         models.AccountType(d.Type),
		VatClass:            models.VatClass(d.VatClass),
		GrossAmounts:        d.GrossAmounts,
		TracksOpenItems:     d.TracksOpenItems,
		CounterAccount:      d.CounterAccount,
		DepreciationMethod:  models.DepreciationMethod(d.DepreciationMethod),
		DepreciationPercent: d.DepreciationPercent,
		Hidden:              d.Hidden,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		LedgerID:            m.LedgerID,
		Number:              m.Number,
		Name:                m.Name,
		Type:                domain.AccountType(m.AccountType),
		VatClass:            domain.VatClass(m.VatClass),
		GrossAmounts:        m.GrossAmounts,
		TracksOpenItems:     m.TracksOpenItems,
		CounterAccount:      m.CounterAccount,
		DepreciationMethod:  domain.DepreciationMethod(m.DepreciationMethod),
		DepreciationPercent: m.DepreciationPercent,
		Hidden:              m.Hidden,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
