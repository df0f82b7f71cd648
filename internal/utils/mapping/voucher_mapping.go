package mapping

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelVoucher converts a domain Voucher header to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	m := models.Voucher{
		VoucherID:   d.VoucherID,
		LedgerID:    d.LedgerID,
		Type:        models.VoucherType(d.Type),
		Series:      d.Series,
		Sequence:    d.Sequence,
		Date:        d.Date,
		Title:       d.Title,
		State:       models.VoucherState(d.State),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.PeriodID != "" {
		periodID := d.PeriodID
		m.PeriodID = &periodID
	}
	return m
}

// ToDomainVoucher converts a model Voucher header to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	d := domain.Voucher{
		VoucherID:   m.VoucherID,
		LedgerID:    m.LedgerID,
		Type:        domain.VoucherType(m.Type),
		Series:      m.Series,
		Sequence:    m.Sequence,
		Date:        m.Date,
		Title:       m.Title,
		State:       domain.VoucherState(m.State),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.PeriodID != nil {
		d.PeriodID = *m.PeriodID
	}
	return d
}

// ToModelPosting converts a domain Posting to a model Posting, flattening the
// open-item reference and VAT annotation into nullable columns.
func ToModelPosting(d domain.Posting) models.Posting {
	m := models.Posting{
		PostingID:   d.PostingID,
		VoucherID:   d.VoucherID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		Side:        models.PostingSide(d.Side),
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.AllocationID != "" {
		allocationID := d.AllocationID
		m.AllocationID = &allocationID
	}
	if d.OpenItem != nil {
		choice := string(d.OpenItem.Choice)
		m.OpenItemChoice = &choice
		if d.OpenItem.ItemID != "" {
			itemID := d.OpenItem.ItemID
			m.OpenItemID = &itemID
		}
		if d.OpenItem.Counterparty != "" {
			counterparty := d.OpenItem.Counterparty
			m.Counterparty = &counterparty
		}
		m.Overpayment = d.OpenItem.Overpayment
	}
	if d.Vat != nil {
		class := string(d.Vat.Class)
		percent := d.Vat.Percent
		basis := d.Vat.Basis
		tax := d.Vat.Tax
		m.VatClass = &class
		m.VatPercent = &percent
		m.VatBasis = &basis
		m.VatTax = &tax
		m.VatDeductible = d.Vat.Deductible
		m.VatSealed = d.Vat.Sealed
	}
	return m
}

// ToDomainPosting converts a model Posting to a domain Posting, rebuilding the
// open-item reference and VAT annotation from the nullable columns.
func ToDomainPosting(m models.Posting) domain.Posting {
	d := domain.Posting{
		PostingID:   m.PostingID,
		VoucherID:   m.VoucherID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Side:        domain.PostingSide(m.Side),
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.AllocationID != nil {
		d.AllocationID = *m.AllocationID
	}
	if m.OpenItemChoice != nil {
		ref := &domain.OpenItemRef{
			Choice:      domain.OpenItemChoice(*m.OpenItemChoice),
			Overpayment: m.Overpayment,
		}
		if m.OpenItemID != nil {
			ref.ItemID = *m.OpenItemID
		}
		if m.Counterparty != nil {
			ref.Counterparty = *m.Counterparty
		}
		d.OpenItem = ref
	}
	if m.VatClass != nil {
		d.Vat = &domain.VatAnnotation{
			Class:      domain.VatClass(*m.VatClass),
			Deductible: m.VatDeductible,
			Sealed:     m.VatSealed,
		}
		if m.VatPercent != nil {
			d.Vat.Percent = *m.VatPercent
		}
		if m.VatBasis != nil {
			d.Vat.Basis = *m.VatBasis
		}
		if m.VatTax != nil {
			d.Vat.Tax = *m.VatTax
		}
	}
	return d
}

// ToDomainPostingSlice converts a slice of model Postings to a slice of domain Postings
func ToDomainPostingSlice(ms []models.Posting) []domain.Posting {
	ds := make([]domain.Posting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPosting(m)
	}
	return ds
}

// ToDomainVoucherAuditEntry converts a model VoucherAuditEntry to its domain form
func ToDomainVoucherAuditEntry(m models.VoucherAuditEntry) domain.VoucherAuditEntry {
	return domain.VoucherAuditEntry{
		Timestamp: m.Timestamp,
		UserID:    m.UserID,
		FromState: domain.VoucherState(m.FromState),
		ToState:   domain.VoucherState(m.ToState),
	}
}
