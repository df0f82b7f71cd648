package mapping

import (
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/models"
)

// ToModelAllocation converts a domain Allocation to a model Allocation
func ToModelAllocation(d domain.Allocation) models.Allocation {
	return models.Allocation{
		AllocationID: d.AllocationID,
		LedgerID:     d.LedgerID,
		Kind:         models.AllocationKind(d.Kind),
		Name:         d.Name,
		ValidFrom:    d.ValidFrom,
		ValidTo:      d.ValidTo,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllocation converts a model Allocation to a domain Allocation
func ToDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		LedgerID:     m.LedgerID,
		Kind:         domain.AllocationKind(m.Kind),
		Name:         m.Name,
		ValidFrom:    m.ValidFrom,
		ValidTo:      m.ValidTo,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts a slice of model Allocations to a slice of domain Allocations
func ToDomainAllocationSlice(ms []models.Allocation) []domain.Allocation {
	ds := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}
