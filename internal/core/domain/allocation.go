package domain

import "time"

// AllocationKind distinguishes the analytical dimensions a posting can carry.
type AllocationKind string

const (
	CostCenter AllocationKind = "COST_CENTER"
	Project    AllocationKind = "PROJECT"
	Tag        AllocationKind = "TAG"
)

// Allocation is a cost-center/project/tag dimension attachable to postings.
// A posting references at most one allocation per dimension.
type Allocation struct {
	AllocationID string         `json:"allocationID"`
	LedgerID     string         `json:"ledgerID"`
	Kind         AllocationKind `json:"kind"`
	Name         string         `json:"name"`
	// Optional validity interval. A posting dated outside the interval may
	// not reference the allocation.
	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`
	AuditFields
}

// ValidOn reports whether the allocation may be referenced by a posting
// dated on the given day.
func (a *Allocation) ValidOn(date time.Time) bool {
	if a.ValidFrom != nil && date.Before(*a.ValidFrom) {
		return false
	}
	if a.ValidTo != nil && date.After(*a.ValidTo) {
		return false
	}
	return true
}
