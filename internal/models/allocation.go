package models

import "time"

// AllocationKind distinguishes the analytical dimensions a posting can carry.
type AllocationKind string

// Allocation represents a cost-center/project/tag dimension row.
type Allocation struct {
	AllocationID string         `json:"allocationID"` // Primary Key (UUID)
	LedgerID     string         `json:"ledgerID"`     // FK -> Ledger.ledgerID (Not Null)
	Kind         AllocationKind `json:"kind"`
	Name         string         `json:"name"`
	ValidFrom    *time.Time     `json:"validFrom"` // Nullable
	ValidTo      *time.Time     `json:"validTo"`   // Nullable
	AuditFields
}
