package repositories

import (
	"context"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// AllocationReader defines read operations for allocation dimensions
type AllocationReader interface {
	// FindAllocationByID retrieves an allocation by its unique identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error)

	// FindAllocationsByIDs retrieves multiple allocations by their IDs.
	FindAllocationsByIDs(ctx context.Context, allocationIDs []string) (map[string]domain.Allocation, error)

	// ListAllocations retrieves a ledger's allocations, optionally filtered by kind.
	ListAllocations(ctx context.Context, ledgerID string, kind *domain.AllocationKind) ([]domain.Allocation, error)
}

// AllocationWriter defines write operations for allocation dimensions
type AllocationWriter interface {
	// SaveAllocation persists a new allocation.
	SaveAllocation(ctx context.Context, allocation domain.Allocation) error

	// UpdateAllocation updates an allocation's name and validity interval.
	UpdateAllocation(ctx context.Context, allocation domain.Allocation) error
}

// AllocationRepositoryFacade combines all allocation repository interfaces.
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
}
