package services

import (
	"context"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// AllocationSvcFacade manages cost-center/project/tag dimensions.
type AllocationSvcFacade interface {
	// CreateAllocation adds an allocation dimension.
	CreateAllocation(ctx context.Context, ledgerID string, req dto.CreateAllocationRequest, creatorUserID string) (*domain.Allocation, error)

	// UpdateAllocation updates an allocation's name and validity interval.
	UpdateAllocation(ctx context.Context, ledgerID string, allocationID string, req dto.UpdateAllocationRequest, userID string) (*domain.Allocation, error)

	// GetAllocationByID retrieves an allocation.
	GetAllocationByID(ctx context.Context, ledgerID string, allocationID string) (*domain.Allocation, error)

	// ListAllocations retrieves a ledger's allocations, optionally by kind.
	ListAllocations(ctx context.Context, ledgerID string, kind *domain.AllocationKind) ([]domain.Allocation, error)
}
