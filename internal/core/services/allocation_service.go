package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// allocationService manages cost-center/project/tag dimensions.
type allocationService struct {
	allocationRepo portsrepo.AllocationRepositoryFacade
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(allocationRepo portsrepo.AllocationRepositoryFacade) portssvc.AllocationSvcFacade {
	return &allocationService{allocationRepo: allocationRepo}
}

// Ensure allocationService implements the portssvc.AllocationSvcFacade interface
var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// CreateAllocation adds an allocation dimension.
func (s *allocationService) CreateAllocation(ctx context.Context, ledgerID string, req dto.CreateAllocationRequest, creatorUserID string) (*domain.Allocation, error) {
	if req.ValidFrom != nil && req.ValidTo != nil && req.ValidTo.Before(*req.ValidFrom) {
		return nil, fmt.Errorf("%w: validity interval ends before it starts", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	allocation := domain.Allocation{
		AllocationID: uuid.NewString(),
		LedgerID:     ledgerID,
		Kind:         domain.AllocationKind(req.Kind),
		Name:         req.Name,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.allocationRepo.SaveAllocation(ctx, allocation); err != nil {
		return nil, err
	}
	return &allocation, nil
}

// GetAllocationByID retrieves an allocation, verifying ledger ownership.
func (s *allocationService) GetAllocationByID(ctx context.Context, ledgerID string, allocationID string) (*domain.Allocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if allocation.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}
	return allocation, nil
}

// ListAllocations retrieves a ledger's allocations, optionally by kind.
func (s *allocationService) ListAllocations(ctx context.Context, ledgerID string, kind *domain.AllocationKind) ([]domain.Allocation, error) {
	return s.allocationRepo.ListAllocations(ctx, ledgerID, kind)
}

// UpdateAllocation updates an allocation's name and validity interval.
func (s *allocationService) UpdateAllocation(ctx context.Context, ledgerID string, allocationID string, req dto.UpdateAllocationRequest, userID string) (*domain.Allocation, error) {
	allocation, err := s.GetAllocationByID(ctx, ledgerID, allocationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		allocation.Name = *req.Name
	}
	if req.ValidFrom != nil {
		allocation.ValidFrom = req.ValidFrom
	}
	if req.ValidTo != nil {
		allocation.ValidTo = req.ValidTo
	}
	if allocation.ValidFrom != nil && allocation.ValidTo != nil && allocation.ValidTo.Before(*allocation.ValidFrom) {
		return nil, fmt.Errorf("%w: validity interval ends before it starts", apperrors.ErrValidation)
	}
	allocation.LastUpdatedAt = time.Now().UTC()
	allocation.LastUpdatedBy = userID

	if err := s.allocationRepo.UpdateAllocation(ctx, *allocation); err != nil {
		return nil, err
	}
	return allocation, nil
}
