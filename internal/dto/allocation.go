package dto

import (
	"time"

	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
)

// CreateAllocationRequest defines the payload for creating an allocation dimension.
type CreateAllocationRequest struct {
	Kind      string     `json:"kind" binding:"required,oneof=COST_CENTER PROJECT TAG"`
	Name      string     `json:"name" binding:"required"`
	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`
}

// UpdateAllocationRequest defines the updatable allocation fields.
type UpdateAllocationRequest struct {
	Name      *string    `json:"name,omitempty"`
	ValidFrom *time.Time `json:"validFrom,omitempty"`
	ValidTo   *time.Time `json:"validTo,omitempty"`
}

// AllocationResponse defines the data returned for an allocation.
type AllocationResponse struct {
	AllocationID string     `json:"allocationID"`
	Kind         string     `json:"kind"`
	Name         string     `json:"name"`
	ValidFrom    *time.Time `json:"validFrom,omitempty"`
	ValidTo      *time.Time `json:"validTo,omitempty"`
}

// ToAllocationResponse converts a domain.Allocation to AllocationResponse DTO.
func ToAllocationResponse(a *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID: a.AllocationID,
		Kind:         string(a.Kind),
		Name:         a.Name,
		ValidFrom:    a.ValidFrom,
		ValidTo:      a.ValidTo,
	}
}

// ToAllocationResponses converts a slice of domain.Allocation to []AllocationResponse.
func ToAllocationResponses(allocations []domain.Allocation) []AllocationResponse {
	responses := make([]AllocationResponse, len(allocations))
	for i := range allocations {
		responses[i] = ToAllocationResponse(&allocations[i])
	}
	return responses
}
