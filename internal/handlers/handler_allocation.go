package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/kirjuri-app/kirjuri_backend/internal/middleware"
)

// allocationHandler handles HTTP requests related to allocation dimensions.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newAllocationHandler(as portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{
		allocationService: as,
	}
}

// registerAllocationRoutes registers routes related to allocations.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.GET("/:allocationID", h.getAllocation)
		allocations.PUT("/:allocationID", h.updateAllocation)
	}
}

// createAllocation godoc
// @Summary Create an allocation dimension
// @Description Adds a cost center, project, or tag usable on postings
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create allocation"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), ledgerID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create allocation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create allocation"})
		}
		return
	}

	logger.Info("Allocation created", slog.String("allocation_id", allocation.AllocationID))
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocations godoc
// @Summary List allocation dimensions
// @Tags allocations
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   kind query string false "Filter by kind" Enums(COST_CENTER, PROJECT, TAG)
// @Success 200 {array} dto.AllocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list allocations"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/allocations [get]
func (h *allocationHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var kind *domain.AllocationKind
	if kindStr := c.Query("kind"); kindStr != "" {
		k := domain.AllocationKind(kindStr)
		kind = &k
	}

	allocations, err := h.allocationService.ListAllocations(c.Request.Context(), ledgerID, kind)
	if err != nil {
		logger.Error("Failed to list allocations", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// getAllocation godoc
// @Summary Get an allocation by ID
// @Tags allocations
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   allocationID path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve allocation"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/allocations/{allocationID} [get]
func (h *allocationHandler) getAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	allocationID := c.Param("allocationID")

	allocation, err := h.allocationService.GetAllocationByID(c.Request.Context(), ledgerID, allocationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else {
			logger.Error("Failed to get allocation", slog.String("allocation_id", allocationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve allocation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// updateAllocation godoc
// @Summary Update an allocation
// @Description Updates the name and validity interval
// @Tags allocations
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   allocationID path string true "Allocation ID"
// @Param   allocation body dto.UpdateAllocationRequest true "Fields to update"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 500 {object} map[string]string "Failed to update allocation"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/allocations/{allocationID} [put]
func (h *allocationHandler) updateAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	allocationID := c.Param("allocationID")

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), ledgerID, allocationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update allocation", slog.String("allocation_id", allocationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update allocation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}
