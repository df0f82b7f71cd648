package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/kirjuri-app/kirjuri_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests related to ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to ledger configuration.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("/:ledgerID", h.getLedger)
		ledgers.PUT("/:ledgerID", h.updateLedger)
	}
}

// createLedger godoc
// @Summary Create a new ledger
// @Description Initializes a new set of books with its numbering scheme and VAT basis
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledger body dto.CreateLedgerRequest true "Ledger details"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create ledger"
// @Security BearerAuth
// @Router /ledgers [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledger, err := h.ledgerService.CreateLedger(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create ledger in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ledger"})
		}
		return
	}

	logger.Info("Ledger created successfully", slog.String("ledger_id", ledger.LedgerID))
	c.JSON(http.StatusCreated, dto.ToLedgerResponse(ledger))
}

// getLedger godoc
// @Summary Get a ledger by ID
// @Description Retrieves the configuration of one set of books
// @Tags ledgers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /ledgers/{ledgerID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	ledger, err := h.ledgerService.GetLedgerByID(c.Request.Context(), ledgerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger not found"})
		} else {
			logger.Error("Failed to get ledger", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

// updateLedger godoc
// @Summary Update ledger metadata
// @Description Updates mutable ledger metadata; numbering scheme and VAT basis only change while no voucher has been recorded
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   ledger body dto.UpdateLedgerRequest true "Fields to update"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Ledger not found"
// @Failure 409 {object} map[string]string "Scheme or basis fixed by recorded vouchers"
// @Failure 500 {object} map[string]string "Failed to update ledger"
// @Security BearerAuth
// @Router /ledgers/{ledgerID} [put]
func (h *ledgerHandler) updateLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.UpdateLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledger, err := h.ledgerService.UpdateLedger(c.Request.Context(), ledgerID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update ledger", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ledger"})
		}
		return
	}

	logger.Info("Ledger updated successfully", slog.String("ledger_id", ledgerID))
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
