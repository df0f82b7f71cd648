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

// periodHandler handles HTTP requests for the fiscal period lifecycle.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: ps,
	}
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.addPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.GET("/:periodID/warnings", h.lockWarnings)
		periods.POST("/:periodID/lock", h.lockPeriod)
		periods.POST("/:periodID/unlock", h.unlockPeriod)
		periods.PUT("/:periodID/statement", h.setStatement)
		periods.PUT("/:periodID/headcount", h.updateHeadcount)
	}
}

// addPeriod godoc
// @Summary Add a fiscal period
// @Description The new period must be contiguous with the ledger's existing periods
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   period body dto.CreatePeriodRequest true "Period range"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Period overlaps or leaves a gap"
// @Failure 500 {object} map[string]string "Failed to add period"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods [post]
func (h *periodHandler) addPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.AddPeriod(c.Request.Context(), ledgerID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOverlap) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add period"})
		}
		return
	}

	logger.Info("Fiscal period added", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {array} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	periods, err := h.periodService.ListPeriods(c.Request.Context(), ledgerID)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get a fiscal period by ID
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), ledgerID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to get period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// lockWarnings godoc
// @Summary List the advisory warnings outstanding for a period
// @Description Surfaces draft vouchers dated inside the period and taxable postings not covered by a filed VAT return
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {array} dto.PeriodWarningResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to compute warnings"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/warnings [get]
func (h *periodHandler) lockWarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	warnings, err := h.periodService.LockWarnings(c.Request.Context(), ledgerID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to compute lock warnings", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute warnings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodWarningResponses(warnings))
}

// lockPeriod godoc
// @Summary Lock a fiscal period
// @Description Outstanding warnings must be acknowledged; the lock triggers an asynchronous archive snapshot whose outcome is advisory
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Param   lock body dto.LockPeriodRequest true "Acknowledgment flag"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Warnings unacknowledged or state conflict"
// @Failure 500 {object} map[string]string "Failed to lock period"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	var req dto.LockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.Lock(c.Request.Context(), ledgerID, periodID, req.AcknowledgeWarnings, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrIncompleteVoucherCheck) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to lock period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock period"})
		}
		return
	}

	logger.Info("Period locked successfully", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// unlockPeriod godoc
// @Summary Unlock a fiscal period
// @Description Returns a locked period to OPEN; blocked once a statement is finalized or the period is archived
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Statement finalized, archived, or state conflict"
// @Failure 500 {object} map[string]string "Failed to unlock period"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/unlock [post]
func (h *periodHandler) unlockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.Unlock(c.Request.Context(), ledgerID, periodID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrStatementFinalized) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to unlock period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock period"})
		}
		return
	}

	logger.Info("Period unlocked successfully", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// setStatement godoc
// @Summary Link the financial-statement artifact to a period
// @Description Finalizing the statement freezes the period against unlocking
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Param   statement body dto.SetStatementRequest true "Statement reference"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Statement already finalized or period not locked"
// @Failure 500 {object} map[string]string "Failed to set statement"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/statement [put]
func (h *periodHandler) setStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	var req dto.SetStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.SetStatement(c.Request.Context(), ledgerID, periodID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrStatementFinalized) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set statement", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set statement"})
		}
		return
	}

	logger.Info("Statement linked to period", slog.String("period_id", periodID), slog.Bool("finalized", period.StatementFinalized))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// updateHeadcount godoc
// @Summary Store average-headcount metadata for a period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Param   headcount body dto.UpdateHeadcountRequest true "Average headcount"
// @Success 204 "Headcount stored"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period archived"
// @Failure 500 {object} map[string]string "Failed to update headcount"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/headcount [put]
func (h *periodHandler) updateHeadcount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	periodID := c.Param("periodID")

	var req dto.UpdateHeadcountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.periodService.UpdateHeadcount(c.Request.Context(), ledgerID, periodID, req.AvgHeadcount, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update headcount", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update headcount"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
