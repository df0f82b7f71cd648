package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/kirjuri-app/kirjuri_backend/internal/middleware"
)

// reportingHandler handles read-only reporting queries.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting query routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/postings", h.queryPostings)
		reports.GET("/trial-balance", h.trialBalance)
	}
}

// queryPostings godoc
// @Summary Query recorded postings
// @Description Retrieves recorded postings by date range, optionally filtered by account and allocation, joined with their voucher headers
// @Tags reports
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Param   accountID query string false "Filter by account"
// @Param   allocationID query string false "Filter by allocation"
// @Success 200 {array} dto.ReportPostingResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to query postings"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/reports/postings [get]
func (h *reportingHandler) queryPostings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var params dto.PostingQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	postings, err := h.reportingService.Postings(c.Request.Context(), ledgerID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to query postings", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query postings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReportPostingResponses(postings))
}

// trialBalance godoc
// @Summary Compute the trial balance over a range
// @Description Per-account debit and credit totals with the resulting balance
// @Tags reports
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	startDate, err := time.Parse("2006-01-02", c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be a date in YYYY-MM-DD format"})
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be a date in YYYY-MM-DD format"})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), ledgerID, startDate, endDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute trial balance", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(startDate, endDate, rows))
}
