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

// vatHandler handles HTTP requests for the VAT engine.
type vatHandler struct {
	vatService portssvc.VatSvcFacade
}

func newVatHandler(vs portssvc.VatSvcFacade) *vatHandler {
	return &vatHandler{
		vatService: vs,
	}
}

// registerVatRoutes registers routes related to VAT rates and returns.
func registerVatRoutes(rg *gin.RouterGroup, vatService portssvc.VatSvcFacade) {
	h := newVatHandler(vatService)

	vat := rg.Group("/vat")
	{
		vat.POST("/rates", h.createRate)
		vat.GET("/rates", h.listRates)
		vat.GET("/returns", h.listReturns)
		vat.GET("/returns/preview", h.previewReturn)
		vat.POST("/returns", h.fileReturn)
	}
}

// createRate godoc
// @Summary Add a VAT rate version
// @Description The previous open-ended version of the same class is closed the day before the new effective date
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   rate body dto.CreateVatRateRequest true "Rate version"
// @Success 201 {object} dto.VatRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create rate"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vat/rates [post]
func (h *vatHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreateVatRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.vatService.CreateRate(c.Request.Context(), ledgerID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create VAT rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate"})
		}
		return
	}

	logger.Info("VAT rate created", slog.String("rate_id", rate.RateID), slog.String("class", string(rate.Class)))
	c.JSON(http.StatusCreated, dto.ToVatRateResponse(rate))
}

// listRates godoc
// @Summary List VAT rate versions
// @Tags vat
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {array} dto.VatRateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vat/rates [get]
func (h *vatHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	rates, err := h.vatService.ListRates(c.Request.Context(), ledgerID)
	if err != nil {
		logger.Error("Failed to list VAT rates", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	responses := make([]dto.VatRateResponse, len(rates))
	for i := range rates {
		responses[i] = dto.ToVatRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, responses)
}

// previewReturn godoc
// @Summary Preview a VAT return
// @Description Builds the return for the range without filing it; nothing is sealed
// @Tags vat
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodStart query string true "Range start (YYYY-MM-DD)"
// @Param   periodEnd query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.VatReturnResponse
// @Failure 400 {object} map[string]string "Invalid range or missing rate/clearing accounts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build return"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vat/returns/preview [get]
func (h *vatHandler) previewReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	periodStart, err := time.Parse("2006-01-02", c.Query("periodStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodStart must be a date in YYYY-MM-DD format"})
		return
	}
	periodEnd, err := time.Parse("2006-01-02", c.Query("periodEnd"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodEnd must be a date in YYYY-MM-DD format"})
		return
	}

	ret, err := h.vatService.BuildReturn(c.Request.Context(), ledgerID, periodStart, periodEnd)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrIncompleteData) || errors.Is(err, apperrors.ErrNoRateForDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build VAT return", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build return"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVatReturnResponse(ret))
}

// fileReturn godoc
// @Summary File a VAT return
// @Description Stores the return and seals the VAT annotations of every covered posting; a filed return may not overlap an earlier one
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   return body dto.BuildVatReturnRequest true "Covered range"
// @Success 201 {object} dto.VatReturnResponse
// @Failure 400 {object} map[string]string "Invalid range or missing rate/clearing accounts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A filed return already covers part of the range"
// @Failure 500 {object} map[string]string "Failed to file return"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vat/returns [post]
func (h *vatHandler) fileReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.BuildVatReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ret, err := h.vatService.FileReturn(c.Request.Context(), ledgerID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyFiled) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrIncompleteData) || errors.Is(err, apperrors.ErrNoRateForDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to file VAT return", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to file return"})
		}
		return
	}

	logger.Info("VAT return filed", slog.String("return_id", ret.ReturnID))
	c.JSON(http.StatusCreated, dto.ToVatReturnResponse(ret))
}

// listReturns godoc
// @Summary List VAT returns
// @Tags vat
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {array} dto.VatReturnResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list returns"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vat/returns [get]
func (h *vatHandler) listReturns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	returns, err := h.vatService.ListReturns(c.Request.Context(), ledgerID)
	if err != nil {
		logger.Error("Failed to list VAT returns", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list returns"})
		return
	}

	responses := make([]dto.VatReturnResponse, len(returns))
	for i := range returns {
		responses[i] = dto.ToVatReturnResponse(&returns[i])
	}
	c.JSON(http.StatusOK, responses)
}
