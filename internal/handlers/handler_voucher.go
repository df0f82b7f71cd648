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

// voucherHandler handles HTTP requests for the voucher lifecycle.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{
		voucherService: vs,
	}
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createDraft)
		vouchers.GET("", h.listVouchers)
		vouchers.POST("/import", h.importBatch)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PUT("/:voucherID", h.updateVoucher)
		vouchers.DELETE("/:voucherID", h.deleteVoucher)
		vouchers.POST("/:voucherID/postings", h.addPosting)
		vouchers.POST("/:voucherID/record", h.recordVoucher)
	}
}

// createDraft godoc
// @Summary Open a draft voucher
// @Description The voucher date must fall inside an open fiscal period; the numbering series is fixed at creation, the sequence only at record time
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input, date outside any period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Enclosing period is not open"
// @Failure 500 {object} map[string]string "Failed to create voucher"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers [post]
func (h *voucherHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.CreateDraft(c.Request.Context(), ledgerID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPeriodDateOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPeriodClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger not found"})
		} else {
			logger.Error("Failed to create draft voucher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create voucher"})
		}
		return
	}

	logger.Info("Draft voucher created", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Token-paginated listing ordered by date descending; deleted vouchers are included on request
// @Tags vouchers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Param   includeDeleted query bool false "Include deleted vouchers"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list vouchers"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), ledgerID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list vouchers", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vouchers"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Description Retrieves the voucher with its postings and audit log
// @Tags vouchers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	voucherID := c.Param("voucherID")

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), ledgerID, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		} else {
			logger.Error("Failed to get voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve voucher"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// updateVoucher godoc
// @Summary Update a voucher header
// @Description Updates date and title while the enclosing period is open; a recorded voucher cannot move to another period
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   voucherID path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Period locked or state conflict"
// @Failure 500 {object} map[string]string "Failed to update voucher"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers/{voucherID} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	voucherID := c.Param("voucherID")

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), ledgerID, voucherID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		} else if errors.Is(err, apperrors.ErrPeriodDateOutOfRange) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPeriodLocked) || errors.Is(err, apperrors.ErrPeriodClosed) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update voucher"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// addPosting godoc
// @Summary Add a posting line to a draft voucher
// @Description Validates the account, amount, allocation validity, and open-item resolution, and computes the VAT annotation for taxable accounts
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   voucherID path string true "Voucher ID"
// @Param   posting body dto.PostingSpec true "Posting details"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not a draft"
// @Failure 500 {object} map[string]string "Failed to add posting"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers/{voucherID}/postings [post]
func (h *voucherHandler) addPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	voucherID := c.Param("voucherID")

	var spec dto.PostingSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		logger.Warn("Failed to bind JSON for AddPosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.AddPosting(c.Request.Context(), ledgerID, voucherID, spec, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNoRateForDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add posting", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add posting"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// recordVoucher godoc
// @Summary Record a draft voucher
// @Description Checks the balance invariant, assigns the next sequence number of the voucher's series, and applies open-item side effects atomically
// @Tags vouchers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Unbalanced voucher or date outside any period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "State conflict, closed period, or over-application"
// @Failure 500 {object} map[string]string "Failed to record voucher"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers/{voucherID}/record [post]
func (h *voucherHandler) recordVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	voucherID := c.Param("voucherID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.Record(c.Request.Context(), ledgerID, voucherID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		} else if errors.Is(err, apperrors.ErrUnbalancedVoucher) || errors.Is(err, apperrors.ErrPeriodDateOutOfRange) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPeriodClosed) || errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrOverApplication) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record voucher"})
		}
		return
	}

	logger.Info("Voucher recorded successfully", slog.String("voucher_id", voucherID))
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// deleteVoucher godoc
// @Summary Delete a recorded voucher
// @Description Marks the voucher deleted and reverses its open-item effects; the sequence number is never reused
// @Tags vouchers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   voucherID path string true "Voucher ID"
// @Success 204 "Voucher deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Period locked, VAT sealed, or state conflict"
// @Failure 500 {object} map[string]string "Failed to delete voucher"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers/{voucherID} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	voucherID := c.Param("voucherID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.voucherService.Delete(c.Request.Context(), ledgerID, voucherID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Voucher not found"})
		} else if errors.Is(err, apperrors.ErrPeriodLocked) || errors.Is(err, apperrors.ErrVatSealed) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete voucher"})
		}
		return
	}

	logger.Info("Voucher deleted successfully", slog.String("voucher_id", voucherID))
	c.Status(http.StatusNoContent)
}

// importBatch godoc
// @Summary Import a batch of vouchers
// @Description Drives each import voucher through the standard draft/posting/record contract; vouchers fail independently
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   batch body dto.ImportBatchRequest true "Vouchers to import"
// @Success 200 {object} dto.ImportBatchResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to process import batch"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/vouchers/import [post]
func (h *voucherHandler) importBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.ImportBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.voucherService.ImportBatch(c.Request.Context(), ledgerID, req, userID)
	if err != nil {
		logger.Error("Failed to process import batch", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process import batch"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
