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

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.defineAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balance", h.getBalance)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.PUT("/:accountID/vat-class", h.reclassifyAccount)
		accounts.DELETE("/:accountID", h.hideAccount)
	}
}

// defineAccount godoc
// @Summary Define a chart-of-accounts entry
// @Description Adds an account to the ledger's chart; the number must be unique within the ledger
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account number already in use"
// @Failure 500 {object} map[string]string "Failed to define account"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts [post]
func (h *accountHandler) defineAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DefineAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.DefineAccount(c.Request.Context(), ledgerID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to define account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to define account"})
		}
		return
	}

	logger.Info("Account defined successfully", slog.String("account_id", account.AccountID), slog.String("number", account.Number))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Description Retrieves the ledger's accounts ordered by number; hidden accounts are included on request
// @Tags accounts
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   includeHidden query bool false "Include hidden accounts"
// @Success 200 {array} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	includeHidden := c.Query("includeHidden") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), ledgerID, includeHidden)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("ledger_id", ledgerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), ledgerID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get an account balance as of a date
// @Description Balance-sheet accounts accumulate from the ledger's first day, result accounts within the date's fiscal period
// @Tags accounts
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Param   asOf query string true "Balance date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid or missing date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	asOf, err := time.Parse("2006-01-02", c.Query("asOf"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be a date in YYYY-MM-DD format"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), ledgerID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	balance, err := h.accountService.BalanceAsOf(c.Request.Context(), ledgerID, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrPeriodDateOutOfRange) || errors.Is(err, apperrors.ErrIncompleteData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute balance", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Number:    account.Number,
		AsOf:      asOf.Format("2006-01-02"),
		Balance:   balance,
	})
}

// updateAccount godoc
// @Summary Update account metadata
// @Description Updates name, counter account, and visibility; number and type are immutable
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), ledgerID, accountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// reclassifyAccount godoc
// @Summary Change an account's VAT class
// @Description Applies to future postings only; annotations on recorded vouchers are untouched
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Param   reclassification body dto.ReclassifyAccountRequest true "New VAT class"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to reclassify account"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID}/vat-class [put]
func (h *accountHandler) reclassifyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	var req dto.ReclassifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.ReclassifyAccount(c.Request.Context(), ledgerID, accountID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to reclassify account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reclassify account"})
		}
		return
	}

	logger.Info("Account reclassified", slog.String("account_id", accountID), slog.String("vat_class", string(account.VatClass)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// hideAccount godoc
// @Summary Hide an account
// @Description Referenced accounts are never deleted, only hidden from entry
// @Tags accounts
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Success 204 "Account hidden"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to hide account"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID} [delete]
func (h *accountHandler) hideAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.HideAccount(c.Request.Context(), ledgerID, accountID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to hide account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hide account"})
		}
		return
	}

	logger.Info("Account hidden", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
