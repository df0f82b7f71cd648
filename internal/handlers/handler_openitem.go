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

// openItemHandler handles HTTP requests for the open-item subledger.
// The surface is read-only; items change only through voucher commits.
type openItemHandler struct {
	openItemService portssvc.OpenItemSvcFacade
}

func newOpenItemHandler(os portssvc.OpenItemSvcFacade) *openItemHandler {
	return &openItemHandler{
		openItemService: os,
	}
}

// registerOpenItemRoutes registers routes related to open items.
func registerOpenItemRoutes(rg *gin.RouterGroup, openItemService portssvc.OpenItemSvcFacade) {
	h := newOpenItemHandler(openItemService)

	rg.GET("/open-items/:itemID", h.getItem)
	rg.GET("/accounts/:accountID/open-items", h.listItems)
	rg.GET("/accounts/:accountID/reconciliation", h.reconcile)
}

// getItem godoc
// @Summary Get an open item by ID
// @Tags open-items
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   itemID path string true "Open item ID"
// @Success 200 {object} dto.OpenItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Open item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve open item"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/open-items/{itemID} [get]
func (h *openItemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	itemID := c.Param("itemID")

	item, err := h.openItemService.GetItemByID(c.Request.Context(), ledgerID, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Open item not found"})
		} else {
			logger.Error("Failed to get open item", slog.String("item_id", itemID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve open item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOpenItemResponse(item))
}

// listItems godoc
// @Summary List an account's open items
// @Description Settled items are included on request
// @Tags open-items
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Param   includeSettled query bool false "Include settled items"
// @Success 200 {array} dto.OpenItemResponse
// @Failure 400 {object} map[string]string "Account does not track open items"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list open items"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID}/open-items [get]
func (h *openItemHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")
	includeSettled := c.Query("includeSettled") == "true"

	items, err := h.openItemService.ListItemsByAccount(c.Request.Context(), ledgerID, accountID, includeSettled)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list open items", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list open items"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOpenItemResponses(items))
}

// reconcile godoc
// @Summary Reconcile an account's subledger against its ledger balance
// @Description The subledger total and the ledger balance must match while every posting on the account carries an open-item resolution
// @Tags open-items
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Account does not track open items or ledger has no periods"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to reconcile account"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/accounts/{accountID}/reconciliation [get]
func (h *openItemHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ledgerID := c.Param("ledgerID")
	accountID := c.Param("accountID")

	resp, err := h.openItemService.Reconcile(c.Request.Context(), ledgerID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrIncompleteData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to reconcile account", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile account"})
		}
		return
	}

	if !resp.Matches {
		logger.Warn("Subledger does not match ledger balance",
			slog.String("account_id", accountID),
			slog.String("subledger_total", resp.SubledgerTotal.String()),
			slog.String("ledger_balance", resp.LedgerBalance.String()))
	}
	c.JSON(http.StatusOK, resp)
}
