package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// balanceHandler handles HTTP requests for balance accounts.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

// openBalanceAccount godoc
// @Summary Open a cash or bank balance account
// @Description Creates the running balance row for a (business unit, channel) pair
// @Tags balances
// @Accept  json
// @Produce  json
// @Param   balance body dto.OpenBalanceAccountRequest true "Balance account"
// @Success 201 {object} dto.BalanceAccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Balance account already exists"
// @Router /balances [post]
func (h *balanceHandler) openBalanceAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenBalanceAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for openBalanceAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	acct, err := h.balanceService.OpenBalanceAccount(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidChannel):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to open balance account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open balance account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBalanceAccountResponse(acct))
}

// getBalanceSnapshot godoc
// @Summary Get current cash and bank balances for a business unit
// @Tags balances
// @Produce  json
// @Param   scopeID query string true "Business unit ID"
// @Success 200 {object} domain.BalanceSnapshot
// @Failure 400 {object} map[string]string "scopeID is required"
// @Router /balances/snapshot [get]
func (h *balanceHandler) getBalanceSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeID := c.Query("scopeID")
	if scopeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeID is required"})
		return
	}

	snapshot, err := h.balanceService.Snapshot(c.Request.Context(), scopeID)
	if err != nil {
		logger.Error("Failed to get balance snapshot", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balances"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// registerBalanceRoutes registers balance specific routes
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := group.Group("/balances")
	{
		balances.POST("", h.openBalanceAccount)
		balances.GET("/snapshot", h.getBalanceSnapshot)
	}
}
