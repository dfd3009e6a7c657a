package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// purchaseHandler handles HTTP requests for purchase events.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(purchaseService portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: purchaseService}
}

// createPurchase godoc
// @Summary Record a purchase
// @Description Creates the purchase with its payment rows and posts its journal atomically; any unpaid remainder routes to Accounts Payable
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase"
// @Success 201 {object} domain.PurchaseEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.purchaseService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record purchase")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updatePurchase godoc
// @Summary Update a purchase
// @Description Reverses the stored effect, replaces payment rows wholesale, and re-applies atomically
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   purchaseID path string true "Purchase ID"
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase"
// @Success 200 {object} domain.PurchaseEvent
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID} [put]
func (h *purchaseHandler) updatePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updatePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.purchaseService.Update(c.Request.Context(), purchaseID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update purchase")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deletePurchase godoc
// @Summary Delete a purchase
// @Tags purchases
// @Param   purchaseID path string true "Purchase ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID} [delete]
func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.purchaseService.Delete(c.Request.Context(), purchaseID, userID); err != nil {
		respondServiceError(c, logger, err, "delete purchase")
		return
	}

	c.Status(http.StatusNoContent)
}

// getPurchase godoc
// @Summary Get one purchase
// @Tags purchases
// @Produce  json
// @Param   purchaseID path string true "Purchase ID"
// @Success 200 {object} domain.PurchaseEvent
// @Failure 404 {object} map[string]string "Purchase not found"
// @Router /purchases/{purchaseID} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaseID := c.Param("purchaseID")

	ev, err := h.purchaseService.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve purchase")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listPurchases godoc
// @Summary List purchases
// @Tags purchases
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.PurchaseEvent
// @Router /purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.purchaseService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list purchases")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerPurchaseRoutes registers purchase specific routes
func registerPurchaseRoutes(group *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := group.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:purchaseID", h.getPurchase)
		purchases.PUT("/:purchaseID", h.updatePurchase)
		purchases.DELETE("/:purchaseID", h.deletePurchase)
	}
}
