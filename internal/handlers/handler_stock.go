package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// stockHandler handles HTTP requests for stock adjustment events.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(stockService portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: stockService}
}

// createStockAdjustment godoc
// @Summary Record a stock adjustment
// @Description Moves value between Inventory and Raw Materials; no cash or bank balance is touched
// @Tags stock-adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateStockAdjustRequest true "Stock adjustment"
// @Success 201 {object} domain.StockAdjustEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /stock-adjustments [post]
func (h *stockHandler) createStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createStockAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.stockService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record stock adjustment")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updateStockAdjustment godoc
// @Summary Update a stock adjustment
// @Tags stock-adjustments
// @Accept  json
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Param   adjustment body dto.CreateStockAdjustRequest true "Stock adjustment"
// @Success 200 {object} domain.StockAdjustEvent
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /stock-adjustments/{adjustmentID} [put]
func (h *stockHandler) updateStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	var req dto.CreateStockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateStockAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.stockService.Update(c.Request.Context(), adjustmentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update stock adjustment")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deleteStockAdjustment godoc
// @Summary Delete a stock adjustment
// @Tags stock-adjustments
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /stock-adjustments/{adjustmentID} [delete]
func (h *stockHandler) deleteStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.stockService.Delete(c.Request.Context(), adjustmentID, userID); err != nil {
		respondServiceError(c, logger, err, "delete stock adjustment")
		return
	}

	c.Status(http.StatusNoContent)
}

// getStockAdjustment godoc
// @Summary Get one stock adjustment
// @Tags stock-adjustments
// @Produce  json
// @Param   adjustmentID path string true "Adjustment ID"
// @Success 200 {object} domain.StockAdjustEvent
// @Failure 404 {object} map[string]string "Adjustment not found"
// @Router /stock-adjustments/{adjustmentID} [get]
func (h *stockHandler) getStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID := c.Param("adjustmentID")

	ev, err := h.stockService.GetByID(c.Request.Context(), adjustmentID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve stock adjustment")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listStockAdjustments godoc
// @Summary List stock adjustments
// @Tags stock-adjustments
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.StockAdjustEvent
// @Router /stock-adjustments [get]
func (h *stockHandler) listStockAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.stockService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list stock adjustments")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerStockRoutes registers stock adjustment specific routes
func registerStockRoutes(group *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	adjustments := group.Group("/stock-adjustments")
	{
		adjustments.POST("", h.createStockAdjustment)
		adjustments.GET("", h.listStockAdjustments)
		adjustments.GET("/:adjustmentID", h.getStockAdjustment)
		adjustments.PUT("/:adjustmentID", h.updateStockAdjustment)
		adjustments.DELETE("/:adjustmentID", h.deleteStockAdjustment)
	}
}
