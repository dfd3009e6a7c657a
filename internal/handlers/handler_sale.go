package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// saleHandler handles HTTP requests for sale events.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(saleService portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: saleService}
}

// createSale godoc
// @Summary Record a sale
// @Description Creates the sale with its payment rows and posts its journal atomically; any unpaid remainder routes to Accounts Receivable
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} domain.SaleEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.saleService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record sale")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updateSale godoc
// @Summary Update a sale
// @Description Reverses the stored effect, replaces payment rows wholesale, and re-applies atomically
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Param   sale body dto.CreateSaleRequest true "Sale"
// @Success 200 {object} domain.SaleEvent
// @Failure 404 {object} map[string]string "Sale not found"
// @Router /sales/{saleID} [put]
func (h *saleHandler) updateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.saleService.Update(c.Request.Context(), saleID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update sale")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deleteSale godoc
// @Summary Delete a sale
// @Tags sales
// @Param   saleID path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Sale not found"
// @Router /sales/{saleID} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.saleService.Delete(c.Request.Context(), saleID, userID); err != nil {
		respondServiceError(c, logger, err, "delete sale")
		return
	}

	c.Status(http.StatusNoContent)
}

// getSale godoc
// @Summary Get one sale
// @Tags sales
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} domain.SaleEvent
// @Failure 404 {object} map[string]string "Sale not found"
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	ev, err := h.saleService.GetByID(c.Request.Context(), saleID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve sale")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listSales godoc
// @Summary List sales
// @Tags sales
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.SaleEvent
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.saleService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list sales")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerSaleRoutes registers sale specific routes
func registerSaleRoutes(group *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := group.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.PUT("/:saleID", h.updateSale)
		sales.DELETE("/:saleID", h.deleteSale)
	}
}
