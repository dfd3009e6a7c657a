package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// incomeHandler handles HTTP requests for income events.
type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func newIncomeHandler(incomeService portssvc.IncomeSvcFacade) *incomeHandler {
	return &incomeHandler{incomeService: incomeService}
}

// createIncome godoc
// @Summary Record an income event
// @Description Creates the income row and posts its journal atomically
// @Tags incomes
// @Accept  json
// @Produce  json
// @Param   income body dto.CreateIncomeRequest true "Income"
// @Success 201 {object} domain.IncomeEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /incomes [post]
func (h *incomeHandler) createIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.incomeService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record income")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updateIncome godoc
// @Summary Update an income event
// @Description Reverses the stored effect and re-applies the new values atomically
// @Tags incomes
// @Accept  json
// @Produce  json
// @Param   incomeID path string true "Income ID"
// @Param   income body dto.CreateIncomeRequest true "Income"
// @Success 200 {object} domain.IncomeEvent
// @Failure 404 {object} map[string]string "Income not found"
// @Router /incomes/{incomeID} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("incomeID")

	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.incomeService.Update(c.Request.Context(), incomeID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update income")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deleteIncome godoc
// @Summary Delete an income event
// @Description Reverses the stored effect and removes the row and its journal
// @Tags incomes
// @Param   incomeID path string true "Income ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Income not found"
// @Router /incomes/{incomeID} [delete]
func (h *incomeHandler) deleteIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("incomeID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.incomeService.Delete(c.Request.Context(), incomeID, userID); err != nil {
		respondServiceError(c, logger, err, "delete income")
		return
	}

	c.Status(http.StatusNoContent)
}

// getIncome godoc
// @Summary Get one income event
// @Tags incomes
// @Produce  json
// @Param   incomeID path string true "Income ID"
// @Success 200 {object} domain.IncomeEvent
// @Failure 404 {object} map[string]string "Income not found"
// @Router /incomes/{incomeID} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	incomeID := c.Param("incomeID")

	ev, err := h.incomeService.GetByID(c.Request.Context(), incomeID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve income")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listIncomes godoc
// @Summary List income events
// @Tags incomes
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.IncomeEvent
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.incomeService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list incomes")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerIncomeRoutes registers income specific routes
func registerIncomeRoutes(group *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := newIncomeHandler(incomeService)

	incomes := group.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/:incomeID", h.getIncome)
		incomes.PUT("/:incomeID", h.updateIncome)
		incomes.DELETE("/:incomeID", h.deleteIncome)
	}
}
