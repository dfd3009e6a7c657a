package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// expenseHandler handles HTTP requests for expense events.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(expenseService portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: expenseService}
}

// createExpense godoc
// @Summary Record an expense event
// @Description Creates the expense row and posts its journal atomically
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} domain.ExpenseEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.expenseService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record expense")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updateExpense godoc
// @Summary Update an expense event
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense"
// @Success 200 {object} domain.ExpenseEvent
// @Failure 404 {object} map[string]string "Expense not found"
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.expenseService.Update(c.Request.Context(), expenseID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update expense")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deleteExpense godoc
// @Summary Delete an expense event
// @Tags expenses
// @Param   expenseID path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Expense not found"
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.expenseService.Delete(c.Request.Context(), expenseID, userID); err != nil {
		respondServiceError(c, logger, err, "delete expense")
		return
	}

	c.Status(http.StatusNoContent)
}

// getExpense godoc
// @Summary Get one expense event
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} domain.ExpenseEvent
// @Failure 404 {object} map[string]string "Expense not found"
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	ev, err := h.expenseService.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve expense")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listExpenses godoc
// @Summary List expense events
// @Tags expenses
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.ExpenseEvent
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.expenseService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list expenses")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerExpenseRoutes registers expense specific routes
func registerExpenseRoutes(group *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := group.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}
