package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// salaryHandler handles HTTP requests for salary events.
type salaryHandler struct {
	salaryService portssvc.SalarySvcFacade
}

func newSalaryHandler(salaryService portssvc.SalarySvcFacade) *salaryHandler {
	return &salaryHandler{salaryService: salaryService}
}

// createSalary godoc
// @Summary Record a salary payout
// @Description Creates the salary row and posts its journal atomically; the posted amount is base + allowance + bonus
// @Tags salaries
// @Accept  json
// @Produce  json
// @Param   salary body dto.CreateSalaryRequest true "Salary"
// @Success 201 {object} domain.SalaryEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /salaries [post]
func (h *salaryHandler) createSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createSalary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.salaryService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record salary")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updateSalary godoc
// @Summary Update a salary payout
// @Tags salaries
// @Accept  json
// @Produce  json
// @Param   salaryID path string true "Salary ID"
// @Param   salary body dto.CreateSalaryRequest true "Salary"
// @Success 200 {object} domain.SalaryEvent
// @Failure 404 {object} map[string]string "Salary not found"
// @Router /salaries/{salaryID} [put]
func (h *salaryHandler) updateSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salaryID := c.Param("salaryID")

	var req dto.CreateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateSalary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.salaryService.Update(c.Request.Context(), salaryID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update salary")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deleteSalary godoc
// @Summary Delete a salary payout
// @Tags salaries
// @Param   salaryID path string true "Salary ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Salary not found"
// @Router /salaries/{salaryID} [delete]
func (h *salaryHandler) deleteSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salaryID := c.Param("salaryID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.salaryService.Delete(c.Request.Context(), salaryID, userID); err != nil {
		respondServiceError(c, logger, err, "delete salary")
		return
	}

	c.Status(http.StatusNoContent)
}

// getSalary godoc
// @Summary Get one salary payout
// @Tags salaries
// @Produce  json
// @Param   salaryID path string true "Salary ID"
// @Success 200 {object} domain.SalaryEvent
// @Failure 404 {object} map[string]string "Salary not found"
// @Router /salaries/{salaryID} [get]
func (h *salaryHandler) getSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salaryID := c.Param("salaryID")

	ev, err := h.salaryService.GetByID(c.Request.Context(), salaryID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve salary")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listSalaries godoc
// @Summary List salary payouts
// @Tags salaries
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.SalaryEvent
// @Router /salaries [get]
func (h *salaryHandler) listSalaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.salaryService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list salaries")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerSalaryRoutes registers salary specific routes
func registerSalaryRoutes(group *gin.RouterGroup, salaryService portssvc.SalarySvcFacade) {
	h := newSalaryHandler(salaryService)

	salaries := group.Group("/salaries")
	{
		salaries.POST("", h.createSalary)
		salaries.GET("", h.listSalaries)
		salaries.GET("/:salaryID", h.getSalary)
		salaries.PUT("/:salaryID", h.updateSalary)
		salaries.DELETE("/:salaryID", h.deleteSalary)
	}
}
