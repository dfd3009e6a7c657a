package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// masterHandler serves the reference lookups (business units and banks).
type masterHandler struct {
	masterService portssvc.MasterSvcFacade
}

func newMasterHandler(masterService portssvc.MasterSvcFacade) *masterHandler {
	return &masterHandler{masterService: masterService}
}

// listBusinessUnits godoc
// @Summary List business units
// @Tags master
// @Produce  json
// @Success 200 {array} domain.BusinessUnit
// @Router /business-units [get]
func (h *masterHandler) listBusinessUnits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	units, err := h.masterService.ListBusinessUnits(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "list business units")
		return
	}

	c.JSON(http.StatusOK, units)
}

// getBusinessUnit godoc
// @Summary Get one business unit
// @Tags master
// @Produce  json
// @Param   unitID path string true "Business unit ID"
// @Success 200 {object} domain.BusinessUnit
// @Failure 404 {object} map[string]string "Business unit not found"
// @Router /business-units/{unitID} [get]
func (h *masterHandler) getBusinessUnit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	unitID := c.Param("unitID")

	unit, err := h.masterService.GetBusinessUnit(c.Request.Context(), unitID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve business unit")
		return
	}

	c.JSON(http.StatusOK, unit)
}

// listBanks godoc
// @Summary List banks
// @Tags master
// @Produce  json
// @Success 200 {array} domain.Bank
// @Router /banks [get]
func (h *masterHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	banks, err := h.masterService.ListBanks(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "list banks")
		return
	}

	c.JSON(http.StatusOK, banks)
}

// getBank godoc
// @Summary Get one bank
// @Tags master
// @Produce  json
// @Param   bankID path string true "Bank ID"
// @Success 200 {object} domain.Bank
// @Failure 404 {object} map[string]string "Bank not found"
// @Router /banks/{bankID} [get]
func (h *masterHandler) getBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankID := c.Param("bankID")

	bank, err := h.masterService.GetBank(c.Request.Context(), bankID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve bank")
		return
	}

	c.JSON(http.StatusOK, bank)
}

// registerMasterRoutes registers reference data routes
func registerMasterRoutes(group *gin.RouterGroup, masterService portssvc.MasterSvcFacade) {
	h := newMasterHandler(masterService)

	units := group.Group("/business-units")
	{
		units.GET("", h.listBusinessUnits)
		units.GET("/:unitID", h.getBusinessUnit)
	}

	banks := group.Group("/banks")
	{
		banks.GET("", h.listBanks)
		banks.GET("/:bankID", h.getBank)
	}
}
