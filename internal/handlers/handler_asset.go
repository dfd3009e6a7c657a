package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// assetHandler handles HTTP requests for asset acquisition events.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(assetService portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: assetService}
}

// createAsset godoc
// @Summary Record an asset acquisition
// @Description Creates the asset row and posts its journal atomically; unpaid acquisitions credit Accounts Payable
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   asset body dto.CreateAssetRequest true "Asset"
// @Success 201 {object} domain.AssetEvent
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.assetService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "record asset")
		return
	}

	c.JSON(http.StatusCreated, ev)
}

// updateAsset godoc
// @Summary Update an asset acquisition
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   assetID path string true "Asset ID"
// @Param   asset body dto.CreateAssetRequest true "Asset"
// @Success 200 {object} domain.AssetEvent
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{assetID} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	ev, err := h.assetService.Update(c.Request.Context(), assetID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update asset")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// deleteAsset godoc
// @Summary Delete an asset acquisition
// @Tags assets
// @Param   assetID path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{assetID} [delete]
func (h *assetHandler) deleteAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.assetService.Delete(c.Request.Context(), assetID, userID); err != nil {
		respondServiceError(c, logger, err, "delete asset")
		return
	}

	c.Status(http.StatusNoContent)
}

// getAsset godoc
// @Summary Get one asset acquisition
// @Tags assets
// @Produce  json
// @Param   assetID path string true "Asset ID"
// @Success 200 {object} domain.AssetEvent
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{assetID} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	ev, err := h.assetService.GetByID(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, logger, err, "retrieve asset")
		return
	}

	c.JSON(http.StatusOK, ev)
}

// listAssets godoc
// @Summary List asset acquisitions
// @Tags assets
// @Produce  json
// @Param   scopeID query string false "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} domain.AssetEvent
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EventListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	events, err := h.assetService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "list assets")
		return
	}

	c.JSON(http.StatusOK, events)
}

// registerAssetRoutes registers asset specific routes
func registerAssetRoutes(group *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := group.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:assetID", h.getAsset)
		assets.PUT("/:assetID", h.updateAsset)
		assets.DELETE("/:assetID", h.deleteAsset)
	}
}
