package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// journalHandler serves read access to posted journals. Journals are never
// created over HTTP directly; they are posted by the source-event workflows.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// getJournal godoc
// @Summary Get a journal entry with its lines
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   scopeID query string true "Business unit ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")
	scopeID := c.Query("scopeID")

	entry, err := h.journalService.GetJournalByID(c.Request.Context(), scopeID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		logger.Error("Failed to get journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// listJournals godoc
// @Summary List journals for a business unit
// @Description Token-paginated, newest first
// @Tags journals
// @Produce  json
// @Param   scopeID query string true "Business unit ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeID := c.Query("scopeID")
	if scopeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeID is required"})
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	page, err := h.journalService.ListJournals(c.Request.Context(), scopeID, params)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journals"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// listAccountLines godoc
// @Summary List journal lines posted to one account
// @Description Drill-down for a single account over a date range, oldest first
// @Tags journals
// @Produce  json
// @Param   scopeID query string true "Business unit ID"
// @Param   accountCode query string true "Account code, e.g. 1000"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.LineResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /journals/lines [get]
func (h *journalHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeID := c.Query("scopeID")
	accountCode := c.Query("accountCode")
	from, ok := parseReportDate(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseReportDate(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	lines, err := h.journalService.ListAccountLines(c.Request.Context(), scopeID, accountCode, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list account lines", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account lines"})
		return
	}

	responses := make([]dto.LineResponse, len(lines))
	for i := range lines {
		responses[i] = dto.ToLineResponse(&lines[i])
	}
	c.JSON(http.StatusOK, responses)
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.GET("/lines", h.listAccountLines)
		journals.GET("/:journalID", h.getJournal)
	}
}
