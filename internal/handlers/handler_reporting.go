package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

const reportDateLayout = "2006-01-02"

// reportingHandler serves the read-only report endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// parseReportDate reads a YYYY-MM-DD query value. A missing value yields the
// fallback; a malformed one yields ok=false after the handler has responded.
func parseReportDate(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// trialBalance godoc
// @Summary Trial balance
// @Description Per-account debit and credit totals over posted journal lines up to the given date
// @Tags reports
// @Produce  json
// @Param   scopeID query string true "Business unit ID"
// @Param   asOf query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.TrialBalanceRow
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeID := c.Query("scopeID")
	if scopeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeID is required"})
		return
	}

	asOf, ok := parseReportDate(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), scopeID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "build trial balance")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// profitAndLoss godoc
// @Summary Profit and loss report
// @Tags reports
// @Produce  json
// @Param   scopeID query string true "Business unit ID"
// @Param   from query string false "From date (YYYY-MM-DD), open start when omitted"
// @Param   to query string false "To date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.PAndLReport
// @Router /reports/profit-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeID := c.Query("scopeID")
	if scopeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeID is required"})
		return
	}

	from, ok := parseReportDate(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseReportDate(c, "to", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), scopeID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "build profit and loss report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet
// @Description Assets, liabilities and equity as of the given date; equity folds in earnings to date and the response carries a reconciliation flag
// @Tags reports
// @Produce  json
// @Param   scopeID query string true "Business unit ID"
// @Param   asOf query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeID := c.Query("scopeID")
	if scopeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeID is required"})
		return
	}

	asOf, ok := parseReportDate(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), scopeID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "build balance sheet")
		return
	}

	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers report routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}
