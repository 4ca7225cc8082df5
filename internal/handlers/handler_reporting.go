package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/dto"
	"github.com/rusingacademy/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/trial-balance/csv", h.getTrialBalanceCSV)
		reports.GET("/general-ledger", h.getGeneralLedger)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
}

// parseDateQuery reads a date query parameter, accepting RFC3339 or a plain
// date. A plain date is inclusive for the whole day on entry_date. Returns the
// fallback when absent.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid %s %q: expected RFC3339 or YYYY-MM-DD", name, raw)
}

// parseAsOfParam reads the asOf query parameter, defaulting to now.
func parseAsOfParam(c *gin.Context) (time.Time, error) {
	return parseDateQuery(c, "asOf", time.Now().UTC())
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Every account's balance in its normal column, with matching totals
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf"
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOfParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getTrialBalanceCSV godoc
// @Summary Trial balance as CSV
// @Description The trial balance rows and totals rendered as CSV for export
// @Tags reports
// @Produce  text/csv
// @Param   asOf query string false "Report date (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} map[string]string "Invalid asOf"
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Router /reports/trial-balance/csv [get]
func (h *reportingHandler) getTrialBalanceCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOfParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	csvData, err := h.reportingService.TrialBalanceCSV(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build trial balance CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	filename := fmt.Sprintf("trial-balance-%s.csv", asOf.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", csvData)
}

// getGeneralLedger godoc
// @Summary General ledger report
// @Description Every account's chronological lines with running balances
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 400 {object} map[string]string "Invalid asOf"
// @Failure 500 {object} map[string]string "Failed to build general ledger"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOfParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accounts, err := h.reportingService.GeneralLedger(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build general ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build general ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(asOf, accounts))
}

// getProfitAndLoss godoc
// @Summary Profit and loss report
// @Description Income and expense activity over a period, with net profit
// @Tags reports
// @Produce  json
// @Param   from query string false "Period start (RFC3339 or YYYY-MM-DD), defaults to the beginning"
// @Param   to query string false "Period end (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid from or to"
// @Failure 500 {object} map[string]string "Failed to build profit and loss report"
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := parseDateQuery(c, "from", time.Time{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseDateQuery(c, "to", time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build profit and loss report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build profit and loss report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Balance sheet report
// @Description Asset, liability, and equity balances as of a point in time
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (RFC3339 or YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid asOf"
// @Failure 500 {object} map[string]string "Failed to build balance sheet"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOfParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}
