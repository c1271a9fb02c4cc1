package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stwalsh4118/room4rent/internal/export"
	"github.com/stwalsh4118/room4rent/internal/services"
)

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	service services.ReportService
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler instance.
func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service, now: time.Now}
}

// YearQuery selects the report year; zero means the current year.
type YearQuery struct {
	Year int `form:"year" binding:"omitempty,gte=2000,lte=9999"`
}

func (h *ReportHandler) year(c *gin.Context) (int, bool) {
	var q YearQuery
	if !bindQuery(c, &q) {
		return 0, false
	}
	if q.Year == 0 {
		q.Year = h.now().Year()
	}
	return q.Year, true
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Income handles GET /reports/income?year=.
func (h *ReportHandler) Income(c *gin.Context) {
	year, ok := h.year(c)
	if !ok {
		return
	}

	rows, err := h.service.Income(c.Request.Context(), year)
	if err != nil {
		writeServiceError(c, err, "Failed to build income report")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UnpaidBills handles GET /reports/unpaid-bills.
func (h *ReportHandler) UnpaidBills(c *gin.Context) {
	rows, err := h.service.UnpaidBills(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to build unpaid bills report")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UtilityUsage handles GET /reports/utility-usage?year=.
func (h *ReportHandler) UtilityUsage(c *gin.Context) {
	year, ok := h.year(c)
	if !ok {
		return
	}

	rows, err := h.service.UtilityUsage(c.Request.Context(), year)
	if err != nil {
		writeServiceError(c, err, "Failed to build utility usage report")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportIncome handles GET /reports/income/export?year=.
func (h *ReportHandler) ExportIncome(c *gin.Context) {
	year, ok := h.year(c)
	if !ok {
		return
	}

	rows, err := h.service.Income(c.Request.Context(), year)
	if err != nil {
		writeServiceError(c, err, "Failed to build income report")
		return
	}

	data, err := export.IncomeReport(year, rows)
	if err != nil {
		writeServiceError(c, err, "Failed to render income report")
		return
	}
	attachment(c, fmt.Sprintf("income-%d.xlsx", year), data)
}

// ExportUnpaidBills handles GET /reports/unpaid-bills/export.
func (h *ReportHandler) ExportUnpaidBills(c *gin.Context) {
	rows, err := h.service.UnpaidBills(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to build unpaid bills report")
		return
	}

	data, err := export.UnpaidBills(rows)
	if err != nil {
		writeServiceError(c, err, "Failed to render unpaid bills report")
		return
	}
	attachment(c, fmt.Sprintf("unpaid-bills-%s.xlsx", h.now().Format("2006-01-02")), data)
}

func attachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, data)
}
