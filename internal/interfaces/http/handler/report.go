package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/report"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/report"
)

// ReportHandler exposes the reporting read models over HTTP
type ReportHandler struct {
	BaseHandler
	service *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reportapp.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes on the given router group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/sales-summary", h.SalesSummary)
		reports.GET("/gst-summary", h.GSTSummary)
		reports.GET("/top-items", h.TopItems)
		reports.GET("/outstanding-dues", h.OutstandingDues)
	}
}

// SalesSummary returns the sales summary for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	summary, err := h.service.SalesSummary(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GSTSummary returns the rate-wise GST collection report for a period
func (h *ReportHandler) GSTSummary(c *gin.Context) {
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	summary, err := h.service.GSTSummary(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TopItems returns the best selling items for a period
func (h *ReportHandler) TopItems(c *gin.Context) {
	period, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, err := h.service.TopItems(c.Request.Context(), period, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// OutstandingDues returns sales with unpaid balances
func (h *ReportHandler) OutstandingDues(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	dues, err := h.service.OutstandingDues(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dues)
}

// parsePeriod reads the from/to query parameters. Both default to the
// current calendar month; to is inclusive on the wire.
func (h *ReportHandler) parsePeriod(c *gin.Context) (report.Period, bool) {
	fromRaw := c.Query("from")
	toRaw := c.Query("to")

	if fromRaw == "" && toRaw == "" {
		return report.MonthPeriod(time.Now()), true
	}

	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		h.BadRequest(c, "from must be a date in YYYY-MM-DD format")
		return report.Period{}, false
	}
	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		h.BadRequest(c, "to must be a date in YYYY-MM-DD format")
		return report.Period{}, false
	}
	if !to.After(from) {
		h.BadRequest(c, "to must be after from")
		return report.Period{}, false
	}

	return report.Period{From: from, To: to.AddDate(0, 0, 1)}, true
}
