package handler

import (
	"time"

	reportapp "github.com/bizpulse/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the sales analytics endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.SalesReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.SalesReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// rangeRequest carries an explicit date range for the grouping
// endpoints. Both bounds are dates; "to" is inclusive of its day.
type rangeRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

func (r rangeRequest) resolve() (time.Time, time.Time, bool) {
	from, err := time.ParseInLocation("2006-01-02", r.From, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.ParseInLocation("2006-01-02", r.To, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1), true
}

// Summary returns the sales summary for a date bucket (default today)
func (h *ReportHandler) Summary(c *gin.Context) {
	bucket := reportapp.DateBucket(c.DefaultQuery("bucket", string(reportapp.BucketToday)))

	summary, err := h.reportService.Summary(c.Request.Context(), bucket)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ByProduct returns per-product sales over an explicit range
func (h *ReportHandler) ByProduct(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, to, ok := req.resolve()
	if !ok {
		h.BadRequest(c, "Dates must be in YYYY-MM-DD format")
		return
	}

	rows, err := h.reportService.ByProduct(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// ByCategory returns per-category sales over an explicit range
func (h *ReportHandler) ByCategory(c *gin.Context) {
	var req rangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	from, to, ok := req.resolve()
	if !ok {
		h.BadRequest(c, "Dates must be in YYYY-MM-DD format")
		return
	}

	rows, err := h.reportService.ByCategory(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
