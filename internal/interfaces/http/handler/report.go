package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/paytrack/backend/internal/application/report"
)

// ReportHandler handles dashboard reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// KPI returns the paid and overdue totals for a period
func (h *ReportHandler) KPI(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	resp, err := h.reportService.KPI(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerSummaries returns one dashboard row per customer
func (h *ReportHandler) CustomerSummaries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	rows, err := h.reportService.CustomerSummaries(c.Request.Context(), userID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rows)
}
