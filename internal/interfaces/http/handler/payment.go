package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	billingapp "github.com/paytrack/backend/internal/application/billing"
	reportapp "github.com/paytrack/backend/internal/application/report"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
	reportService  *reportapp.ReportService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService, reportService *reportapp.ReportService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, reportService: reportService}
}

// MarkPaid marks a payment as paid
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	resp, err := h.paymentService.MarkPaid(c.Request.Context(), userID, paymentID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update edits a payment's amount and due date
func (h *PaymentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req billingapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.paymentService.Update(c.Request.Context(), userID, paymentID, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Upcoming lists payments due within the next days (default 7)
func (h *PaymentHandler) Upcoming(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	days := reportapp.DefaultUpcomingDays
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			h.BadRequest(c, "days must be a positive integer")
			return
		}
	}

	rows, err := h.reportService.Upcoming(c.Request.Context(), userID, days)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// UpcomingMonth lists upcoming payments due in the current calendar month
func (h *PaymentHandler) UpcomingMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	rows, err := h.reportService.UpcomingMonth(c.Request.Context(), userID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// Overdue lists overdue payments, longest overdue first
func (h *PaymentHandler) Overdue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	rows, err := h.reportService.Overdue(c.Request.Context(), userID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, rows)
}

// OverdueCount returns the number of overdue payments
func (h *PaymentHandler) OverdueCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	resp, err := h.reportService.OverdueCount(c.Request.Context(), userID)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}
