package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/report"
)

// KPIResponse carries the dashboard totals for a reporting period
type KPIResponse struct {
	Period       string `json:"period"`
	TotalPaid    string `json:"total_paid"`
	TotalOverdue string `json:"total_overdue"`
}

// ScheduledPaymentResponse is one row of the upcoming/overdue lists
type ScheduledPaymentResponse struct {
	PaymentID    uuid.UUID `json:"payment_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Product      string    `json:"product"`
	Amount       string    `json:"amount"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
}

// OverdueCountResponse carries the overdue payment count
type OverdueCountResponse struct {
	Count int `json:"count"`
}

// CustomerSummaryResponse is the per-customer dashboard row
type CustomerSummaryResponse struct {
	CustomerID        uuid.UUID  `json:"customer_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Company           string     `json:"company,omitempty"`
	PurchaseCount     int        `json:"purchase_count"`
	TotalPaid         string     `json:"total_paid"`
	TotalOverdue      string     `json:"total_overdue"`
	OverdueCount      int        `json:"overdue_count"`
	NextPaymentDate   *time.Time `json:"next_payment_date,omitempty"`
	NextPaymentAmount *string    `json:"next_payment_amount,omitempty"`
}

// ActivityEntryResponse is one row of the admin activity feed
type ActivityEntryResponse struct {
	Kind         string     `json:"kind"`
	OccurredAt   time.Time  `json:"occurred_at"`
	ActorID      *uuid.UUID `json:"actor_id,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	Product      string     `json:"product,omitempty"`
	Amount       *string    `json:"amount,omitempty"`
}

func toScheduledPaymentResponse(row *report.ScheduledPayment, status string) ScheduledPaymentResponse {
	return ScheduledPaymentResponse{
		PaymentID:    row.PaymentID,
		CustomerID:   row.CustomerID,
		CustomerName: row.CustomerName,
		Product:      row.Product,
		Amount:       row.Amount.String(),
		DueDate:      row.DueDate,
		Status:       status,
	}
}

func toCustomerSummaryResponse(row *report.CustomerSummary) CustomerSummaryResponse {
	resp := CustomerSummaryResponse{
		CustomerID:      row.CustomerID,
		Name:            row.Name,
		Email:           row.Email,
		Phone:           row.Phone,
		Company:         row.Company,
		PurchaseCount:   row.PurchaseCount,
		TotalPaid:       row.TotalPaid.String(),
		TotalOverdue:    row.TotalOverdue.String(),
		OverdueCount:    row.OverdueCount,
		NextPaymentDate: row.NextPaymentDate,
	}
	if row.NextPaymentAmount != nil {
		amount := row.NextPaymentAmount.String()
		resp.NextPaymentAmount = &amount
	}
	return resp
}

func toActivityEntryResponse(row *report.ActivityEntry) ActivityEntryResponse {
	resp := ActivityEntryResponse{
		Kind:         string(row.Kind),
		OccurredAt:   row.OccurredAt,
		ActorID:      row.ActorID,
		CustomerName: row.CustomerName,
		Product:      row.Product,
	}
	if row.Amount != nil {
		amount := row.Amount.String()
		resp.Amount = &amount
	}
	return resp
}
