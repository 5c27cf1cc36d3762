package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/report"
)

const (
	// DefaultUpcomingDays is the window for the upcoming list when the
	// caller does not pass one.
	DefaultUpcomingDays = 7

	// maxUpcomingRows bounds the upcoming list to the soonest entries
	maxUpcomingRows = 10
)

// ReportService assembles the dashboard and admin read models
type ReportService struct {
	reportRepo report.Repository
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.Repository) *ReportService {
	return &ReportService{reportRepo: reportRepo, now: time.Now}
}

// KPI computes the tenant's paid and overdue totals for a period.
// The paid total respects the period; the overdue total is always the
// live figure as of now.
func (s *ReportService) KPI(ctx context.Context, tenantID uuid.UUID, periodParam string) (*KPIResponse, error) {
	period, err := report.ParsePeriod(periodParam)
	if err != nil {
		return nil, err
	}

	payments, err := s.reportRepo.PaymentsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	totals := report.ComputeTotals(payments, period, s.now())
	return &KPIResponse{
		Period:       string(period),
		TotalPaid:    totals.TotalPaid.String(),
		TotalOverdue: totals.TotalOverdue.String(),
	}, nil
}

// OverdueCount counts the tenant's payments that are overdue as of now
func (s *ReportService) OverdueCount(ctx context.Context, tenantID uuid.UUID) (*OverdueCountResponse, error) {
	payments, err := s.reportRepo.PaymentsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &OverdueCountResponse{Count: report.CountOverdue(payments, s.now())}, nil
}

// Upcoming lists payments due within the next days, soonest first.
// Overdue payments are excluded and the list is capped at the ten
// soonest rows.
func (s *ReportService) Upcoming(ctx context.Context, tenantID uuid.UUID, days int) ([]ScheduledPaymentResponse, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}

	rows, err := s.reportRepo.UnpaidForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := billing.StartOfDay(now)
	cutoff := today.AddDate(0, 0, days)

	responses := make([]ScheduledPaymentResponse, 0, maxUpcomingRows)
	for _, row := range rows {
		status := billing.Classify(row.Status, row.PaidDate, row.DueDate, now)
		if status != billing.PaymentStatusUpcoming {
			continue
		}
		due := billing.StartOfDay(row.DueDate)
		if due.After(cutoff) {
			continue
		}
		responses = append(responses, toScheduledPaymentResponse(row, string(status)))
		if len(responses) == maxUpcomingRows {
			break
		}
	}
	return responses, nil
}

// UpcomingMonth lists the tenant's upcoming payments due in the current
// calendar month, soonest first.
func (s *ReportService) UpcomingMonth(ctx context.Context, tenantID uuid.UUID) ([]ScheduledPaymentResponse, error) {
	rows, err := s.reportRepo.UnpaidForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	responses := make([]ScheduledPaymentResponse, 0)
	for _, row := range rows {
		status := billing.Classify(row.Status, row.PaidDate, row.DueDate, now)
		if status != billing.PaymentStatusUpcoming {
			continue
		}
		due := billing.StartOfDay(row.DueDate)
		if due.Before(monthStart) || !due.Before(monthEnd) {
			continue
		}
		responses = append(responses, toScheduledPaymentResponse(row, string(status)))
	}
	return responses, nil
}

// Overdue lists the tenant's overdue payments, most overdue first
func (s *ReportService) Overdue(ctx context.Context, tenantID uuid.UUID) ([]ScheduledPaymentResponse, error) {
	rows, err := s.reportRepo.UnpaidForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// Rows arrive ordered by due date, so the longest-overdue payments
	// come first.
	now := s.now()
	responses := make([]ScheduledPaymentResponse, 0)
	for _, row := range rows {
		status := billing.Classify(row.Status, row.PaidDate, row.DueDate, now)
		if status != billing.PaymentStatusOverdue {
			continue
		}
		responses = append(responses, toScheduledPaymentResponse(row, string(status)))
	}
	return responses, nil
}

// CustomerSummaries returns one dashboard row per customer of the tenant
func (s *ReportService) CustomerSummaries(ctx context.Context, tenantID uuid.UUID) ([]CustomerSummaryResponse, error) {
	rows, err := s.reportRepo.CustomerSummaries(ctx, tenantID, s.now())
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toCustomerSummaryResponse(row))
	}
	return responses, nil
}

// RecentActivity returns the newest activity entries across all tenants
func (s *ReportService) RecentActivity(ctx context.Context, limit int) ([]ActivityEntryResponse, error) {
	rows, err := s.reportRepo.RecentActivity(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ActivityEntryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toActivityEntryResponse(row))
	}
	return responses, nil
}
