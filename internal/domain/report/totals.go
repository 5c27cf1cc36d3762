package report

import (
	"time"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// Totals holds the KPI figures for a tenant
type Totals struct {
	TotalPaid    valueobject.Money `json:"totalPaid"`
	TotalOverdue valueobject.Money `json:"totalOverdue"`
}

// ComputeTotals aggregates a tenant's payments into KPI totals.
//
// The paid total respects the period filter on paidDate. The overdue
// total is always computed live as of now and ignores the period: it
// answers "how much is outstanding right now", not "how much became
// overdue this month". Totals are rounded once at the end of
// summation, not per item.
func ComputeTotals(payments []*billing.Payment, period Period, now time.Time) Totals {
	filterDate := period.FilterDate(now)

	totalPaid := valueobject.Zero()
	totalOverdue := valueobject.Zero()

	for _, p := range payments {
		switch {
		case p.IsPaid():
			if filterDate == nil || (p.PaidDate != nil && !p.PaidDate.Before(*filterDate)) {
				totalPaid = totalPaid.Add(p.Amount)
			}
		case billing.StartOfDay(p.DueDate).Before(billing.StartOfDay(now)):
			totalOverdue = totalOverdue.Add(p.Amount)
		}
	}

	return Totals{
		TotalPaid:    totalPaid.RoundBank(2),
		TotalOverdue: totalOverdue.RoundBank(2),
	}
}

// CountOverdue returns how many of the payments are overdue as of now
func CountOverdue(payments []*billing.Payment, now time.Time) int {
	count := 0
	for _, p := range payments {
		if p.EffectiveStatus(now) == billing.PaymentStatusOverdue {
			count++
		}
	}
	return count
}
