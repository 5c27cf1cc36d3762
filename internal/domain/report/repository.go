package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// ScheduledPayment is a payment row joined with its purchase and
// customer for dashboard lists.
type ScheduledPayment struct {
	PaymentID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	Product      string
	Amount       valueobject.Money
	DueDate      time.Time
	Status       billing.PaymentStatus
	PaidDate     *time.Time
}

// CustomerSummary is the per-customer dashboard row
type CustomerSummary struct {
	CustomerID        uuid.UUID
	Name              string
	Email             string
	Phone             string
	Company           string
	PurchaseCount     int
	TotalPaid         valueobject.Money
	TotalOverdue      valueobject.Money
	OverdueCount      int
	NextPaymentDate   *time.Time
	NextPaymentAmount *valueobject.Money
}

// ActivityKind discriminates activity log entries
type ActivityKind string

const (
	ActivityCustomerCreated ActivityKind = "customer_created"
	ActivityPurchaseCreated ActivityKind = "purchase_created"
	ActivityPaymentMarked   ActivityKind = "payment_marked_paid"
)

// ActivityEntry is one row of the admin activity feed, derived from
// the persisted customer, purchase and payment tables rather than a
// dedicated audit log.
type ActivityEntry struct {
	Kind         ActivityKind
	OccurredAt   time.Time
	ActorID      *uuid.UUID
	CustomerName string
	Product      string
	Amount       *valueobject.Money
}

// Repository provides the cross-aggregate read queries behind the
// dashboard and admin endpoints.
type Repository interface {
	// PaymentsForTenant returns every payment belonging to the
	// tenant's customers.
	PaymentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error)

	// UnpaidForTenant returns unpaid payments joined with purchase and
	// customer, ordered by due date ascending.
	UnpaidForTenant(ctx context.Context, tenantID uuid.UUID) ([]*ScheduledPayment, error)

	// CustomerSummaries returns one summary row per customer of the
	// tenant, ordered by name.
	CustomerSummaries(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*CustomerSummary, error)

	// RecentActivity returns the newest activity entries across all
	// tenants, newest first, bounded by limit.
	RecentActivity(ctx context.Context, limit int) ([]*ActivityEntry, error)
}
