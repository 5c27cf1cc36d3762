package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PurchaseRepository defines purchase persistence operations
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Purchase, error)
	FindAll(ctx context.Context) ([]*Purchase, error)

	// CreateWithPayments inserts the purchase and its full payment
	// schedule in a single transaction. Either everything is written
	// or nothing is.
	CreateWithPayments(ctx context.Context, purchase *Purchase, payments []*Payment) error

	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines payment persistence operations
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByPurchase returns the purchase's payments ordered by due
	// date ascending.
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*Payment, error)

	// FindUnpaidForTenant returns every payment of the tenant's
	// customers that has not been marked paid, ordered by due date.
	FindUnpaidForTenant(ctx context.Context, tenantID uuid.UUID) ([]*Payment, error)

	// FindUnpaidDueBetweenForTenant returns unpaid payments for the
	// tenant whose due date falls in [from, to], ordered by due date.
	FindUnpaidDueBetweenForTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Payment, error)

	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
