package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/paytrack/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence.
// All reads are tenant-scoped: a lookup for a customer owned by a different
// tenant behaves exactly like a missing customer.
type CustomerRepository interface {
	// FindByID finds a customer by ID regardless of tenant. Used for
	// ownership checks where "someone else's" must be told apart from
	// "missing".
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDForTenant finds a customer by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindAllForTenant finds all customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// FindAll finds all customers across tenants (admin dashboards)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForTenant deletes a customer within a tenant.
	// Purchases and payments owned by the customer are removed with it.
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts customers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Count counts customers across tenants
	Count(ctx context.Context) (int64, error)
}
