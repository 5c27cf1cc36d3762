package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/paytrack/backend/internal/domain/shared"
)

// UserStats holds per-user activity counters for the admin dashboard
type UserStats struct {
	UserID           uuid.UUID
	CustomersCreated int64
	PurchasesCreated int64
	PaymentsMarked   int64
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username (case-insensitive)
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll finds all users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all users
	Count(ctx context.Context) (int64, error)

	// ExistsByUsername checks if a user with the given username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// GetStats returns activity counters for the given users
	GetStats(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]UserStats, error)
}
