package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/paytrack/backend/internal/domain/identity"
	"github.com/paytrack/backend/internal/domain/shared"
)

func TestUserService_List(t *testing.T) {
	ctx := context.Background()

	alice := testUser(t, "alice", "secret123")
	bob := testUser(t, "bob", "secret123")

	repo := new(MockUserRepository)
	repo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]identity.User{*alice, *bob}, nil)
	repo.On("GetStats", ctx, mock.AnythingOfType("[]uuid.UUID")).Return(map[uuid.UUID]identity.UserStats{
		alice.ID: {UserID: alice.ID, CustomersCreated: 3, PurchasesCreated: 5, PaymentsMarked: 7},
	}, nil)

	svc := NewUserService(repo, zap.NewNop())
	rows, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0].CustomersCreated)
	assert.Equal(t, int64(7), rows[0].PaymentsMarked)
	assert.Zero(t, rows[1].CustomersCreated)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("creates user with creator recorded", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "carol").Return(false, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "carol" && u.CreatedBy != nil && *u.CreatedBy == adminID
		})).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		resp, err := svc.Create(ctx, adminID, CreateUserRequest{Username: "carol", Password: "secret123", Role: "user"})

		require.NoError(t, err)
		assert.Equal(t, "carol", resp.Username)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "alice").Return(true, nil)

		svc := NewUserService(repo, zap.NewNop())
		_, err := svc.Create(ctx, adminID, CreateUserRequest{Username: "alice", Password: "secret123", Role: "user"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("short password is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "carol").Return(false, nil)

		svc := NewUserService(repo, zap.NewNop())
		_, err := svc.Create(ctx, adminID, CreateUserRequest{Username: "carol", Password: "short", Role: "user"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("deletes another user", func(t *testing.T) {
		victim := testUser(t, "bob", "secret123")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, victim.ID).Return(victim, nil)
		repo.On("Delete", ctx, victim.ID).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		require.NoError(t, svc.Delete(ctx, adminID, victim.ID))
		repo.AssertExpectations(t)
	})

	t.Run("self deletion is rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		err := svc.Delete(ctx, adminID, adminID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CANNOT_DELETE_SELF", domainErr.Code)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("missing user is not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		svc := NewUserService(repo, zap.NewNop())
		err := svc.Delete(ctx, adminID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the password", func(t *testing.T) {
		user := testUser(t, "bob", "oldsecret")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		svc := NewUserService(repo, zap.NewNop())
		require.NoError(t, svc.ResetPassword(ctx, user.ID, ResetPasswordRequest{Password: "newsecret"}))

		assert.True(t, user.CheckPassword("newsecret"))
		assert.False(t, user.CheckPassword("oldsecret"))
	})

	t.Run("invalid password is rejected before saving", func(t *testing.T) {
		user := testUser(t, "bob", "oldsecret")
		repo := new(MockUserRepository)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := NewUserService(repo, zap.NewNop())
		err := svc.ResetPassword(ctx, user.ID, ResetPasswordRequest{Password: "short"})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}
