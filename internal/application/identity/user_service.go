package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paytrack/backend/internal/domain/identity"
	"github.com/paytrack/backend/internal/domain/shared"
)

// UserService handles admin user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// List returns all users with their activity counters
func (s *UserService) List(ctx context.Context) ([]UserWithStatsResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(users))
	for i := range users {
		userIDs = append(userIDs, users[i].ID)
	}
	stats, err := s.userRepo.GetStats(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]UserWithStatsResponse, 0, len(users))
	for i := range users {
		user := &users[i]
		row := UserWithStatsResponse{UserResponse: ToUserResponse(user)}
		if st, ok := stats[user.ID]; ok {
			row.CustomersCreated = st.CustomersCreated
			row.PurchasesCreated = st.PurchasesCreated
			row.PaymentsMarked = st.PaymentsMarked
		}
		responses = append(responses, row)
	}
	return responses, nil
}

// Create creates a user account on behalf of an admin
func (s *UserService) Create(ctx context.Context, adminID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	user, err := identity.NewUserByAdmin(req.Username, req.Password, identity.Role(req.Role), adminID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("created_by", adminID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a user account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return shared.NewDomainError("CANNOT_DELETE_SELF", "Admins cannot delete their own account")
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// ResetPassword replaces a user's password
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.Password); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("username", user.Username))
	return nil
}
