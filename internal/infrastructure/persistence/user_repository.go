package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/domain/identity"
	"github.com/paytrack/backend/internal/domain/shared"
	"github.com/paytrack/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username (case-insensitive)
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var userModels []models.UserModel

	query := r.db.WithContext(ctx).Model(&models.UserModel{})
	if filter.Search != "" {
		query = query.Where("username LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	query = applyFilter(query, filter)
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]identity.User, len(userModels))
	for i, m := range userModels {
		users[i] = *m.ToDomain()
	}
	return users, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}

// ExistsByUsername checks if a user with the given username exists
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error
	return count > 0, err
}

// GetStats returns activity counters for the given users
func (r *GormUserRepository) GetStats(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]identity.UserStats, error) {
	stats := make(map[uuid.UUID]identity.UserStats, len(userIDs))
	if len(userIDs) == 0 {
		return stats, nil
	}
	for _, id := range userIDs {
		stats[id] = identity.UserStats{UserID: id}
	}

	type countRow struct {
		UserID uuid.UUID
		N      int64
	}

	var customerCounts []countRow
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Select("tenant_id AS user_id, COUNT(*) AS n").
		Where("tenant_id IN ?", userIDs).
		Group("tenant_id").
		Scan(&customerCounts).Error; err != nil {
		return nil, err
	}
	for _, row := range customerCounts {
		s := stats[row.UserID]
		s.CustomersCreated = row.N
		stats[row.UserID] = s
	}

	var purchaseCounts []countRow
	if err := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Select("created_by AS user_id, COUNT(*) AS n").
		Where("created_by IN ?", userIDs).
		Group("created_by").
		Scan(&purchaseCounts).Error; err != nil {
		return nil, err
	}
	for _, row := range purchaseCounts {
		s := stats[row.UserID]
		s.PurchasesCreated = row.N
		stats[row.UserID] = s
	}

	var paymentCounts []countRow
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("marked_paid_by AS user_id, COUNT(*) AS n").
		Where("marked_paid_by IN ?", userIDs).
		Group("marked_paid_by").
		Scan(&paymentCounts).Error; err != nil {
		return nil, err
	}
	for _, row := range paymentCounts {
		s := stats[row.UserID]
		s.PaymentsMarked = row.N
		stats[row.UserID] = s
	}

	return stats, nil
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := filter.OrderDir
	if orderDir != "asc" {
		orderDir = "desc"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
