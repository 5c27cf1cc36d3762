package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/shared"
	"github.com/paytrack/backend/internal/infrastructure/persistence/models"
)

// GormPurchaseRepository implements billing.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds all purchases for a customer, newest first
func (r *GormPurchaseRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*billing.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("purchase_date DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	return toPurchases(purchaseModels), nil
}

// FindAll finds all purchases across customers
func (r *GormPurchaseRepository) FindAll(ctx context.Context) ([]*billing.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Order("purchase_date DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	return toPurchases(purchaseModels), nil
}

// CreateWithPayments inserts the purchase and its schedule atomically
func (r *GormPurchaseRepository) CreateWithPayments(ctx context.Context, purchase *billing.Purchase, payments []*billing.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.PurchaseModelFromDomain(purchase)).Error; err != nil {
			return err
		}

		if len(payments) == 0 {
			return nil
		}

		paymentModels := make([]models.PaymentModel, len(payments))
		for i, p := range payments {
			paymentModels[i] = *models.PaymentModelFromDomain(p)
		}
		return tx.Create(&paymentModels).Error
	})
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *billing.Purchase) error {
	model := models.PurchaseModelFromDomain(purchase)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a purchase and its payments
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PaymentModel{}, "purchase_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PurchaseModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func toPurchases(purchaseModels []models.PurchaseModel) []*billing.Purchase {
	purchases := make([]*billing.Purchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = purchaseModels[i].ToDomain()
	}
	return purchases
}

var _ billing.PurchaseRepository = (*GormPurchaseRepository)(nil)
