package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/shared"
	"github.com/paytrack/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchase returns the purchase's payments ordered by due date
func (r *GormPaymentRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// FindUnpaidForTenant returns unpaid payments of the tenant's
// customers, ordered by due date. Tenancy is resolved through the
// purchase and customer joins.
func (r *GormPaymentRepository) FindUnpaidForTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.tenantUnpaidQuery(ctx, tenantID).
		Order("payments.due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// FindUnpaidDueBetweenForTenant returns unpaid payments for the tenant
// whose due date falls in [from, to], ordered by due date.
func (r *GormPaymentRepository) FindUnpaidDueBetweenForTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.tenantUnpaidQuery(ctx, tenantID).
		Where("payments.due_date >= ? AND payments.due_date <= ?", from, to).
		Order("payments.due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

func (r *GormPaymentRepository) tenantUnpaidQuery(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Joins("JOIN purchases ON purchases.id = payments.purchase_id").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("customers.tenant_id = ?", tenantID).
		Where("payments.status <> ? AND payments.paid_date IS NULL", billing.PaymentStatusPaid)
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toPayments(paymentModels []models.PaymentModel) []*billing.Payment {
	payments := make([]*billing.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
