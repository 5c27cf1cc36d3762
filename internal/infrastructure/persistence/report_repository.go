package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/report"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
	"github.com/paytrack/backend/internal/infrastructure/persistence/models"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// PaymentsForTenant returns every payment belonging to the tenant's customers
func (r *GormReportRepository) PaymentsForTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Joins("JOIN purchases ON purchases.id = payments.purchase_id").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("customers.tenant_id = ?", tenantID).
		Order("payments.due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toPayments(paymentModels), nil
}

// scheduledPaymentRow is the raw join row behind dashboard lists
type scheduledPaymentRow struct {
	PaymentID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	Product      string
	Amount       valueobject.Money
	DueDate      time.Time
	Status       billing.PaymentStatus
	PaidDate     *time.Time
}

// UnpaidForTenant returns unpaid payments joined with purchase and
// customer, ordered by due date ascending.
func (r *GormReportRepository) UnpaidForTenant(ctx context.Context, tenantID uuid.UUID) ([]*report.ScheduledPayment, error) {
	var rows []scheduledPaymentRow
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select(`payments.id AS payment_id,
			customers.id AS customer_id,
			customers.name AS customer_name,
			purchases.product AS product,
			payments.amount AS amount,
			payments.due_date AS due_date,
			payments.status AS status,
			payments.paid_date AS paid_date`).
		Joins("JOIN purchases ON purchases.id = payments.purchase_id").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("customers.tenant_id = ?", tenantID).
		Where("payments.status <> ? AND payments.paid_date IS NULL", billing.PaymentStatusPaid).
		Order("payments.due_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	scheduled := make([]*report.ScheduledPayment, len(rows))
	for i, row := range rows {
		scheduled[i] = &report.ScheduledPayment{
			PaymentID:    row.PaymentID,
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Product:      row.Product,
			Amount:       row.Amount,
			DueDate:      row.DueDate,
			Status:       row.Status,
			PaidDate:     row.PaidDate,
		}
	}
	return scheduled, nil
}

// CustomerSummaries returns one summary row per customer of the
// tenant, ordered by name. Statuses are classified live as of now.
func (r *GormReportRepository) CustomerSummaries(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*report.CustomerSummary, error) {
	var customers []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}

	type paymentRow struct {
		CustomerID uuid.UUID
		Amount     valueobject.Money
		DueDate    time.Time
		Status     billing.PaymentStatus
		PaidDate   *time.Time
	}
	var rows []paymentRow
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select(`purchases.customer_id AS customer_id,
			payments.amount AS amount,
			payments.due_date AS due_date,
			payments.status AS status,
			payments.paid_date AS paid_date`).
		Joins("JOIN purchases ON purchases.id = payments.purchase_id").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("customers.tenant_id = ?", tenantID).
		Order("payments.due_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	type purchaseCountRow struct {
		CustomerID uuid.UUID
		N          int
	}
	var purchaseCounts []purchaseCountRow
	if err := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Select("purchases.customer_id AS customer_id, COUNT(*) AS n").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("customers.tenant_id = ?", tenantID).
		Group("purchases.customer_id").
		Scan(&purchaseCounts).Error; err != nil {
		return nil, err
	}
	countByCustomer := make(map[uuid.UUID]int, len(purchaseCounts))
	for _, row := range purchaseCounts {
		countByCustomer[row.CustomerID] = row.N
	}

	summaries := make([]*report.CustomerSummary, 0, len(customers))
	byCustomer := make(map[uuid.UUID]*report.CustomerSummary, len(customers))
	for _, c := range customers {
		summary := &report.CustomerSummary{
			CustomerID:    c.ID,
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			Company:       c.Company,
			PurchaseCount: countByCustomer[c.ID],
			TotalPaid:     valueobject.Zero(),
			TotalOverdue:  valueobject.Zero(),
		}
		summaries = append(summaries, summary)
		byCustomer[c.ID] = summary
	}

	for _, row := range rows {
		summary, ok := byCustomer[row.CustomerID]
		if !ok {
			continue
		}
		switch billing.Classify(row.Status, row.PaidDate, row.DueDate, now) {
		case billing.PaymentStatusPaid:
			summary.TotalPaid = summary.TotalPaid.Add(row.Amount)
		case billing.PaymentStatusOverdue:
			summary.OverdueCount++
			summary.TotalOverdue = summary.TotalOverdue.Add(row.Amount)
		case billing.PaymentStatusUpcoming:
			// Rows arrive ordered by due date, so the first upcoming
			// row per customer is the next payment. Overdue rows never
			// qualify.
			if summary.NextPaymentDate == nil {
				dueDate := row.DueDate
				amount := row.Amount
				summary.NextPaymentDate = &dueDate
				summary.NextPaymentAmount = &amount
			}
		}
	}

	for _, summary := range summaries {
		summary.TotalPaid = summary.TotalPaid.RoundBank(2)
		summary.TotalOverdue = summary.TotalOverdue.RoundBank(2)
	}

	return summaries, nil
}

// RecentActivity returns the newest activity entries across all
// tenants, merged from the customer, purchase and payment tables.
func (r *GormReportRepository) RecentActivity(ctx context.Context, limit int) ([]*report.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	entries := make([]*report.ActivityEntry, 0, limit*3)

	var customers []models.CustomerModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, c := range customers {
		actor := c.CreatedBy
		if actor == nil {
			tenantID := c.TenantID
			actor = &tenantID
		}
		entries = append(entries, &report.ActivityEntry{
			Kind:         report.ActivityCustomerCreated,
			OccurredAt:   c.CreatedAt,
			ActorID:      actor,
			CustomerName: c.Name,
		})
	}

	type purchaseActivityRow struct {
		CreatedAt    time.Time
		CreatedBy    *uuid.UUID
		CustomerName string
		Product      string
		Amount       valueobject.Money
	}
	var purchaseRows []purchaseActivityRow
	if err := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Select(`purchases.created_at AS created_at,
			purchases.created_by AS created_by,
			customers.name AS customer_name,
			purchases.product AS product,
			purchases.rental_amount AS amount`).
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Order("purchases.created_at DESC").
		Limit(limit).
		Scan(&purchaseRows).Error; err != nil {
		return nil, err
	}
	for _, row := range purchaseRows {
		amount := row.Amount
		entries = append(entries, &report.ActivityEntry{
			Kind:         report.ActivityPurchaseCreated,
			OccurredAt:   row.CreatedAt,
			ActorID:      row.CreatedBy,
			CustomerName: row.CustomerName,
			Product:      row.Product,
			Amount:       &amount,
		})
	}

	type paymentActivityRow struct {
		PaidDate     time.Time
		MarkedPaidBy *uuid.UUID
		CustomerName string
		Product      string
		Amount       valueobject.Money
	}
	var paymentRows []paymentActivityRow
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select(`payments.paid_date AS paid_date,
			payments.marked_paid_by AS marked_paid_by,
			customers.name AS customer_name,
			purchases.product AS product,
			payments.amount AS amount`).
		Joins("JOIN purchases ON purchases.id = payments.purchase_id").
		Joins("JOIN customers ON customers.id = purchases.customer_id").
		Where("payments.paid_date IS NOT NULL").
		Order("payments.paid_date DESC").
		Limit(limit).
		Scan(&paymentRows).Error; err != nil {
		return nil, err
	}
	for _, row := range paymentRows {
		amount := row.Amount
		entries = append(entries, &report.ActivityEntry{
			Kind:         report.ActivityPaymentMarked,
			OccurredAt:   row.PaidDate,
			ActorID:      row.MarkedPaidBy,
			CustomerName: row.CustomerName,
			Product:      row.Product,
			Amount:       &amount,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
