package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/crm"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
	"github.com/paytrack/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.CustomerModel{},
		&models.PurchaseModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)

	return db
}

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedCustomer(t *testing.T, db *gorm.DB, tenantID uuid.UUID, name string) *crm.Customer {
	t.Helper()

	customer, err := crm.NewCustomer(tenantID, name)
	require.NoError(t, err)
	require.NoError(t, db.Create(models.CustomerModelFromDomain(customer)).Error)
	return customer
}

func seedPurchase(t *testing.T, db *gorm.DB, customerID uuid.UUID, product string) *billing.Purchase {
	t.Helper()

	purchase, err := billing.NewPurchase(customerID, product, testDate(2024, 1, 15),
		valueobject.MustParseMoney("100.00"), valueobject.MustParseMoney("50.00"), billing.FrequencyMonthly)
	require.NoError(t, err)
	require.NoError(t, db.Create(models.PurchaseModelFromDomain(purchase)).Error)
	return purchase
}

func seedPayment(t *testing.T, db *gorm.DB, purchaseID uuid.UUID, amount string, dueDate time.Time, paidDate *time.Time) *billing.Payment {
	t.Helper()

	status := billing.PaymentStatusUpcoming
	if paidDate != nil {
		status = billing.PaymentStatusPaid
	}
	payment := billing.NewPaymentFromDraft(purchaseID, billing.PaymentDraft{
		Amount:   valueobject.MustParseMoney(amount),
		DueDate:  dueDate,
		Status:   status,
		PaidDate: paidDate,
	}, uuid.New())
	require.NoError(t, db.Create(models.PaymentModelFromDomain(payment)).Error)
	return payment
}
