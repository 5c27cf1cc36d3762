package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paytrack/backend/internal/domain/report"
)

func TestGormReportRepository_PaymentsForTenant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "Mine")
	purchase := seedPurchase(t, db, customer.ID, "Laptop")
	paid := testDate(2024, 1, 15)
	seedPayment(t, db, purchase.ID, "100.00", paid, &paid)
	seedPayment(t, db, purchase.ID, "50.00", testDate(2024, 2, 15), nil)

	otherCustomer := seedCustomer(t, db, uuid.New(), "Theirs")
	otherPurchase := seedPurchase(t, db, otherCustomer.ID, "Phone")
	seedPayment(t, db, otherPurchase.ID, "75.00", testDate(2024, 2, 20), nil)

	payments, err := repo.PaymentsForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestGormReportRepository_UnpaidForTenant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "Acme Corp")
	purchase := seedPurchase(t, db, customer.ID, "Laptop")
	paid := testDate(2024, 1, 15)
	seedPayment(t, db, purchase.ID, "100.00", paid, &paid)
	seedPayment(t, db, purchase.ID, "50.00", testDate(2024, 3, 15), nil)
	seedPayment(t, db, purchase.ID, "50.00", testDate(2024, 2, 15), nil)

	rows, err := repo.UnpaidForTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, testDate(2024, 2, 15), rows[0].DueDate)
	assert.Equal(t, "Acme Corp", rows[0].CustomerName)
	assert.Equal(t, "Laptop", rows[0].Product)
	assert.Equal(t, "50.00", rows[0].Amount.String())
}

func TestGormReportRepository_CustomerSummaries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()
	now := testDate(2024, 3, 1)

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "Acme")
	purchase := seedPurchase(t, db, customer.ID, "Laptop")
	paid := testDate(2024, 1, 15)
	seedPayment(t, db, purchase.ID, "100.00", paid, &paid)
	seedPayment(t, db, purchase.ID, "50.00", testDate(2024, 2, 15), nil)
	seedPayment(t, db, purchase.ID, "50.00", testDate(2024, 3, 15), nil)

	empty := seedCustomer(t, db, tenantID, "Zed")
	_ = empty

	summaries, err := repo.CustomerSummaries(ctx, tenantID, now)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	acme := summaries[0]
	assert.Equal(t, "Acme", acme.Name)
	assert.Equal(t, 1, acme.PurchaseCount)
	assert.Equal(t, "100.00", acme.TotalPaid.String())
	assert.Equal(t, 1, acme.OverdueCount)
	assert.Equal(t, "50.00", acme.TotalOverdue.String())

	// The overdue 2024-02-15 row is skipped; the next payment is the
	// earliest upcoming one.
	require.NotNil(t, acme.NextPaymentDate)
	assert.Equal(t, testDate(2024, 3, 15), *acme.NextPaymentDate)
	require.NotNil(t, acme.NextPaymentAmount)
	assert.Equal(t, "50.00", acme.NextPaymentAmount.String())

	zed := summaries[1]
	assert.Equal(t, "Zed", zed.Name)
	assert.Equal(t, 0, zed.PurchaseCount)
	assert.Equal(t, "0.00", zed.TotalPaid.String())
	assert.Equal(t, "0.00", zed.TotalOverdue.String())
	assert.Nil(t, zed.NextPaymentDate)
}

func TestGormReportRepository_CustomerSummariesAllOverdue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()
	now := testDate(2024, 6, 15)

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "Behind Ltd")
	purchase := seedPurchase(t, db, customer.ID, "Printer")
	seedPayment(t, db, purchase.ID, "40.00", testDate(2024, 5, 1), nil)
	seedPayment(t, db, purchase.ID, "40.00", testDate(2024, 6, 1), nil)

	summaries, err := repo.CustomerSummaries(ctx, tenantID, now)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	behind := summaries[0]
	assert.Equal(t, 2, behind.OverdueCount)
	assert.Equal(t, "80.00", behind.TotalOverdue.String())
	assert.Nil(t, behind.NextPaymentDate)
	assert.Nil(t, behind.NextPaymentAmount)
}

func TestGormReportRepository_RecentActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "Acme")
	purchase := seedPurchase(t, db, customer.ID, "Laptop")
	paid := testDate(2024, 1, 15)
	seedPayment(t, db, purchase.ID, "100.00", paid, &paid)

	entries, err := repo.RecentActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	kinds := map[report.ActivityKind]bool{}
	for _, e := range entries {
		kinds[e.Kind] = true
	}
	assert.True(t, kinds[report.ActivityCustomerCreated])
	assert.True(t, kinds[report.ActivityPurchaseCreated])
	assert.True(t, kinds[report.ActivityPaymentMarked])

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].OccurredAt.After(entries[i-1].OccurredAt))
	}

	t.Run("limit bounds the feed", func(t *testing.T) {
		entries, err := repo.RecentActivity(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
