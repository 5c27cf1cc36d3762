package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/crm"
	"github.com/paytrack/backend/internal/domain/shared"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// PurchaseService handles purchase-related business operations
type PurchaseService struct {
	purchaseRepo billing.PurchaseRepository
	paymentRepo  billing.PaymentRepository
	customerRepo crm.CustomerRepository
	now          func() time.Time
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo billing.PurchaseRepository, paymentRepo billing.PaymentRepository, customerRepo crm.CustomerRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// Create records a purchase and generates its full payment schedule.
// The purchase and every scheduled payment are written in one transaction.
func (s *PurchaseService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	// The customer lookup is tenant-scoped, so a customer owned by
	// another tenant reads as missing.
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	initialPayment, rentalAmount, err := parseAmounts(req.InitialPayment, req.RentalAmount)
	if err != nil {
		return nil, err
	}

	purchase, err := billing.NewPurchase(customer.ID, req.Product, req.PurchaseDate, initialPayment, rentalAmount, billing.Frequency(req.RentalFrequency))
	if err != nil {
		return nil, err
	}
	purchase.CreatedBy = &userID

	now := s.now()
	drafts := purchase.GenerateSchedule(now)
	payments := make([]*billing.Payment, 0, len(drafts))
	for _, draft := range drafts {
		payments = append(payments, billing.NewPaymentFromDraft(purchase.ID, draft, userID))
	}

	if err := s.purchaseRepo.CreateWithPayments(ctx, purchase, payments); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	response.Payments = make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response.Payments = append(response.Payments, ToPaymentResponse(p, now))
	}
	return &response, nil
}

// GetByID retrieves a purchase with its payment schedule. Purchases of
// other tenants' customers read as missing.
func (s *PurchaseService) GetByID(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.ownedPurchaseForRead(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByPurchase(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	response := ToPurchaseResponse(purchase)
	response.Payments = make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response.Payments = append(response.Payments, ToPaymentResponse(p, now))
	}
	return &response, nil
}

// ListByCustomer retrieves a customer's purchases, each with its payment
// schedule, newest purchase first.
func (s *PurchaseService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]PurchaseResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]PurchaseResponse, 0, len(purchases))
	for _, purchase := range purchases {
		payments, err := s.paymentRepo.FindByPurchase(ctx, purchase.ID)
		if err != nil {
			return nil, err
		}
		response := ToPurchaseResponse(purchase)
		response.Payments = make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			response.Payments = append(response.Payments, ToPaymentResponse(p, now))
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// Update edits a purchase's fields. The payment schedule is never
// regenerated; editing another tenant's purchase is forbidden.
func (s *PurchaseService) Update(ctx context.Context, tenantID, purchaseID uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := s.ownedPurchaseForWrite(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}

	initialPayment, rentalAmount, err := parseAmounts(req.InitialPayment, req.RentalAmount)
	if err != nil {
		return nil, err
	}

	if err := purchase.Update(req.Product, req.PurchaseDate, initialPayment, rentalAmount, billing.Frequency(req.RentalFrequency)); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Delete removes a purchase and its payments. Deleting another tenant's
// purchase is forbidden.
func (s *PurchaseService) Delete(ctx context.Context, tenantID, purchaseID uuid.UUID) error {
	purchase, err := s.ownedPurchaseForWrite(ctx, tenantID, purchaseID)
	if err != nil {
		return err
	}
	return s.purchaseRepo.Delete(ctx, purchase.ID)
}

// ownedPurchaseForRead resolves a purchase and hides other tenants'
// purchases behind a not-found error.
func (s *PurchaseService) ownedPurchaseForRead(ctx context.Context, tenantID, purchaseID uuid.UUID) (*billing.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, purchase.CustomerID); err != nil {
		return nil, shared.ErrNotFound
	}
	return purchase, nil
}

// ownedPurchaseForWrite resolves a purchase for mutation. A missing
// purchase or customer is not-found; a customer owned by another tenant
// is forbidden.
func (s *PurchaseService) ownedPurchaseForWrite(ctx context.Context, tenantID, purchaseID uuid.UUID) (*billing.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, purchase.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.TenantID != tenantID {
		return nil, shared.ErrForbidden
	}
	return purchase, nil
}

func parseAmounts(initialPayment, rentalAmount string) (valueobject.Money, valueobject.Money, error) {
	initial, err := valueobject.ParseMoney(initialPayment)
	if err != nil {
		return valueobject.Money{}, valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Initial payment must be a non-negative decimal with at most two fraction digits")
	}
	rental, err := valueobject.ParseMoney(rentalAmount)
	if err != nil {
		return valueobject.Money{}, valueobject.Money{}, shared.NewDomainError("INVALID_AMOUNT", "Rental amount must be a non-negative decimal with at most two fraction digits")
	}
	return initial, rental, nil
}
