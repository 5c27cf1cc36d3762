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

// PaymentService handles payment-related business operations
type PaymentService struct {
	paymentRepo  billing.PaymentRepository
	purchaseRepo billing.PurchaseRepository
	customerRepo crm.CustomerRepository
	now          func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, purchaseRepo billing.PurchaseRepository, customerRepo crm.CustomerRepository) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// MarkPaid marks a payment as paid by the given user. Marking an
// already-paid payment fails rather than silently updating the paid date.
func (s *PaymentService) MarkPaid(ctx context.Context, tenantID, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.ownedPayment(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := payment.MarkPaid(tenantID, now); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, now)
	return &response, nil
}

// Update edits a payment's amount and due date
func (s *PaymentService) Update(ctx context.Context, tenantID, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.ownedPayment(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.ParseMoney(req.Amount)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be a non-negative decimal with at most two fraction digits")
	}

	if err := payment.Update(amount, req.DueDate); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, s.now())
	return &response, nil
}

// ownedPayment resolves a payment for mutation by walking the ownership
// chain payment -> purchase -> customer. A break anywhere in the chain is
// not-found; a customer owned by another tenant is forbidden.
func (s *PaymentService) ownedPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*billing.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	purchase, err := s.purchaseRepo.FindByID(ctx, payment.PurchaseID)
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
	return payment, nil
}
