package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paytrack/backend/internal/domain/shared"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// Purchase represents a product purchase by a customer, with an initial
// payment and a recurring rental amount. It owns a generated payment
// schedule; the schedule is created once and is NOT regenerated when
// amount or date fields are edited later.
type Purchase struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Product         string            `gorm:"type:varchar(200);not null"`
	PurchaseDate    time.Time         `gorm:"not null"`
	InitialPayment  valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	RentalAmount    valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	RentalFrequency Frequency         `gorm:"type:varchar(20);not null"`
	CreatedBy       *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase for a customer
func NewPurchase(customerID uuid.UUID, product string, purchaseDate time.Time, initialPayment, rentalAmount valueobject.Money, frequency Frequency) (*Purchase, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", "Rental frequency must be one of: one-time, monthly, quarterly, yearly")
	}
	if initialPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Initial payment cannot be negative")
	}
	if rentalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Rental amount cannot be negative")
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Product:           strings.TrimSpace(product),
		PurchaseDate:      purchaseDate,
		InitialPayment:    initialPayment,
		RentalAmount:      rentalAmount,
		RentalFrequency:   frequency,
	}, nil
}

// Update edits the purchase's fields. The existing payment schedule is left
// untouched: edits are administrative corrections, not a re-purchase.
func (p *Purchase) Update(product string, purchaseDate time.Time, initialPayment, rentalAmount valueobject.Money, frequency Frequency) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if !frequency.IsValid() {
		return shared.NewDomainError("INVALID_FREQUENCY", "Rental frequency must be one of: one-time, monthly, quarterly, yearly")
	}
	if initialPayment.IsNegative() || rentalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amounts cannot be negative")
	}

	p.Product = strings.TrimSpace(product)
	p.PurchaseDate = purchaseDate
	p.InitialPayment = initialPayment
	p.RentalAmount = rentalAmount
	p.RentalFrequency = frequency
	p.Touch()
	p.IncrementVersion()

	return nil
}

// GenerateSchedule produces the purchase's payment drafts as of now
func (p *Purchase) GenerateSchedule(now time.Time) []PaymentDraft {
	return GenerateSchedule(p.InitialPayment, p.RentalAmount, p.RentalFrequency, p.PurchaseDate, now)
}

func validateProduct(product string) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}
	if len(product) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product cannot exceed 200 characters")
	}
	return nil
}
