package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/billing"
)

// CreatePurchaseRequest represents a request to create a purchase.
// Money fields travel as decimal strings with up to two fraction
// digits.
type CreatePurchaseRequest struct {
	CustomerID      uuid.UUID `json:"customer_id" binding:"required"`
	Product         string    `json:"product" binding:"required,min=1,max=200"`
	PurchaseDate    time.Time `json:"purchase_date" binding:"required" time_format:"2006-01-02"`
	InitialPayment  string    `json:"initial_payment" binding:"required,money"`
	RentalAmount    string    `json:"rental_amount" binding:"required,money"`
	RentalFrequency string    `json:"rental_frequency" binding:"required,oneof=one-time monthly quarterly yearly"`
}

// UpdatePurchaseRequest represents a request to edit a purchase.
// Edits never regenerate the payment schedule.
type UpdatePurchaseRequest struct {
	Product         string    `json:"product" binding:"required,min=1,max=200"`
	PurchaseDate    time.Time `json:"purchase_date" binding:"required" time_format:"2006-01-02"`
	InitialPayment  string    `json:"initial_payment" binding:"required,money"`
	RentalAmount    string    `json:"rental_amount" binding:"required,money"`
	RentalFrequency string    `json:"rental_frequency" binding:"required,oneof=one-time monthly quarterly yearly"`
}

// UpdatePaymentRequest represents a request to edit a payment
type UpdatePaymentRequest struct {
	Amount  string    `json:"amount" binding:"required,money"`
	DueDate time.Time `json:"due_date" binding:"required" time_format:"2006-01-02"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID  `json:"id"`
	PurchaseID uuid.UUID  `json:"purchase_id"`
	Amount     string     `json:"amount"`
	DueDate    time.Time  `json:"due_date"`
	Status     string     `json:"status"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID              uuid.UUID         `json:"id"`
	CustomerID      uuid.UUID         `json:"customer_id"`
	Product         string            `json:"product"`
	PurchaseDate    time.Time         `json:"purchase_date"`
	InitialPayment  string            `json:"initial_payment"`
	RentalAmount    string            `json:"rental_amount"`
	RentalFrequency string            `json:"rental_frequency"`
	CreatedAt       time.Time         `json:"created_at"`
	Payments        []PaymentResponse `json:"payments,omitempty"`
}

// ToPaymentResponse converts a domain Payment to a response DTO.
// The status is reclassified live as of now.
func ToPaymentResponse(p *billing.Payment, now time.Time) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		PurchaseID: p.PurchaseID,
		Amount:     p.Amount.String(),
		DueDate:    p.DueDate,
		Status:     string(p.EffectiveStatus(now)),
		PaidDate:   p.PaidDate,
	}
}

// ToPurchaseResponse converts a domain Purchase to a response DTO
func ToPurchaseResponse(p *billing.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		CustomerID:      p.CustomerID,
		Product:         p.Product,
		PurchaseDate:    p.PurchaseDate,
		InitialPayment:  p.InitialPayment.String(),
		RentalAmount:    p.RentalAmount.String(),
		RentalFrequency: string(p.RentalFrequency),
		CreatedAt:       p.CreatedAt,
	}
}
