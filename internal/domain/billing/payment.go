package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/paytrack/backend/internal/domain/shared"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the stored status of a payment
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusUpcoming PaymentStatus = "upcoming"
	PaymentStatusOverdue  PaymentStatus = "overdue"
)

// Payment represents a single scheduled payment belonging to a purchase.
// The stored status is a cache written at schedule-generation and mark-paid
// time; read paths re-derive the effective status from DueDate/PaidDate
// with Classify.
type Payment struct {
	shared.BaseAggregateRoot
	PurchaseID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount       valueobject.Money `gorm:"type:decimal(18,2);not null"`
	DueDate      time.Time         `gorm:"not null;index"`
	Status       PaymentStatus     `gorm:"type:varchar(20);not null"`
	PaidDate     *time.Time
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
	MarkedPaidBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPaymentFromDraft materializes a schedule draft into a payment row
func NewPaymentFromDraft(purchaseID uuid.UUID, draft PaymentDraft, createdBy uuid.UUID) *Payment {
	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseID:        purchaseID,
		Amount:            draft.Amount,
		DueDate:           draft.DueDate,
		Status:            draft.Status,
		PaidDate:          draft.PaidDate,
		CreatedBy:         &createdBy,
	}
	if draft.PaidDate != nil {
		p.MarkedPaidBy = &createdBy
	}
	return p
}

// MarkPaid transitions an upcoming or overdue payment to paid
func (p *Payment) MarkPaid(markedBy uuid.UUID, now time.Time) error {
	if p.Status == PaymentStatusPaid {
		return shared.ErrAlreadyPaid
	}

	p.Status = PaymentStatusPaid
	p.PaidDate = &now
	p.MarkedPaidBy = &markedBy
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Update edits the payment's amount and due date
func (p *Payment) Update(amount valueobject.Money, dueDate time.Time) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}

	p.Amount = amount
	p.DueDate = dueDate
	p.Touch()
	p.IncrementVersion()

	return nil
}

// IsPaid reports whether the payment has been settled
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid || p.PaidDate != nil
}

// EffectiveStatus returns the live status of the payment as of now
func (p *Payment) EffectiveStatus(now time.Time) PaymentStatus {
	return Classify(p.Status, p.PaidDate, p.DueDate, now)
}

// Classify derives a payment's status from its paid state and due date.
// Comparisons are day-truncated: a payment due at any time today is
// upcoming, never overdue.
func Classify(status PaymentStatus, paidDate *time.Time, dueDate, now time.Time) PaymentStatus {
	if status == PaymentStatusPaid || paidDate != nil {
		return PaymentStatusPaid
	}
	if StartOfDay(dueDate).Before(StartOfDay(now)) {
		return PaymentStatusOverdue
	}
	return PaymentStatusUpcoming
}

// StartOfDay truncates a time to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
