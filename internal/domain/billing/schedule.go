package billing

import (
	"time"

	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// PaymentDraft is a schedule entry produced by GenerateSchedule before
// it is persisted as a Payment row.
type PaymentDraft struct {
	Amount   valueobject.Money
	DueDate  time.Time
	Status   PaymentStatus
	PaidDate *time.Time
}

// GenerateSchedule computes the full payment schedule for a purchase.
//
// When the initial payment is positive the first entry records it as
// already paid on the purchase date. Recurring entries follow at the
// frequency's interval starting one period after the purchase date,
// except one-time purchases which get a single rental entry due on the
// purchase date itself. An unrecognized frequency yields no recurring
// entries.
func GenerateSchedule(initialPayment, rentalAmount valueobject.Money, frequency Frequency, purchaseDate, now time.Time) []PaymentDraft {
	drafts := make([]PaymentDraft, 0, frequency.Installments()+1)

	if initialPayment.IsPositive() {
		paidDate := purchaseDate
		drafts = append(drafts, PaymentDraft{
			Amount:   initialPayment,
			DueDate:  purchaseDate,
			Status:   PaymentStatusPaid,
			PaidDate: &paidDate,
		})
	}

	if frequency == FrequencyOneTime {
		drafts = append(drafts, PaymentDraft{
			Amount:  rentalAmount,
			DueDate: purchaseDate,
			Status:  Classify(PaymentStatusUpcoming, nil, purchaseDate, now),
		})
		return drafts
	}

	for i := 1; i <= frequency.Installments(); i++ {
		dueDate := frequency.Step(purchaseDate, i)
		drafts = append(drafts, PaymentDraft{
			Amount:  rentalAmount,
			DueDate: dueDate,
			Status:  Classify(PaymentStatusUpcoming, nil, dueDate, now),
		})
	}

	return drafts
}
