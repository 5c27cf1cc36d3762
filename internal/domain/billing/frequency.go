package billing

import "time"

// Frequency represents the cadence of a purchase's recurring payments
type Frequency string

const (
	FrequencyOneTime   Frequency = "one-time"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// IsValid reports whether the frequency is one of the known values
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// Installments returns how many recurring payments are generated for the
// frequency. One-time purchases produce a single payment on the purchase date.
func (f Frequency) Installments() int {
	switch f {
	case FrequencyOneTime:
		return 1
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyYearly:
		return 3
	default:
		return 0
	}
}

// Step returns the due date of installment i (1-based) relative to base
func (f Frequency) Step(base time.Time, i int) time.Time {
	switch f {
	case FrequencyMonthly:
		return base.AddDate(0, i, 0)
	case FrequencyQuarterly:
		return base.AddDate(0, 3*i, 0)
	case FrequencyYearly:
		return base.AddDate(i, 0, 0)
	default:
		return base
	}
}
