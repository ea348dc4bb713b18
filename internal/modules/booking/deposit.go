package booking

import (
	"math"

	"salonbook/internal/domain"
)

// DepositCents computes the amount due at booking time, in minor currency
// units, from the salon's payment policy and the service total. It is the
// single source of truth for that amount: both booking intake and payment
// initiation call it against the current policy, and client-submitted
// amounts are never trusted. The result is always within [0, totalCents].
func DepositCents(mode domain.PaymentMode, kind domain.DepositType, value float64, totalCents int64) int64 {
	if totalCents <= 0 {
		return 0
	}

	switch mode {
	case domain.PaymentModeNone:
		return 0
	case domain.PaymentModeFull:
		return totalCents
	}

	if kind == domain.DepositPercentage {
		pct := value
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		return roundHalfUp(float64(totalCents) * pct / 100)
	}

	// fixed amount given in major units
	fixed := roundHalfUp(value * 100)
	if fixed < 0 {
		return 0
	}
	if fixed > totalCents {
		return totalCents
	}
	return fixed
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
