package domain

import "time"

type PaymentMode string

const (
	PaymentModeNone    PaymentMode = "none"
	PaymentModeDeposit PaymentMode = "deposit"
	PaymentModeFull    PaymentMode = "full"
)

type DepositType string

const (
	DepositPercentage DepositType = "percentage"
	DepositFixed      DepositType = "fixed"
)

// Salon is the tenant. Every staff member, service and booking belongs to
// exactly one salon, and all wall-clock computations happen in its time zone.
type Salon struct {
	ID       string
	Slug     string
	Name     string
	Email    string
	Phone    string
	Timezone string

	PaymentMode  PaymentMode
	DepositType  DepositType
	DepositValue float64 // percentage (25 = 25%) or fixed amount in major units

	CreatedAt time.Time
}

// RequiresPayment reports whether new bookings must go through online payment.
func (s *Salon) RequiresPayment() bool {
	return s.PaymentMode != PaymentModeNone
}
