package domain

import "time"

// PaymentState mirrors the provider-side payment status. Only webhook
// reconciliation may move a payment between states; client input never does.
type PaymentState string

const (
	PaymentOpen     PaymentState = "open"
	PaymentPaid     PaymentState = "paid"
	PaymentFailed   PaymentState = "failed"
	PaymentExpired  PaymentState = "expired"
	PaymentCanceled PaymentState = "canceled"
	PaymentRefunded PaymentState = "refunded"
)

// Terminal reports whether the provider will not change this status anymore.
func (s PaymentState) Terminal() bool {
	switch s {
	case PaymentPaid, PaymentFailed, PaymentExpired, PaymentCanceled, PaymentRefunded:
		return true
	}
	return false
}

// Payment is one attempt to collect the amount due on a booking. A booking
// can accumulate several payments but at most one non-terminal one.
type Payment struct {
	ID          string
	BookingID   string
	ProviderID  string // payment id at the remote provider
	AmountCents int64
	Currency    string
	Status      PaymentState
	Method      string
	Description string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RefundState string

const (
	RefundStateProcessing RefundState = "processing"
	RefundStateRefunded   RefundState = "refunded"
	RefundStateFailed     RefundState = "failed"
)

// Refund records a compensating refund issued against a paid payment.
type Refund struct {
	ID               string
	BookingID        string
	PaymentID        string
	ProviderRefundID string
	AmountCents      int64
	Reason           string
	Status           RefundState
	CreatedAt        time.Time
}
