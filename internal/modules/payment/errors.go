package payment

import "errors"

var (
	// ErrNotFound means the booking or payment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotRequired means the salon takes no online payment, or the
	// booking has nothing left to pay.
	ErrNotRequired = errors.New("no payment required")

	// ErrAlreadyPaid guards double initiation for a booking that has
	// already been settled.
	ErrAlreadyPaid = errors.New("booking already paid")

	// ErrBelowMinimum means the amount due is under the provider's minimum
	// chargeable amount.
	ErrBelowMinimum = errors.New("amount below provider minimum")

	// ErrUpstream marks a provider failure. Webhook handlers answer it with
	// 502 so the provider retries the delivery later.
	ErrUpstream = errors.New("payment provider unavailable")
)
