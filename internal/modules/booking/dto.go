package booking

import "time"

type CreateBookingRequest struct {
	SalonID   string    `json:"salon_id" binding:"required"`
	ServiceID string    `json:"service_id" binding:"required"`
	StaffID   string    `json:"staff_id" binding:"required"`
	StartAt   time.Time `json:"start_at" binding:"required"`

	CustomerName  string `json:"name" binding:"required"`
	CustomerEmail string `json:"email" binding:"required"`
	CustomerPhone string `json:"phone" binding:"required"`

	// Honeypot: real customers leave it empty, bots fill it in.
	Honeypot string `json:"hp"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
	Refund *bool  `json:"refund"` // nil defaults to true
}

type RefundInfo struct {
	ProviderRefundID string `json:"refund_id,omitempty"`
	AmountCents      int64  `json:"amount_cents,omitempty"`
	Status           string `json:"status"`
	Error            string `json:"error,omitempty"`
}

type CancelResult struct {
	BookingID string      `json:"booking_id"`
	Status    string      `json:"status"`
	Refund    *RefundInfo `json:"refund,omitempty"`
}
