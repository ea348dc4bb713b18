package domain

import "time"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingCancelled      BookingStatus = "cancelled"
	BookingNoShow         BookingStatus = "no_show"
)

// bookingTransitions is the single source of truth for booking lifecycle
// moves. Any write that is not listed here must be rejected.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPendingPayment: {BookingConfirmed, BookingCancelled},
	BookingConfirmed:      {BookingCancelled, BookingNoShow},
	BookingCancelled:      {},
	BookingNoShow:         {},
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle transition is permitted.
func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

type BookingPaymentStatus string

const (
	BookingPaymentNone          BookingPaymentStatus = "none"
	BookingPaymentPending       BookingPaymentStatus = "pending"
	BookingPaymentPaid          BookingPaymentStatus = "paid"
	BookingPaymentFailed        BookingPaymentStatus = "failed"
	BookingPaymentRefunded      BookingPaymentStatus = "refunded"
	BookingPaymentPartiallyPaid BookingPaymentStatus = "partially_paid"
)

type RefundStatus string

const (
	RefundNone     RefundStatus = "none"
	RefundPending  RefundStatus = "pending"
	RefundRefunded RefundStatus = "refunded"
	RefundFailed   RefundStatus = "failed"
)

// Booking is the central entity. EndAt is always StartAt plus the service
// duration. For one staff member, no two non-cancelled bookings may hold
// overlapping [StartAt, EndAt) intervals; the database enforces this at
// insert time on top of the engine's optimistic pre-check.
type Booking struct {
	ID        string
	SalonID   string
	ServiceID string
	StaffID   string

	StartAt time.Time
	EndAt   time.Time

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Status        BookingStatus
	PaymentStatus BookingPaymentStatus
	PaymentType   PaymentMode
	RefundStatus  RefundStatus

	AmountTotalCents int64
	AmountPaidCents  int64
	AmountDueCents   int64

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
