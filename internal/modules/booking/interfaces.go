package booking

import (
	"context"
	"time"

	"salonbook/internal/availability"
	"salonbook/internal/domain"
	"salonbook/internal/pkg/mailer"
	"salonbook/internal/pkg/mollie"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListActiveIntervals(ctx context.Context, staffIDs []string, from, to time.Time) ([]availability.BookedInterval, error)
	MarkCancelled(ctx context.Context, id string, at time.Time) (bool, error)
	MarkNoShow(ctx context.Context, id string) (bool, error)
	SetRefunded(ctx context.Context, id string) error
	SetRefundFailed(ctx context.Context, id string) error
}

type SalonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Salon, error)
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	ListSchedules(ctx context.Context, staffIDs []string) ([]domain.StaffSchedule, error)
	ListBlocksInRange(ctx context.Context, staffIDs []string, from, to time.Time) ([]domain.StaffBlock, error)
}

type PaymentRepository interface {
	LatestPaidForBooking(ctx context.Context, bookingID string) (*domain.Payment, error)
	MarkRefunded(ctx context.Context, paymentID string) error
	CreateRefund(ctx context.Context, rf *domain.Refund) error
}

// RefundClient is the slice of the payment provider the cancellation flow
// needs.
type RefundClient interface {
	CreateRefund(ctx context.Context, paymentID string, amount mollie.Amount, description string) (*mollie.Refund, error)
}

// EmailSender dispatches lifecycle emails; implementations must not block
// the caller on delivery.
type EmailSender interface {
	Send(emailType mailer.EmailType, bookingID, salonID string)
}
