package payment

import (
	"context"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/pkg/mailer"
	"salonbook/internal/pkg/mollie"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ConfirmPaid(ctx context.Context, id string, amountPaidCents int64) (bool, error)
	CancelUnpaid(ctx context.Context, id string, at time.Time) (bool, error)
	SetPaymentPending(ctx context.Context, id string, amountDueCents int64) (bool, error)
}

type SalonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Salon, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByProviderID(ctx context.Context, providerID string) (*domain.Payment, error)
	LatestForBooking(ctx context.Context, bookingID string) (*domain.Payment, error)
	UpdateFromProvider(ctx context.Context, providerID string, status domain.PaymentState, method string, paidAt *time.Time) error
}

// Provider is the slice of the payment provider API this module uses. The
// concrete implementation talks to Mollie.
type Provider interface {
	CreatePayment(ctx context.Context, req mollie.CreatePaymentRequest) (*mollie.Payment, error)
	GetPayment(ctx context.Context, id string) (*mollie.Payment, error)
}

type EmailSender interface {
	Send(emailType mailer.EmailType, bookingID, salonID string)
}
