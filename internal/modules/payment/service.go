package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salonbook/internal/domain"
	"salonbook/internal/modules/booking"
	"salonbook/internal/modules/events"
	"salonbook/internal/pkg/mailer"
	"salonbook/internal/pkg/metrics"
	"salonbook/internal/pkg/mollie"
	"salonbook/internal/repository"
)

type Config struct {
	// SiteURL is where the customer lands after checkout
	// (SiteURL/<slug>/booking/<id>).
	SiteURL string
	// WebhookURL is the publicly reachable webhook endpoint registered on
	// every created payment.
	WebhookURL string
	Currency   string
}

type Service struct {
	bookings BookingRepository
	salons   SalonRepository
	payments PaymentRepository
	provider Provider
	mail     EmailSender
	hub      events.Publisher
	cfg      Config

	now func() time.Time
}

func NewService(
	bookings BookingRepository,
	salons SalonRepository,
	payments PaymentRepository,
	provider Provider,
	mail EmailSender,
	hub events.Publisher,
	cfg Config,
) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	return &Service{
		bookings: bookings,
		salons:   salons,
		payments: payments,
		provider: provider,
		mail:     mail,
		hub:      hub,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Initiate creates a provider payment for the amount the booking still owes.
// The amount is recomputed here from the salon's current policy; anything
// the client submitted is ignored.
func (s *Service) Initiate(ctx context.Context, bookingID string) (*InitiateResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, fmt.Errorf("%w: booking is %s", ErrNotRequired, b.Status)
	}
	switch b.PaymentStatus {
	case domain.BookingPaymentPaid, domain.BookingPaymentRefunded:
		return nil, ErrAlreadyPaid
	}

	salon, err := s.salons.GetByID(ctx, b.SalonID)
	if err != nil {
		return nil, err
	}
	if !salon.RequiresPayment() {
		return nil, ErrNotRequired
	}

	due := booking.DepositCents(salon.PaymentMode, salon.DepositType, salon.DepositValue, b.AmountTotalCents)
	due -= b.AmountPaidCents
	if due <= 0 {
		return nil, ErrNotRequired
	}
	if due < mollie.MinimumAmountCents {
		return nil, fmt.Errorf("%w: %d cents", ErrBelowMinimum, due)
	}

	desc := fmt.Sprintf("Booking %s at %s", shortID(b.ID), salon.Name)
	created, err := s.provider.CreatePayment(ctx, mollie.CreatePaymentRequest{
		Amount:      mollie.Amount{Currency: s.cfg.Currency, Value: mollie.FormatCents(due)},
		Description: desc,
		RedirectURL: fmt.Sprintf("%s/%s/booking/%s", s.cfg.SiteURL, salon.Slug, b.ID),
		WebhookURL:  s.cfg.WebhookURL,
		Metadata:    map[string]string{"booking_id": b.ID},
	})
	if err != nil {
		zap.L().Error("payment creation failed",
			zap.String("booking_id", b.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	p := &domain.Payment{
		ID:          uuid.NewString(),
		BookingID:   b.ID,
		ProviderID:  created.ID,
		AmountCents: due,
		Currency:    s.cfg.Currency,
		Status:      domain.PaymentOpen,
		Description: desc,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	if _, err := s.bookings.SetPaymentPending(ctx, b.ID, due); err != nil {
		return nil, err
	}

	resp := &InitiateResponse{
		PaymentID:   created.ID,
		AmountCents: due,
		Currency:    s.cfg.Currency,
	}
	if created.Links.Checkout != nil {
		resp.CheckoutURL = created.Links.Checkout.Href
	}
	return resp, nil
}

// Reconcile processes one webhook notification. Only the provider payment id
// is taken from the notification; the status comes from a fresh provider
// fetch, which makes replays, reordering and forged bodies all safe: applying
// the same authoritative state twice is a no-op.
func (s *Service) Reconcile(ctx context.Context, providerID string) error {
	remote, err := s.provider.GetPayment(ctx, providerID)
	if err != nil {
		var apiErr *mollie.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			// Unknown id: acknowledge so the provider stops retrying.
			zap.L().Warn("webhook for unknown payment", zap.String("payment_id", providerID))
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	p, err := s.payments.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			zap.L().Warn("webhook payment not on record", zap.String("payment_id", providerID))
			return nil
		}
		return err
	}

	state := domain.PaymentState(remote.Status)
	if err := s.payments.UpdateFromProvider(ctx, providerID, state, remote.Method, remote.PaidAt); err != nil {
		return err
	}

	switch state {
	case domain.PaymentPaid:
		return s.applyPaid(ctx, p, remote)
	case domain.PaymentFailed, domain.PaymentExpired, domain.PaymentCanceled:
		return s.applyFailed(ctx, p, state)
	case domain.PaymentOpen:
		// Still at checkout; nothing to move.
		metrics.IncWebhookReconciled(string(state))
		return nil
	default:
		zap.L().Warn("webhook with unhandled status",
			zap.String("payment_id", providerID), zap.String("status", remote.Status))
		return nil
	}
}

func (s *Service) applyPaid(ctx context.Context, p *domain.Payment, remote *mollie.Payment) error {
	paidCents, err := mollie.ParseCents(remote.Amount.Value)
	if err != nil {
		paidCents = p.AmountCents
	}

	applied, err := s.bookings.ConfirmPaid(ctx, p.BookingID, paidCents)
	if err != nil {
		return err
	}
	metrics.IncWebhookReconciled(string(domain.PaymentPaid))
	if !applied {
		// Replay, or the booking reached a terminal state first.
		return nil
	}

	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		zap.L().Error("booking load after confirmation failed",
			zap.String("booking_id", p.BookingID), zap.Error(err))
		return nil
	}
	s.mail.Send(mailer.EmailConfirmation, b.ID, b.SalonID)
	s.mail.Send(mailer.EmailNotification, b.ID, b.SalonID)
	s.publish("booking_confirmed", b)
	return nil
}

func (s *Service) applyFailed(ctx context.Context, p *domain.Payment, state domain.PaymentState) error {
	// Only an unpaid pending booking falls back to cancelled. A stale
	// failure arriving after the paid webhook must not undo the
	// confirmation; the conditional update refuses it.
	applied, err := s.bookings.CancelUnpaid(ctx, p.BookingID, s.now())
	if err != nil {
		return err
	}
	metrics.IncWebhookReconciled(string(state))
	if !applied {
		return nil
	}

	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil
	}
	s.publish("booking_cancelled", b)
	return nil
}

// Status reports where the booking's latest payment attempt stands, for the
// return-page poll.
func (s *Service) Status(ctx context.Context, bookingID string) (*StatusResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := &StatusResponse{
		BookingID:     b.ID,
		BookingStatus: string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
	}
	if p, err := s.payments.LatestForBooking(ctx, b.ID); err == nil {
		resp.AmountCents = p.AmountCents
	}
	return resp, nil
}

func (s *Service) publish(eventType string, b *domain.Booking) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.Event{
		Type:      eventType,
		BookingID: b.ID,
		SalonID:   b.SalonID,
		StaffID:   b.StaffID,
		At:        s.now(),
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
