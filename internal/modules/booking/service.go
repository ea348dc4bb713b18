package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salonbook/internal/availability"
	"salonbook/internal/domain"
	"salonbook/internal/modules/events"
	"salonbook/internal/pkg/mailer"
	"salonbook/internal/pkg/metrics"
	"salonbook/internal/pkg/mollie"
	"salonbook/internal/repository"
)

type Service struct {
	bookings BookingRepository
	salons   SalonRepository
	services ServiceRepository
	staff    StaffRepository
	payments PaymentRepository
	refunds  RefundClient
	mail     EmailSender
	hub      events.Publisher

	now func() time.Time
}

func NewService(
	bookings BookingRepository,
	salons SalonRepository,
	services ServiceRepository,
	staff StaffRepository,
	payments PaymentRepository,
	refunds RefundClient,
	mail EmailSender,
	hub events.Publisher,
) *Service {
	return &Service{
		bookings: bookings,
		salons:   salons,
		services: services,
		staff:    staff,
		payments: payments,
		refunds:  refunds,
		mail:     mail,
		hub:      hub,
		now:      time.Now,
	}
}

// Create validates the request, re-checks the slot against the live schedule
// and writes the booking. The database overlap constraint stays the final
// arbiter: when two requests race for the same slot, exactly one insert
// succeeds and the other comes back as ErrSlotTaken.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	salon, err := s.salons.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: salon", ErrNotFound)
		}
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: service", ErrNotFound)
		}
		return nil, err
	}
	if svc.SalonID != salon.ID || !svc.IsActive {
		return nil, fmt.Errorf("%w: service not available", ErrValidation)
	}

	member, err := s.staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff", ErrNotFound)
		}
		return nil, err
	}
	if member.SalonID != salon.ID || !member.IsActive {
		return nil, fmt.Errorf("%w: staff not available", ErrValidation)
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("salon timezone %q: %w", salon.Timezone, err)
	}

	now := s.now()
	startAt := req.StartAt.In(loc)
	endAt := startAt.Add(time.Duration(svc.DurationMin) * time.Minute)
	if !startAt.After(now) {
		return nil, fmt.Errorf("%w: booking must start in the future", ErrValidation)
	}

	free, err := s.slotStillFree(ctx, member, svc, loc, startAt, now)
	if err != nil {
		return nil, err
	}
	if !free {
		metrics.IncSlotConflict()
		return nil, ErrSlotTaken
	}

	total := svc.PriceCents
	due := DepositCents(salon.PaymentMode, salon.DepositType, salon.DepositValue, total)

	b := &domain.Booking{
		ID:            uuid.NewString(),
		SalonID:       salon.ID,
		ServiceID:     svc.ID,
		StaffID:       member.ID,
		StartAt:       startAt,
		EndAt:         endAt,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(strings.ToLower(req.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		PaymentType:   salon.PaymentMode,
		RefundStatus:  domain.RefundNone,

		AmountTotalCents: total,
		AmountDueCents:   due,
	}
	if salon.RequiresPayment() && due > 0 {
		b.Status = domain.BookingPendingPayment
		b.PaymentStatus = domain.BookingPaymentPending
	} else {
		b.Status = domain.BookingConfirmed
		b.PaymentStatus = domain.BookingPaymentNone
		b.AmountDueCents = 0
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			metrics.IncSlotConflict()
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	metrics.IncBookingCreated(string(b.Status))

	// Pending bookings confirm (and notify) only once payment lands.
	if b.Status == domain.BookingConfirmed {
		s.mail.Send(mailer.EmailConfirmation, b.ID, b.SalonID)
		s.mail.Send(mailer.EmailNotification, b.ID, b.SalonID)
	}
	s.publish("booking_created", b)

	return b, nil
}

// slotStillFree recomputes the day's availability for the chosen staff
// member and checks the requested instant is in it. Catching a stale slot
// here gives the customer a clean conflict answer instead of a constraint
// violation, but the check is only advisory.
func (s *Service) slotStillFree(ctx context.Context, member *domain.Staff, svc *domain.Service, loc *time.Location, startAt, now time.Time) (bool, error) {
	y, m, d := startAt.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	ids := []string{member.ID}
	schedules, err := s.staff.ListSchedules(ctx, ids)
	if err != nil {
		return false, err
	}
	blocks, err := s.staff.ListBlocksInRange(ctx, ids, dayStart, dayEnd)
	if err != nil {
		return false, err
	}
	booked, err := s.bookings.ListActiveIntervals(ctx, ids, dayStart, dayEnd)
	if err != nil {
		return false, err
	}

	slots := availability.ComputeSlots(availability.Request{
		Date:        dayStart,
		Location:    loc,
		DurationMin: svc.DurationMin,
		Staff:       []domain.Staff{*member},
		Schedules:   schedules,
		Blocks:      blocks,
		Booked:      booked,
		Now:         now,
		StaffID:     member.ID,
	})
	for _, slot := range slots {
		if slot.Time.Equal(startAt) {
			return true, nil
		}
	}
	return false, nil
}

// Cancel moves the booking to cancelled and, when asked and the booking was
// paid, issues a refund at the provider. The cancellation itself never rolls
// back: a failed refund is recorded as refund_status=failed and reported in
// the result, to be retried out of band.
//
// salonID scopes the operation to the caller's tenant; the customer-facing
// route passes it empty, where possession of the booking id is the
// authorization, matching the rest of the public surface.
func (s *Service) Cancel(ctx context.Context, bookingID, salonID, reason string, withRefund bool) (*CancelResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if salonID != "" && b.SalonID != salonID {
		return nil, ErrForbidden
	}
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, ErrAlreadyTerminal
	}

	applied, err := s.bookings.MarkCancelled(ctx, bookingID, s.now())
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost a race with another transition.
		return nil, ErrAlreadyTerminal
	}

	result := &CancelResult{
		BookingID: bookingID,
		Status:    string(domain.BookingCancelled),
	}
	if withRefund && b.PaymentStatus == domain.BookingPaymentPaid && b.AmountPaidCents > 0 {
		result.Refund = s.refundPaid(ctx, b, reason)
	}

	s.mail.Send(mailer.EmailCancellation, b.ID, b.SalonID)
	s.publish("booking_cancelled", b)

	return result, nil
}

func (s *Service) refundPaid(ctx context.Context, b *domain.Booking, reason string) *RefundInfo {
	p, err := s.payments.LatestPaidForBooking(ctx, b.ID)
	if err != nil {
		zap.L().Error("refund lookup failed",
			zap.String("booking_id", b.ID), zap.Error(err))
		_ = s.bookings.SetRefundFailed(ctx, b.ID)
		metrics.IncRefund("failed")
		return &RefundInfo{Status: string(domain.RefundStateFailed), Error: "no paid payment on record"}
	}

	desc := reason
	if desc == "" {
		desc = "booking cancelled"
	}
	amount := mollie.Amount{Currency: p.Currency, Value: mollie.FormatCents(b.AmountPaidCents)}
	ref, err := s.refunds.CreateRefund(ctx, p.ProviderID, amount, desc)
	if err != nil {
		zap.L().Error("refund failed at provider",
			zap.String("booking_id", b.ID),
			zap.String("payment_id", p.ProviderID),
			zap.Error(err))
		_ = s.bookings.SetRefundFailed(ctx, b.ID)
		metrics.IncRefund("failed")
		return &RefundInfo{Status: string(domain.RefundStateFailed), Error: err.Error()}
	}

	rf := &domain.Refund{
		ID:               uuid.NewString(),
		BookingID:        b.ID,
		PaymentID:        p.ID,
		ProviderRefundID: ref.ID,
		AmountCents:      b.AmountPaidCents,
		Reason:           desc,
		Status:           domain.RefundStateProcessing,
	}
	if err := s.payments.CreateRefund(ctx, rf); err != nil {
		zap.L().Error("refund issued but not recorded",
			zap.String("booking_id", b.ID),
			zap.String("refund_id", ref.ID),
			zap.Error(err))
	}
	_ = s.payments.MarkRefunded(ctx, p.ID)
	if err := s.bookings.SetRefunded(ctx, b.ID); err != nil {
		zap.L().Error("refund flag update failed",
			zap.String("booking_id", b.ID), zap.Error(err))
	}
	metrics.IncRefund("ok")

	return &RefundInfo{
		ProviderRefundID: ref.ID,
		AmountCents:      b.AmountPaidCents,
		Status:           string(domain.RefundStateProcessing),
	}
}

// MarkNoShow flags a confirmed booking whose start time has passed. Payments
// already collected are kept. The operation is scoped to the caller's salon.
func (s *Service) MarkNoShow(ctx context.Context, bookingID, salonID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.SalonID != salonID {
		return nil, ErrForbidden
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyTerminal
	}
	if !b.Status.CanTransitionTo(domain.BookingNoShow) {
		return nil, fmt.Errorf("%w: no-show requires a confirmed booking", ErrInvalidTransition)
	}
	if b.StartAt.After(s.now()) {
		return nil, fmt.Errorf("%w: booking has not started yet", ErrValidation)
	}

	applied, err := s.bookings.MarkNoShow(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrAlreadyTerminal
	}

	b.Status = domain.BookingNoShow
	s.publish("booking_no_show", b)
	return b, nil
}

// Get returns one booking for status polling.
func (s *Service) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
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

func validateCreate(req CreateBookingRequest) error {
	switch {
	case req.SalonID == "":
		return fmt.Errorf("%w: salon_id is required", ErrValidation)
	case req.ServiceID == "":
		return fmt.Errorf("%w: service_id is required", ErrValidation)
	case req.StaffID == "":
		return fmt.Errorf("%w: staff_id is required", ErrValidation)
	case req.StartAt.IsZero():
		return fmt.Errorf("%w: start_at is required", ErrValidation)
	case strings.TrimSpace(req.CustomerName) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(req.CustomerPhone) == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	return nil
}
