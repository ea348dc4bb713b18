package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"salonbook/internal/availability"
	"salonbook/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	SalonID          string     `gorm:"column:salon_id;index"`
	ServiceID        string     `gorm:"column:service_id"`
	StaffID          string     `gorm:"column:staff_id;index"`
	StartAt          time.Time  `gorm:"column:start_at"`
	EndAt            time.Time  `gorm:"column:end_at"`
	CustomerName     string     `gorm:"column:customer_name"`
	CustomerEmail    string     `gorm:"column:customer_email"`
	CustomerPhone    string     `gorm:"column:customer_phone"`
	Status           string     `gorm:"column:status;index"`
	PaymentStatus    string     `gorm:"column:payment_status"`
	PaymentType      string     `gorm:"column:payment_type"`
	RefundStatus     string     `gorm:"column:refund_status"`
	AmountTotalCents int64      `gorm:"column:amount_total_cents"`
	AmountPaidCents  int64      `gorm:"column:amount_paid_cents"`
	AmountDueCents   int64      `gorm:"column:amount_due_cents"`
	CancelledAt      *time.Time `gorm:"column:cancelled_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:               m.ID,
		SalonID:          m.SalonID,
		ServiceID:        m.ServiceID,
		StaffID:          m.StaffID,
		StartAt:          m.StartAt,
		EndAt:            m.EndAt,
		CustomerName:     m.CustomerName,
		CustomerEmail:    m.CustomerEmail,
		CustomerPhone:    m.CustomerPhone,
		Status:           domain.BookingStatus(m.Status),
		PaymentStatus:    domain.BookingPaymentStatus(m.PaymentStatus),
		PaymentType:      domain.PaymentMode(m.PaymentType),
		RefundStatus:     domain.RefundStatus(m.RefundStatus),
		AmountTotalCents: m.AmountTotalCents,
		AmountPaidCents:  m.AmountPaidCents,
		AmountDueCents:   m.AmountDueCents,
		CancelledAt:      m.CancelledAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:               b.ID,
		SalonID:          b.SalonID,
		ServiceID:        b.ServiceID,
		StaffID:          b.StaffID,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentType:      string(b.PaymentType),
		RefundStatus:     string(b.RefundStatus),
		AmountTotalCents: b.AmountTotalCents,
		AmountPaidCents:  b.AmountPaidCents,
		AmountDueCents:   b.AmountDueCents,
		CancelledAt:      b.CancelledAt,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// Create inserts the booking. The availability pre-check upstream is only
// optimistic; the authoritative guard lives here. On Postgres the
// bookings_no_overlap exclusion constraint rejects a concurrent insert for
// the same staff and an overlapping interval; on SQLite the overlap check
// runs inside the insert transaction, serialized by the single writer.
// Either way a lost race surfaces as ErrOverlap.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m := toBookingModel(b)

	if r.db.Dialector.Name() == "postgres" {
		tx := r.db.WithContext(ctx).Create(&m)
		if tx.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(tx.Error, &pgErr) &&
				(pgErr.Code == "23P01" || pgErr.Code == "23505") &&
				pgErr.ConstraintName == "bookings_no_overlap" {
				return ErrOverlap
			}
			return tx.Error
		}
		*b = *toDomainBooking(m)
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&bookingModel{}).
			Where("staff_id = ? AND status <> ? AND start_at < ? AND end_at > ?",
				b.StaffID, string(domain.BookingCancelled), b.EndAt, b.StartAt).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainBooking(m), nil
}

// ListActiveIntervals returns occupied intervals of non-cancelled bookings
// for the given staff intersecting [from, to).
func (r *BookingRepository) ListActiveIntervals(ctx context.Context, staffIDs []string, from, to time.Time) ([]availability.BookedInterval, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Select("staff_id", "start_at", "end_at").
		Where("staff_id IN ? AND status <> ? AND start_at < ? AND end_at > ?",
			staffIDs, string(domain.BookingCancelled), to, from).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]availability.BookedInterval, 0, len(rows))
	for _, m := range rows {
		out = append(out, availability.BookedInterval{StaffID: m.StaffID, Start: m.StartAt, End: m.EndAt})
	}
	return out, nil
}

func (r *BookingRepository) ListForSalonRange(ctx context.Context, salonID string, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND start_at < ? AND end_at > ?", salonID, to, from).
		Order("start_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// The transition helpers below are conditional updates: the WHERE clause
// carries the precondition, so of two concurrent transitions only one
// applies and the loser observes applied=false.

// MarkCancelled moves a pending_payment or confirmed booking to cancelled.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status IN ?", id,
			[]string{string(domain.BookingPendingPayment), string(domain.BookingConfirmed)}).
		Updates(map[string]any{"status": string(domain.BookingCancelled), "cancelled_at": at})
	return tx.RowsAffected > 0, tx.Error
}

// MarkNoShow moves a confirmed booking to no_show.
func (r *BookingRepository) MarkNoShow(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingConfirmed)).
		Update("status", string(domain.BookingNoShow))
	return tx.RowsAffected > 0, tx.Error
}

// ConfirmPaid applies the paid outcome of reconciliation. It is idempotent:
// replaying the same terminal state rewrites the same values. A cancelled or
// no_show booking is never resurrected.
func (r *BookingRepository) ConfirmPaid(ctx context.Context, id string, amountPaidCents int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status IN ?", id,
			[]string{string(domain.BookingPendingPayment), string(domain.BookingConfirmed)}).
		Updates(map[string]any{
			"status":            string(domain.BookingConfirmed),
			"payment_status":    string(domain.BookingPaymentPaid),
			"amount_paid_cents": amountPaidCents,
			"amount_due_cents":  0,
		})
	return tx.RowsAffected > 0, tx.Error
}

// CancelUnpaid releases the slot held by a pending_payment booking whose
// payment terminally failed. Confirmed bookings are left untouched, which is
// what makes stale out-of-order webhook arrivals harmless.
func (r *BookingRepository) CancelUnpaid(ctx context.Context, id string, at time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPendingPayment)).
		Updates(map[string]any{
			"status":         string(domain.BookingCancelled),
			"payment_status": string(domain.BookingPaymentFailed),
			"cancelled_at":   at,
		})
	return tx.RowsAffected > 0, tx.Error
}

// SetPaymentPending records an initiated (or still open) payment. It never
// regresses a booking that already reached paid or refunded.
func (r *BookingRepository) SetPaymentPending(ctx context.Context, id string, amountDueCents int64) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ? AND payment_status NOT IN ?", id,
			string(domain.BookingPendingPayment),
			[]string{string(domain.BookingPaymentPaid), string(domain.BookingPaymentRefunded)}).
		Updates(map[string]any{
			"payment_status":   string(domain.BookingPaymentPending),
			"amount_due_cents": amountDueCents,
		})
	return tx.RowsAffected > 0, tx.Error
}

// SetRefunded records a successfully requested refund.
func (r *BookingRepository) SetRefunded(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_status": string(domain.BookingPaymentRefunded),
			"refund_status":  string(domain.RefundPending),
		}).Error
}

// SetRefundFailed records a refund attempt the provider rejected. The
// cancellation itself stays committed.
func (r *BookingRepository) SetRefundFailed(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("refund_status", string(domain.RefundFailed)).Error
}
