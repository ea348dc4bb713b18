package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	BookingID   string     `gorm:"column:booking_id;index"`
	ProviderID  string     `gorm:"column:provider_id;uniqueIndex"`
	AmountCents int64      `gorm:"column:amount_cents"`
	Currency    string     `gorm:"column:currency"`
	Status      string     `gorm:"column:status"`
	Method      string     `gorm:"column:method"`
	Description string     `gorm:"column:description"`
	PaidAt      *time.Time `gorm:"column:paid_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

type refundModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	BookingID        string    `gorm:"column:booking_id;index"`
	PaymentID        string    `gorm:"column:payment_id"`
	ProviderRefundID string    `gorm:"column:provider_refund_id"`
	AmountCents      int64     `gorm:"column:amount_cents"`
	Reason           string    `gorm:"column:reason"`
	Status           string    `gorm:"column:status"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (refundModel) TableName() string { return "refunds" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:          m.ID,
		BookingID:   m.BookingID,
		ProviderID:  m.ProviderID,
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		Status:      domain.PaymentState(m.Status),
		Method:      m.Method,
		Description: m.Description,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m := paymentModel{
		ID:          p.ID,
		BookingID:   p.BookingID,
		ProviderID:  p.ProviderID,
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Status:      string(p.Status),
		Method:      p.Method,
		Description: p.Description,
		PaidAt:      p.PaidAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.CreatedAt = m.CreatedAt
	return nil
}

func (r *PaymentRepository) GetByProviderID(ctx context.Context, providerID string) (*domain.Payment, error) {
	var m paymentModel
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) LatestForBooking(ctx context.Context, bookingID string) (*domain.Payment, error) {
	var m paymentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) LatestPaidForBooking(ctx context.Context, bookingID string) (*domain.Payment, error) {
	var m paymentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, string(domain.PaymentPaid)).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainPayment(m), nil
}

// UpdateFromProvider writes the authoritative provider status onto the
// payment row. Writing the same terminal status twice is a harmless rewrite.
func (r *PaymentRepository) UpdateFromProvider(ctx context.Context, providerID string, status domain.PaymentState, method string, paidAt *time.Time) error {
	updates := map[string]any{
		"status": string(status),
		"method": method,
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	return r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("provider_id = ?", providerID).
		Updates(updates).Error
}

func (r *PaymentRepository) MarkRefunded(ctx context.Context, paymentID string) error {
	return r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("id = ?", paymentID).
		Update("status", string(domain.PaymentRefunded)).Error
}

func (r *PaymentRepository) CreateRefund(ctx context.Context, rf *domain.Refund) error {
	if rf.ID == "" {
		rf.ID = uuid.NewString()
	}
	m := refundModel{
		ID:               rf.ID,
		BookingID:        rf.BookingID,
		PaymentID:        rf.PaymentID,
		ProviderRefundID: rf.ProviderRefundID,
		AmountCents:      rf.AmountCents,
		Reason:           rf.Reason,
		Status:           string(rf.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	rf.CreatedAt = m.CreatedAt
	return nil
}
