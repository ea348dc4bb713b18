package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type SalonRepository struct {
	db *gorm.DB
}

func NewSalonRepository(db *gorm.DB) *SalonRepository {
	return &SalonRepository{db: db}
}

type salonModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Slug         string    `gorm:"column:slug;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	Phone        string    `gorm:"column:phone"`
	Timezone     string    `gorm:"column:timezone"`
	PaymentMode  string    `gorm:"column:payment_mode"`
	DepositType  string    `gorm:"column:deposit_type"`
	DepositValue float64   `gorm:"column:deposit_value"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (salonModel) TableName() string { return "salons" }

func toDomainSalon(m salonModel) *domain.Salon {
	return &domain.Salon{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Timezone:     m.Timezone,
		PaymentMode:  domain.PaymentMode(m.PaymentMode),
		DepositType:  domain.DepositType(m.DepositType),
		DepositValue: m.DepositValue,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *SalonRepository) Create(ctx context.Context, s *domain.Salon) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m := salonModel{
		ID:           s.ID,
		Slug:         s.Slug,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Timezone:     s.Timezone,
		PaymentMode:  string(s.PaymentMode),
		DepositType:  string(s.DepositType),
		DepositValue: s.DepositValue,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.CreatedAt = m.CreatedAt
	return nil
}

func (r *SalonRepository) GetByID(ctx context.Context, id string) (*domain.Salon, error) {
	var m salonModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainSalon(m), nil
}

func (r *SalonRepository) GetBySlug(ctx context.Context, slug string) (*domain.Salon, error) {
	var m salonModel
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainSalon(m), nil
}
