package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	SalonID     string    `gorm:"column:salon_id;index"`
	Name        string    `gorm:"column:name"`
	DurationMin int       `gorm:"column:duration_min"`
	PriceCents  int64     `gorm:"column:price_cents"`
	IsActive    bool      `gorm:"column:is_active"`
	SortOrder   int       `gorm:"column:sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:          m.ID,
		SalonID:     m.SalonID,
		Name:        m.Name,
		DurationMin: m.DurationMin,
		PriceCents:  m.PriceCents,
		IsActive:    m.IsActive,
		SortOrder:   m.SortOrder,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m := serviceModel{
		ID:          s.ID,
		SalonID:     s.SalonID,
		Name:        s.Name,
		DurationMin: s.DurationMin,
		PriceCents:  s.PriceCents,
		IsActive:    s.IsActive,
		SortOrder:   s.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.CreatedAt = m.CreatedAt
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	var m serviceModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) ListActiveBySalon(ctx context.Context, salonID string) ([]domain.Service, error) {
	var rows []serviceModel
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND is_active = ?", salonID, true).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}
