package admin

import (
	"context"
	"time"

	"salonbook/internal/domain"
)

type SalonRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Salon, error)
}

type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	UpsertSchedule(ctx context.Context, s *domain.StaffSchedule) error
	ListSchedules(ctx context.Context, staffIDs []string) ([]domain.StaffSchedule, error)
	CreateBlock(ctx context.Context, b *domain.StaffBlock) error
	GetBlock(ctx context.Context, id string) (*domain.StaffBlock, error)
	DeleteBlock(ctx context.Context, id string) error
}

type BookingRepository interface {
	ListForSalonRange(ctx context.Context, salonID string, from, to time.Time) ([]domain.Booking, error)
}
