package catalog

import (
	"context"
	"time"

	"salonbook/internal/availability"
	"salonbook/internal/domain"
)

type SalonRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Salon, error)
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListActiveBySalon(ctx context.Context, salonID string) ([]domain.Service, error)
}

type StaffRepository interface {
	ListActiveBySalon(ctx context.Context, salonID string) ([]domain.Staff, error)
	ListSchedules(ctx context.Context, staffIDs []string) ([]domain.StaffSchedule, error)
	ListBlocksInRange(ctx context.Context, staffIDs []string, from, to time.Time) ([]domain.StaffBlock, error)
}

type BookingRepository interface {
	ListActiveIntervals(ctx context.Context, staffIDs []string, from, to time.Time) ([]availability.BookedInterval, error)
}
