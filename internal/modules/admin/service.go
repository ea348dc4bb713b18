package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"salonbook/internal/availability"
	"salonbook/internal/domain"
	"salonbook/internal/repository"
)

type Service struct {
	salons   SalonRepository
	staff    StaffRepository
	bookings BookingRepository
}

func NewService(salons SalonRepository, staff StaffRepository, bookings BookingRepository) *Service {
	return &Service{salons: salons, staff: staff, bookings: bookings}
}

// DayAgenda lists every booking of the salon on one civil day, cancelled
// ones included, so the dashboard can show the full picture.
func (s *Service) DayAgenda(ctx context.Context, salonID, date string) (*AgendaResponse, error) {
	salon, err := s.salons.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("salon timezone %q: %w", salon.Timezone, err)
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	bookings, err := s.bookings.ListForSalonRange(ctx, salonID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	resp := &AgendaResponse{Date: date, Entries: make([]AgendaEntry, 0, len(bookings))}
	for _, b := range bookings {
		resp.Entries = append(resp.Entries, AgendaEntry{
			ID:            b.ID,
			StaffID:       b.StaffID,
			ServiceID:     b.ServiceID,
			StartAt:       b.StartAt.In(loc),
			EndAt:         b.EndAt.In(loc),
			Status:        string(b.Status),
			PaymentStatus: string(b.PaymentStatus),
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
		})
	}
	return resp, nil
}

// UpsertSchedule saves one weekly working-hours entry. One row exists per
// (staff, day-of-week); saving again overwrites it.
func (s *Service) UpsertSchedule(ctx context.Context, salonID string, req UpsertScheduleRequest) (*domain.StaffSchedule, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day_of_week must be 0 (Monday) to 6 (Sunday)", ErrValidation)
	}

	member, err := s.staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if member.SalonID != salonID {
		return nil, ErrForbidden
	}

	sched := &domain.StaffSchedule{
		ID:        uuid.NewString(),
		StaffID:   req.StaffID,
		DayOfWeek: *req.DayOfWeek,
		IsWorking: req.IsWorking,
	}
	if req.IsWorking {
		sh, sm, err := availability.ParseClock(req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: start_time: %v", ErrValidation, err)
		}
		eh, em, err := availability.ParseClock(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: end_time: %v", ErrValidation, err)
		}
		if sh*60+sm >= eh*60+em {
			return nil, fmt.Errorf("%w: start_time must be before end_time", ErrValidation)
		}
		sched.StartTime = req.StartTime
		sched.EndTime = req.EndTime
	}

	if err := s.staff.UpsertSchedule(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

// CreateBlock marks a staff member unavailable for [StartAt, EndAt).
func (s *Service) CreateBlock(ctx context.Context, salonID string, req CreateBlockRequest) (*domain.StaffBlock, error) {
	if !req.StartAt.Before(req.EndAt) {
		return nil, fmt.Errorf("%w: start_at must be before end_at", ErrValidation)
	}

	member, err := s.staff.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if member.SalonID != salonID {
		return nil, ErrForbidden
	}

	block := &domain.StaffBlock{
		ID:      uuid.NewString(),
		StaffID: req.StaffID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	}
	if err := s.staff.CreateBlock(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

// DeleteBlock removes a block after checking the blocked staff member
// belongs to the authenticated salon.
func (s *Service) DeleteBlock(ctx context.Context, salonID, id string) error {
	block, err := s.staff.GetBlock(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	member, err := s.staff.GetByID(ctx, block.StaffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if member.SalonID != salonID {
		return ErrForbidden
	}
	if err := s.staff.DeleteBlock(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
