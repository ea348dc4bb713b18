package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/internal/availability"
	"salonbook/internal/repository"
)

type Service struct {
	salons   SalonRepository
	services ServiceRepository
	staff    StaffRepository
	bookings BookingRepository

	now func() time.Time
}

func NewService(salons SalonRepository, services ServiceRepository, staff StaffRepository, bookings BookingRepository) *Service {
	return &Service{
		salons:   salons,
		services: services,
		staff:    staff,
		bookings: bookings,
		now:      time.Now,
	}
}

// GetSalon returns the public bootstrap payload for a booking page: the
// salon itself plus its active services and staff.
func (s *Service) GetSalon(ctx context.Context, slug string) (*SalonView, error) {
	salon, err := s.salons.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	services, err := s.services.ListActiveBySalon(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	staff, err := s.staff.ListActiveBySalon(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	view := &SalonView{
		ID:          salon.ID,
		Slug:        salon.Slug,
		Name:        salon.Name,
		Timezone:    salon.Timezone,
		PaymentMode: string(salon.PaymentMode),
		Services:    make([]ServiceView, 0, len(services)),
		Staff:       make([]StaffView, 0, len(staff)),
	}
	for _, svc := range services {
		view.Services = append(view.Services, ServiceView{
			ID:          svc.ID,
			Name:        svc.Name,
			DurationMin: svc.DurationMin,
			PriceCents:  svc.PriceCents,
		})
	}
	for _, m := range staff {
		view.Staff = append(view.Staff, StaffView{ID: m.ID, Name: m.Name, PhotoURL: m.PhotoURL})
	}
	return view, nil
}

// ListSlots computes the bookable start times for one day. The date string
// is interpreted in the salon's zone, so "2026-09-01" means that civil day
// in Amsterdam for an Amsterdam salon regardless of the server's zone.
func (s *Service) ListSlots(ctx context.Context, q SlotsQuery) (*SlotsResponse, error) {
	salon, err := s.salons.GetBySlug(ctx, q.Slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	svc, err := s.services.GetByID(ctx, q.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if svc.SalonID != salon.ID || !svc.IsActive {
		return nil, fmt.Errorf("%w: service not available", ErrValidation)
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("salon timezone %q: %w", salon.Timezone, err)
	}
	date, err := time.ParseInLocation("2006-01-02", q.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	staff, err := s.staff.ListActiveBySalon(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	if q.StaffID != "" {
		found := false
		for _, m := range staff {
			if m.ID == q.StaffID {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: staff not available", ErrValidation)
		}
	}
	if len(staff) == 0 {
		return &SlotsResponse{Date: q.Date, Slots: []availability.Slot{}}, nil
	}

	ids := make([]string, 0, len(staff))
	for _, m := range staff {
		ids = append(ids, m.ID)
	}
	dayEnd := date.AddDate(0, 0, 1)

	schedules, err := s.staff.ListSchedules(ctx, ids)
	if err != nil {
		return nil, err
	}
	blocks, err := s.staff.ListBlocksInRange(ctx, ids, date, dayEnd)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookings.ListActiveIntervals(ctx, ids, date, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := availability.ComputeSlots(availability.Request{
		Date:        date,
		Location:    loc,
		DurationMin: svc.DurationMin,
		Staff:       staff,
		Schedules:   schedules,
		Blocks:      blocks,
		Booked:      booked,
		Now:         s.now(),
		StaffID:     q.StaffID,
	})
	if slots == nil {
		slots = []availability.Slot{}
	}
	return &SlotsResponse{Date: q.Date, Slots: slots}, nil
}
