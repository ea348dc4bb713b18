package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salonbook/internal/domain"
)

type mockSalons struct{ mock.Mock }

func (m *mockSalons) GetByID(ctx context.Context, id string) (*domain.Salon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

type mockStaff struct{ mock.Mock }

func (m *mockStaff) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaff) UpsertSchedule(ctx context.Context, s *domain.StaffSchedule) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStaff) ListSchedules(ctx context.Context, staffIDs []string) ([]domain.StaffSchedule, error) {
	args := m.Called(ctx, staffIDs)
	return args.Get(0).([]domain.StaffSchedule), args.Error(1)
}

func (m *mockStaff) CreateBlock(ctx context.Context, b *domain.StaffBlock) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockStaff) GetBlock(ctx context.Context, id string) (*domain.StaffBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffBlock), args.Error(1)
}

func (m *mockStaff) DeleteBlock(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) ListForSalonRange(ctx context.Context, salonID string, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, salonID, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestUpsertScheduleValidatesWindow(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)
	staff.On("GetByID", mock.Anything, "staff-1").Return(&domain.Staff{ID: "staff-1", SalonID: "salon-1"}, nil)

	_, err := svc.UpsertSchedule(context.Background(), "salon-1", UpsertScheduleRequest{
		StaffID: "staff-1", DayOfWeek: intPtr(1), StartTime: "17:00", EndTime: "09:00", IsWorking: true,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpsertSchedule(context.Background(), "salon-1", UpsertScheduleRequest{
		StaffID: "staff-1", DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "17:00", IsWorking: true,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertScheduleRejectsForeignStaff(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)
	staff.On("GetByID", mock.Anything, "staff-1").Return(&domain.Staff{ID: "staff-1", SalonID: "salon-2"}, nil)

	_, err := svc.UpsertSchedule(context.Background(), "salon-1", UpsertScheduleRequest{
		StaffID: "staff-1", DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "17:00", IsWorking: true,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpsertScheduleSavesEntry(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)
	staff.On("GetByID", mock.Anything, "staff-1").Return(&domain.Staff{ID: "staff-1", SalonID: "salon-1"}, nil)

	var saved *domain.StaffSchedule
	staff.On("UpsertSchedule", mock.Anything, mock.AnythingOfType("*domain.StaffSchedule")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.StaffSchedule) }).
		Return(nil)

	sched, err := svc.UpsertSchedule(context.Background(), "salon-1", UpsertScheduleRequest{
		StaffID: "staff-1", DayOfWeek: intPtr(5), StartTime: "10:00", EndTime: "16:00", IsWorking: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, sched.DayOfWeek)
	require.NotNil(t, saved)
	assert.Equal(t, "10:00", saved.StartTime)
}

func TestUpsertScheduleDayOffNeedsNoTimes(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)
	staff.On("GetByID", mock.Anything, "staff-1").Return(&domain.Staff{ID: "staff-1", SalonID: "salon-1"}, nil)
	staff.On("UpsertSchedule", mock.Anything, mock.Anything).Return(nil)

	sched, err := svc.UpsertSchedule(context.Background(), "salon-1", UpsertScheduleRequest{
		StaffID: "staff-1", DayOfWeek: intPtr(6), IsWorking: false,
	})
	require.NoError(t, err)
	assert.False(t, sched.IsWorking)
	assert.Empty(t, sched.StartTime)
}

func TestCreateBlockValidatesInterval(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)

	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	_, err := svc.CreateBlock(context.Background(), "salon-1", CreateBlockRequest{
		StaffID: "staff-1", StartAt: at, EndAt: at,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteBlockRemovesOwnedBlock(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)

	staff.On("GetBlock", mock.Anything, "block-1").Return(&domain.StaffBlock{
		ID: "block-1", StaffID: "staff-1",
	}, nil)
	staff.On("GetByID", mock.Anything, "staff-1").Return(&domain.Staff{ID: "staff-1", SalonID: "salon-1"}, nil)
	staff.On("DeleteBlock", mock.Anything, "block-1").Return(nil)

	err := svc.DeleteBlock(context.Background(), "salon-1", "block-1")
	require.NoError(t, err)
	staff.AssertCalled(t, "DeleteBlock", mock.Anything, "block-1")
}

func TestDeleteBlockRejectsForeignSalon(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)

	staff.On("GetBlock", mock.Anything, "block-1").Return(&domain.StaffBlock{
		ID: "block-1", StaffID: "staff-1",
	}, nil)
	staff.On("GetByID", mock.Anything, "staff-1").Return(&domain.Staff{ID: "staff-1", SalonID: "salon-2"}, nil)

	err := svc.DeleteBlock(context.Background(), "salon-1", "block-1")
	assert.ErrorIs(t, err, ErrForbidden)
	staff.AssertNotCalled(t, "DeleteBlock", mock.Anything, mock.Anything)
}

func TestDayAgendaMapsBookingsToSalonZone(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)

	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	salons.On("GetByID", mock.Anything, "salon-1").Return(&domain.Salon{
		ID: "salon-1", Timezone: "Europe/Amsterdam",
	}, nil)
	// stored in UTC: 08:00Z is 10:00 in Amsterdam during DST
	bookings.On("ListForSalonRange", mock.Anything, "salon-1", mock.Anything, mock.Anything).
		Return([]domain.Booking{{
			ID:           "booking-1",
			StaffID:      "staff-1",
			StartAt:      time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			EndAt:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			Status:       domain.BookingConfirmed,
			CustomerName: "Anna",
		}}, nil)

	resp, err := svc.DayAgenda(context.Background(), "salon-1", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, loc), resp.Entries[0].StartAt)
}

func TestDayAgendaRejectsBadDate(t *testing.T) {
	salons, staff, bookings := new(mockSalons), new(mockStaff), new(mockBookings)
	svc := NewService(salons, staff, bookings)

	salons.On("GetByID", mock.Anything, "salon-1").Return(&domain.Salon{
		ID: "salon-1", Timezone: "Europe/Amsterdam",
	}, nil)

	_, err := svc.DayAgenda(context.Background(), "salon-1", "September 1")
	assert.ErrorIs(t, err, ErrValidation)
}
