package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"

	"salonbook/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DriverName: "sqlite",
		DSN:        ":memory:",
	}), &gorm.Config{})
	require.NoError(t, err)

	// the in-memory database lives per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func pendingBooking() *domain.Booking {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		SalonID:          "salon-1",
		ServiceID:        "service-1",
		StaffID:          "staff-1",
		StartAt:          start,
		EndAt:            start.Add(time.Hour),
		CustomerName:     "Anna",
		CustomerEmail:    "anna@example.com",
		Status:           domain.BookingPendingPayment,
		PaymentStatus:    domain.BookingPaymentPending,
		PaymentType:      domain.PaymentModeDeposit,
		AmountTotalCents: 2500,
		AmountDueCents:   1250,
	}
}

func TestConfirmPaidClearsAmountDue(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	b := pendingBooking()
	require.NoError(t, repo.Create(ctx, b))

	applied, err := repo.ConfirmPaid(ctx, b.ID, 1250)
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, domain.BookingPaymentPaid, got.PaymentStatus)
	assert.Equal(t, int64(1250), got.AmountPaidCents)
	assert.Zero(t, got.AmountDueCents)

	// replaying the same outcome rewrites the same values
	applied, err = repo.ConfirmPaid(ctx, b.ID, 1250)
	require.NoError(t, err)
	assert.True(t, applied)

	got, err = repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, got.AmountDueCents)
}

func TestConfirmPaidNeverResurrectsCancelled(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	b := pendingBooking()
	require.NoError(t, repo.Create(ctx, b))

	applied, err := repo.MarkCancelled(ctx, b.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.ConfirmPaid(ctx, b.ID, 1250)
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
}

func TestCreateRejectsOverlappingBooking(t *testing.T) {
	repo := NewBookingRepository(testDB(t))
	ctx := context.Background()

	first := pendingBooking()
	require.NoError(t, repo.Create(ctx, first))

	second := pendingBooking()
	second.StartAt = first.StartAt.Add(30 * time.Minute)
	second.EndAt = second.StartAt.Add(time.Hour)
	assert.ErrorIs(t, repo.Create(ctx, second), ErrOverlap)

	// a cancelled booking releases the slot
	applied, err := repo.MarkCancelled(ctx, first.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, applied)
	assert.NoError(t, repo.Create(ctx, second))
}
