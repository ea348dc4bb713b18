package domain

import "time"

// Service is a bookable treatment. Price is held in minor currency units.
// IsActive only hides the service from new bookings; existing bookings keep
// referencing inactive services.
type Service struct {
	ID          string
	SalonID     string
	Name        string
	DurationMin int
	PriceCents  int64
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
}
