package domain

import "time"

type Staff struct {
	ID        string
	SalonID   string
	Name      string
	PhotoURL  string
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
}

// StaffSchedule is one weekly working-hours entry. DayOfWeek follows the
// salon calendar convention: 0=Monday .. 6=Sunday. At most one entry exists
// per (staff, day-of-week); saves are upserts.
type StaffSchedule struct {
	ID        string
	StaffID   string
	DayOfWeek int
	StartTime string // "HH:MM" or "HH:MM:SS", salon-local wall clock
	EndTime   string
	IsWorking bool
}

// StaffBlock is an explicit unavailable interval [StartAt, EndAt) for one
// staff member, independent of the weekly schedule. Blocks are always
// subtracted from availability.
type StaffBlock struct {
	ID        string
	StaffID   string
	StartAt   time.Time
	EndAt     time.Time
	Reason    string
	CreatedAt time.Time
}
