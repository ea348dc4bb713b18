package availability

import (
	"sort"
	"time"

	"salonbook/internal/domain"
)

// Slot is a bookable start instant for one staff member.
type Slot struct {
	Time    time.Time `json:"time"`
	StaffID string    `json:"staff_id"`
}

// BookedInterval is an occupied [Start, End) held by a non-cancelled booking.
type BookedInterval struct {
	StaffID string
	Start   time.Time
	End     time.Time
}

// Request carries everything ComputeSlots needs. It is a pure value: the
// engine performs no I/O and never mutates its inputs.
type Request struct {
	Date        time.Time // the calendar day being browsed, in the salon zone
	Location    *time.Location
	DurationMin int
	StepMin     int // zero means DefaultStepMinutes

	Staff     []domain.Staff
	Schedules []domain.StaffSchedule
	Blocks    []domain.StaffBlock
	Booked    []BookedInterval

	Now     time.Time
	StaffID string // optional: empty means "no preference"
}

// ComputeSlots derives the bookable start instants for one day.
//
// With a requested staff member the result is that staff's free grid within
// their working window, ordered by time. With no preference, per-staff grids
// are merged to one row per wall-clock time of day; ties between eligible
// staff are broken by a deterministic round-robin (the i-th distinct time of
// the day takes the i-th eligible staff, rotating by staff id order) so that
// assignment spreads across the team instead of always favouring one member.
func ComputeSlots(req Request) []Slot {
	step := req.StepMin
	if step <= 0 {
		step = DefaultStepMinutes
	}
	dow := DayOfWeek(req.Date)

	if req.StaffID != "" {
		slots := slotsForStaff(req, req.StaffID, dow, step)
		sort.Slice(slots, func(i, j int) bool { return slots[i].Time.Before(slots[j].Time) })
		return slots
	}

	// No preference: one row per time-of-day across all active staff.
	byClock := make(map[string][]Slot)
	for _, st := range req.Staff {
		if !st.IsActive {
			continue
		}
		for _, slot := range slotsForStaff(req, st.ID, dow, step) {
			key := slot.Time.In(req.Location).Format("15:04")
			byClock[key] = append(byClock[key], slot)
		}
	}

	keys := make([]string, 0, len(byClock))
	for k := range byClock {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Slot, 0, len(keys))
	for i, k := range keys {
		candidates := byClock[k]
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].StaffID < candidates[b].StaffID })
		out = append(out, candidates[i%len(candidates)])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

func slotsForStaff(req Request, staffID string, dow, step int) []Slot {
	sched := scheduleFor(req.Schedules, staffID, dow)
	if sched == nil || !sched.IsWorking {
		return nil
	}

	startH, startM, err := ParseClock(sched.StartTime)
	if err != nil {
		return nil
	}
	endH, endM, err := ParseClock(sched.EndTime)
	if err != nil {
		return nil
	}

	workStart := At(req.Date, startH, startM, req.Location)
	workEnd := At(req.Date, endH, endM, req.Location)
	duration := time.Duration(req.DurationMin) * time.Minute

	occupied := occupiedFor(req, staffID)

	var slots []Slot
	for start := range CandidateStarts(workStart, workEnd, duration, time.Duration(step)*time.Minute) {
		candidate := Interval{Start: start, End: start.Add(duration)}
		if !start.After(req.Now) {
			continue
		}
		if conflicts(candidate, occupied) {
			continue
		}
		slots = append(slots, Slot{Time: start, StaffID: staffID})
	}
	return slots
}

func scheduleFor(schedules []domain.StaffSchedule, staffID string, dow int) *domain.StaffSchedule {
	for i := range schedules {
		if schedules[i].StaffID == staffID && schedules[i].DayOfWeek == dow {
			return &schedules[i]
		}
	}
	return nil
}

func occupiedFor(req Request, staffID string) []Interval {
	var out []Interval
	for _, b := range req.Blocks {
		if b.StaffID == staffID {
			out = append(out, Interval{Start: b.StartAt, End: b.EndAt})
		}
	}
	for _, b := range req.Booked {
		if b.StaffID == staffID {
			out = append(out, Interval{Start: b.Start, End: b.End})
		}
	}
	return out
}

func conflicts(candidate Interval, occupied []Interval) bool {
	for _, o := range occupied {
		if candidate.Overlaps(o) {
			return true
		}
	}
	return false
}
