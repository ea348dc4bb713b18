package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salonbook/internal/domain"
)

var amsterdam = mustLoad("Europe/Amsterdam")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// tuesday returns a request for staff "b" working Tuesday 2024-06-11
// 09:00-17:00 Amsterdam time, evaluated well before the day starts.
func tuesdayRequest(durationMin int) Request {
	date := time.Date(2024, 6, 11, 0, 0, 0, 0, amsterdam)
	return Request{
		Date:        date,
		Location:    amsterdam,
		DurationMin: durationMin,
		Staff:       []domain.Staff{{ID: "b", IsActive: true}},
		Schedules: []domain.StaffSchedule{
			{StaffID: "b", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
		},
		Now:     time.Date(2024, 6, 1, 0, 0, 0, 0, amsterdam),
		StaffID: "b",
	}
}

func slotTimes(slots []Slot, loc *time.Location) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.In(loc).Format("15:04"))
	}
	return out
}

func TestComputeSlots_BlockTouchingBoundariesAllowed(t *testing.T) {
	req := tuesdayRequest(60)
	req.Blocks = []domain.StaffBlock{{
		StaffID: "b",
		StartAt: At(req.Date, 12, 0, amsterdam),
		EndAt:   At(req.Date, 13, 0, amsterdam),
	}}

	times := slotTimes(ComputeSlots(req), amsterdam)

	assert.Contains(t, times, "11:00") // ends 12:00, touches block start
	assert.Contains(t, times, "13:00") // starts at block end
	assert.NotContains(t, times, "11:30")
	assert.NotContains(t, times, "11:15")
	assert.NotContains(t, times, "12:45")
	assert.NotContains(t, times, "16:30") // would end 17:30, past the window
	assert.Equal(t, "16:00", times[len(times)-1])
}

func TestComputeSlots_BookingAbuttingIsNotAConflict(t *testing.T) {
	req := tuesdayRequest(30)
	req.Booked = []BookedInterval{{
		StaffID: "b",
		Start:   At(req.Date, 10, 0, amsterdam),
		End:     At(req.Date, 10, 30, amsterdam),
	}}

	times := slotTimes(ComputeSlots(req), amsterdam)
	assert.Contains(t, times, "09:30")
	assert.Contains(t, times, "10:30")
	assert.NotContains(t, times, "10:00")
	assert.NotContains(t, times, "10:15")
}

func TestComputeSlots_PartialOverlapExcludes(t *testing.T) {
	req := tuesdayRequest(60)
	// one-minute sliver inside the candidate interval still excludes it
	req.Blocks = []domain.StaffBlock{{
		StaffID: "b",
		StartAt: At(req.Date, 9, 59, amsterdam),
		EndAt:   At(req.Date, 10, 0, amsterdam),
	}}

	times := slotTimes(ComputeSlots(req), amsterdam)
	assert.NotContains(t, times, "09:00")
	assert.NotContains(t, times, "09:45")
	assert.Contains(t, times, "10:00")
}

func TestComputeSlots_NoScheduleEntryMeansEmpty(t *testing.T) {
	req := tuesdayRequest(60)
	req.Schedules = nil
	assert.Empty(t, ComputeSlots(req))
}

func TestComputeSlots_NotWorkingMeansEmpty(t *testing.T) {
	req := tuesdayRequest(60)
	req.Schedules[0].IsWorking = false
	assert.Empty(t, ComputeSlots(req))
}

func TestComputeSlots_DurationExceedsWindow(t *testing.T) {
	req := tuesdayRequest(9 * 60)
	assert.Empty(t, ComputeSlots(req))
}

func TestComputeSlots_PastSlotsFiltered(t *testing.T) {
	req := tuesdayRequest(60)
	req.Now = At(req.Date, 12, 0, amsterdam)

	times := slotTimes(ComputeSlots(req), amsterdam)
	assert.NotContains(t, times, "09:00")
	assert.NotContains(t, times, "12:00") // not strictly in the future
	assert.Contains(t, times, "12:15")
}

func TestComputeSlots_BlockAppliesRegardlessOfSchedule(t *testing.T) {
	req := tuesdayRequest(60)
	// block swallowing the whole working window
	req.Blocks = []domain.StaffBlock{{
		StaffID: "b",
		StartAt: At(req.Date, 0, 0, amsterdam),
		EndAt:   At(req.Date.AddDate(0, 0, 1), 0, 0, amsterdam),
	}}
	assert.Empty(t, ComputeSlots(req))
}

func TestComputeSlots_NoPreferenceOneRowPerTime(t *testing.T) {
	req := tuesdayRequest(60)
	req.StaffID = ""
	req.Staff = []domain.Staff{{ID: "a", IsActive: true}, {ID: "b", IsActive: true}}
	req.Schedules = []domain.StaffSchedule{
		{StaffID: "a", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
		{StaffID: "b", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
	}

	slots := ComputeSlots(req)

	seen := map[string]bool{}
	for _, s := range slots {
		key := s.Time.In(amsterdam).Format("15:04")
		assert.False(t, seen[key], "time %s returned twice", key)
		seen[key] = true
	}

	// ascending order
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Time.Before(slots[i].Time))
	}

	// round-robin distributes across both staff
	counts := map[string]int{}
	for _, s := range slots {
		counts[s.StaffID]++
	}
	assert.Greater(t, counts["a"], 0)
	assert.Greater(t, counts["b"], 0)
}

func TestComputeSlots_NoPreferenceDeterministic(t *testing.T) {
	req := tuesdayRequest(60)
	req.StaffID = ""
	req.Staff = []domain.Staff{{ID: "a", IsActive: true}, {ID: "b", IsActive: true}, {ID: "c", IsActive: true}}
	req.Schedules = []domain.StaffSchedule{
		{StaffID: "a", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
		{StaffID: "b", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
		{StaffID: "c", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
	}

	first := ComputeSlots(req)
	second := ComputeSlots(req)
	assert.Equal(t, first, second)

	// first three distinct times rotate a, b, c
	assert.Equal(t, "a", first[0].StaffID)
	assert.Equal(t, "b", first[1].StaffID)
	assert.Equal(t, "c", first[2].StaffID)
}

func TestComputeSlots_NoPreferenceSkipsInactiveStaff(t *testing.T) {
	req := tuesdayRequest(60)
	req.StaffID = ""
	req.Staff = []domain.Staff{{ID: "a", IsActive: false}, {ID: "b", IsActive: true}}
	req.Schedules = []domain.StaffSchedule{
		{StaffID: "a", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
		{StaffID: "b", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsWorking: true},
	}

	for _, s := range ComputeSlots(req) {
		assert.Equal(t, "b", s.StaffID)
	}
}

func TestComputeSlots_BookedIntervalNeverReturned(t *testing.T) {
	req := tuesdayRequest(60)
	booked := BookedInterval{
		StaffID: "b",
		Start:   At(req.Date, 14, 0, amsterdam),
		End:     At(req.Date, 15, 0, amsterdam),
	}
	req.Booked = []BookedInterval{booked}

	for _, s := range ComputeSlots(req) {
		candidate := Interval{Start: s.Time, End: s.Time.Add(time.Hour)}
		assert.False(t, candidate.Overlaps(Interval{Start: booked.Start, End: booked.End}),
			"slot %s overlaps an existing booking", s.Time)
	}
}
