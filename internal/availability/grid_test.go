package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfWeek_MondayIsZero(t *testing.T) {
	// 2024-06-10 is a Monday, 2024-06-16 a Sunday.
	for i := 0; i < 7; i++ {
		date := time.Date(2024, 6, 10+i, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, i, DayOfWeek(date), date.Format("2006-01-02"))
	}
}

func TestDayOfWeek_UsesCalendarDateNotInstant(t *testing.T) {
	// 23:30 local on a Monday is already Tuesday in UTC+1 shifted views.
	// The function must only look at the date's own calendar fields.
	loc := time.FixedZone("UTC-11", -11*3600)
	date := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, 0, DayOfWeek(date))
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	h, m, err = ParseClock("17:00:00")
	assert.NoError(t, err)
	assert.Equal(t, 17, h)
	assert.Equal(t, 0, m)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
	_, _, err = ParseClock("nope")
	assert.Error(t, err)
}

func TestCandidateStarts_LastSlotStillFits(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	workStart := At(day, 9, 0, time.UTC)
	workEnd := At(day, 17, 0, time.UTC)

	var starts []time.Time
	for s := range CandidateStarts(workStart, workEnd, 60*time.Minute, 15*time.Minute) {
		starts = append(starts, s)
	}

	// 09:00 .. 16:00 inclusive, every 15 minutes.
	assert.Len(t, starts, 29)
	assert.Equal(t, At(day, 9, 0, time.UTC), starts[0])
	assert.Equal(t, At(day, 16, 0, time.UTC), starts[len(starts)-1])
}

func TestCandidateStarts_Restartable(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	seq := CandidateStarts(At(day, 9, 0, time.UTC), At(day, 12, 0, time.UTC), 30*time.Minute, 15*time.Minute)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	first := count()
	assert.Equal(t, first, count(), "ranging twice must yield the same sequence")
	assert.Greater(t, first, 0)
}

func TestCandidateStarts_DurationExceedsWindow(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	n := 0
	for range CandidateStarts(At(day, 9, 0, time.UTC), At(day, 10, 0, time.UTC), 90*time.Minute, 15*time.Minute) {
		n++
	}
	assert.Equal(t, 0, n)
}

func TestInterval_Overlaps(t *testing.T) {
	base := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)
	a := Interval{Start: base, End: base.Add(time.Hour)}

	assert.True(t, a.Overlaps(Interval{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)}))
	assert.True(t, a.Overlaps(Interval{Start: base.Add(-30 * time.Minute), End: base.Add(30 * time.Minute)}))
	assert.True(t, a.Overlaps(Interval{Start: base.Add(15 * time.Minute), End: base.Add(30 * time.Minute)}))

	// touching endpoints are not conflicts
	assert.False(t, a.Overlaps(Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}))
	assert.False(t, a.Overlaps(Interval{Start: base.Add(-time.Hour), End: base}))
}
