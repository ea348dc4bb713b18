package availability

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// DefaultStepMinutes is the default spacing between candidate slot starts.
const DefaultStepMinutes = 15

// DayOfWeek maps a calendar date to the schedule convention 0=Monday ..
// 6=Sunday. It reads the date's own year/month/day fields; callers must pass
// the date as the salon sees it on the calendar. Converting an instant
// through another time zone first would shift the perceived day near
// midnight, which is exactly the bug class this function exists to avoid.
func DayOfWeek(date time.Time) int {
	wd := int(date.Weekday()) // Go: 0=Sunday .. 6=Saturday
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed clock value %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock value %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed clock value %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour, minute, nil
}

// At pins a wall-clock time onto the given calendar date in loc, producing
// an absolute instant.
func At(date time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}

// CandidateStarts yields candidate slot starts from workStart, stepping by
// step, up to the last start whose interval of the given duration still fits
// before workEnd. The sequence is finite and can be ranged over repeatedly.
func CandidateStarts(workStart, workEnd time.Time, duration, step time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for cursor := workStart; !cursor.Add(duration).After(workEnd); cursor = cursor.Add(step) {
			if !yield(cursor) {
				return
			}
		}
	}
}
