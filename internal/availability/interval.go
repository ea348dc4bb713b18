package availability

import "time"

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two half-open intervals intersect. Touching
// endpoints (a.End == b.Start) do not conflict.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}
