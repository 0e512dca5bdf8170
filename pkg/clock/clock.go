// Package clock supplies the notion of "now" and "today" to the sales flow,
// so business days follow a configured time zone instead of the host clock.
package clock

import "time"

// DayLayout formats a business day key.
const DayLayout = "2006-01-02"

// Clock reports the current instant in the business time zone.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock and converts it to Location.
type System struct {
	Location *time.Location
}

// NewSystem returns a wall clock bound to loc. A nil loc means UTC.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{Location: loc}
}

func (s System) Now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}

// Fixed always reports the same instant. Used by tests.
type Fixed struct {
	At time.Time
}

func (f *Fixed) Now() time.Time {
	return f.At
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats the business day containing t, e.g. "2024-05-10".
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// MonthWindow returns [first of month, first of next month) for t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
