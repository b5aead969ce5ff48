package daterange

import (
	"fmt"
	"time"
)

// Calculator derives display ranges and navigation steps from a view and an
// anchor date. All returned times are date-precision values in the
// calculator's timezone.
type Calculator struct {
	location          *time.Location
	startWeekOnSunday bool
}

// NewCalculator creates a calculator for the given IANA timezone string.
// e.g. "Europe/Berlin"
func NewCalculator(timezone string, startWeekOnSunday bool) (*Calculator, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Calculator{location: loc, startWeekOnSunday: startWeekOnSunday}, nil
}

// Location returns the calculator's timezone.
func (c *Calculator) Location() *time.Location {
	return c.location
}

// StartWeekOnSunday reports the configured week-start convention.
func (c *Calculator) StartWeekOnSunday() bool {
	return c.startWeekOnSunday
}

// Range returns the inclusive start and end dates displayed for the view
// around the anchor date.
//
//   - day:   anchor .. anchor
//   - week:  configured week start .. +6 days
//   - month: first of month rolled back to the displayed week start,
//     last of month rolled forward to the displayed week end
//   - year, search: Jan 1 .. Dec 31
//
// Views outside the known set take month semantics.
func (c *Calculator) Range(view View, anchor time.Time) (time.Time, time.Time) {
	day := c.StartOfDay(anchor)

	switch view {
	case ViewDay:
		return day, day

	case ViewWeek:
		start := c.startOfWeek(day)
		return start, start.AddDate(0, 0, 6)

	case ViewYear, ViewSearch:
		return time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, c.location),
			time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, c.location)

	default: // month, plus the fallback policy for unknown views
		firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, c.location)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
		return c.startOfWeek(firstOfMonth), c.endOfWeek(lastOfMonth)
	}
}

// Step advances the anchor by delta units of the current view and returns the
// new anchor. Month steps clamp to the first of the target month when the
// anchor's day does not exist there; year steps reset the day to 1.
func (c *Calculator) Step(view View, anchor time.Time, delta int) time.Time {
	day := c.StartOfDay(anchor)

	switch view {
	case ViewDay:
		return day.AddDate(0, 0, delta)
	case ViewWeek:
		return day.AddDate(0, 0, 7*delta)
	case ViewYear:
		return time.Date(day.Year()+delta, day.Month(), 1, 0, 0, 0, 0, c.location)
	default: // month
		next := day.AddDate(0, delta, 0)
		if next.Day() != day.Day() {
			// AddDate normalized past the short month; land on its first day.
			next = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, c.location).AddDate(0, delta, 0)
		}
		return next
	}
}

// WeekNumber returns the ISO-8601 week number containing the date.
func (c *Calculator) WeekNumber(t time.Time) int {
	_, week := t.In(c.location).ISOWeek()
	return week
}

// StartOfDay returns midnight at the start of the given day in the
// calculator's timezone.
func (c *Calculator) StartOfDay(t time.Time) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.location)
}

// EndOfDay returns 23:59:59 of the given day in the calculator's timezone.
// Built from calendar components, not duration arithmetic, so DST transition
// days (23 or 25 hours long) still end on their own date.
func (c *Calculator) EndOfDay(t time.Time) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, c.location)
}

// startOfWeek rolls a date back to the first day of its displayed week.
func (c *Calculator) startOfWeek(day time.Time) time.Time {
	offset := int(day.Weekday()) // Sunday = 0
	if !c.startWeekOnSunday {
		offset = (int(day.Weekday()) + 6) % 7 // Monday = 0
	}
	return day.AddDate(0, 0, -offset)
}

// endOfWeek rolls a date forward to the last day of its displayed week.
func (c *Calculator) endOfWeek(day time.Time) time.Time {
	return c.startOfWeek(day).AddDate(0, 0, 6)
}
