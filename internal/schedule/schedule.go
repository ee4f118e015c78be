package schedule

import "time"

// Cutover is the weekly administrative boundary after which a new submission
// cycle begins: Wednesday at 15:00 local time.
const (
	cutoverWeekday = time.Wednesday
	cutoverHour    = 15
)

// ClosestSunday returns the start of the nearest upcoming Sunday. If now is
// already a Sunday, it returns the start of today.
func ClosestSunday(now time.Time) time.Time {
	day := startOfDay(now)
	if day.Weekday() == time.Sunday {
		return day
	}

	return day.AddDate(0, 0, int(7-day.Weekday()))
}

// NextCutover returns the next cutover instant strictly after t. A Wednesday
// before 15:00 cuts over the same day; at or after 15:00 the cutover moves to
// the following week.
func NextCutover(t time.Time) time.Time {
	day := startOfDay(t)
	days := int((cutoverWeekday - day.Weekday() + 7) % 7)
	cutover := day.AddDate(0, 0, days).Add(cutoverHour * time.Hour)
	if !cutover.After(t) {
		cutover = cutover.AddDate(0, 0, 7)
	}

	return cutover
}

// IsFirstSunday reports whether date is the first Sunday of its month
// (fast & testimony meeting, no assigned speakers).
func IsFirstSunday(date time.Time) bool {
	return date.Weekday() == time.Sunday && date.Day() <= 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
