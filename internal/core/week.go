package core

import "time"

// WeekStartUTC returns the Monday 00:00 UTC of the current week; weekly
// plans are keyed by this date.
func WeekStartUTC() time.Time {
	return WeekStartOf(time.Now().UTC())
}

func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	diff := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -diff)
}
