package report

import (
	"fmt"
	"time"
)

// Ago formats the time between t and now in relative words, e.g. "3 hours ago".
// Zero t gives "some time ago", t after now gives "just now".
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "some time ago"
	}
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}
	return Span(d) + " ago"
}

// Span formats a duration in the largest whole unit, e.g. "2 days"
func Span(d time.Duration) string {
	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)
	switch {
	case d < time.Minute:
		return "less than a minute"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < day:
		return plural(int(d/time.Hour), "hour")
	case d < week:
		return plural(int(d/day), "day")
	case d < month:
		return plural(int(d/week), "week")
	case d < year:
		return plural(int(d/month), "month")
	default:
		return plural(int(d/year), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
