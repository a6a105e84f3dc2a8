package engine

import (
	"time"

	"moneta/internal/models"
)

// Calendar advances dates by calendar-aware steps. Month and year steps
// respect month lengths and leap years rather than adding fixed durations,
// so a monthly step from Jan 31 lands on the last day of February.
//
// Projection logic depends only on this interface, keeping the forecast
// code independent of the underlying date arithmetic.
type Calendar interface {
	// Step advances date by n frequency steps. The second return value is
	// false when the frequency is not recognized or the computed date does
	// not make forward progress; callers must treat that as "cannot
	// advance" and stop or fall back to the anchor date.
	Step(date time.Time, freq models.Frequency, n int) (time.Time, bool)
}

type stdCalendar struct{}

// NewCalendar returns the default calendar backed by time.AddDate.
func NewCalendar() Calendar {
	return stdCalendar{}
}

func (stdCalendar) Step(date time.Time, freq models.Frequency, n int) (time.Time, bool) {
	if n == 0 {
		return date, true
	}

	var next time.Time
	switch freq {
	case models.FrequencyDaily:
		next = date.AddDate(0, 0, n)
	case models.FrequencyWeekly:
		next = date.AddDate(0, 0, 7*n)
	case models.FrequencyBiweekly:
		next = date.AddDate(0, 0, 14*n)
	case models.FrequencyMonthly:
		next = date.AddDate(0, n, 0)
	case models.FrequencyYearly:
		next = date.AddDate(n, 0, 0)
	default:
		return date, false
	}

	if n > 0 && !next.After(date) {
		return date, false
	}
	return next, true
}

// dayOf truncates a timestamp to midnight in the given location. All series
// in this package are day-granular.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayFormat keys per-day aggregation maps.
const dayFormat = "2006-01-02"
