package engine

import (
	"time"

	"moneta/internal/models"
)

// maxExpandSteps bounds a single recurrence expansion. The horizon already
// bounds emitted dates; this cap additionally protects against rules whose
// anchor date lies far in the past.
const maxExpandSteps = 10000

// ExpandRecurrence materializes the occurrence dates of a recurrence rule
// within the window [from, until]. The sequence starts at the rule's anchor
// date and advances by calendar-aware steps; dates before the window are
// stepped over, dates beyond it end the expansion. The result is a pure
// function of (start, freq, from, until).
func (e *Engine) ExpandRecurrence(start time.Time, freq models.Frequency, from, until time.Time) []time.Time {
	var diag Diagnostics
	return e.expand(start, freq, from, until, &diag)
}

func (e *Engine) expand(start time.Time, freq models.Frequency, from, until time.Time, diag *Diagnostics) []time.Time {
	if !freq.IsValid() {
		diag.MalformedRecurrences++
		return nil
	}

	var dates []time.Time
	current := start
	for steps := 0; steps < maxExpandSteps; steps++ {
		if current.After(until) {
			break
		}
		if !current.Before(from) {
			dates = append(dates, current)
		}
		next, ok := e.cal.Step(current, freq, 1)
		if !ok {
			// The calendar cannot advance; stop rather than loop on the
			// same date.
			diag.CalendarFallbacks++
			break
		}
		current = next
	}
	return dates
}

// scheduledAmountsByDay buckets the projected cash flow of an account's
// scheduled, unpaid transactions by due day over (today, horizonEnd].
// Recurring transactions are expanded; one-off scheduled transactions
// contribute their single due date.
func (e *Engine) scheduledAmountsByDay(txs []*models.Transaction, today, horizonEnd time.Time, loc *time.Location, diag *Diagnostics) map[string]int64 {
	byDay := make(map[string]int64)
	windowStart := today.AddDate(0, 0, 1)

	for _, tx := range txs {
		if !tx.IsScheduled || tx.IsPaid {
			continue
		}
		if tx.Recurrence != nil {
			for _, d := range e.expand(tx.Date, *tx.Recurrence, windowStart, horizonEnd, diag) {
				byDay[dayOf(d, loc).Format(dayFormat)] += tx.Amount
			}
			continue
		}
		d := dayOf(tx.Date, loc)
		if d.After(today) && !d.After(horizonEnd) {
			byDay[d.Format(dayFormat)] += tx.Amount
		}
	}
	return byDay
}
