package engine

import (
	"fmt"
	"sort"
	"time"
)

// UpcomingPayment is a single deduplicated future obligation.
type UpcomingPayment struct {
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Description   string    `json:"description"`
	Amount        int64     `json:"amount"`
	DueDate       time.Time `json:"due_date"`
}

// UpcomingPayments lists scheduled, unpaid, future-dated obligations within
// the forecast horizon in ascending date order. Recurring transactions are
// expanded into their individual occurrences. Entries that would collide on
// (account, description, amount, day) are emitted once, so a recurring rule
// and an already-materialized occurrence of it do not both appear. A
// positive limit caps the result for display.
func (e *Engine) UpcomingPayments(snap *Snapshot, limit int) ([]UpcomingPayment, Diagnostics) {
	idx := snap.buildIndex()
	loc := snap.Now.Location()
	today := dayOf(snap.Now, loc)
	horizonEnd := today.AddDate(0, 0, e.cfg.HorizonDays)
	windowStart := today.AddDate(0, 0, 1)

	var diag Diagnostics
	var payments []UpcomingPayment
	seen := make(map[string]bool)

	add := func(txID, accountID, description string, amount int64, due time.Time) {
		day := dayOf(due, loc)
		key := fmt.Sprintf("%s|%s|%d|%s", accountID, description, amount, day.Format(dayFormat))
		if seen[key] {
			return
		}
		seen[key] = true
		payments = append(payments, UpcomingPayment{
			TransactionID: txID,
			AccountID:     accountID,
			Description:   description,
			Amount:        amount,
			DueDate:       day,
		})
	}

	for i := range snap.Transactions {
		tx := &snap.Transactions[i]
		if !tx.IsScheduled || tx.IsPaid {
			continue
		}
		if _, ok := idx.accounts[tx.AccountID]; !ok {
			diag.DanglingRefs++
			continue
		}
		if tx.Recurrence != nil {
			for _, d := range e.expand(tx.Date, *tx.Recurrence, windowStart, horizonEnd, &diag) {
				add(tx.ID, tx.AccountID, tx.Description, tx.Amount, d)
			}
			continue
		}
		d := dayOf(tx.Date, loc)
		if d.After(today) && !d.After(horizonEnd) {
			add(tx.ID, tx.AccountID, tx.Description, tx.Amount, d)
		}
	}

	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].DueDate.Equal(payments[j].DueDate) {
			return payments[i].DueDate.Before(payments[j].DueDate)
		}
		if payments[i].Description != payments[j].Description {
			return payments[i].Description < payments[j].Description
		}
		return payments[i].AccountID < payments[j].AccountID
	})

	if limit > 0 && len(payments) > limit {
		payments = payments[:limit]
	}
	return payments, diag
}
