package engine

import "time"

// BudgetStatus is the consumption of one category's budget for a month.
// Progress is spent/limit clamped to [0, 1]; a zero or negative limit yields
// zero progress rather than a division by zero.
type BudgetStatus struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Limit        int64   `json:"limit"`
	Spent        int64   `json:"spent"`
	Remaining    int64   `json:"remaining"`
	Progress     float64 `json:"progress"`
	OverBudget   bool    `json:"over_budget"`
}

// BudgetStatuses computes spend-vs-limit for every budget scoped to the
// given calendar month. Only posted, negative-amount transactions inside the
// month count as spend; scheduled transactions never do. Budgets whose
// category is missing from the snapshot are skipped and recorded in the
// diagnostics. Duplicate budgets for the same category are merged by summing
// their limits, so the result holds one entry per category in first-seen
// budget order.
func (e *Engine) BudgetStatuses(snap *Snapshot, month time.Month, year int) ([]BudgetStatus, Diagnostics) {
	idx := snap.buildIndex()
	loc := snap.Now.Location()
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var diag Diagnostics

	// Merge duplicate budgets per category, preserving input order.
	var order []string
	limits := make(map[string]int64)
	for _, b := range snap.Budgets {
		if b.Month != int(month) || b.Year != year {
			continue
		}
		if _, ok := idx.categories[b.CategoryID]; !ok {
			diag.DanglingRefs++
			continue
		}
		if _, seen := limits[b.CategoryID]; !seen {
			order = append(order, b.CategoryID)
		}
		limits[b.CategoryID] += b.Amount
	}

	spent := make(map[string]int64, len(limits))
	for i := range snap.Transactions {
		tx := &snap.Transactions[i]
		if tx.IsScheduled || tx.Amount >= 0 || tx.CategoryID == nil {
			continue
		}
		if _, budgeted := limits[*tx.CategoryID]; !budgeted {
			continue
		}
		if tx.Date.Before(monthStart) || !tx.Date.Before(monthEnd) {
			continue
		}
		spent[*tx.CategoryID] += -tx.Amount
	}

	statuses := make([]BudgetStatus, 0, len(order))
	for _, categoryID := range order {
		limit := limits[categoryID]
		used := spent[categoryID]

		var progress float64
		if limit > 0 {
			progress = float64(used) / float64(limit)
			if progress > 1 {
				progress = 1
			}
		}
		remaining := limit - used
		if remaining < 0 {
			remaining = 0
		}

		statuses = append(statuses, BudgetStatus{
			CategoryID:   categoryID,
			CategoryName: idx.categories[categoryID].Name,
			Limit:        limit,
			Spent:        used,
			Remaining:    remaining,
			Progress:     progress,
			OverBudget:   used > limit,
		})
	}
	return statuses, diag
}
