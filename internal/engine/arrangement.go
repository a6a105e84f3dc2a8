package engine

import (
	"time"

	"moneta/internal/models"
)

// ArrangementStatus is the repayment standing of a flexible arrangement.
// RemainingBalance is not clamped at zero: a negative value means the
// counterparty was overpaid, surfaced via Overpaid so callers can render a
// credit instead of silently capping.
type ArrangementStatus struct {
	ArrangementID    string `json:"arrangement_id"`
	TotalPaid        int64  `json:"total_paid"`
	RemainingBalance int64  `json:"remaining_balance"`
	Overpaid         bool   `json:"overpaid"`
	PaidThisMonth    int64  `json:"paid_this_month"`
	Overdue          bool   `json:"overdue"`
}

// ArrangementStatus computes repayment progress for one arrangement from the
// posted ledger of its linked account. An active arrangement with a minimum
// payment is overdue when this calendar month's posted payments fall short
// of that minimum; arrangements without a minimum are never flagged.
func (e *Engine) ArrangementStatus(snap *Snapshot, arrangementID string) (*ArrangementStatus, error) {
	idx := snap.buildIndex()
	arr, ok := idx.arrangements[arrangementID]
	if !ok {
		return nil, ErrArrangementNotFound
	}

	loc := snap.Now.Location()
	monthStart := time.Date(snap.Now.Year(), snap.Now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var totalPaid, paidThisMonth int64
	for _, tx := range idx.txByAccount[arr.AccountID] {
		if tx.IsScheduled {
			continue
		}
		paid := tx.Amount
		if paid < 0 {
			paid = -paid
		}
		totalPaid += paid
		if !tx.Date.Before(monthStart) && tx.Date.Before(monthEnd) {
			paidThisMonth += paid
		}
	}

	original := arr.OriginalAmount
	if original < 0 {
		original = -original
	}
	remaining := original - totalPaid

	overdue := false
	if arr.IsActive && arr.MinimumPayment != nil && paidThisMonth < *arr.MinimumPayment {
		overdue = true
	}

	return &ArrangementStatus{
		ArrangementID:    arrangementID,
		TotalPaid:        totalPaid,
		RemainingBalance: remaining,
		Overpaid:         remaining < 0,
		PaidThisMonth:    paidThisMonth,
		Overdue:          overdue,
	}, nil
}

// SuggestOverpayment returns the extra amount worth paying beyond the
// arrangement's minimum, given the money available this period. No
// suggestion is made when the arrangement has no minimum payment or when
// the extra falls below the configured worthwhile threshold.
func (e *Engine) SuggestOverpayment(arr *models.Arrangement, available int64) (int64, bool) {
	if arr.MinimumPayment == nil {
		return 0, false
	}
	extra := available - *arr.MinimumPayment
	if extra < e.cfg.OverpaymentThreshold {
		return 0, false
	}
	return extra, true
}
