package engine

import (
	"math"
	"time"

	"moneta/internal/models"
)

// Installment is a single dated obligation in a plan schedule.
type Installment struct {
	Sequence int       `json:"sequence"`
	DueDate  time.Time `json:"due_date"`
	Amount   int64     `json:"amount"`
}

// PlanStatus summarizes where an installment plan stands relative to the
// snapshot's reference time.
type PlanStatus struct {
	PlanID            string       `json:"plan_id"`
	InstallmentAmount int64        `json:"installment_amount"`
	PaidCount         int          `json:"paid_count"`
	ElapsedCount      int          `json:"elapsed_count"`
	RemainingAmount   int64        `json:"remaining_amount"`
	NextDue           *Installment `json:"next_due,omitempty"`
	Overdue           bool         `json:"overdue"`
	Diagnostics       Diagnostics  `json:"diagnostics,omitempty"`
}

// PlanSchedule generates the full due-date schedule for a plan. The k-th
// installment is due at the start date advanced by k frequency steps. Every
// installment carries the rounded per-installment amount except the last,
// which absorbs the rounding remainder so the schedule sums to the plan
// total exactly. A plan with a non-positive installment count yields an
// empty schedule. Due dates that cannot be advanced fall back to the start
// date so the schedule always has the full installment count.
func (e *Engine) PlanSchedule(plan models.InstallmentPlan) ([]Installment, Diagnostics) {
	var diag Diagnostics

	n := plan.NumInstallments
	if n < 1 {
		diag.InvalidRecords++
		return nil, diag
	}

	per := int64(math.Round(float64(plan.TotalAmount) / float64(n)))
	last := plan.TotalAmount - per*int64(n-1)

	schedule := make([]Installment, 0, n)
	for k := 0; k < n; k++ {
		due, ok := e.cal.Step(plan.StartDate, plan.Frequency, k)
		if !ok {
			diag.CalendarFallbacks++
			due = plan.StartDate
		}
		amount := per
		if k == n-1 {
			amount = last
		}
		schedule = append(schedule, Installment{Sequence: k, DueDate: due, Amount: amount})
	}
	return schedule, diag
}

// PlanStatus computes the payment standing of a plan against the posted
// ledger. A plan is overdue when fewer plan-linked payments have been posted
// than schedule dates have elapsed. Completed plans are never overdue.
func (e *Engine) PlanStatus(snap *Snapshot, planID string) (*PlanStatus, error) {
	idx := snap.buildIndex()
	plan, ok := idx.plans[planID]
	if !ok {
		return nil, ErrPlanNotFound
	}

	schedule, diag := e.PlanSchedule(*plan)

	paid := len(idx.postedByPlan[planID])
	elapsed := 0
	for _, inst := range schedule {
		if !inst.DueDate.After(snap.Now) {
			elapsed++
		}
	}

	status := &PlanStatus{
		PlanID:       planID,
		PaidCount:    paid,
		ElapsedCount: elapsed,
		Overdue:      !plan.IsCompleted && paid < elapsed,
		Diagnostics:  diag,
	}
	if len(schedule) == 0 {
		return status, nil
	}

	status.InstallmentAmount = schedule[0].Amount

	remaining := plan.TotalAmount
	for k := 0; k < paid && k < len(schedule); k++ {
		remaining -= schedule[k].Amount
	}
	if remaining < 0 {
		remaining = 0
	}
	status.RemainingAmount = remaining

	if paid < len(schedule) {
		next := schedule[paid]
		status.NextDue = &next
	}
	return status, nil
}
