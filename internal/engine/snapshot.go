package engine

import (
	"time"

	"moneta/internal/models"
)

// Snapshot is an immutable view of a user's domain records at a reference
// point in time. Callers must not mutate a snapshot while a computation is
// running; the engine never mutates it.
type Snapshot struct {
	// Now is the reference timestamp. It is injected rather than read from
	// the system clock so projections are reproducible.
	Now time.Time

	Accounts     []models.Account
	Transactions []models.Transaction
	Categories   []models.Category
	Budgets      []models.Budget
	Plans        []models.InstallmentPlan
	Arrangements []models.Arrangement
}

// index holds per-call lookup maps so identifier resolution stays O(1)
// regardless of ledger size. It is rebuilt on every engine call; there is
// no caching contract.
type index struct {
	accounts     map[string]*models.Account
	categories   map[string]*models.Category
	plans        map[string]*models.InstallmentPlan
	arrangements map[string]*models.Arrangement
	txByAccount  map[string][]*models.Transaction
	postedByPlan map[string][]*models.Transaction
}

func (s *Snapshot) buildIndex() *index {
	idx := &index{
		accounts:     make(map[string]*models.Account, len(s.Accounts)),
		categories:   make(map[string]*models.Category, len(s.Categories)),
		plans:        make(map[string]*models.InstallmentPlan, len(s.Plans)),
		arrangements: make(map[string]*models.Arrangement, len(s.Arrangements)),
		txByAccount:  make(map[string][]*models.Transaction),
		postedByPlan: make(map[string][]*models.Transaction),
	}

	for i := range s.Accounts {
		idx.accounts[s.Accounts[i].ID] = &s.Accounts[i]
	}
	for i := range s.Categories {
		idx.categories[s.Categories[i].ID] = &s.Categories[i]
	}
	for i := range s.Plans {
		idx.plans[s.Plans[i].ID] = &s.Plans[i]
	}
	for i := range s.Arrangements {
		idx.arrangements[s.Arrangements[i].ID] = &s.Arrangements[i]
	}
	for i := range s.Transactions {
		tx := &s.Transactions[i]
		idx.txByAccount[tx.AccountID] = append(idx.txByAccount[tx.AccountID], tx)
		if tx.PlanID != nil && tx.IsPosted() {
			idx.postedByPlan[*tx.PlanID] = append(idx.postedByPlan[*tx.PlanID], tx)
		}
	}
	return idx
}

// Diagnostics counts local recoveries taken while computing a result. The
// engine favors best-effort degraded output over failure; these counters let
// callers detect when the output was degraded.
type Diagnostics struct {
	// DanglingRefs counts records skipped because a referenced account,
	// category, or plan was not in the snapshot.
	DanglingRefs int `json:"dangling_refs,omitempty"`

	// MalformedRecurrences counts transactions whose recurrence rule was not
	// recognized and were treated as non-recurring.
	MalformedRecurrences int `json:"malformed_recurrences,omitempty"`

	// CalendarFallbacks counts dates that could not be advanced and fell
	// back to their anchor date.
	CalendarFallbacks int `json:"calendar_fallbacks,omitempty"`

	// InvalidRecords counts records skipped for invalid numeric input, such
	// as a plan with a non-positive installment count.
	InvalidRecords int `json:"invalid_records,omitempty"`
}

// Degraded reports whether any local recovery was taken.
func (d Diagnostics) Degraded() bool {
	return d.DanglingRefs > 0 || d.MalformedRecurrences > 0 || d.CalendarFallbacks > 0 || d.InvalidRecords > 0
}

func (d *Diagnostics) merge(other Diagnostics) {
	d.DanglingRefs += other.DanglingRefs
	d.MalformedRecurrences += other.MalformedRecurrences
	d.CalendarFallbacks += other.CalendarFallbacks
	d.InvalidRecords += other.InvalidRecords
}
