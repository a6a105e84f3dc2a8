package models

import "time"

// Transaction represents a single ledger entry. Amount is signed: positive
// for inflows, negative for outflows. A posted transaction (IsScheduled
// false) has already been applied to its account's balance exactly once.
// A scheduled transaction with a future date is a projection and is never
// counted in the current balance or in historical aggregates.
type Transaction struct {
	Base
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   string     `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID  *string    `gorm:"type:uuid" json:"category_id,omitempty"`
	PlanID      *string    `gorm:"type:uuid;index" json:"plan_id,omitempty"`
	EventID     *string    `gorm:"type:uuid" json:"event_id,omitempty"`
	Amount      int64      `gorm:"type:bigint;not null" json:"amount"`
	Description string     `json:"description"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
	IsScheduled bool       `gorm:"default:false" json:"is_scheduled"`
	IsPaid      bool       `gorm:"default:false" json:"is_paid"`
	Recurrence  *Frequency `json:"recurrence,omitempty"`

	// Relationships
	Account  Account          `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Plan     *InstallmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// IsPosted reports whether the transaction is a completed ledger event.
func (t *Transaction) IsPosted() bool {
	return !t.IsScheduled
}
