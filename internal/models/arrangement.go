package models

import "time"

// ArrangementType represents the kind of informal repayment relationship
type ArrangementType string

const (
	ArrangementTypeFriend     ArrangementType = "friend"
	ArrangementTypeCollection ArrangementType = "collection"
)

// Arrangement represents an informal, variable-amount repayment relationship
// (a family/friend loan or a third-party debt collection). There is no fixed
// installment schedule; payments are irregular and tracked against a running
// remaining balance derived from posted transactions on the linked account.
type Arrangement struct {
	Base
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID        string          `gorm:"type:uuid;not null" json:"account_id"`
	Type             ArrangementType `gorm:"not null" json:"type"`
	OriginalAmount   int64           `gorm:"not null" json:"original_amount"`
	StartDate        time.Time       `gorm:"not null" json:"start_date"`
	TargetDate       *time.Time      `json:"target_date,omitempty"`
	MinimumPayment   *int64          `json:"minimum_payment,omitempty"`
	SuggestedPayment *int64          `json:"suggested_payment,omitempty"`
	Counterparty     string          `json:"counterparty"`
	Notes            string          `json:"notes"`
	IsActive         bool            `gorm:"default:true" json:"is_active"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
