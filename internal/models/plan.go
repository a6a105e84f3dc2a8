package models

import "time"

// InstallmentPlan represents a buy-now-pay-later purchase split into equal
// installments. The per-installment amount is derived: total divided by the
// number of installments, with the final installment absorbing any rounding
// remainder so the schedule reconciles to TotalAmount exactly.
type InstallmentPlan struct {
	Base
	UserID          string    `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID       string    `gorm:"type:uuid;not null" json:"account_id"`
	Provider        string    `gorm:"not null" json:"provider"`
	TotalAmount     int64     `gorm:"not null" json:"total_amount"`
	NumInstallments int       `gorm:"not null" json:"num_installments"`
	Frequency       Frequency `gorm:"not null" json:"frequency"`
	StartDate       time.Time `gorm:"not null" json:"start_date"`
	LateFee         int64     `json:"late_fee,omitempty"`
	InterestRate    float64   `json:"interest_rate,omitempty"`
	IsCompleted     bool      `gorm:"default:false" json:"is_completed"`

	// Relationships
	Account      Account       `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:PlanID" json:"transactions,omitempty"`
}
