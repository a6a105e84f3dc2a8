package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCurrent    AccountType = "current"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeBNPL       AccountType = "bnpl"
	AccountTypeFriend     AccountType = "friend"
	AccountTypeCollection AccountType = "collection"
	AccountTypePrepaid    AccountType = "prepaid"
	AccountTypeInvestment AccountType = "investment"
)

// Account represents a financial account in the system. Balance is signed:
// asset-like accounts carry a positive balance, liability accounts (credit,
// loan, bnpl, collection) carry the outstanding amount as a negative balance.
// Friend accounts may hold either sign depending on who owes whom.
type Account struct {
	Base
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string      `gorm:"not null" json:"name"`
	Type        AccountType `gorm:"not null" json:"type"`
	Description string      `json:"description"`
	Balance     int64       `gorm:"not null;default:0" json:"balance"`
	Currency    string      `gorm:"not null;default:'USD'" json:"currency"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`

	// For credit accounts
	CreditLimit int64 `json:"credit_limit,omitempty"`

	// For loan accounts
	OriginalLoanAmount int64      `json:"original_loan_amount,omitempty"`
	LoanTermMonths     int        `json:"loan_term_months,omitempty"`
	LoanStartDate      *time.Time `json:"loan_start_date,omitempty"`
	InterestRate       float64    `json:"interest_rate,omitempty"`
	MonthlyPayment     int64      `json:"monthly_payment,omitempty"`

	// For bnpl and collection accounts
	Provider string `json:"provider,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}

// IsLiability reports whether the account type represents money owed.
func (t AccountType) IsLiability() bool {
	switch t {
	case AccountTypeCredit, AccountTypeLoan, AccountTypeBNPL, AccountTypeCollection:
		return true
	}
	return false
}

// BeforeCreate hook to clear attributes that do not apply to the account type
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if err := a.Base.BeforeCreate(tx); err != nil {
		return err
	}

	if a.Type != AccountTypeCredit {
		a.CreditLimit = 0
	}
	if a.Type != AccountTypeLoan {
		a.OriginalLoanAmount = 0
		a.LoanTermMonths = 0
		a.LoanStartDate = nil
		a.MonthlyPayment = 0
	}
	if a.Type != AccountTypeLoan && a.Type != AccountTypeCredit {
		a.InterestRate = 0
	}
	if a.Type != AccountTypeBNPL && a.Type != AccountTypeCollection {
		a.Provider = ""
	}
	return nil
}
