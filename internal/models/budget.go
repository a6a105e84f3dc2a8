package models

// Budget represents a monthly spending limit for a category. A budget is
// scoped to exactly one calendar month; the engine tolerates duplicate
// budgets for the same (category, month, year) by summing their limits.
type Budget struct {
	Base
	UserID     string `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID string `gorm:"type:uuid;not null" json:"category_id"`
	Amount     int64  `gorm:"not null" json:"amount"`
	Month      int    `gorm:"not null" json:"month"`
	Year       int    `gorm:"not null" json:"year"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
