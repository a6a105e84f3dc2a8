package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account of the given type with the given
// balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string, accountType models.AccountType, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     accountType,
		Balance:  balance,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCurrentAccount creates a current account with the given balance.
func CreateTestCurrentAccount(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Account {
	t.Helper()
	return CreateTestAccount(t, db, userID, models.AccountTypeCurrent, balance)
}

// CreateTestBNPLAccount creates a bnpl account carrying the given debt
// (stored as a negative balance).
func CreateTestBNPLAccount(t *testing.T, db *gorm.DB, userID string, debt int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test BNPL Account %d", nextID()),
		Type:     models.AccountTypeBNPL,
		Balance:  -debt,
		Currency: "USD",
		IsActive: true,
		Provider: "Klarna",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bnpl account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a posted transaction with the given signed
// amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		AccountID: accountID,
		Amount:    amount,
		Date:      time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestScheduledTransaction creates a pending scheduled transaction due
// on the given date.
func CreateTestScheduledTransaction(t *testing.T, db *gorm.DB, userID, accountID string, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      amount,
		Date:        date,
		IsScheduled: true,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test scheduled transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for the given category and month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string, amount int64, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Month:      month,
		Year:       year,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestPlan creates an installment plan on the given bnpl account.
func CreateTestPlan(t *testing.T, db *gorm.DB, userID, accountID string, totalAmount int64, numInstallments int, frequency models.Frequency, startDate time.Time) *models.InstallmentPlan {
	t.Helper()

	plan := &models.InstallmentPlan{
		UserID:          userID,
		AccountID:       accountID,
		Provider:        "Klarna",
		TotalAmount:     totalAmount,
		NumInstallments: numInstallments,
		Frequency:       frequency,
		StartDate:       startDate,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateTestArrangement creates an active arrangement on the given account.
func CreateTestArrangement(t *testing.T, db *gorm.DB, userID, accountID string, arrangementType models.ArrangementType, originalAmount int64, minimumPayment *int64) *models.Arrangement {
	t.Helper()

	arrangement := &models.Arrangement{
		UserID:         userID,
		AccountID:      accountID,
		Type:           arrangementType,
		OriginalAmount: originalAmount,
		StartDate:      time.Now().AddDate(0, -3, 0),
		MinimumPayment: minimumPayment,
		Counterparty:   fmt.Sprintf("Counterparty %d", nextID()),
		IsActive:       true,
	}
	if err := db.Create(arrangement).Error; err != nil {
		t.Fatalf("failed to create test arrangement: %v", err)
	}
	return arrangement
}
