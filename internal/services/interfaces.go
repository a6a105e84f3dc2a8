package services

import (
	"time"

	"gorm.io/gorm"

	"moneta/internal/engine"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AccountCreateFields holds the type-specific attributes accepted when
// creating an account. Fields that do not apply to the account type are
// ignored.
type AccountCreateFields struct {
	Name           string
	Type           models.AccountType
	Description    string
	Currency       string
	InitialBalance int64

	// Credit
	CreditLimit int64

	// Loan
	OriginalLoanAmount int64
	LoanTermMonths     int
	LoanStartDate      *time.Time
	InterestRate       float64
	MonthlyPayment     int64

	// BNPL / collection
	Provider string
}

// AccountUpdateFields holds the optional fields for an account update.
// Nil pointers leave the current value unchanged.
type AccountUpdateFields struct {
	Name        *string
	Description *string
	IsActive    *bool

	CreditLimit    *int64
	InterestRate   *float64
	MonthlyPayment *int64
	Provider       *string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID string, fields AccountCreateFields) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeactivateAccount(userID, accountID string) error
	ApplyToBalance(tx *gorm.DB, account *models.Account, amount int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, description, icon, color string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetUserCategoriesByType(userID string, categoryType models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, description, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate    *time.Time
	ToDate      *time.Time
	CategoryID  *string
	AccountID   *string
	PlanID      *string
	IsScheduled *bool
	MinAmount   *int64
	MaxAmount   *int64
}

// TransactionServicer defines the contract for transaction-related business
// logic. Posted transactions apply to the account balance exactly once, at
// creation; scheduled transactions never touch the balance until marked paid.
type TransactionServicer interface {
	CreateTransaction(userID, accountID string, categoryID *string, amount int64, description string, date time.Time) (*models.Transaction, error)
	CreateScheduledTransaction(userID, accountID string, categoryID *string, amount int64, description string, date time.Time, recurrence *models.Frequency) (*models.Transaction, error)
	MarkPaid(userID, transactionID string, paidAt time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, amount int64, month, year int) (*models.Budget, error)
	GetUserBudgets(userID string, month, year int, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, amount *int64) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// PlanServicer defines the contract for installment plan business logic.
type PlanServicer interface {
	CreatePlan(userID, accountID, provider string, totalAmount int64, numInstallments int, frequency models.Frequency, startDate time.Time, lateFee int64, interestRate float64) (*models.InstallmentPlan, error)
	GetUserPlans(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.InstallmentPlan], error)
	GetPlanByID(userID, planID string) (*models.InstallmentPlan, error)
	RecordInstallmentPayment(userID, planID string, amount int64, date time.Time) (*models.Transaction, error)
	DeletePlan(userID, planID string) error
}

// ArrangementServicer defines the contract for flexible repayment
// arrangements (friend loans and collections).
type ArrangementServicer interface {
	CreateArrangement(userID, accountID string, arrangementType models.ArrangementType, originalAmount int64, startDate time.Time, targetDate *time.Time, minimumPayment, suggestedPayment *int64, counterparty, notes string) (*models.Arrangement, error)
	GetUserArrangements(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Arrangement], error)
	GetArrangementByID(userID, arrangementID string) (*models.Arrangement, error)
	RecordPayment(userID, arrangementID string, amount int64, date time.Time) (*models.Transaction, error)
	CloseArrangement(userID, arrangementID string) (*models.Arrangement, error)
}

// SnapshotLoader assembles an engine snapshot from stored records.
type SnapshotLoader interface {
	Load(userID string, now time.Time) (*engine.Snapshot, error)
}

// ForecastServicer exposes the projection engine over stored data.
type ForecastServicer interface {
	ForecastAccount(userID, accountID string) (*engine.Forecast, error)
	UpcomingPayments(userID string, limit int) ([]engine.UpcomingPayment, engine.Diagnostics, error)
	BudgetOverview(userID string, month time.Month, year int) ([]engine.BudgetStatus, engine.Diagnostics, error)
	PlanSchedule(userID, planID string) ([]engine.Installment, engine.Diagnostics, error)
	PlanStatus(userID, planID string) (*engine.PlanStatus, error)
	ArrangementStatus(userID, arrangementID string) (*engine.ArrangementStatus, error)
	SuggestOverpayment(userID, arrangementID string, available int64) (int64, bool, error)
}
