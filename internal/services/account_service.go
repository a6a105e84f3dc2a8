package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account of any supported type. Liability
// accounts must open with a non-positive balance; asset accounts with a
// non-negative one. Friend accounts may open with either sign. A non-zero
// opening balance is recorded as a posted transaction so the ledger
// reconciles from day one.
func (s *accountService) CreateAccount(userID string, fields AccountCreateFields) (*models.Account, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if !validAccountType(fields.Type) {
		return nil, apperrors.ErrInvalidAccountType
	}
	if err := checkBalanceSign(fields.Type, fields.InitialBalance); err != nil {
		return nil, err
	}

	currency := fields.Currency
	if currency == "" {
		currency = "USD"
	}

	account := &models.Account{
		UserID:             userID,
		Name:               fields.Name,
		Type:               fields.Type,
		Description:        fields.Description,
		Balance:            fields.InitialBalance,
		Currency:           currency,
		IsActive:           true,
		CreditLimit:        fields.CreditLimit,
		OriginalLoanAmount: fields.OriginalLoanAmount,
		LoanTermMonths:     fields.LoanTermMonths,
		LoanStartDate:      fields.LoanStartDate,
		InterestRate:       fields.InterestRate,
		MonthlyPayment:     fields.MonthlyPayment,
		Provider:           fields.Provider,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if fields.InitialBalance != 0 {
			opening := &models.Transaction{
				UserID:      userID,
				AccountID:   account.ID,
				Amount:      fields.InitialBalance,
				Description: "Opening balance",
				Date:        time.Now(),
			}
			if err := tx.Create(opening).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetUserAccounts retrieves a paginated list of active accounts for a user.
func (s *accountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Account{}).Where("user_id = ? AND is_active = ?", userID, true)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID for a specific user
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an existing account. Only fields relevant to the
// account's type are applied.
func (s *accountService) UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	// Common fields (all account types)
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	// Credit-only fields
	if account.Type == models.AccountTypeCredit {
		if fields.CreditLimit != nil {
			updates["credit_limit"] = *fields.CreditLimit
		}
	}

	// Loan-only fields
	if account.Type == models.AccountTypeLoan {
		if fields.MonthlyPayment != nil {
			updates["monthly_payment"] = *fields.MonthlyPayment
		}
	}
	if account.Type == models.AccountTypeLoan || account.Type == models.AccountTypeCredit {
		if fields.InterestRate != nil {
			updates["interest_rate"] = *fields.InterestRate
		}
	}

	// BNPL / collection-only fields
	if account.Type == models.AccountTypeBNPL || account.Type == models.AccountTypeCollection {
		if fields.Provider != nil {
			updates["provider"] = *fields.Provider
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// DeactivateAccount soft-disables an account. Its history stays queryable
// but it no longer appears in listings or forecasts.
func (s *accountService) DeactivateAccount(userID, accountID string) error {
	result := s.db.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// ApplyToBalance adds a signed amount to the account balance inside the
// caller's transaction. Amounts are signed, so a single addition covers
// inflows and outflows for every account type.
func (s *accountService) ApplyToBalance(tx *gorm.DB, account *models.Account, amount int64) error {
	account.Balance += amount
	if err := tx.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validAccountType(t models.AccountType) bool {
	switch t {
	case models.AccountTypeCurrent, models.AccountTypeSavings, models.AccountTypeCredit,
		models.AccountTypeLoan, models.AccountTypeBNPL, models.AccountTypeFriend,
		models.AccountTypeCollection, models.AccountTypePrepaid, models.AccountTypeInvestment:
		return true
	}
	return false
}

// checkBalanceSign rejects opening balances whose sign contradicts the
// account type. Liabilities carry what is owed as a negative balance;
// friend accounts may hold either sign.
func checkBalanceSign(t models.AccountType, balance int64) error {
	if balance == 0 || t == models.AccountTypeFriend {
		return nil
	}
	if t.IsLiability() && balance > 0 {
		return apperrors.ErrBalanceSignMismatch
	}
	if !t.IsLiability() && balance < 0 {
		return apperrors.ErrBalanceSignMismatch
	}
	return nil
}
