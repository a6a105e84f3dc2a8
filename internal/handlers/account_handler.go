package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService  services.AccountServicer
	forecastService services.ForecastServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, forecastService services.ForecastServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, forecastService: forecastService}
}

// CreateAccountRequest represents the request payload for creating an account.
// Type-specific fields are ignored for other account types.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,min=1,max=100"`
	Type           models.AccountType `json:"type" binding:"required,account_type"`
	Description    string             `json:"description" binding:"max=500"`
	Currency       string             `json:"currency" binding:"omitempty,len=3"`
	InitialBalance int64              `json:"initial_balance"`

	CreditLimit        int64      `json:"credit_limit" binding:"omitempty,gt=0"`
	OriginalLoanAmount int64      `json:"original_loan_amount" binding:"omitempty,gt=0"`
	LoanTermMonths     int        `json:"loan_term_months" binding:"omitempty,gt=0"`
	LoanStartDate      *time.Time `json:"loan_start_date"`
	InterestRate       float64    `json:"interest_rate" binding:"omitempty,gte=0"`
	MonthlyPayment     int64      `json:"monthly_payment" binding:"omitempty,gt=0"`
	Provider           string     `json:"provider" binding:"max=100"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description    *string  `json:"description" binding:"omitempty,max=500"`
	IsActive       *bool    `json:"is_active"`
	CreditLimit    *int64   `json:"credit_limit" binding:"omitempty,gt=0"`
	InterestRate   *float64 `json:"interest_rate" binding:"omitempty,gte=0"`
	MonthlyPayment *int64   `json:"monthly_payment" binding:"omitempty,gt=0"`
	Provider       *string  `json:"provider" binding:"omitempty,max=100"`
}

// CreateAccount handles the creation of a new account.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(userID, services.AccountCreateFields{
		Name:               req.Name,
		Type:               req.Type,
		Description:        req.Description,
		Currency:           req.Currency,
		InitialBalance:     req.InitialBalance,
		CreditLimit:        req.CreditLimit,
		OriginalLoanAmount: req.OriginalLoanAmount,
		LoanTermMonths:     req.LoanTermMonths,
		LoanStartDate:      req.LoanStartDate,
		InterestRate:       req.InterestRate,
		MonthlyPayment:     req.MonthlyPayment,
		Provider:           req.Provider,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts handles listing accounts for the authenticated user.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.accountService.GetUserAccounts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccount handles retrieving a specific account.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpdateAccount handles updating an existing account.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, services.AccountUpdateFields{
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       req.IsActive,
		CreditLimit:    req.CreditLimit,
		InterestRate:   req.InterestRate,
		MonthlyPayment: req.MonthlyPayment,
		Provider:       req.Provider,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeactivateAccount handles soft-disabling an account.
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeactivateAccount(userID, accountID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated successfully"})
}

// GetAccountForecast handles projecting the account's daily balance over the
// lookback and horizon windows.
func (h *AccountHandler) GetAccountForecast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	forecast, err := h.forecastService.ForecastAccount(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}
