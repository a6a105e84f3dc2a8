package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"moneta/internal/engine"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
	cal            engine.Calendar
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
		cal:            engine.NewCalendar(),
	}
}

// CreateTransaction records a posted transaction and applies it to the
// account balance in the same database transaction. This is the only place
// a posted transaction touches the balance, so each ledger entry is applied
// exactly once.
func (s *transactionService) CreateTransaction(userID, accountID string, categoryID *string, amount int64, description string, date time.Time) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}

	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		if _, err := s.getCategory(userID, *categoryID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyToBalance(tx, account, amount)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// CreateScheduledTransaction records a future payment, optionally recurring.
// Scheduled transactions never touch the account balance; they exist only
// for projection until marked paid.
func (s *transactionService) CreateScheduledTransaction(userID, accountID string, categoryID *string, amount int64, description string, date time.Time, recurrence *models.Frequency) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be non-zero")
	}
	if recurrence != nil && !recurrence.IsValid() {
		return nil, apperrors.ErrInvalidRecurrence
	}

	if _, err := s.accountService.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}
	if categoryID != nil {
		if _, err := s.getCategory(userID, *categoryID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
		IsScheduled: true,
		Recurrence:  recurrence,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// MarkPaid settles a pending scheduled transaction. A one-off schedule is
// converted in place to a posted transaction dated paidAt. A recurring rule
// instead posts a copy for the settled occurrence and advances the rule's
// anchor to the next occurrence, so the rule keeps projecting. Either way
// the account balance is applied exactly once.
func (s *transactionService) MarkPaid(userID, transactionID string, paidAt time.Time) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if !transaction.IsScheduled || transaction.IsPaid {
		return nil, apperrors.ErrNotScheduled
	}

	account, err := s.accountService.GetAccountByID(userID, transaction.AccountID)
	if err != nil {
		return nil, err
	}

	var posted *models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if transaction.Recurrence != nil {
			next, ok := s.cal.Step(transaction.Date, *transaction.Recurrence, 1)
			if !ok {
				return apperrors.ErrInvalidRecurrence
			}

			posted = &models.Transaction{
				UserID:      userID,
				AccountID:   transaction.AccountID,
				CategoryID:  transaction.CategoryID,
				PlanID:      transaction.PlanID,
				EventID:     transaction.EventID,
				Amount:      transaction.Amount,
				Description: transaction.Description,
				Date:        paidAt,
				IsPaid:      true,
			}
			if err := tx.Create(posted).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := tx.Model(transaction).Update("date", next).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			transaction.Date = next
		} else {
			updates := map[string]interface{}{
				"is_scheduled": false,
				"is_paid":      true,
				"date":         paidAt,
			}
			if err := tx.Model(transaction).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			transaction.IsScheduled = false
			transaction.IsPaid = true
			transaction.Date = paidAt
			posted = transaction
		}

		return s.accountService.ApplyToBalance(tx, account, transaction.Amount)
	})
	if err != nil {
		return nil, err
	}

	return posted, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, most recent first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilter(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction. Deleting a posted transaction
// reverses its effect on the account balance; deleting a scheduled one has
// no balance effect.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if transaction.IsPosted() {
			account, err := s.accountService.GetAccountByID(userID, transaction.AccountID)
			if err != nil {
				return err
			}
			return s.accountService.ApplyToBalance(tx, account, -transaction.Amount)
		}
		return nil
	})
}

func (s *transactionService) getCategory(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

func applyTransactionFilter(query *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}
	if filter.IsScheduled != nil {
		query = query.Where("is_scheduled = ?", *filter.IsScheduled)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	return query
}
