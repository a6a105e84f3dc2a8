package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// arrangementService handles flexible repayment arrangement business logic.
type arrangementService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewArrangementService creates a new ArrangementServicer.
func NewArrangementService(db *gorm.DB, accountService AccountServicer) ArrangementServicer {
	return &arrangementService{db: db, accountService: accountService}
}

// CreateArrangement opens a repayment arrangement against a friend or
// collection account. The arrangement type must match the account type.
func (s *arrangementService) CreateArrangement(userID, accountID string, arrangementType models.ArrangementType, originalAmount int64, startDate time.Time, targetDate *time.Time, minimumPayment, suggestedPayment *int64, counterparty, notes string) (*models.Arrangement, error) {
	if originalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "original amount must be positive")
	}
	if arrangementType != models.ArrangementTypeFriend && arrangementType != models.ArrangementTypeCollection {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "arrangement type must be friend or collection")
	}
	if minimumPayment != nil && *minimumPayment <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "minimum payment must be positive")
	}

	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}
	if string(account.Type) != string(arrangementType) {
		return nil, apperrors.ErrArrangementTypeMismatch
	}

	arrangement := &models.Arrangement{
		UserID:           userID,
		AccountID:        accountID,
		Type:             arrangementType,
		OriginalAmount:   originalAmount,
		StartDate:        startDate,
		TargetDate:       targetDate,
		MinimumPayment:   minimumPayment,
		SuggestedPayment: suggestedPayment,
		Counterparty:     counterparty,
		Notes:            notes,
		IsActive:         true,
	}

	if err := s.db.Create(arrangement).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return arrangement, nil
}

// GetUserArrangements retrieves a paginated list of arrangements for a user,
// active ones first.
func (s *arrangementService) GetUserArrangements(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Arrangement], error) {
	page.Defaults()

	base := s.db.Model(&models.Arrangement{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var arrangements []models.Arrangement
	if err := base.Scopes(pagination.Paginate(page)).Order("is_active DESC, start_date ASC").Find(&arrangements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(arrangements, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetArrangementByID retrieves an arrangement by ID for a specific user
func (s *arrangementService) GetArrangementByID(userID, arrangementID string) (*models.Arrangement, error) {
	var arrangement models.Arrangement
	if err := s.db.Where("id = ? AND user_id = ?", arrangementID, userID).First(&arrangement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrArrangementNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &arrangement, nil
}

// RecordPayment posts a repayment against the arrangement's linked account.
// Payments are irregular by nature; any positive amount is accepted,
// including amounts beyond the remaining balance.
func (s *arrangementService) RecordPayment(userID, arrangementID string, amount int64, date time.Time) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}

	arrangement, err := s.GetArrangementByID(userID, arrangementID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountService.GetAccountByID(userID, arrangement.AccountID)
	if err != nil {
		return nil, err
	}

	payment := &models.Transaction{
		UserID:      userID,
		AccountID:   arrangement.AccountID,
		Amount:      amount,
		Description: "Payment to " + arrangement.Counterparty,
		Date:        date,
		IsPaid:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.ApplyToBalance(tx, account, amount)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// CloseArrangement marks an arrangement inactive. Closed arrangements keep
// their payment history but are no longer tracked for minimum payments.
func (s *arrangementService) CloseArrangement(userID, arrangementID string) (*models.Arrangement, error) {
	arrangement, err := s.GetArrangementByID(userID, arrangementID)
	if err != nil {
		return nil, err
	}

	if arrangement.IsActive {
		if err := s.db.Model(arrangement).Update("is_active", false).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		arrangement.IsActive = false
	}

	return arrangement, nil
}
