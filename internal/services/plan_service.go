package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// planService handles installment plan business logic.
type planService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewPlanService creates a new PlanServicer.
func NewPlanService(db *gorm.DB, accountService AccountServicer) PlanServicer {
	return &planService{db: db, accountService: accountService}
}

// CreatePlan opens an installment plan against a BNPL account. The purchase
// amount is applied to the account as a posted outflow so the outstanding
// debt shows up immediately.
func (s *planService) CreatePlan(userID, accountID, provider string, totalAmount int64, numInstallments int, frequency models.Frequency, startDate time.Time, lateFee int64, interestRate float64) (*models.InstallmentPlan, error) {
	if totalAmount <= 0 || numInstallments < 1 {
		return nil, apperrors.ErrInvalidPlanTerms
	}
	if !frequency.IsValid() {
		return nil, apperrors.ErrInvalidRecurrence
	}

	account, err := s.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Type != models.AccountTypeBNPL {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAccountType, "installment plans require a bnpl account")
	}

	plan := &models.InstallmentPlan{
		UserID:          userID,
		AccountID:       accountID,
		Provider:        provider,
		TotalAmount:     totalAmount,
		NumInstallments: numInstallments,
		Frequency:       frequency,
		StartDate:       startDate,
		LateFee:         lateFee,
		InterestRate:    interestRate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		purchase := &models.Transaction{
			UserID:      userID,
			AccountID:   accountID,
			Amount:      -totalAmount,
			Description: provider + " purchase",
			Date:        startDate,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return s.accountService.ApplyToBalance(tx, account, -totalAmount)
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// GetUserPlans retrieves a paginated list of installment plans for a user,
// open plans first.
func (s *planService) GetUserPlans(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.InstallmentPlan], error) {
	page.Defaults()

	base := s.db.Model(&models.InstallmentPlan{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var plans []models.InstallmentPlan
	if err := base.Scopes(pagination.Paginate(page)).Order("is_completed ASC, start_date ASC").Find(&plans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(plans, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPlanByID retrieves an installment plan by ID for a specific user
func (s *planService) GetPlanByID(userID, planID string) (*models.InstallmentPlan, error) {
	var plan models.InstallmentPlan
	if err := s.db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &plan, nil
}

// RecordInstallmentPayment posts an installment payment against the plan's
// account and links it to the plan. The plan is marked completed when the
// number of linked payments reaches the installment count.
func (s *planService) RecordInstallmentPayment(userID, planID string, amount int64, date time.Time) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be positive")
	}

	plan, err := s.GetPlanByID(userID, planID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountService.GetAccountByID(userID, plan.AccountID)
	if err != nil {
		return nil, err
	}

	payment := &models.Transaction{
		UserID:      userID,
		AccountID:   plan.AccountID,
		PlanID:      &plan.ID,
		Amount:      amount,
		Description: plan.Provider + " installment",
		Date:        date,
		IsPaid:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := s.accountService.ApplyToBalance(tx, account, amount); err != nil {
			return err
		}

		var paidCount int64
		if err := tx.Model(&models.Transaction{}).
			Where("plan_id = ? AND is_scheduled = ?", plan.ID, false).
			Count(&paidCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if paidCount >= int64(plan.NumInstallments) && !plan.IsCompleted {
			if err := tx.Model(plan).Update("is_completed", true).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			plan.IsCompleted = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePlan removes an installment plan. Plans with linked payments cannot
// be deleted; the payment history would lose its anchor.
func (s *planService) DeletePlan(userID, planID string) error {
	plan, err := s.GetPlanByID(userID, planID)
	if err != nil {
		return err
	}

	var paymentCount int64
	if err := s.db.Model(&models.Transaction{}).Where("plan_id = ?", planID).Count(&paymentCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if paymentCount > 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "plan has recorded payments and cannot be deleted")
	}

	if err := s.db.Delete(plan).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
