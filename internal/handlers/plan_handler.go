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

// PlanHandler handles installment plan requests.
type PlanHandler struct {
	planService     services.PlanServicer
	forecastService services.ForecastServicer
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService services.PlanServicer, forecastService services.ForecastServicer) *PlanHandler {
	return &PlanHandler{planService: planService, forecastService: forecastService}
}

// CreatePlanRequest represents the request payload for creating an
// installment plan.
type CreatePlanRequest struct {
	AccountID       string           `json:"account_id" binding:"required,uuid"`
	Provider        string           `json:"provider" binding:"required,min=1,max=100"`
	TotalAmount     int64            `json:"total_amount" binding:"required,gt=0"`
	NumInstallments int              `json:"num_installments" binding:"required,gt=0"`
	Frequency       models.Frequency `json:"frequency" binding:"required,frequency"`
	StartDate       time.Time        `json:"start_date" binding:"required"`
	LateFee         int64            `json:"late_fee" binding:"omitempty,gte=0"`
	InterestRate    float64          `json:"interest_rate" binding:"omitempty,gte=0"`
}

// RecordPaymentRequest represents the request payload for recording a
// payment. Date defaults to the current time.
type RecordPaymentRequest struct {
	Amount int64      `json:"amount" binding:"required,gt=0"`
	Date   *time.Time `json:"date"`
}

// CreatePlan handles opening a new installment plan.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(userID, req.AccountID, req.Provider, req.TotalAmount, req.NumInstallments, req.Frequency, req.StartDate, req.LateFee, req.InterestRate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// GetPlans handles listing installment plans for the authenticated user.
func (h *PlanHandler) GetPlans(c *gin.Context) {
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

	result, err := h.planService.GetUserPlans(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlan handles retrieving a specific installment plan.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.planService.GetPlanByID(userID, planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// GetPlanSchedule handles deriving the full installment schedule for a plan.
func (h *PlanHandler) GetPlanSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, diag, err := h.forecastService.PlanSchedule(userID, planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule":    schedule,
		"diagnostics": diag,
	})
}

// GetPlanStatus handles reporting payment progress and delinquency for a plan.
func (h *PlanHandler) GetPlanStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.forecastService.PlanStatus(userID, planID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// RecordPayment handles recording an installment payment against a plan.
func (h *PlanHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	payment, err := h.planService.RecordInstallmentPayment(userID, planID, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// DeletePlan handles deleting an installment plan.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	planID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.planService.DeletePlan(userID, planID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}
