package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// ArrangementHandler handles flexible repayment arrangement requests.
type ArrangementHandler struct {
	arrangementService services.ArrangementServicer
	forecastService    services.ForecastServicer
}

// NewArrangementHandler creates a new ArrangementHandler.
func NewArrangementHandler(arrangementService services.ArrangementServicer, forecastService services.ForecastServicer) *ArrangementHandler {
	return &ArrangementHandler{arrangementService: arrangementService, forecastService: forecastService}
}

// CreateArrangementRequest represents the request payload for opening an
// arrangement.
type CreateArrangementRequest struct {
	AccountID        string                 `json:"account_id" binding:"required,uuid"`
	Type             models.ArrangementType `json:"type" binding:"required,arrangement_type"`
	OriginalAmount   int64                  `json:"original_amount" binding:"required,gt=0"`
	StartDate        time.Time              `json:"start_date" binding:"required"`
	TargetDate       *time.Time             `json:"target_date"`
	MinimumPayment   *int64                 `json:"minimum_payment" binding:"omitempty,gt=0"`
	SuggestedPayment *int64                 `json:"suggested_payment" binding:"omitempty,gt=0"`
	Counterparty     string                 `json:"counterparty" binding:"required,min=1,max=100"`
	Notes            string                 `json:"notes" binding:"max=1000"`
}

// CreateArrangement handles opening a new arrangement.
func (h *ArrangementHandler) CreateArrangement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateArrangementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	arrangement, err := h.arrangementService.CreateArrangement(userID, req.AccountID, req.Type, req.OriginalAmount, req.StartDate, req.TargetDate, req.MinimumPayment, req.SuggestedPayment, req.Counterparty, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"arrangement": arrangement})
}

// GetArrangements handles listing arrangements for the authenticated user.
func (h *ArrangementHandler) GetArrangements(c *gin.Context) {
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

	result, err := h.arrangementService.GetUserArrangements(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetArrangement handles retrieving a specific arrangement.
func (h *ArrangementHandler) GetArrangement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangementID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangement, err := h.arrangementService.GetArrangementByID(userID, arrangementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"arrangement": arrangement})
}

// GetArrangementStatus handles reporting repayment progress for an
// arrangement.
func (h *ArrangementHandler) GetArrangementStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangementID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.forecastService.ArrangementStatus(userID, arrangementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// SuggestOverpayment handles recommending an extra repayment given available
// funds.
func (h *ArrangementHandler) SuggestOverpayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangementID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	available, err := strconv.ParseInt(c.Query("available"), 10, 64)
	if err != nil || available < 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "available must be a non-negative integer"))
		return
	}

	extra, worthwhile, err := h.forecastService.SuggestOverpayment(userID, arrangementID, available)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggested_extra": extra,
		"worthwhile":      worthwhile,
	})
}

// RecordPayment handles recording a repayment against an arrangement.
func (h *ArrangementHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangementID, err := pathID(c, "id")
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

	payment, err := h.arrangementService.RecordPayment(userID, arrangementID, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// CloseArrangement handles marking an arrangement inactive.
func (h *ArrangementHandler) CloseArrangement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangementID, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	arrangement, err := h.arrangementService.CloseArrangement(userID, arrangementID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"arrangement": arrangement})
}
