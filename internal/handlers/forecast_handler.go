package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moneta/internal/config"
	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// ForecastHandler handles projection requests that span accounts.
type ForecastHandler struct {
	forecastService services.ForecastServicer
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastService services.ForecastServicer) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// GetUpcomingPayments handles listing scheduled payments due within the
// projection horizon, soonest first.
func (h *ForecastHandler) GetUpcomingPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := config.Get().UpcomingDisplayLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	payments, diag, err := h.forecastService.UpcomingPayments(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":    payments,
		"diagnostics": diag,
	})
}
