package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/engine"
	"moneta/internal/uuid"
)

func setupForecastRouter(handler *ForecastHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/upcoming", handler.GetUpcomingPayments)
	return r
}

func TestForecastHandler_GetUpcomingPayments(t *testing.T) {
	t.Run("lists payments soonest first", func(t *testing.T) {
		fcSvc := &mockForecastService{
			upcomingPaymentsFn: func(_ string, limit int) ([]engine.UpcomingPayment, engine.Diagnostics, error) {
				return []engine.UpcomingPayment{
					{TransactionID: uuid.New(), Description: "Rent", Amount: -120000, DueDate: time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)},
					{TransactionID: uuid.New(), Description: "Gym", Amount: -4500, DueDate: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)},
				}, engine.Diagnostics{}, nil
			},
		}
		handler := NewForecastHandler(fcSvc)
		r := setupForecastRouter(handler)

		rec := doRequest(r, "GET", "/upcoming", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		payments := parseJSON(t, rec)["payments"].([]interface{})
		if len(payments) != 2 {
			t.Fatalf("expected 2 payments, got %d", len(payments))
		}
		first := payments[0].(map[string]interface{})
		if first["description"] != "Rent" {
			t.Errorf("expected Rent first, got %v", first["description"])
		}
	})

	t.Run("passes an explicit limit through", func(t *testing.T) {
		var gotLimit int
		fcSvc := &mockForecastService{
			upcomingPaymentsFn: func(_ string, limit int) ([]engine.UpcomingPayment, engine.Diagnostics, error) {
				gotLimit = limit
				return []engine.UpcomingPayment{}, engine.Diagnostics{}, nil
			},
		}
		handler := NewForecastHandler(fcSvc)
		r := setupForecastRouter(handler)

		rec := doRequest(r, "GET", "/upcoming?limit=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotLimit != 3 {
			t.Errorf("expected limit 3, got %d", gotLimit)
		}
	})

	t.Run("returns 400 on malformed limit", func(t *testing.T) {
		handler := NewForecastHandler(&mockForecastService{})
		r := setupForecastRouter(handler)

		rec := doRequest(r, "GET", "/upcoming?limit=many", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
