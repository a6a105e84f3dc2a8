package services

import (
	"errors"
	"time"

	"moneta/internal/engine"
	apperrors "moneta/internal/errors"
)

// forecastService exposes the projection engine over stored records. The
// current time is injected so tests can pin projections to a fixed date.
type forecastService struct {
	snapshots SnapshotLoader
	eng       *engine.Engine
	now       func() time.Time
}

// NewForecastService creates a new ForecastServicer using the real clock.
func NewForecastService(snapshots SnapshotLoader, eng *engine.Engine) ForecastServicer {
	return NewForecastServiceWithClock(snapshots, eng, time.Now)
}

// NewForecastServiceWithClock creates a ForecastServicer with an injected
// clock.
func NewForecastServiceWithClock(snapshots SnapshotLoader, eng *engine.Engine, now func() time.Time) ForecastServicer {
	return &forecastService{snapshots: snapshots, eng: eng, now: now}
}

// ForecastAccount projects an account's daily balance over the configured
// lookback and horizon windows.
func (s *forecastService) ForecastAccount(userID, accountID string) (*engine.Forecast, error) {
	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return nil, err
	}

	forecast, err := s.eng.ForecastAccount(snap, accountID)
	if err != nil {
		return nil, mapEngineErr(err)
	}
	return forecast, nil
}

// UpcomingPayments lists scheduled payments due within the horizon, soonest
// first.
func (s *forecastService) UpcomingPayments(userID string, limit int) ([]engine.UpcomingPayment, engine.Diagnostics, error) {
	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return nil, engine.Diagnostics{}, err
	}

	payments, diag := s.eng.UpcomingPayments(snap, limit)
	return payments, diag, nil
}

// BudgetOverview reports spend against each budget for a calendar month.
func (s *forecastService) BudgetOverview(userID string, month time.Month, year int) ([]engine.BudgetStatus, engine.Diagnostics, error) {
	if month < time.January || month > time.December {
		return nil, engine.Diagnostics{}, apperrors.ErrInvalidMonth
	}

	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return nil, engine.Diagnostics{}, err
	}

	statuses, diag := s.eng.BudgetStatuses(snap, month, year)
	return statuses, diag, nil
}

// PlanSchedule derives the full installment schedule for a plan.
func (s *forecastService) PlanSchedule(userID, planID string) ([]engine.Installment, engine.Diagnostics, error) {
	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return nil, engine.Diagnostics{}, err
	}

	for i := range snap.Plans {
		if snap.Plans[i].ID == planID {
			schedule, diag := s.eng.PlanSchedule(snap.Plans[i])
			return schedule, diag, nil
		}
	}
	return nil, engine.Diagnostics{}, apperrors.ErrPlanNotFound
}

// PlanStatus reports payment progress and delinquency for a plan.
func (s *forecastService) PlanStatus(userID, planID string) (*engine.PlanStatus, error) {
	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return nil, err
	}

	status, err := s.eng.PlanStatus(snap, planID)
	if err != nil {
		return nil, mapEngineErr(err)
	}
	return status, nil
}

// ArrangementStatus reports repayment progress for an arrangement.
func (s *forecastService) ArrangementStatus(userID, arrangementID string) (*engine.ArrangementStatus, error) {
	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return nil, err
	}

	status, err := s.eng.ArrangementStatus(snap, arrangementID)
	if err != nil {
		return nil, mapEngineErr(err)
	}
	return status, nil
}

// SuggestOverpayment recommends an extra repayment on top of the minimum
// when the available funds make it worthwhile.
func (s *forecastService) SuggestOverpayment(userID, arrangementID string, available int64) (int64, bool, error) {
	snap, err := s.snapshots.Load(userID, s.now())
	if err != nil {
		return 0, false, err
	}

	for i := range snap.Arrangements {
		if snap.Arrangements[i].ID == arrangementID {
			extra, ok := s.eng.SuggestOverpayment(&snap.Arrangements[i], available)
			return extra, ok, nil
		}
	}
	return 0, false, apperrors.ErrArrangementNotFound
}

// mapEngineErr translates engine lookup errors to API errors.
func mapEngineErr(err error) error {
	switch {
	case errors.Is(err, engine.ErrAccountNotFound):
		return apperrors.ErrAccountNotFound
	case errors.Is(err, engine.ErrPlanNotFound):
		return apperrors.ErrPlanNotFound
	case errors.Is(err, engine.ErrArrangementNotFound):
		return apperrors.ErrArrangementNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
