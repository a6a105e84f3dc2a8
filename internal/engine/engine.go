// Package engine computes balance forecasts, budget consumption, installment
// schedules, and repayment tracking from an immutable snapshot of domain
// records. Every operation is a pure function of the snapshot and its
// reference timestamp: the engine reads no clock, touches no storage, and
// keeps no state between calls, so identical inputs always produce identical
// outputs and callers may memoize results freely.
package engine

import "errors"

// Default horizon parameters and policy thresholds.
const (
	DefaultLookbackDays = 7
	DefaultHorizonDays  = 30

	// DefaultOverpaymentThreshold is the smallest extra repayment worth
	// suggesting, in minor currency units (10 whole units).
	DefaultOverpaymentThreshold = 1000
)

// Lookup errors returned when a requested record is not in the snapshot.
var (
	ErrAccountNotFound     = errors.New("engine: account not found in snapshot")
	ErrPlanNotFound        = errors.New("engine: installment plan not found in snapshot")
	ErrArrangementNotFound = errors.New("engine: arrangement not found in snapshot")
)

// Config holds tunable engine parameters. Zero values fall back to the
// product defaults.
type Config struct {
	// LookbackDays is the number of historical days reconstructed in a
	// balance forecast.
	LookbackDays int

	// HorizonDays is the number of future days projected in a balance
	// forecast and in recurrence expansion.
	HorizonDays int

	// OverpaymentThreshold is the minimum worthwhile extra repayment, in
	// minor currency units. Suggestions below it are suppressed.
	OverpaymentThreshold int64
}

func (c Config) withDefaults() Config {
	if c.LookbackDays <= 0 {
		c.LookbackDays = DefaultLookbackDays
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = DefaultHorizonDays
	}
	if c.OverpaymentThreshold <= 0 {
		c.OverpaymentThreshold = DefaultOverpaymentThreshold
	}
	return c
}

// Engine evaluates projections over domain snapshots.
type Engine struct {
	cal Calendar
	cfg Config
}

// New creates an Engine with the default calendar.
func New(cfg Config) *Engine {
	return NewWithCalendar(cfg, NewCalendar())
}

// NewWithCalendar creates an Engine using a custom calendar implementation.
func NewWithCalendar(cfg Config, cal Calendar) *Engine {
	return &Engine{cal: cal, cfg: cfg.withDefaults()}
}

// Config returns the effective engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
