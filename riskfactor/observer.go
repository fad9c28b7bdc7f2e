/*
Package riskfactor provides the market-observation capability contracts
consume during simulation.

PURPOSE:
  Rate resets and scaling events need a market value (a reference rate, an
  index level) for a given identifier at a given time. The engine treats
  this as a synchronous pure lookup: a value is either found or not, and a
  not-found answer is final for that (identifier, time) pair. There is no
  retrying, caching or I/O here.

KEY CONCEPTS:
  - Observer: the lookup interface the engine depends on
  - Series: a sorted in-memory time series with interpolation and
    extrapolation policies (the reference implementation)
  - Composite: a fallback chain over several observers

DESIGN PRINCIPLES:
  1. Found-or-not-found: ErrObservationNotFound is the only expected
     failure; callers compose fallback chains instead of retrying
  2. Purity: observing never mutates a series
  3. Precision: values are decimal.Decimal

USAGE:
  libor := riskfactor.NewSeries("LIBOR-3M")
  libor.Add(t1, decimal.RequireFromString("0.025"))
  libor.Add(t2, decimal.RequireFromString("0.031"))

  value, err := libor.Observe("LIBOR-3M", t)
  if riskfactor.IsNotFound(err) { ... }

SEE ALSO:
  - series.go: the time-series implementation
  - composite.go: the fallback chain
*/
package riskfactor

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OBSERVER - Market lookup capability
// =============================================================================

// Observer resolves a market identifier to a value at a point in time.
// Implementations must be safe for concurrent observation: independent
// contracts simulate in parallel against shared market data.
type Observer interface {
	// Observe returns the value of the identified factor at time at.
	// A missing value fails with an error unwrapping to
	// ErrObservationNotFound; any other error is an implementation fault.
	Observe(id string, at time.Time) (decimal.Decimal, error)
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrObservationNotFound is the sentinel for missing market data. The
// engine never swallows it: a reset that cannot observe its rate aborts
// the whole simulation.
var ErrObservationNotFound = errors.New("observation not found")

// NotFoundError reports which lookup failed.
type NotFoundError struct {
	ID string
	At time.Time
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no observation for %q at %s", e.ID, e.At.Format(time.RFC3339))
}

func (e *NotFoundError) Unwrap() error {
	return ErrObservationNotFound
}

// IsNotFound reports whether err indicates missing market data.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObservationNotFound)
}
