package riskfactor

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TIME SERIES - Sorted observations with interpolation
// =============================================================================

// Interpolation decides how values between two observations are derived.
type Interpolation string

const (
	// InterpolationLinear interpolates linearly in time between the two
	// surrounding observations.
	InterpolationLinear Interpolation = "linear"

	// InterpolationStep holds the most recent observation (left-constant).
	InterpolationStep Interpolation = "step"
)

// Extrapolation decides what happens outside the observed range.
type Extrapolation string

const (
	// ExtrapolationFlat clamps to the nearest endpoint value.
	ExtrapolationFlat Extrapolation = "flat"

	// ExtrapolationNone fails with ErrObservationNotFound outside the range.
	ExtrapolationNone Extrapolation = "none"
)

// Series is an in-memory time series keyed by a single identifier.
// Observations are kept sorted by time; Add is safe to interleave with
// concurrent Observe calls.
type Series struct {
	mu            sync.RWMutex
	id            string
	points        []point
	interpolation Interpolation
	extrapolation Extrapolation
}

type point struct {
	at    time.Time
	value decimal.Decimal
}

// NewSeries creates a series with linear interpolation and flat
// extrapolation, the usual curve behavior.
func NewSeries(id string) *Series {
	return NewSeriesWith(id, InterpolationLinear, ExtrapolationFlat)
}

// NewSeriesWith creates a series with explicit policies.
func NewSeriesWith(id string, interp Interpolation, extrap Extrapolation) *Series {
	return &Series{id: id, interpolation: interp, extrapolation: extrap}
}

// ID returns the identifier the series answers for.
func (s *Series) ID() string { return s.id }

// Add inserts one observation, keeping the series sorted. A second value
// at the same time replaces the first.
func (s *Series) Add(at time.Time, value decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Binary search for the insertion point.
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].at.Before(at)
	})

	if i < len(s.points) && s.points[i].at.Equal(at) {
		s.points[i].value = value
		return
	}

	s.points = append(s.points, point{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = point{at: at, value: value}
}

// Observe implements Observer. A foreign identifier is a not-found, so
// series compose directly into fallback chains.
func (s *Series) Observe(id string, at time.Time) (decimal.Decimal, error) {
	if id != s.id {
		return decimal.Zero, &NotFoundError{ID: id, At: at}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.points) == 0 {
		return decimal.Zero, &NotFoundError{ID: id, At: at}
	}

	// First point at or after the requested time.
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].at.Before(at)
	})

	switch {
	case i < len(s.points) && s.points[i].at.Equal(at):
		return s.points[i].value, nil
	case i == 0:
		// Before the first observation.
		if s.extrapolation == ExtrapolationFlat {
			return s.points[0].value, nil
		}
		return decimal.Zero, &NotFoundError{ID: id, At: at}
	case i == len(s.points):
		// After the last observation.
		if s.extrapolation == ExtrapolationFlat {
			return s.points[len(s.points)-1].value, nil
		}
		return decimal.Zero, &NotFoundError{ID: id, At: at}
	}

	left, right := s.points[i-1], s.points[i]
	if s.interpolation == InterpolationStep {
		return left.value, nil
	}

	// Linear in time between the surrounding observations.
	span := decimal.NewFromInt(right.at.Unix() - left.at.Unix())
	elapsed := decimal.NewFromInt(at.Unix() - left.at.Unix())
	slope := right.value.Sub(left.value).Div(span)
	return left.value.Add(slope.Mul(elapsed)), nil
}

var _ Observer = (*Series)(nil)
