package riskfactor

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COMPOSITE - Fallback chain over several observers
// =============================================================================

// Composite tries each observer in order and returns the first hit. Only
// not-found answers fall through; any other failure surfaces immediately.
// The chain itself reports not-found when every delegate misses.
type Composite struct {
	observers []Observer
}

// NewComposite builds a fallback chain. Order is priority order.
func NewComposite(observers ...Observer) *Composite {
	return &Composite{observers: observers}
}

func (c *Composite) Observe(id string, at time.Time) (decimal.Decimal, error) {
	for _, o := range c.observers {
		value, err := o.Observe(id, at)
		if err == nil {
			return value, nil
		}
		if !IsNotFound(err) {
			return decimal.Zero, err
		}
	}
	return decimal.Zero, &NotFoundError{ID: id, At: at}
}

var _ Observer = (*Composite)(nil)

// Constant answers every identifier with one fixed value. Useful as the
// terminal fallback of a chain and in tests.
type Constant struct {
	Value decimal.Decimal
}

func (c Constant) Observe(string, time.Time) (decimal.Decimal, error) {
	return c.Value, nil
}

var _ Observer = Constant{}
