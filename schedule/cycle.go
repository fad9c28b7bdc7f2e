/*
Package schedule expands cycle specifications into ordered date sequences.

PURPOSE:
  Every recurring part of a contract (redemptions, interest payments, rate
  resets, fees, ...) is described by an anchor date plus a cycle such as
  "1M" or "3M+". This package parses the cycle grammar and generates the
  bounded, stub-aware, business-day-adjusted date grids the contract
  schedules are assembled from.

CYCLE GRAMMAR:
  <count><unit>[stub]
    count: positive integer
    unit:  D (days), W (weeks), M (months), Q (quarters), H (half-years),
           Y (years)
    stub:  "+" long final stub, "-" short final stub (default)

  "1M"  every month, short final stub
  "3M+" every quarter, long final stub
  "2W-" every two weeks, short final stub (explicit)

DESIGN PRINCIPLES:
  1. Fail at parse time: a malformed cycle is a configuration problem and
     surfaces before any simulation starts
  2. No drift: the i-th date is computed from the anchor directly, so
     month-length capping never accumulates
  3. Adjustment is post-processing: business-day shifts apply to the
     finished grid and never feed back into cycle arithmetic

SEE ALSO:
  - generator.go: Step, Sequence and Generate
  - conventions: end-of-month and business-day conventions
*/
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CYCLE - Parsed recurrence specification
// =============================================================================

// Unit is the period unit of a cycle.
type Unit string

const (
	UnitDay      Unit = "D"
	UnitWeek     Unit = "W"
	UnitMonth    Unit = "M"
	UnitQuarter  Unit = "Q"
	UnitHalfYear Unit = "H"
	UnitYear     Unit = "Y"
)

// monthsPerUnit maps month-based units to their length in months.
var monthsPerUnit = map[Unit]int{
	UnitMonth:    1,
	UnitQuarter:  3,
	UnitHalfYear: 6,
	UnitYear:     12,
}

// Cycle is one parsed recurrence: count units, with a long or short final
// stub when the bounding end date is off the grid.
type Cycle struct {
	Count    int
	Unit     Unit
	LongStub bool
}

// Months returns the cycle length in months and true for month-based
// units, or 0 and false for day- and week-based cycles.
func (c Cycle) Months() (int, bool) {
	m, ok := monthsPerUnit[c.Unit]
	return m * c.Count, ok
}

// IsMonthBased reports whether end-of-month handling applies to the cycle.
func (c Cycle) IsMonthBased() bool {
	_, ok := c.Months()
	return ok
}

func (c Cycle) String() string {
	s := fmt.Sprintf("%d%s", c.Count, c.Unit)
	if c.LongStub {
		s += "+"
	}
	return s
}

// =============================================================================
// PARSING
// =============================================================================

// ErrInvalidCycle is the sentinel every cycle parse failure unwraps to.
var ErrInvalidCycle = errors.New("invalid cycle")

// CycleError reports an unparseable cycle string.
type CycleError struct {
	Input  string
	Reason string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("invalid cycle %q: %s", e.Input, e.Reason)
}

func (e *CycleError) Unwrap() error {
	return ErrInvalidCycle
}

// ParseCycle parses the <count><unit>[+|-] grammar. The count must be a
// positive integer; the stub marker defaults to short when omitted.
func ParseCycle(s string) (Cycle, error) {
	input := s
	if s == "" {
		return Cycle{}, &CycleError{Input: input, Reason: "empty"}
	}

	longStub := false
	switch {
	case strings.HasSuffix(s, "+"):
		longStub = true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "-"):
		s = s[:len(s)-1]
	}

	if len(s) < 2 {
		return Cycle{}, &CycleError{Input: input, Reason: "want <count><unit>"}
	}

	unit := Unit(s[len(s)-1:])
	switch unit {
	case UnitDay, UnitWeek, UnitMonth, UnitQuarter, UnitHalfYear, UnitYear:
	default:
		return Cycle{}, &CycleError{Input: input, Reason: fmt.Sprintf("unknown unit %q", string(unit))}
	}

	count, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Cycle{}, &CycleError{Input: input, Reason: "count is not an integer"}
	}
	if count < 1 {
		return Cycle{}, &CycleError{Input: input, Reason: "count must be positive"}
	}

	return Cycle{Count: count, Unit: unit, LongStub: longStub}, nil
}

// MustCycle parses s and panics on failure. For fixtures and tests.
func MustCycle(s string) Cycle {
	c, err := ParseCycle(s)
	if err != nil {
		panic(err)
	}
	return c
}
