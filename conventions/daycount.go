/*
Package conventions provides the market conventions every interest
computation in the engine is built on: day-count year fractions,
business-day date adjustment, end-of-month handling, and calendars.

PURPOSE:
  Interest accrual is always "rate times balance times year fraction".
  The year fraction between two dates depends on a market convention,
  and scheduled dates may need shifting onto business days. This package
  isolates both concerns so the contract state machines never touch raw
  date arithmetic.

KEY CONCEPTS IN THIS FILE (daycount.go):
  - DayCount: enum of supported conventions (AA, A360, A365, 30E360,
    30E360ISDA, B252)
  - DayCounter: a configured calculator; carries the maturity date
    (needed by 30E360ISDA's end-of-February rule) and a calendar
    (needed by B252)

DESIGN PRINCIPLES:
  1. Purity: YearFraction has no side effects and no hidden state
  2. Antisymmetry: YearFraction(a, b) == -YearFraction(b, a), exactly,
     for every convention; equal dates yield zero
  3. Precision: results are decimal.Decimal, never float64

USAGE:
  dc := conventions.DayCounter{Convention: conventions.DayCountActual360}
  yf := dc.YearFraction(start, end) // decimal fraction of a year

SEE ALSO:
  - businessday.go: BusinessDayConvention and EndOfMonth
  - calendar.go: Calendar implementations and date utilities
*/
package conventions

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY-COUNT CONVENTIONS
// =============================================================================

// DayCount identifies a day-count convention.
type DayCount string

const (
	// DayCountActualActual is actual/actual (ISDA): actual days over the
	// actual year length, split at year boundaries.
	DayCountActualActual DayCount = "AA"

	// DayCountActual360 is actual/360.
	DayCountActual360 DayCount = "A360"

	// DayCountActual365 is actual/365 (fixed).
	DayCountActual365 DayCount = "A365"

	// DayCountThirtyE360 is 30E/360: both dates capped at day 30.
	DayCountThirtyE360 DayCount = "30E360"

	// DayCountThirtyE360ISDA is 30E/360 (ISDA): month-ends count as day 30,
	// except an end date in February that is the contract's maturity.
	DayCountThirtyE360ISDA DayCount = "30E360ISDA"

	// DayCountBusiness252 is business days / 252, counted on a calendar.
	DayCountBusiness252 DayCount = "B252"
)

// Valid reports whether d is one of the recognized conventions.
func (d DayCount) Valid() bool {
	switch d {
	case DayCountActualActual, DayCountActual360, DayCountActual365,
		DayCountThirtyE360, DayCountThirtyE360ISDA, DayCountBusiness252:
		return true
	}
	return false
}

var (
	d360 = decimal.NewFromInt(360)
	d365 = decimal.NewFromInt(365)
	d252 = decimal.NewFromInt(252)
)

// DayCounter computes year fractions under one convention. MaturityDate is
// consulted only by 30E360ISDA; Calendar only by B252 (nil means a
// Monday-to-Friday count).
type DayCounter struct {
	Convention   DayCount
	MaturityDate time.Time
	Calendar     Calendar
}

// YearFraction returns the fraction of a year between start and end under
// the counter's convention. Swapped arguments negate the result; equal
// dates return zero.
func (dc DayCounter) YearFraction(start, end time.Time) decimal.Decimal {
	s, e := toDate(start), toDate(end)
	if s.Equal(e) {
		return decimal.Zero
	}
	if e.Before(s) {
		return dc.YearFraction(e, s).Neg()
	}

	switch dc.Convention {
	case DayCountActual360:
		return decimal.NewFromInt(int64(DaysBetween(s, e))).Div(d360)
	case DayCountActual365:
		return decimal.NewFromInt(int64(DaysBetween(s, e))).Div(d365)
	case DayCountThirtyE360:
		return thirtyE360(s, e, false, time.Time{})
	case DayCountThirtyE360ISDA:
		return thirtyE360(s, e, true, dc.MaturityDate)
	case DayCountBusiness252:
		cal := dc.Calendar
		if cal == nil {
			cal = MondayToFriday{}
		}
		return decimal.NewFromInt(int64(BusinessDaysBetween(cal, s, e))).Div(d252)
	default:
		return actualActual(s, e)
	}
}

// actualActual splits the interval at calendar-year boundaries and divides
// each piece by its own year's length.
func actualActual(start, end time.Time) decimal.Decimal {
	if start.Year() == end.Year() {
		days := decimal.NewFromInt(int64(DaysBetween(start, end)))
		return days.Div(decimal.NewFromInt(int64(daysInYear(start.Year()))))
	}

	startYearEnd := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	endYearStart := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	first := decimal.NewFromInt(int64(DaysBetween(start, startYearEnd))).
		Div(decimal.NewFromInt(int64(daysInYear(start.Year()))))
	last := decimal.NewFromInt(int64(DaysBetween(endYearStart, end))).
		Div(decimal.NewFromInt(int64(daysInYear(end.Year()))))
	whole := decimal.NewFromInt(int64(end.Year() - start.Year() - 1))

	return first.Add(whole).Add(last)
}

// thirtyE360 implements both 30E/360 flavors. Under the ISDA flavor,
// month-end dates count as day 30, except an end date that is both the
// contract's maturity and in February, which keeps its actual day.
func thirtyE360(start, end time.Time, isda bool, maturity time.Time) decimal.Decimal {
	d1, d2 := start.Day(), end.Day()

	if isda {
		if IsLastDayOfMonth(start) {
			d1 = 30
		}
		if IsLastDayOfMonth(end) && !(end.Month() == time.February && sameDate(end, maturity)) {
			d2 = 30
		}
	} else {
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 {
			d2 = 30
		}
	}

	days := 360*(end.Year()-start.Year()) + 30*(int(end.Month())-int(start.Month())) + (d2 - d1)
	return decimal.NewFromInt(int64(days)).Div(d360)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
