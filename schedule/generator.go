package schedule

import (
	"sort"
	"time"

	"github.com/warp/contract-engine/conventions"
)

// =============================================================================
// DATE GENERATION
// =============================================================================

// Step returns the anchor advanced by n whole cycles. n may be negative.
// Month-based cycles are computed from the anchor's own day-of-month, so
// repeated stepping never drifts; the end-of-month convention decides how
// month-end anchors roll.
func Step(anchor time.Time, c Cycle, n int, eom conventions.EndOfMonth) time.Time {
	if n == 0 {
		return anchor
	}
	switch c.Unit {
	case UnitDay:
		return anchor.AddDate(0, 0, n*c.Count)
	case UnitWeek:
		return anchor.AddDate(0, 0, 7*n*c.Count)
	default:
		months, _ := c.Months()
		return addMonths(anchor, n*months, eom)
	}
}

// Sequence returns the raw grid anchor + i*cycle for i = 0, 1, ... with
// every date strictly before end. The anchor itself is the first element;
// the result is empty when the anchor is not before end.
func Sequence(anchor time.Time, c Cycle, end time.Time, eom conventions.EndOfMonth) []time.Time {
	var grid []time.Time
	for i := 0; ; i++ {
		next := Step(anchor, c, i, eom)
		if !next.Before(end) {
			return grid
		}
		grid = append(grid, next)
	}
}

// Generate expands the cycle anchored at anchor into an ordered, distinct
// date list bounded by end. The end date is always included. When the
// cycle carries a long stub and end is off the grid, the last regular grid
// point is dropped so the final period is long rather than short.
// Business-day adjustment is applied as a final pass over the whole list.
func Generate(anchor time.Time, c Cycle, end time.Time,
	eom conventions.EndOfMonth, bdc conventions.BusinessDayConvention, cal conventions.Calendar) []time.Time {

	if end.Before(anchor) {
		return nil
	}
	if end.Equal(anchor) {
		return adjustAll([]time.Time{end}, bdc, cal)
	}

	grid := Sequence(anchor, c, end, eom)
	onGrid := Step(anchor, c, len(grid), eom).Equal(end)

	if c.LongStub && !onGrid && len(grid) > 1 {
		grid = grid[:len(grid)-1]
	}
	grid = append(grid, end)

	return adjustAll(grid, bdc, cal)
}

// adjustAll shifts every date per the business-day convention, then
// restores order and drops duplicates (two grid dates can land on the
// same business day).
func adjustAll(dates []time.Time, bdc conventions.BusinessDayConvention, cal conventions.Calendar) []time.Time {
	if bdc == conventions.BusinessDayNone || bdc == "" {
		return dates
	}
	adjusted := make([]time.Time, len(dates))
	for i, d := range dates {
		adjusted[i] = bdc.Adjust(d, cal)
	}
	sort.Slice(adjusted, func(i, j int) bool { return adjusted[i].Before(adjusted[j]) })

	distinct := adjusted[:0]
	for i, d := range adjusted {
		if i == 0 || !d.Equal(distinct[len(distinct)-1]) {
			distinct = append(distinct, d)
		}
	}
	return distinct
}

// addMonths adds n months to t. The day-of-month is capped by the target
// month's length; under the pinned end-of-month convention a month-end
// input stays a month-end.
func addMonths(t time.Time, n int, eom conventions.EndOfMonth) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(mod(total, 12) + 1)

	day := t.Day()
	last := conventions.DaysInMonth(year, month)
	if eom == conventions.EndOfMonthPinned && conventions.IsLastDayOfMonth(t) {
		day = last
	} else if day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
