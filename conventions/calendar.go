package conventions

import (
	"time"
)

// =============================================================================
// CALENDAR - Business-day lookup
// =============================================================================

// Calendar decides whether a date counts as a business day. Implementations
// must be pure: the same date always yields the same answer.
type Calendar interface {
	// IsBusinessDay reports whether t (interpreted by its calendar date,
	// clock time ignored) is a business day.
	IsBusinessDay(t time.Time) bool
}

// NoHolidays treats every calendar day as a business day. This is the
// default: contracts that never shift dates use it implicitly.
type NoHolidays struct{}

func (NoHolidays) IsBusinessDay(t time.Time) bool { return true }

// MondayToFriday treats weekends as non-business days and knows no holidays.
type MondayToFriday struct{}

func (MondayToFriday) IsBusinessDay(t time.Time) bool { return !isWeekend(t) }

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// HolidaySet is a Monday-to-Friday calendar with an explicit list of
// holidays layered on top.
type HolidaySet struct {
	dates map[dateKey]struct{}
}

type dateKey struct {
	year  int
	month time.Month
	day   int
}

// NewHolidaySet builds a calendar from the given holiday dates.
func NewHolidaySet(holidays ...time.Time) *HolidaySet {
	hs := &HolidaySet{dates: make(map[dateKey]struct{}, len(holidays))}
	for _, h := range holidays {
		hs.dates[keyOf(h)] = struct{}{}
	}
	return hs
}

func (hs *HolidaySet) IsBusinessDay(t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	_, holiday := hs.dates[keyOf(t)]
	return !holiday
}

func keyOf(t time.Time) dateKey {
	return dateKey{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Compile-time interface checks.
var (
	_ Calendar = NoHolidays{}
	_ Calendar = MondayToFriday{}
	_ Calendar = (*HolidaySet)(nil)
)

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns the number of whole calendar days from from to to,
// negative when to precedes from. Clock times are ignored.
func DaysBetween(from, to time.Time) int {
	return int(toDate(to).Sub(toDate(from)).Hours() / 24)
}

// BusinessDaysBetween counts business days in the half-open interval
// [from, to). Swapped arguments yield the negated count.
func BusinessDaysBetween(cal Calendar, from, to time.Time) int {
	if to.Before(from) {
		return -BusinessDaysBetween(cal, to, from)
	}
	n := 0
	for d := toDate(from); d.Before(toDate(to)); d = d.AddDate(0, 0, 1) {
		if cal.IsBusinessDay(d) {
			n++
		}
	}
	return n
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLastDayOfMonth reports whether t falls on the last day of its month.
func IsLastDayOfMonth(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
