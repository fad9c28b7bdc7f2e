package conventions

import (
	"time"
)

// =============================================================================
// BUSINESS-DAY CONVENTIONS - Date shifting as pure post-processing
// =============================================================================

// BusinessDayConvention names a rule for moving a scheduled date that falls
// on a non-business day. Adjustment never feeds back into cycle arithmetic:
// schedules are generated on the unadjusted grid first and shifted after.
type BusinessDayConvention string

const (
	// BusinessDayNone leaves dates untouched.
	BusinessDayNone BusinessDayConvention = "NONE"

	// BusinessDayFollowing shifts forward to the next business day.
	BusinessDayFollowing BusinessDayConvention = "FOLLOWING"

	// BusinessDayModifiedFollowing shifts forward, unless that crosses into
	// the next month, in which case it shifts backward instead.
	BusinessDayModifiedFollowing BusinessDayConvention = "MODIFIEDFOLLOWING"

	// BusinessDayPreceding shifts backward to the previous business day.
	BusinessDayPreceding BusinessDayConvention = "PRECEDING"

	// BusinessDayModifiedPreceding shifts backward, unless that crosses into
	// the previous month, in which case it shifts forward instead.
	BusinessDayModifiedPreceding BusinessDayConvention = "MODIFIEDPRECEDING"
)

// Valid reports whether c is one of the recognized conventions.
func (c BusinessDayConvention) Valid() bool {
	switch c {
	case BusinessDayNone, BusinessDayFollowing, BusinessDayModifiedFollowing,
		BusinessDayPreceding, BusinessDayModifiedPreceding:
		return true
	}
	return false
}

// Adjust returns the date t shifted per the convention against cal. The
// clock time of t is preserved. A nil calendar behaves as NoHolidays.
func (c BusinessDayConvention) Adjust(t time.Time, cal Calendar) time.Time {
	if cal == nil {
		cal = NoHolidays{}
	}
	switch c {
	case BusinessDayFollowing:
		return nextBusinessDay(t, cal)
	case BusinessDayModifiedFollowing:
		shifted := nextBusinessDay(t, cal)
		if shifted.Month() != t.Month() {
			return previousBusinessDay(t, cal)
		}
		return shifted
	case BusinessDayPreceding:
		return previousBusinessDay(t, cal)
	case BusinessDayModifiedPreceding:
		shifted := previousBusinessDay(t, cal)
		if shifted.Month() != t.Month() {
			return nextBusinessDay(t, cal)
		}
		return shifted
	default:
		return t
	}
}

func nextBusinessDay(t time.Time, cal Calendar) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func previousBusinessDay(t time.Time, cal Calendar) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// =============================================================================
// END-OF-MONTH CONVENTION
// =============================================================================

// EndOfMonth controls how month-based cycle arithmetic treats anchors that
// fall on the last day of a month.
type EndOfMonth string

const (
	// EndOfMonthSameDay keeps the anchor's day-of-month, capped by the
	// length of the target month (Jan 31 + 1M = Feb 28/29).
	EndOfMonthSameDay EndOfMonth = "SD"

	// EndOfMonthPinned pins subsequent dates to month-ends whenever the
	// anchor is itself a month-end (Feb 28 + 1M = Mar 31).
	EndOfMonthPinned EndOfMonth = "EOM"
)

// Valid reports whether e is one of the recognized conventions.
func (e EndOfMonth) Valid() bool {
	return e == EndOfMonthSameDay || e == EndOfMonthPinned
}
