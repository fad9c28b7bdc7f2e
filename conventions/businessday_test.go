package conventions_test

import (
	"testing"
	"time"

	"github.com/warp/contract-engine/conventions"
)

func TestAdjust_WeekendShifts(t *testing.T) {
	cal := conventions.MondayToFriday{}
	saturday := date(2021, 7, 31) // month-end Saturday

	tests := []struct {
		name       string
		convention conventions.BusinessDayConvention
		in, want   time.Time
	}{
		{"none keeps the date", conventions.BusinessDayNone, saturday, saturday},
		{"following crosses the month", conventions.BusinessDayFollowing, saturday, date(2021, 8, 2)},
		{"modified following stays in July", conventions.BusinessDayModifiedFollowing, saturday, date(2021, 7, 30)},
		{"preceding moves back", conventions.BusinessDayPreceding, date(2021, 8, 1), date(2021, 7, 30)},
		{"modified preceding stays in August", conventions.BusinessDayModifiedPreceding, date(2021, 8, 1), date(2021, 8, 2)},
		{"business day untouched", conventions.BusinessDayFollowing, date(2021, 7, 30), date(2021, 7, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.convention.Adjust(tt.in, cal)
			if !got.Equal(tt.want) {
				t.Fatalf("Adjust(%s) = %s, want %s",
					tt.in.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestAdjust_SkipsHolidays(t *testing.T) {
	// Monday 2021-01-04 is a holiday, so following from the weekend lands Tuesday.
	cal := conventions.NewHolidaySet(date(2021, 1, 4))

	got := conventions.BusinessDayFollowing.Adjust(date(2021, 1, 2), cal)
	if want := date(2021, 1, 5); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdjust_PreservesClockTime(t *testing.T) {
	cal := conventions.MondayToFriday{}
	in := time.Date(2021, 7, 31, 10, 30, 0, 0, time.UTC)

	got := conventions.BusinessDayFollowing.Adjust(in, cal)
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Fatalf("clock time lost: got %s", got)
	}
}

func TestAdjust_NilCalendarIsNoHolidays(t *testing.T) {
	saturday := date(2021, 7, 31)
	if got := conventions.BusinessDayFollowing.Adjust(saturday, nil); !got.Equal(saturday) {
		t.Fatalf("nil calendar should treat every day as business day, got %s", got)
	}
}

func TestBusinessDaysBetween_Antisymmetry(t *testing.T) {
	cal := conventions.MondayToFriday{}
	a, b := date(2021, 1, 4), date(2021, 1, 15)

	forward := conventions.BusinessDaysBetween(cal, a, b)
	backward := conventions.BusinessDaysBetween(cal, b, a)
	if forward != 9 {
		t.Fatalf("forward count = %d, want 9", forward)
	}
	if forward+backward != 0 {
		t.Fatalf("counts do not cancel: %d vs %d", forward, backward)
	}
}

func TestConventionValidation(t *testing.T) {
	if !conventions.BusinessDayModifiedFollowing.Valid() {
		t.Fatal("MODIFIEDFOLLOWING should be valid")
	}
	if conventions.BusinessDayConvention("SOMETHING").Valid() {
		t.Fatal("unknown convention should be invalid")
	}
	if !conventions.EndOfMonthPinned.Valid() || !conventions.EndOfMonthSameDay.Valid() {
		t.Fatal("EOM conventions should be valid")
	}
	if !conventions.DayCountBusiness252.Valid() {
		t.Fatal("B252 should be valid")
	}
	if conventions.DayCount("ACT/ACT").Valid() {
		t.Fatal("unmapped day count code should be invalid")
	}
}
