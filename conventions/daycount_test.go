package conventions_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/conventions"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ratio(num, den int64) decimal.Decimal {
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
}

func approxEqual(t *testing.T, got, want decimal.Decimal, tolerance string) {
	t.Helper()
	tol := decimal.RequireFromString(tolerance)
	if got.Sub(want).Abs().GreaterThan(tol) {
		t.Fatalf("got %s, want %s (tolerance %s)", got, want, tolerance)
	}
}

func TestYearFraction_KnownValues(t *testing.T) {
	tests := []struct {
		name       string
		convention conventions.DayCount
		start, end time.Time
		want       decimal.Decimal
	}{
		// 2020-01-01 to 2020-07-01 is 182 actual days in a leap year
		{"A360 half year", conventions.DayCountActual360, date(2020, 1, 1), date(2020, 7, 1), ratio(182, 360)},
		{"A365 half year", conventions.DayCountActual365, date(2020, 1, 1), date(2020, 7, 1), ratio(182, 365)},
		{"AA leap year", conventions.DayCountActualActual, date(2020, 1, 1), date(2020, 7, 1), ratio(182, 366)},
		{"30E360 half year", conventions.DayCountThirtyE360, date(2020, 1, 1), date(2020, 7, 1), ratio(180, 360)},
		{"30E360 full year", conventions.DayCountThirtyE360, date(2020, 3, 15), date(2021, 3, 15), ratio(360, 360)},
		{"30E360 day 31 capped", conventions.DayCountThirtyE360, date(2021, 1, 31), date(2021, 2, 28), ratio(28, 360)},
		{"A360 one month", conventions.DayCountActual360, date(2021, 3, 1), date(2021, 4, 1), ratio(31, 360)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := conventions.DayCounter{Convention: tt.convention}
			got := dc.YearFraction(tt.start, tt.end)
			if !got.Equal(tt.want) {
				t.Fatalf("YearFraction(%s, %s) = %s, want %s",
					tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestYearFraction_ActualActualCrossYear(t *testing.T) {
	// 184 days remain in leap 2020 from Jul 1; 181 days into 2021 to Jul 1.
	dc := conventions.DayCounter{Convention: conventions.DayCountActualActual}
	got := dc.YearFraction(date(2020, 7, 1), date(2021, 7, 1))
	want := ratio(184, 366).Add(ratio(181, 365))
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
	approxEqual(t, got, decimal.RequireFromString("0.9986"), "0.0001")
}

func TestYearFraction_ActualActualMultiYear(t *testing.T) {
	dc := conventions.DayCounter{Convention: conventions.DayCountActualActual}
	got := dc.YearFraction(date(2019, 7, 1), date(2022, 7, 1))
	// 184/365 + two whole years + 181/365
	want := ratio(184, 365).Add(decimal.NewFromInt(2)).Add(ratio(181, 365))
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestYearFraction_ThirtyE360ISDAFebruary(t *testing.T) {
	maturity := date(2022, 2, 28)

	// GIVEN an end date on the last day of February that is not maturity
	// THEN the ISDA flavor counts it as day 30
	isda := conventions.DayCounter{Convention: conventions.DayCountThirtyE360ISDA, MaturityDate: maturity}
	got := isda.YearFraction(date(2021, 1, 31), date(2021, 2, 28))
	if want := ratio(30, 360); !got.Equal(want) {
		t.Fatalf("non-maturity February end: got %s, want %s", got, want)
	}

	// GIVEN the end date IS the maturity in February
	// THEN its actual day is kept, matching plain 30E/360
	got = isda.YearFraction(date(2022, 1, 31), date(2022, 2, 28))
	if want := ratio(28, 360); !got.Equal(want) {
		t.Fatalf("maturity February end: got %s, want %s", got, want)
	}

	plain := conventions.DayCounter{Convention: conventions.DayCountThirtyE360}
	if !plain.YearFraction(date(2022, 1, 31), date(2022, 2, 28)).Equal(ratio(28, 360)) {
		t.Fatal("plain 30E/360 should keep Feb 28 as day 28")
	}
}

func TestYearFraction_Business252(t *testing.T) {
	dc := conventions.DayCounter{Convention: conventions.DayCountBusiness252, Calendar: conventions.MondayToFriday{}}

	// Monday 2021-01-04 through the following Monday spans 5 business days.
	got := dc.YearFraction(date(2021, 1, 4), date(2021, 1, 11))
	if want := ratio(5, 252); !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}

	// A holiday inside the interval drops one business day.
	hs := conventions.NewHolidaySet(date(2021, 1, 6))
	dc.Calendar = hs
	got = dc.YearFraction(date(2021, 1, 4), date(2021, 1, 11))
	if want := ratio(4, 252); !got.Equal(want) {
		t.Fatalf("with holiday: got %s, want %s", got, want)
	}
}

func TestYearFraction_Antisymmetry(t *testing.T) {
	all := []conventions.DayCount{
		conventions.DayCountActualActual,
		conventions.DayCountActual360,
		conventions.DayCountActual365,
		conventions.DayCountThirtyE360,
		conventions.DayCountThirtyE360ISDA,
		conventions.DayCountBusiness252,
	}
	a, b := date(2020, 2, 29), date(2023, 11, 17)

	for _, conv := range all {
		dc := conventions.DayCounter{Convention: conv, MaturityDate: b}
		forward := dc.YearFraction(a, b)
		backward := dc.YearFraction(b, a)
		if !forward.Add(backward).IsZero() {
			t.Errorf("%s: yf(a,b)=%s and yf(b,a)=%s do not cancel", conv, forward, backward)
		}
		if !dc.YearFraction(a, a).IsZero() {
			t.Errorf("%s: equal dates should give zero", conv)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	if got := conventions.DaysBetween(date(2021, 1, 1), date(2021, 2, 1)); got != 31 {
		t.Fatalf("got %d, want 31", got)
	}
	if got := conventions.DaysBetween(date(2021, 2, 1), date(2021, 1, 1)); got != -31 {
		t.Fatalf("got %d, want -31", got)
	}
	// Clock times are ignored.
	withClock := time.Date(2021, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := conventions.DaysBetween(withClock, date(2021, 1, 2)); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := conventions.DaysInMonth(2020, time.February); got != 29 {
		t.Fatalf("leap February: got %d", got)
	}
	if got := conventions.DaysInMonth(2021, time.February); got != 28 {
		t.Fatalf("February: got %d", got)
	}
	if !conventions.IsLastDayOfMonth(date(2020, 2, 29)) {
		t.Fatal("2020-02-29 is a month end")
	}
	if conventions.IsLastDayOfMonth(date(2020, 2, 28)) {
		t.Fatal("2020-02-28 is not a month end in a leap year")
	}
}
