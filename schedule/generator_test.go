package schedule_test

import (
	"testing"
	"time"

	"github.com/warp/contract-engine/conventions"
	"github.com/warp/contract-engine/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDates(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d dates %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Fatalf("date %d: got %s, want %s", i, got[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestStep_MonthEndHandling(t *testing.T) {
	c := schedule.MustCycle("1M")

	// Pinned: a month-end anchor stays on month-ends.
	got := schedule.Step(date(2021, 2, 28), c, 1, conventions.EndOfMonthPinned)
	if !got.Equal(date(2021, 3, 31)) {
		t.Fatalf("pinned: got %s", got.Format("2006-01-02"))
	}

	// Same-day: the anchor's day is kept, capped by month length.
	got = schedule.Step(date(2021, 2, 28), c, 1, conventions.EndOfMonthSameDay)
	if !got.Equal(date(2021, 3, 28)) {
		t.Fatalf("same-day: got %s", got.Format("2006-01-02"))
	}

	// Capping never drifts: the third step from Jan 31 lands on Apr 30,
	// not on whatever February left behind.
	got = schedule.Step(date(2021, 1, 31), c, 3, conventions.EndOfMonthSameDay)
	if !got.Equal(date(2021, 4, 30)) {
		t.Fatalf("no-drift: got %s", got.Format("2006-01-02"))
	}

	// Negative steps walk backwards.
	got = schedule.Step(date(2021, 3, 15), c, -2, conventions.EndOfMonthSameDay)
	if !got.Equal(date(2021, 1, 15)) {
		t.Fatalf("negative: got %s", got.Format("2006-01-02"))
	}

	// Week cycles ignore end-of-month conventions.
	got = schedule.Step(date(2021, 1, 31), schedule.MustCycle("2W"), 1, conventions.EndOfMonthPinned)
	if !got.Equal(date(2021, 2, 14)) {
		t.Fatalf("weeks: got %s", got.Format("2006-01-02"))
	}
}

func TestStep_CrossYear(t *testing.T) {
	got := schedule.Step(date(2021, 11, 15), schedule.MustCycle("1Q"), 1, conventions.EndOfMonthSameDay)
	if !got.Equal(date(2022, 2, 15)) {
		t.Fatalf("got %s", got.Format("2006-01-02"))
	}
	got = schedule.Step(date(2021, 2, 15), schedule.MustCycle("1Q"), -1, conventions.EndOfMonthSameDay)
	if !got.Equal(date(2020, 11, 15)) {
		t.Fatalf("backwards across year: got %s", got.Format("2006-01-02"))
	}
}

func TestGenerate_ShortStubKeepsLastRegularDate(t *testing.T) {
	// GIVEN a monthly anchor and an end date off the grid
	got := schedule.Generate(date(2021, 1, 15), schedule.MustCycle("1M"), date(2021, 12, 1),
		conventions.EndOfMonthSameDay, conventions.BusinessDayNone, nil)

	// THEN all regular points survive and the end date is appended
	want := []time.Time{
		date(2021, 1, 15), date(2021, 2, 15), date(2021, 3, 15), date(2021, 4, 15),
		date(2021, 5, 15), date(2021, 6, 15), date(2021, 7, 15), date(2021, 8, 15),
		date(2021, 9, 15), date(2021, 10, 15), date(2021, 11, 15), date(2021, 12, 1),
	}
	sameDates(t, got, want)
}

func TestGenerate_LongStubDropsLastRegularDate(t *testing.T) {
	// GIVEN the same span with a long-stub cycle
	got := schedule.Generate(date(2021, 1, 15), schedule.MustCycle("1M+"), date(2021, 12, 1),
		conventions.EndOfMonthSameDay, conventions.BusinessDayNone, nil)

	// THEN the date before the end is dropped so the final period is long
	last, secondToLast := got[len(got)-1], got[len(got)-2]
	if !last.Equal(date(2021, 12, 1)) {
		t.Fatalf("end date missing: %s", last.Format("2006-01-02"))
	}
	if !secondToLast.Equal(date(2021, 10, 15)) {
		t.Fatalf("long stub should drop Nov 15, second-to-last is %s", secondToLast.Format("2006-01-02"))
	}
	if len(got) != 11 {
		t.Fatalf("got %d dates, want 11", len(got))
	}
}

func TestGenerate_EndOnGridIgnoresStubFlag(t *testing.T) {
	// When the end date lies exactly on the grid there is no stub to fix.
	short := schedule.Generate(date(2021, 1, 1), schedule.MustCycle("1M"), date(2021, 12, 1),
		conventions.EndOfMonthSameDay, conventions.BusinessDayNone, nil)
	long := schedule.Generate(date(2021, 1, 1), schedule.MustCycle("1M+"), date(2021, 12, 1),
		conventions.EndOfMonthSameDay, conventions.BusinessDayNone, nil)

	sameDates(t, long, short)
	if len(short) != 12 {
		t.Fatalf("got %d dates, want 12", len(short))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := func() []time.Time {
		return schedule.Generate(date(2021, 1, 31), schedule.MustCycle("1M"), date(2022, 1, 31),
			conventions.EndOfMonthPinned, conventions.BusinessDayModifiedFollowing, conventions.MondayToFriday{})
	}
	sameDates(t, gen(), gen())
}

func TestGenerate_BusinessDayAdjustmentIsPostProcessing(t *testing.T) {
	// Month-end grid over 2021 with modified-following against a
	// Monday-to-Friday calendar.
	got := schedule.Generate(date(2021, 1, 31), schedule.MustCycle("1M"), date(2021, 4, 30),
		conventions.EndOfMonthPinned, conventions.BusinessDayModifiedFollowing, conventions.MondayToFriday{})

	// Jan 31 (Sun) -> Jan 29, Feb 28 (Sun) -> Feb 26, Mar 31 (Wed) stays,
	// Apr 30 (Fri) stays. The shifted January date must not re-anchor the
	// February step: February still derives from the original grid.
	want := []time.Time{date(2021, 1, 29), date(2021, 2, 26), date(2021, 3, 31), date(2021, 4, 30)}
	sameDates(t, got, want)
}

func TestGenerate_AdjustmentCollapsesDuplicates(t *testing.T) {
	// Saturday and Sunday both shift to Monday under FOLLOWING.
	got := schedule.Generate(date(2021, 7, 2), schedule.MustCycle("1D"), date(2021, 7, 5),
		conventions.EndOfMonthSameDay, conventions.BusinessDayFollowing, conventions.MondayToFriday{})

	want := []time.Time{date(2021, 7, 2), date(2021, 7, 5)}
	sameDates(t, got, want)
}

func TestGenerate_DegenerateBounds(t *testing.T) {
	c := schedule.MustCycle("1M")

	if got := schedule.Generate(date(2021, 5, 1), c, date(2021, 1, 1),
		conventions.EndOfMonthSameDay, conventions.BusinessDayNone, nil); got != nil {
		t.Fatalf("end before anchor should yield nothing, got %v", got)
	}

	got := schedule.Generate(date(2021, 5, 1), c, date(2021, 5, 1),
		conventions.EndOfMonthSameDay, conventions.BusinessDayNone, nil)
	sameDates(t, got, []time.Time{date(2021, 5, 1)})
}

func TestSequence_ExclusiveEnd(t *testing.T) {
	got := schedule.Sequence(date(2021, 1, 1), schedule.MustCycle("1M"), date(2021, 4, 1),
		conventions.EndOfMonthSameDay)
	sameDates(t, got, []time.Time{date(2021, 1, 1), date(2021, 2, 1), date(2021, 3, 1)})

	if got := schedule.Sequence(date(2021, 4, 1), schedule.MustCycle("1M"), date(2021, 4, 1),
		conventions.EndOfMonthSameDay); got != nil {
		t.Fatalf("anchor at end should yield nothing, got %v", got)
	}
}
