package contracts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/contract-engine/contracts"
	"github.com/warp/contract-engine/conventions"
)

func scheduleOf(t *testing.T, attrs *contracts.ContractAttributes) *contracts.EventSchedule {
	t.Helper()
	variant, err := contracts.LookupContract(attrs.ContractType)
	require.NoError(t, err)
	sched, err := variant.Schedule(attrs)
	require.NoError(t, err)
	return sched
}

func timesOf(sched *contracts.EventSchedule, et contracts.EventType) []time.Time {
	var out []time.Time
	for _, e := range sched.Events {
		if e.Type == et {
			out = append(out, e.Time)
		}
	}
	return out
}

func annuityWindowAttrs() *contracts.ContractAttributes {
	return &contracts.ContractAttributes{
		ContractID:          "ann-window",
		ContractType:        contracts.TypeAnnuity,
		Role:                contracts.RoleAsset,
		StatusDate:          date(2021, time.January, 1),
		InitialExchangeDate: date(2021, time.January, 2),
		MaturityDate:        date(2022, time.July, 2),
		Notional:            dec("50000"),
		NominalRate:         dec("0.04"),
		DayCount:            conventions.DayCountThirtyE360,
		InterestPayment:     sub(date(2021, time.February, 2), "1M"),
		PrincipalRedemption: sub(date(2021, time.July, 2), "1M"),
	}
}

func TestSchedule_Annuity_InterestOnlyWindow(t *testing.T) {
	// Interest is paid on its own only until the redemption schedule
	// starts; from the first redemption on it rides inside the constant
	// payment.
	sched := scheduleOf(t, annuityWindowAttrs())

	ips := timesOf(sched, contracts.EventIP)
	require.Len(t, ips, 5)
	firstPR := date(2021, time.July, 2)
	for _, at := range ips {
		assert.True(t, at.Before(firstPR), "interest at %v should precede the first redemption", at)
	}

	assert.Len(t, timesOf(sched, contracts.EventPR), 13)

	fixings := timesOf(sched, contracts.EventPRF)
	require.Len(t, fixings, 1)
	assert.True(t, fixings[0].Equal(firstPR))
}

func TestSchedule_Annuity_RefixFollowsEveryReset(t *testing.T) {
	// Every rate reset invalidates the solved payment, so each reset date
	// carries a re-fix, ordered after the reset itself.
	attrs := annuityWindowAttrs()
	attrs.RateReset = &contracts.RateResetTerms{
		Schedule:     *sub(date(2021, time.October, 2), "3M"),
		MarketObject: "BASE",
	}

	sched := scheduleOf(t, attrs)

	resets := timesOf(sched, contracts.EventRR)
	require.Len(t, resets, 3)

	fixings := timesOf(sched, contracts.EventPRF)
	require.Len(t, fixings, 4, "one opening fix plus one per reset")

	resetAt := date(2021, time.October, 2)
	var posRR, posPRF int
	for i, e := range sched.Events {
		if !e.Time.Equal(resetAt) {
			continue
		}
		switch e.Type {
		case contracts.EventRR:
			posRR = i
		case contracts.EventPRF:
			posPRF = i
		}
	}
	assert.Less(t, posRR, posPRF, "the re-fix must see the fresh rate")
}

func TestSchedule_Negative_InterestStopsACycleEarly(t *testing.T) {
	// The negative amortizer's final period interest settles inside the
	// maturity payoff, so no interest payment lands on maturity itself.
	sched := scheduleOf(t, namAttrs())

	ips := timesOf(sched, contracts.EventIP)
	require.Len(t, ips, 11)
	assert.True(t, ips[len(ips)-1].Equal(date(2021, time.December, 2)))
	for _, at := range ips {
		assert.False(t, at.Equal(date(2022, time.January, 2)), "no interest payment at maturity")
	}
}

func TestSchedule_CapitalizationConvertsEarlyCoupons(t *testing.T) {
	// Coupons up to the capitalization end date compound instead of pay.
	attrs := bulletAttrs()
	attrs.CapitalizationEndDate = date(2021, time.July, 2)

	sched := scheduleOf(t, attrs)

	capitalized := timesOf(sched, contracts.EventIPCI)
	require.Len(t, capitalized, 1)
	assert.True(t, capitalized[0].Equal(date(2021, time.July, 2)))

	paid := timesOf(sched, contracts.EventIP)
	assert.Len(t, paid, 3)
	for _, at := range paid {
		assert.True(t, at.After(attrs.CapitalizationEndDate))
	}
}

func TestSchedule_SideSchedules_EmitTheirEvents(t *testing.T) {
	attrs := bulletAttrs()
	attrs.Fee = &contracts.FeeTerms{
		Schedule: *sub(date(2022, time.January, 2), ""),
		Basis:    contracts.FeeNotional,
		Rate:     dec("0.0025"),
	}
	attrs.Scaling = &contracts.ScalingTerms{
		Schedule:          *sub(date(2021, time.July, 2), ""),
		Effect:            contracts.ScalingBoth,
		MarketObject:      "CPI",
		IndexAtStatusDate: dec("100"),
	}
	attrs.CalculationBase = &contracts.CalculationBaseTerms{
		Mode:     contracts.CalcBaseLagged,
		Amount:   decPtr("90000"),
		Schedule: *sub(date(2021, time.July, 2), "1Y"),
	}
	attrs.AnalysisTimes = []time.Time{date(2021, time.March, 15)}

	sched := scheduleOf(t, attrs)

	assert.Len(t, timesOf(sched, contracts.EventFP), 1)
	assert.Len(t, timesOf(sched, contracts.EventSC), 1)
	assert.Len(t, timesOf(sched, contracts.EventIPCB), 2, "lagged base fixes yearly before maturity")

	analysis := timesOf(sched, contracts.EventAD)
	require.Len(t, analysis, 1)
	assert.True(t, analysis[0].Equal(date(2021, time.March, 15)))
}

func TestSchedule_TerminationTruncatesTail(t *testing.T) {
	attrs := bulletAttrs()
	attrs.TerminationDate = date(2022, time.March, 15)
	attrs.PriceAtTermination = dec("99000")

	sched := scheduleOf(t, attrs)

	assert.Empty(t, timesOf(sched, contracts.EventMD), "maturity never happens after early termination")
	require.Len(t, sched.Events, 4, "initial exchange, two coupons, termination")

	last := sched.Events[len(sched.Events)-1]
	assert.Equal(t, contracts.EventTD, last.Type)
	assert.True(t, last.Time.Equal(date(2022, time.March, 15)))
}

func TestSchedule_PurchaseDropsHistory(t *testing.T) {
	attrs := bulletAttrs()
	attrs.PurchaseDate = date(2021, time.September, 15)
	attrs.PriceAtPurchase = dec("101000")

	sched := scheduleOf(t, attrs)

	assert.Empty(t, timesOf(sched, contracts.EventIED), "the buyer never sees the original disbursement")

	first := sched.Events[0]
	assert.Equal(t, contracts.EventPRD, first.Type)
	assert.True(t, first.Time.Equal(date(2021, time.September, 15)))

	ips := timesOf(sched, contracts.EventIP)
	require.Len(t, ips, 3, "the pre-purchase coupon is history")
	assert.True(t, ips[0].Equal(date(2022, time.January, 2)))
	assert.Len(t, timesOf(sched, contracts.EventMD), 1)
}

func TestSchedule_BusinessDaysShiftWeekends(t *testing.T) {
	attrs := bulletAttrs()
	attrs.BusinessDay = conventions.BusinessDayFollowing
	attrs.Calendar = conventions.MondayToFriday{}

	sched := scheduleOf(t, attrs)

	ied := timesOf(sched, contracts.EventIED)
	require.Len(t, ied, 1)
	assert.True(t, ied[0].Equal(date(2021, time.January, 4)), "Saturday exchange shifts to Monday")

	want := []time.Time{
		date(2021, time.July, 2),    // Friday, untouched
		date(2022, time.January, 3), // Sunday -> Monday
		date(2022, time.July, 4),    // Saturday -> Monday
		date(2023, time.January, 2), // Monday, untouched
	}
	ips := timesOf(sched, contracts.EventIP)
	require.Len(t, ips, len(want))
	for i, at := range ips {
		assert.True(t, at.Equal(want[i]), "coupon %d at %v, want %v", i, at, want[i])
	}
}
