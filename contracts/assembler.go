package contracts

import (
	"sort"
	"time"

	"github.com/warp/contract-engine/conventions"
	"github.com/warp/contract-engine/schedule"
)

// =============================================================================
// EVENT-SCHEDULE ASSEMBLY
// =============================================================================

// assemble builds the complete, ordered, filtered event schedule for one
// contract. Every variant-specific inclusion rule lives here; payoff and
// transition code never touches the calendar again.
func assemble(attrs *ContractAttributes) (*EventSchedule, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	maturity, err := deriveMaturity(attrs)
	if err != nil {
		return nil, err
	}
	b := &builder{attrs: attrs, maturity: maturity, cal: attrs.calendarOr()}

	b.add(EventIED, b.adjust(attrs.InitialExchangeDate))
	b.add(EventMD, b.adjust(maturity))

	switch attrs.ContractType {
	case TypeBullet:
		b.interestEvents(b.generate(attrs.InterestPayment, maturity))
		b.rateResetEvents()
	case TypeLinearAmortizer, TypeNegativeAmortizer:
		b.addAll(EventPR, redemptionDates(attrs, maturity))
		b.interestEvents(b.generate(attrs.InterestPayment, b.interestBound()))
		b.rateResetEvents()
	case TypeAnnuity:
		prDates := redemptionDates(attrs, maturity)
		b.addAll(EventPR, prDates)
		b.annuityInterestEvents(prDates)
		b.rateResetEvents()
		b.redemptionFixings(prDates)
	case TypeExotic:
		b.segmentPrincipalEvents()
		b.segmentInterestEvents()
		b.segmentRateEvents()
	}

	b.feeEvents()
	b.scalingEvents()
	b.baseFixingEvents()
	for _, at := range attrs.AnalysisTimes {
		b.add(EventAD, at)
	}

	b.applyTermination()
	b.applyPurchase()

	sched := &EventSchedule{ContractID: attrs.ContractID, Events: b.events}
	sched.normalize()
	return sched, nil
}

type builder struct {
	attrs    *ContractAttributes
	maturity time.Time
	cal      conventions.Calendar
	events   []ContractEvent
}

func (b *builder) add(t EventType, at time.Time) {
	b.events = append(b.events, ContractEvent{Type: t, Time: at, Currency: b.attrs.Currency})
}

func (b *builder) addAll(t EventType, dates []time.Time) {
	for _, d := range dates {
		b.add(t, d)
	}
}

func (b *builder) adjust(t time.Time) time.Time {
	return b.attrs.BusinessDay.Adjust(t, b.cal)
}

// adjustAll shifts every date, then restores order and drops duplicates
// the shift may have created.
func (b *builder) adjustAll(dates []time.Time) []time.Time {
	if len(dates) == 0 || b.attrs.BusinessDay == "" || b.attrs.BusinessDay == conventions.BusinessDayNone {
		return dates
	}
	for i := range dates {
		dates[i] = b.adjust(dates[i])
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	distinct := dates[:1]
	for _, d := range dates[1:] {
		if !d.Equal(distinct[len(distinct)-1]) {
			distinct = append(distinct, d)
		}
	}
	return distinct
}

// generate expands a sub-schedule through end, end included, adjusted.
// A nil sub-schedule, or one with neither anchor nor cycle, is absent.
func (b *builder) generate(sub *SubSchedule, end time.Time) []time.Time {
	if sub == nil {
		return nil
	}
	if sub.Anchor.IsZero() && sub.Cycle == nil {
		return nil
	}
	anchor := sub.anchorOr(b.attrs.InitialExchangeDate, b.attrs.EndOfMonth)
	if sub.Cycle == nil {
		if anchor.After(end) {
			return nil
		}
		return []time.Time{b.adjust(anchor)}
	}
	return schedule.Generate(anchor, *sub.Cycle, end, b.attrs.EndOfMonth, b.attrs.BusinessDay, b.cal)
}

// before expands a sub-schedule strictly before end, adjusted.
func (b *builder) before(sub SubSchedule, end time.Time) []time.Time {
	if sub.Anchor.IsZero() && sub.Cycle == nil {
		return nil
	}
	anchor := sub.anchorOr(b.attrs.InitialExchangeDate, b.attrs.EndOfMonth)
	if sub.Cycle == nil {
		if !anchor.Before(end) {
			return nil
		}
		return []time.Time{b.adjust(anchor)}
	}
	return b.adjustAll(schedule.Sequence(anchor, *sub.Cycle, end, b.attrs.EndOfMonth))
}

// interestEvents emits one interest payment per date, converted to a
// capitalization while at or before the capitalization end date.
func (b *builder) interestEvents(dates []time.Time) {
	ced := b.attrs.CapitalizationEndDate
	for _, d := range dates {
		if !ced.IsZero() && !d.After(ced) {
			b.add(EventIPCI, d)
		} else {
			b.add(EventIP, d)
		}
	}
}

// interestBound is where the interest schedule stops: maturity, except
// the negative amortizer stops one redemption cycle earlier so the final
// period's interest settles inside the maturity payoff.
func (b *builder) interestBound() time.Time {
	if b.attrs.ContractType == TypeNegativeAmortizer {
		if sub := b.attrs.PrincipalRedemption; sub != nil && sub.Cycle != nil {
			return schedule.Step(b.maturity, *sub.Cycle, -1, b.attrs.EndOfMonth)
		}
	}
	return b.maturity
}

// annuityInterestEvents: interest is paid separately only until the
// redemption schedule starts; from then on it is a component of the
// constant payment.
func (b *builder) annuityInterestEvents(prDates []time.Time) {
	if b.attrs.InterestPayment == nil || len(prDates) == 0 {
		return
	}
	b.interestEvents(b.before(*b.attrs.InterestPayment, prDates[0]))
}

// redemptionFixings re-solve the annuity payment: once when the
// redemption schedule starts and again after every rate change.
func (b *builder) redemptionFixings(prDates []time.Time) {
	if len(prDates) == 0 {
		return
	}
	b.add(EventPRF, prDates[0])
	for _, d := range b.rateResetDates() {
		b.add(EventPRF, d)
	}
}

func (b *builder) rateResetDates() []time.Time {
	rr := b.attrs.RateReset
	if rr == nil {
		return nil
	}
	return b.before(rr.Schedule, b.maturity)
}

// rateResetEvents: every reset observes the market, except the first one
// after the status date when a pre-agreed next rate is supplied.
func (b *builder) rateResetEvents() {
	rr := b.attrs.RateReset
	if rr == nil {
		return
	}
	dates := b.rateResetDates()
	fixed := -1
	if rr.NextResetRate != nil {
		for i, d := range dates {
			if d.After(b.attrs.StatusDate) {
				fixed = i
				break
			}
		}
	}
	for i, d := range dates {
		if i == fixed {
			b.add(EventRRF, d)
		} else {
			b.add(EventRR, d)
		}
	}
}

func (b *builder) feeEvents() {
	fee := b.attrs.Fee
	if fee == nil {
		return
	}
	b.addAll(EventFP, b.generate(&fee.Schedule, b.maturity))
}

func (b *builder) scalingEvents() {
	sc := b.attrs.Scaling
	if sc == nil || (!sc.Effect.ScalesNotional() && !sc.Effect.ScalesInterest()) {
		return
	}
	b.addAll(EventSC, b.before(sc.Schedule, b.maturity))
}

func (b *builder) baseFixingEvents() {
	if b.attrs.calcBaseMode() != CalcBaseLagged {
		return
	}
	b.addAll(EventIPCB, b.before(b.attrs.CalculationBase.Schedule, b.maturity))
}

// =============================================================================
// EXOTIC SEGMENT UNIONS
// =============================================================================

// segment expands one (anchor, cycle) pair of a segmented schedule.
// Intermediate segments stop strictly before their bound, which is the
// next segment's anchor; the last segment may land on the contract end
// when its grid hits it exactly.
func (b *builder) segment(anchor time.Time, c *schedule.Cycle, last bool, bound time.Time) []time.Time {
	if c == nil {
		if anchor.After(bound) || (!last && anchor.Equal(bound)) {
			return nil
		}
		return []time.Time{b.adjust(anchor)}
	}
	dates := schedule.Sequence(anchor, *c, bound, b.attrs.EndOfMonth)
	if last {
		if next := schedule.Step(anchor, *c, len(dates), b.attrs.EndOfMonth); next.Equal(bound) {
			dates = append(dates, bound)
		}
	}
	return b.adjustAll(dates)
}

func boundOf(anchors []time.Time, i int, end time.Time) time.Time {
	if i == len(anchors)-1 {
		return end
	}
	return anchors[i+1]
}

// segmentPrincipalEvents expands each principal segment to its bound.
// Decrease segments redeem, increase segments draw down.
func (b *builder) segmentPrincipalEvents() {
	arr := b.attrs.ArraySchedule
	n := len(arr.PrincipalAnchors)
	for i := 0; i < n; i++ {
		etype := EventPR
		if arr.PrincipalKinds[i] == PrincipalIncrease {
			etype = EventPI
		}
		b.addAll(etype, b.segment(arr.PrincipalAnchors[i], arr.PrincipalCycles[i], i == n-1,
			boundOf(arr.PrincipalAnchors, i, b.maturity)))
	}
}

func (b *builder) segmentInterestEvents() {
	arr := b.attrs.ArraySchedule
	n := len(arr.InterestAnchors)
	for i := 0; i < n; i++ {
		b.interestEvents(b.segment(arr.InterestAnchors[i], arr.InterestCycles[i], i == n-1,
			boundOf(arr.InterestAnchors, i, b.maturity)))
	}
}

// segmentRateEvents emits the per-segment resets: fixed segments fix
// their pre-agreed rate, variable segments observe the market. Resets at
// the contract end are pointless, so every bound is exclusive.
func (b *builder) segmentRateEvents() {
	arr := b.attrs.ArraySchedule
	n := len(arr.RateAnchors)
	for i := 0; i < n; i++ {
		etype := EventRR
		if arr.RateKinds[i] == RateFixed {
			etype = EventRRF
		}
		b.addAll(etype, b.segment(arr.RateAnchors[i], arr.RateCycles[i], false,
			boundOf(arr.RateAnchors, i, b.maturity)))
	}
}

// =============================================================================
// PURCHASE AND TERMINATION FILTERS
// =============================================================================

// applyTermination truncates the schedule at the termination date and
// appends the termination event itself.
func (b *builder) applyTermination() {
	if b.attrs.TerminationDate.IsZero() {
		return
	}
	cutoff := b.adjust(b.attrs.TerminationDate)
	kept := b.events[:0]
	for _, e := range b.events {
		if !e.Time.After(cutoff) {
			kept = append(kept, e)
		}
	}
	b.events = kept
	b.add(EventTD, cutoff)
}

// applyPurchase drops the initial exchange and everything else at or
// before the purchase date, leaving the purchase event to carry the
// mid-life entry price.
func (b *builder) applyPurchase() {
	if b.attrs.PurchaseDate.IsZero() {
		return
	}
	cutoff := b.adjust(b.attrs.PurchaseDate)
	kept := b.events[:0]
	for _, e := range b.events {
		if e.Type == EventIED {
			continue
		}
		if e.Time.After(cutoff) {
			kept = append(kept, e)
		}
	}
	b.events = kept
	b.add(EventPRD, cutoff)
}
