package contracts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// Exotic is the array-schedule contract: its redemption, interest and
// rate behavior is pieced together from per-segment anchors, cycles and
// amounts. Segments flagged as increases draw the notional up instead of
// down, and rate segments are individually fixed or market-observed.
type Exotic struct{}

var _ Contract = Exotic{}

func (Exotic) Type() ContractType { return TypeExotic }

func (Exotic) Schedule(attrs *ContractAttributes) (*EventSchedule, error) {
	return assemble(attrs)
}

func (Exotic) Payoff(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	switch e.Type {
	case EventPR:
		return st.NotionalScaling.Mul(capRedemption(segmentAmount(attrs, e.Time, st), st.Notional))
	case EventPI:
		return st.NotionalScaling.Mul(segmentAmount(attrs, e.Time, st)).Neg()
	default:
		return payoffBase(e, st, attrs)
	}
}

func (Exotic) Transition(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error) {
	switch e.Type {
	case EventPR:
		return stfRedemptionSegment(e, st, attrs), nil
	case EventPI:
		return stfIncreaseSegment(e, st, attrs), nil
	case EventRR, EventRRF:
		return stfRateResetSegment(st, attrs, obs, e.Time)
	default:
		return transitionBase(e, st, attrs, obs)
	}
}

// segmentIndex returns the index of the last anchor at or before t, or
// -1 when t precedes every anchor.
func segmentIndex(anchors []time.Time, t time.Time) int {
	return sort.Search(len(anchors), func(k int) bool { return anchors[k].After(t) }) - 1
}

// segmentAmount is the role-signed scheduled amount of the principal
// segment covering t.
func segmentAmount(attrs *ContractAttributes, t time.Time, st ContractState) decimal.Decimal {
	seg := segmentIndex(attrs.ArraySchedule.PrincipalAnchors, t)
	if seg < 0 {
		return st.NextRedemption
	}
	return attrs.roleSign().Mul(attrs.ArraySchedule.PrincipalAmounts[seg])
}

func stfRedemptionSegment(e ContractEvent, st ContractState, attrs *ContractAttributes) ContractState {
	st = accrue(st, attrs, e.Time)
	amount := segmentAmount(attrs, e.Time, st)
	st.Notional = st.Notional.Sub(capRedemption(amount, st.Notional))
	st.NextRedemption = amount
	if attrs.calcBaseMode() == CalcBaseNotional {
		st.CalculationBase = st.Notional
	}
	return st
}

// stfIncreaseSegment mirrors a redemption: the scheduled amount raises
// the outstanding balance. No cap applies, an increase cannot cross zero.
func stfIncreaseSegment(e ContractEvent, st ContractState, attrs *ContractAttributes) ContractState {
	st = accrue(st, attrs, e.Time)
	amount := segmentAmount(attrs, e.Time, st)
	st.Notional = st.Notional.Add(amount)
	st.NextRedemption = amount
	if attrs.calcBaseMode() == CalcBaseNotional {
		st.CalculationBase = st.Notional
	}
	return st
}

// stfRateResetSegment applies the rate segment covering t: fixed segments
// carry their rate directly, variable segments observe the market and
// treat the segment value as the spread.
func stfRateResetSegment(st ContractState, attrs *ContractAttributes, obs riskfactor.Observer, t time.Time) (ContractState, error) {
	st = accrue(st, attrs, t)
	arr := attrs.ArraySchedule
	seg := segmentIndex(arr.RateAnchors, t)
	if seg < 0 {
		return st, nil
	}
	if arr.RateKinds[seg] == RateFixed {
		st.NominalRate = arr.RateValues[seg]
		return st, nil
	}
	rr := attrs.RateReset
	observed, err := obs.Observe(rr.MarketObject, t)
	if err != nil {
		return st, err
	}
	st.NominalRate = rr.clamp(observed.Mul(rr.effectiveMultiplier()).Add(arr.RateValues[seg]))
	return st, nil
}

func init() {
	register(Exotic{})
}
