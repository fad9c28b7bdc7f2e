package contracts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// =============================================================================
// ACCRUAL
// =============================================================================

// accrualIncrement is the interest earned on the calculation base between
// the state's status date and t, unscaled.
func accrualIncrement(st ContractState, attrs *ContractAttributes, t time.Time) decimal.Decimal {
	yf := attrs.dayCounter(st.MaturityDate).YearFraction(st.StatusDate, t)
	return yf.Mul(st.NominalRate).Mul(st.CalculationBase)
}

// interestDue is the total accrued interest at t: the carried accrual
// plus the increment since the last event.
func interestDue(st ContractState, attrs *ContractAttributes, t time.Time) decimal.Decimal {
	return st.AccruedInterest.Add(accrualIncrement(st, attrs, t))
}

// feeIncrement is the fee accrued on the notional between the status
// date and t. Only the rate-on-notional basis accrues.
func feeIncrement(st ContractState, attrs *ContractAttributes, t time.Time) decimal.Decimal {
	if attrs.Fee == nil || attrs.Fee.Basis != FeeNotional {
		return decimal.Zero
	}
	yf := attrs.dayCounter(st.MaturityDate).YearFraction(st.StatusDate, t)
	return yf.Mul(attrs.Fee.Rate).Mul(st.Notional)
}

// feeDue is the total accrued fee at t.
func feeDue(st ContractState, attrs *ContractAttributes, t time.Time) decimal.Decimal {
	return st.FeeAccrued.Add(feeIncrement(st, attrs, t))
}

// accrue advances the state clock to t, folding the interest and fee
// increments into their balances. Every transition that represents a
// scheduled occurrence runs through here, which keeps the status date
// equal to the last processed event time.
func accrue(st ContractState, attrs *ContractAttributes, t time.Time) ContractState {
	st.AccruedInterest = st.AccruedInterest.Add(accrualIncrement(st, attrs, t))
	st.FeeAccrued = st.FeeAccrued.Add(feeIncrement(st, attrs, t))
	st.StatusDate = t
	return st
}

// capRedemption limits a redemption so the notional never crosses zero.
// The cap binds only when the redemption points the same way as the
// outstanding balance and exceeds it; a netted redemption pointing the
// other way (negative amortization) passes through untouched.
func capRedemption(red, notional decimal.Decimal) decimal.Decimal {
	if notional.IsZero() {
		return notional
	}
	if red.Sign() == notional.Sign() && red.Abs().GreaterThan(notional.Abs()) {
		return notional
	}
	return red
}

// =============================================================================
// SHARED PAYOFF - bullet semantics
// =============================================================================

// payoffBase computes the bullet-loan payoff for e. Variants call it for
// every event type they do not override. Unknown types pay zero.
func payoffBase(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	switch e.Type {
	case EventIED:
		return attrs.roleSign().Mul(attrs.Notional.Add(attrs.PremiumDiscount)).Neg()
	case EventIP:
		return st.InterestScaling.Mul(interestDue(st, attrs, e.Time))
	case EventFP:
		return payoffFee(e, st, attrs)
	case EventPRD:
		return attrs.roleSign().Mul(attrs.PriceAtPurchase).Add(interestDue(st, attrs, e.Time)).Neg()
	case EventTD:
		return attrs.roleSign().Mul(attrs.PriceAtTermination).Add(interestDue(st, attrs, e.Time))
	case EventMD:
		return st.NotionalScaling.Mul(st.Notional).
			Add(st.InterestScaling.Mul(interestDue(st, attrs, e.Time))).
			Add(feeDue(st, attrs, e.Time))
	default:
		return decimal.Zero
	}
}

func payoffFee(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	if attrs.Fee == nil {
		return decimal.Zero
	}
	if attrs.Fee.Basis == FeeAbsolute {
		return attrs.roleSign().Mul(attrs.Fee.Rate)
	}
	return feeDue(st, attrs, e.Time)
}

// =============================================================================
// SHARED TRANSITIONS - bullet semantics
// =============================================================================

// transitionBase computes the bullet-loan post-state for e. Variants call
// it for every event type they do not override. Unknown types leave the
// state untouched.
func transitionBase(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error) {
	switch e.Type {
	case EventIED:
		return stfInitialExchange(st, attrs, e.Time)
	case EventIP:
		st = accrue(st, attrs, e.Time)
		st.AccruedInterest = decimal.Zero
		return st, nil
	case EventIPCI:
		return stfCapitalize(st, attrs, e.Time), nil
	case EventIPCB:
		st = accrue(st, attrs, e.Time)
		st.CalculationBase = st.Notional
		return st, nil
	case EventRR:
		return stfRateReset(st, attrs, obs, e.Time)
	case EventRRF:
		st = accrue(st, attrs, e.Time)
		if attrs.RateReset != nil && attrs.RateReset.NextResetRate != nil {
			st.NominalRate = *attrs.RateReset.NextResetRate
		}
		return st, nil
	case EventSC:
		return stfScaling(st, attrs, obs, e.Time)
	case EventFP:
		st = accrue(st, attrs, e.Time)
		if attrs.Fee != nil && attrs.Fee.Basis == FeeNotional {
			st.FeeAccrued = decimal.Zero
		}
		return st, nil
	case EventPRD, EventAD:
		return accrue(st, attrs, e.Time), nil
	case EventTD, EventMD:
		st = accrue(st, attrs, e.Time)
		return clearBalances(st), nil
	default:
		return st, nil
	}
}

// stfInitialExchange turns the empty pre-issue state into a live one:
// signed notional, contract rate, seeded accruals and the variant's
// redemption amount.
func stfInitialExchange(st ContractState, attrs *ContractAttributes, t time.Time) (ContractState, error) {
	sign := attrs.roleSign()
	st.StatusDate = t
	st.Notional = sign.Mul(attrs.Notional)
	st.NominalRate = attrs.NominalRate
	st.AccruedInterest = decimal.Zero
	if attrs.AccruedInterest != nil {
		st.AccruedInterest = sign.Mul(*attrs.AccruedInterest)
	}
	if attrs.Fee != nil {
		st.FeeAccrued = sign.Mul(attrs.Fee.Accrued)
	}
	st.CalculationBase = initialCalculationBase(st, attrs)
	prnxt, err := seedRedemption(attrs, st.MaturityDate)
	if err != nil {
		return st, err
	}
	st.NextRedemption = prnxt
	return st, nil
}

// initialCalculationBase resolves the base at issue. Frozen and lagged
// modes start from the explicit amount when one is given; otherwise every
// mode starts at the notional.
func initialCalculationBase(st ContractState, attrs *ContractAttributes) decimal.Decimal {
	switch attrs.calcBaseMode() {
	case CalcBaseInitial, CalcBaseLagged:
		if attrs.CalculationBase != nil && attrs.CalculationBase.Amount != nil {
			return attrs.roleSign().Mul(*attrs.CalculationBase.Amount)
		}
	}
	return st.Notional
}

// stfCapitalize folds the accrued interest into the notional instead of
// paying it out.
func stfCapitalize(st ContractState, attrs *ContractAttributes, t time.Time) ContractState {
	st = accrue(st, attrs, t)
	st.Notional = st.Notional.Add(st.AccruedInterest)
	st.AccruedInterest = decimal.Zero
	if attrs.calcBaseMode() == CalcBaseNotional {
		st.CalculationBase = st.Notional
	}
	return st
}

// stfRateReset accrues at the old rate, then swaps in the observed one.
func stfRateReset(st ContractState, attrs *ContractAttributes, obs riskfactor.Observer, t time.Time) (ContractState, error) {
	st = accrue(st, attrs, t)
	rr := attrs.RateReset
	if rr == nil {
		return st, nil
	}
	observed, err := obs.Observe(rr.MarketObject, t)
	if err != nil {
		return st, err
	}
	st.NominalRate = rr.clamp(observed.Mul(rr.effectiveMultiplier()).Add(rr.Spread))
	return st, nil
}

// stfScaling reads the scaling index and moves the multipliers the
// effect flags select to observed/base.
func stfScaling(st ContractState, attrs *ContractAttributes, obs riskfactor.Observer, t time.Time) (ContractState, error) {
	st = accrue(st, attrs, t)
	sc := attrs.Scaling
	if sc == nil || (!sc.Effect.ScalesNotional() && !sc.Effect.ScalesInterest()) {
		return st, nil
	}
	observed, err := obs.Observe(sc.MarketObject, t)
	if err != nil {
		return st, err
	}
	ratio := observed.Div(sc.IndexAtStatusDate)
	if sc.Effect.ScalesNotional() {
		st.NotionalScaling = ratio
	}
	if sc.Effect.ScalesInterest() {
		st.InterestScaling = ratio
	}
	return st, nil
}

// clearBalances zeroes everything the contract still owes. Scaling
// multipliers are not balances and survive.
func clearBalances(st ContractState) ContractState {
	st.Notional = decimal.Zero
	st.AccruedInterest = decimal.Zero
	st.FeeAccrued = decimal.Zero
	st.CalculationBase = decimal.Zero
	st.NextRedemption = decimal.Zero
	return st
}
