package contracts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// Annuity pays one solved constant amount per cycle, covering the period's
// interest plus a principal part sized so the balance lands on zero at
// maturity. The amount is re-solved after every rate change.
type Annuity struct{}

var _ Contract = Annuity{}

func (Annuity) Type() ContractType { return TypeAnnuity }

func (Annuity) Schedule(attrs *ContractAttributes) (*EventSchedule, error) {
	return assemble(attrs)
}

func (Annuity) Payoff(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	if e.Type == EventPR {
		return payoffRedemptionAnnuity(e, st, attrs)
	}
	return payoffBase(e, st, attrs)
}

func (Annuity) Transition(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error) {
	switch e.Type {
	case EventPR:
		return stfRedemptionAnnuity(e, st, attrs), nil
	case EventPRF:
		return stfRedemptionFix(e, st, attrs), nil
	default:
		return transitionBase(e, st, attrs, obs)
	}
}

// payoffRedemptionAnnuity pays the interest due plus the principal part
// of the constant payment, the principal part capped at the balance.
func payoffRedemptionAnnuity(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	due := interestDue(st, attrs, e.Time)
	principal := capRedemption(st.NextRedemption.Sub(due), st.Notional)
	return st.InterestScaling.Mul(due).Add(st.NotionalScaling.Mul(principal))
}

func stfRedemptionAnnuity(e ContractEvent, st ContractState, attrs *ContractAttributes) ContractState {
	st = accrue(st, attrs, e.Time)
	principal := capRedemption(st.NextRedemption.Sub(st.AccruedInterest), st.Notional)
	st.Notional = st.Notional.Sub(principal)
	st.AccruedInterest = decimal.Zero
	if attrs.calcBaseMode() == CalcBaseNotional {
		st.CalculationBase = st.Notional
	}
	return st
}

// stfRedemptionFix re-solves the constant payment over the remaining
// redemption dates at the current rate. With the schedule exhausted there
// is nothing left to solve over and the state passes through unchanged.
func stfRedemptionFix(e ContractEvent, st ContractState, attrs *ContractAttributes) ContractState {
	st = accrue(st, attrs, e.Time)
	remaining := remainingRedemptions(attrs, st.MaturityDate, e.Time)
	if len(remaining) == 0 || st.fullyAmortized() {
		return st
	}
	sign := attrs.roleSign()
	payment := SolveAnnuityPayment(e.Time, remaining,
		sign.Mul(st.Notional), sign.Mul(st.AccruedInterest),
		st.NominalRate, attrs.dayCounter(st.MaturityDate))
	st.NextRedemption = sign.Mul(payment)
	return st
}

// remainingRedemptions lists the redemption dates strictly after t. A
// redemption at t itself has already been paid when the fixing runs.
func remainingRedemptions(attrs *ContractAttributes, maturity, t time.Time) []time.Time {
	all := redemptionDates(attrs, maturity)
	i := sort.Search(len(all), func(k int) bool { return all[k].After(t) })
	return all[i:]
}

func init() {
	register(Annuity{})
}
