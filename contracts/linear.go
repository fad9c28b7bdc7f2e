package contracts

import (
	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// LinearAmortizer redeems a fixed installment per cycle. The maturity
// event settles whatever the final, possibly partial, installment leaves
// behind.
type LinearAmortizer struct{}

var _ Contract = LinearAmortizer{}

func (LinearAmortizer) Type() ContractType { return TypeLinearAmortizer }

func (LinearAmortizer) Schedule(attrs *ContractAttributes) (*EventSchedule, error) {
	return assemble(attrs)
}

func (LinearAmortizer) Payoff(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	if e.Type == EventPR {
		return payoffRedemptionFixed(e, st, attrs)
	}
	return payoffBase(e, st, attrs)
}

func (LinearAmortizer) Transition(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error) {
	if e.Type == EventPR {
		return stfRedemptionFixed(e, st, attrs), nil
	}
	return transitionBase(e, st, attrs, obs)
}

// payoffRedemptionFixed pays the scheduled installment, capped at the
// outstanding balance, rescaled by the notional multiplier.
func payoffRedemptionFixed(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	return st.NotionalScaling.Mul(capRedemption(st.NextRedemption, st.Notional))
}

func stfRedemptionFixed(e ContractEvent, st ContractState, attrs *ContractAttributes) ContractState {
	st = accrue(st, attrs, e.Time)
	red := capRedemption(st.NextRedemption, st.Notional)
	st.Notional = st.Notional.Sub(red)
	if attrs.calcBaseMode() == CalcBaseNotional {
		st.CalculationBase = st.Notional
	}
	return st
}

func init() {
	register(LinearAmortizer{})
}
