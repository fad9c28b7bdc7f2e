package contracts

import (
	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// NegativeAmortizer nets the scheduled payment against the period's
// accrued interest; only the net moves the notional. An installment below
// the interest due makes the net change sign, so the balance grows
// instead of shrinking.
type NegativeAmortizer struct{}

var _ Contract = NegativeAmortizer{}

func (NegativeAmortizer) Type() ContractType { return TypeNegativeAmortizer }

func (NegativeAmortizer) Schedule(attrs *ContractAttributes) (*EventSchedule, error) {
	return assemble(attrs)
}

func (NegativeAmortizer) Payoff(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	if e.Type == EventPR {
		return payoffRedemptionNetted(e, st, attrs)
	}
	return payoffBase(e, st, attrs)
}

func (NegativeAmortizer) Transition(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error) {
	if e.Type == EventPR {
		return stfRedemptionNetted(e, st, attrs), nil
	}
	return transitionBase(e, st, attrs, obs)
}

// payoffRedemptionNetted pays the net of the scheduled amount against
// the interest due. The sign is applied once, to the net: a negative net
// is cash flowing the other way. The interest itself is paid by the
// interest events, not here.
func payoffRedemptionNetted(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	net := st.NextRedemption.Sub(interestDue(st, attrs, e.Time))
	return st.NotionalScaling.Mul(capRedemption(net, st.Notional))
}

// stfRedemptionNetted moves the notional by the capped net. The accrued
// interest is retained for the interest event that follows at the same
// instant.
func stfRedemptionNetted(e ContractEvent, st ContractState, attrs *ContractAttributes) ContractState {
	st = accrue(st, attrs, e.Time)
	net := capRedemption(st.NextRedemption.Sub(st.AccruedInterest), st.Notional)
	st.Notional = st.Notional.Sub(net)
	if attrs.calcBaseMode() == CalcBaseNotional {
		st.CalculationBase = st.Notional
	}
	return st
}

func init() {
	register(NegativeAmortizer{})
}
