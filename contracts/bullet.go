package contracts

import (
	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// Bullet is the principal-at-maturity contract: interest is paid over the
// life, the whole notional comes back at the end. Its semantics are the
// shared base every other variant starts from.
type Bullet struct{}

var _ Contract = Bullet{}

func (Bullet) Type() ContractType { return TypeBullet }

func (Bullet) Schedule(attrs *ContractAttributes) (*EventSchedule, error) {
	return assemble(attrs)
}

func (Bullet) Payoff(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal {
	return payoffBase(e, st, attrs)
}

func (Bullet) Transition(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error) {
	return transitionBase(e, st, attrs, obs)
}

func init() {
	register(Bullet{})
}
