package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTRACT STATE - Immutable numeric snapshot
// =============================================================================

// AmortizationTolerance is the engine-wide cutoff below which a remaining
// balance counts as fully amortized. Maturity derivation and the annuity
// settlement checks compare against this single constant; no other
// epsilon appears in the state machine.
var AmortizationTolerance = decimal.New(1, -6) // 1e-6

// ContractState is the numeric snapshot carried between events. States
// are values: every transition copies, adjusts and returns, so each
// event's pre and post snapshot stays intact in the history.
//
// Sign discipline: Notional, CalculationBase, AccruedInterest, FeeAccrued
// and NextRedemption all carry the contract-role sign (positive for the
// asset holder, negative for the liability side). The scaling multipliers
// are sign-free.
type ContractState struct {
	// StatusDate is the time of the last processed event. Every accrual
	// runs from here to the current event's time.
	StatusDate time.Time

	// MaturityDate is the contract's (possibly derived) maturity.
	MaturityDate time.Time

	// Notional is the outstanding principal, role-signed.
	Notional decimal.Decimal

	// NominalRate is the current interest rate per year.
	NominalRate decimal.Decimal

	// AccruedInterest accumulated since the last payment, role-signed.
	AccruedInterest decimal.Decimal

	// FeeAccrued accumulated since the last fee payment, role-signed.
	FeeAccrued decimal.Decimal

	// NotionalScaling and InterestScaling are the index multipliers
	// applied to redemption and interest payoffs. Identity is one.
	NotionalScaling decimal.Decimal
	InterestScaling decimal.Decimal

	// CalculationBase is the balance interest accrues against. Depending
	// on the contract's declared mode it mirrors the notional, stays
	// frozen at inception, or updates only at explicit fixing events.
	CalculationBase decimal.Decimal

	// NextRedemption is the next scheduled redemption amount, role-signed.
	NextRedemption decimal.Decimal
}

// newInitialState is the pre-initial-exchange snapshot: empty balances,
// identity scaling, maturity pinned. Everything else is fixed by the
// initial-exchange transition.
func newInitialState(statusDate, maturity time.Time) ContractState {
	return ContractState{
		StatusDate:      statusDate,
		MaturityDate:    maturity,
		Notional:        decimal.Zero,
		NominalRate:     decimal.Zero,
		AccruedInterest: decimal.Zero,
		FeeAccrued:      decimal.Zero,
		NotionalScaling: decimal.New(1, 0),
		InterestScaling: decimal.New(1, 0),
		CalculationBase: decimal.Zero,
		NextRedemption:  decimal.Zero,
	}
}

// fullyAmortized reports whether the outstanding balance is inside the
// amortization tolerance.
func (s ContractState) fullyAmortized() bool {
	return s.Notional.Abs().LessThanOrEqual(AmortizationTolerance)
}
