/*
Package contracts implements the amortizing-contract lifecycle engine: a
pure, deterministic function from a contract's static terms and a market
observer to the full ordered sequence of lifecycle events with their cash
flows and state snapshots.

PURPOSE:
  A loan or bond is described once by immutable ContractAttributes. From
  those the engine assembles the contract's event schedule (disbursement,
  redemptions, interest payments, rate resets, fees, maturity, ...), then
  folds the schedule over the numeric contract state, producing for every
  event the payoff amount and the pre/post state.

KEY CONCEPTS IN THIS FILE (contract.go):
  - Contract: the capability interface each contract variant implements
  - ContractType: the closed set of supported variants

THE VARIANT FAMILY:
  Bullet             principal repaid at maturity, interest periodic
  LinearAmortizer    fixed principal installments
  NegativeAmortizer  installments netted against interest; principal can
                     grow when payments undershoot accrued interest
  Annuity            constant total payment solved so the balance reaches
                     zero exactly at maturity
  Exotic             piecewise array schedules with per-segment amounts,
                     increase/decrease direction and per-segment rates

  All variants share one schedule/state-machine skeleton; each overrides a
  handful of event transitions and delegates the rest to the shared base.
  Shared logic lives in free functions the variants call explicitly; there
  is no inheritance.

DESIGN PRINCIPLES:
  1. Immutability: ContractState is replaced, never mutated; every event
     keeps its pre and post snapshot
  2. Determinism: same attributes and observations, same history; the
     observer is the engine's only external dependency
  3. Fail fast: configuration and cycle errors surface at construction,
     never mid-fold; a missing observation aborts the whole run
  4. Precision: all amounts, rates and fractions are decimal.Decimal

USAGE:
  attrs := &contracts.ContractAttributes{ ... }
  history, err := contracts.Simulate(attrs, observer)
  if err != nil { ... }
  for _, e := range history.Events {
      fmt.Println(e.Type, e.Time, e.Payoff)
  }

SEE ALSO:
  - events.go: event vocabulary and ordering
  - state.go: the numeric state snapshot
  - attributes.go: the static terms
  - runner.go: Simulate, Run and InitializeAt
*/
package contracts

import (
	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// =============================================================================
// CONTRACT TYPES
// =============================================================================

// ContractType identifies a contract variant. The codes follow the ACTUS
// taxonomy for the amortizing family.
type ContractType string

const (
	// TypeBullet is a principal-at-maturity contract (PAM).
	TypeBullet ContractType = "PAM"

	// TypeLinearAmortizer redeems a fixed amount per cycle (LAM).
	TypeLinearAmortizer ContractType = "LAM"

	// TypeNegativeAmortizer nets the scheduled payment against accrued
	// interest before redeeming (NAM).
	TypeNegativeAmortizer ContractType = "NAM"

	// TypeAnnuity pays a solved constant total per cycle (ANN).
	TypeAnnuity ContractType = "ANN"

	// TypeExotic is driven by piecewise array schedules (LAX).
	TypeExotic ContractType = "LAX"
)

// =============================================================================
// CONTRACT - Variant capability interface
// =============================================================================

// Contract is what a variant supplies: schedule assembly plus the payoff
// and state-transition functions dispatched per event type. Variants are
// stateless values; all contract data flows through the arguments.
type Contract interface {
	// Type returns the variant's identifier.
	Type() ContractType

	// Schedule assembles the complete, ordered, filtered event list for
	// the attributes. It fails with a configuration or schedule error,
	// never mid-simulation.
	Schedule(attrs *ContractAttributes) (*EventSchedule, error)

	// Payoff computes the cash amount of one event from the pre-event
	// state. Unknown event types pay zero.
	Payoff(e ContractEvent, st ContractState, attrs *ContractAttributes) decimal.Decimal

	// Transition computes the post-event state from the pre-event state.
	// Unknown event types return the state unchanged. Rate resets and
	// scaling events consult the observer; a missing observation is
	// returned as an error and aborts the fold.
	Transition(e ContractEvent, st ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (ContractState, error)
}
