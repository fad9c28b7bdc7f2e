package contracts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/riskfactor"
)

// =============================================================================
// LIFECYCLE RUNNER
// =============================================================================

// SimulationHistory is the engine's output: the processed events with
// payoff and pre/post snapshots filled, the post-event states in order,
// and the initial and final state.
type SimulationHistory struct {
	ContractID   string
	Events       []ContractEvent
	States       []ContractState
	InitialState ContractState
	FinalState   ContractState
}

// Simulate assembles the schedule for attrs and folds it into a complete
// history. A purchased contract starts from the replayed pre-purchase
// state; everything else starts from the pre-issue zero state. The
// observer supplies market rates and indices; nil is allowed for
// contracts that never observe.
func Simulate(attrs *ContractAttributes, obs riskfactor.Observer) (*SimulationHistory, error) {
	variant, err := LookupContract(attrs.ContractType)
	if err != nil {
		return nil, err
	}
	sched, err := variant.Schedule(attrs)
	if err != nil {
		return nil, err
	}
	var initial ContractState
	if !attrs.PurchaseDate.IsZero() {
		cutoff := attrs.BusinessDay.Adjust(attrs.PurchaseDate, attrs.calendarOr())
		initial, err = InitializeAt(attrs, obs, cutoff)
	} else {
		initial, err = initialState(attrs)
	}
	if err != nil {
		return nil, err
	}
	return Run(sched, initial, attrs, obs)
}

// Run folds the schedule over the initial state: payoff from the
// pre-state, transition to the post-state, strictly in schedule order. A
// failing transition aborts the run; the caller gets a complete history
// or none.
func Run(sched *EventSchedule, initial ContractState, attrs *ContractAttributes, obs riskfactor.Observer) (*SimulationHistory, error) {
	variant, err := LookupContract(attrs.ContractType)
	if err != nil {
		return nil, err
	}
	obs = observerOr(obs)

	history := &SimulationHistory{
		ContractID:   sched.ContractID,
		Events:       make([]ContractEvent, len(sched.Events)),
		States:       make([]ContractState, 0, len(sched.Events)),
		InitialState: initial,
	}
	st := initial
	for i, e := range sched.Events {
		pre := st
		e.Payoff = variant.Payoff(e, pre, attrs)
		post, err := variant.Transition(e, pre, attrs, obs)
		if err != nil {
			return nil, &EventError{ContractID: sched.ContractID, Event: e, Err: err}
		}
		e.PreState = &pre
		e.PostState = &post
		history.Events[i] = e
		history.States = append(history.States, post)
		st = post
	}
	history.FinalState = st
	return history, nil
}

// InitializeAt replays the contract's own history from the pre-issue
// state through every event at or before t and returns the state carried
// at t. The purchase path runs through here so a mid-life entry reflects
// the full history rather than a re-derivation from the terms. The
// replayed state's clock stays on the last processed event; the next
// transition accrues across the remaining gap.
func InitializeAt(attrs *ContractAttributes, obs riskfactor.Observer, t time.Time) (ContractState, error) {
	variant, err := LookupContract(attrs.ContractType)
	if err != nil {
		return ContractState{}, err
	}
	replay := *attrs
	replay.PurchaseDate = time.Time{}
	replay.PriceAtPurchase = decimal.Zero
	replay.TerminationDate = time.Time{}
	replay.PriceAtTermination = decimal.Zero
	replay.AnalysisTimes = nil

	sched, err := variant.Schedule(&replay)
	if err != nil {
		return ContractState{}, err
	}
	st, err := initialState(&replay)
	if err != nil {
		return ContractState{}, err
	}
	obs = observerOr(obs)
	for _, e := range sched.Events {
		if e.Time.After(t) {
			break
		}
		post, err := variant.Transition(e, st, &replay, obs)
		if err != nil {
			return ContractState{}, &EventError{ContractID: sched.ContractID, Event: e, Err: err}
		}
		st = post
	}
	return st, nil
}

// initialState is the pre-issue snapshot: zero balances with the derived
// maturity pinned and the variant's redemption amount seeded.
func initialState(attrs *ContractAttributes) (ContractState, error) {
	maturity, err := deriveMaturity(attrs)
	if err != nil {
		return ContractState{}, err
	}
	st := newInitialState(attrs.StatusDate, maturity)
	prnxt, err := seedRedemption(attrs, maturity)
	if err != nil {
		return ContractState{}, err
	}
	st.NextRedemption = prnxt
	return st, nil
}

func observerOr(obs riskfactor.Observer) riskfactor.Observer {
	if obs == nil {
		return riskfactor.NewComposite()
	}
	return obs
}
