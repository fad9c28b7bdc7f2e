package contracts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EVENT TYPES - Closed vocabulary with intra-day priority
// =============================================================================

// EventType tags one kind of lifecycle occurrence.
type EventType string

const (
	// EventIED is the initial exchange: notional is disbursed.
	EventIED EventType = "IED"

	// EventPR is a principal redemption.
	EventPR EventType = "PR"

	// EventPI is a principal increase (exotic step-up/drawdown segments).
	EventPI EventType = "PI"

	// EventIP is an interest payment.
	EventIP EventType = "IP"

	// EventIPCI capitalizes accrued interest into the notional.
	EventIPCI EventType = "IPCI"

	// EventIPCB fixes the interest calculation base to the current
	// notional (lagged-update mode only).
	EventIPCB EventType = "IPCB"

	// EventRR resets the nominal rate from a market observation.
	EventRR EventType = "RR"

	// EventRRF fixes the nominal rate to a pre-agreed value.
	EventRRF EventType = "RRF"

	// EventPRF re-solves the next redemption amount (annuity re-fix).
	EventPRF EventType = "PRF"

	// EventSC rescales notional and/or accrued interest from an index.
	EventSC EventType = "SC"

	// EventFP is a fee payment.
	EventFP EventType = "FP"

	// EventPY is a penalty payment. Recognized for forward compatibility;
	// this family never schedules it.
	EventPY EventType = "PY"

	// EventPRD is a purchase mid-life.
	EventPRD EventType = "PRD"

	// EventTD terminates the contract early.
	EventTD EventType = "TD"

	// EventMD is maturity.
	EventMD EventType = "MD"

	// EventAD is a cashless analysis snapshot.
	EventAD EventType = "AD"
)

// eventPriority orders events that share a timestamp. Redemptions run
// before interest so negative-amortizer netting sees the period's accrual
// exactly once; resets run before the annuity re-fix so the re-solve uses
// the fresh rate; maturity runs last among cash events.
var eventPriority = map[EventType]int{
	EventIED:  1,
	EventPR:   2,
	EventPI:   3,
	EventIP:   4,
	EventIPCI: 5,
	EventIPCB: 6,
	EventRR:   7,
	EventRRF:  8,
	EventPRF:  9,
	EventSC:   10,
	EventFP:   11,
	EventPY:   12,
	EventPRD:  13,
	EventTD:   14,
	EventMD:   15,
	EventAD:   16,
}

// Priority returns the intra-day rank of the event type. Unknown types
// sort last, matching their no-op processing.
func (t EventType) Priority() int {
	if p, ok := eventPriority[t]; ok {
		return p
	}
	return 99
}

// =============================================================================
// CONTRACT EVENT
// =============================================================================

// ContractEvent is one scheduled occurrence. Payoff, PreState and
// PostState are filled by the runner; before that the event is pure
// schedule data.
type ContractEvent struct {
	Type     EventType
	Time     time.Time
	Payoff   decimal.Decimal
	Currency string

	// Sequence is the schedule-assigned position, the final tie-break
	// for events sharing time and priority.
	Sequence int

	PreState  *ContractState
	PostState *ContractState
}

// Before reports whether e is processed before other: earlier time first,
// then intra-day priority, then sequence.
func (e ContractEvent) Before(other ContractEvent) bool {
	if !e.Time.Equal(other.Time) {
		return e.Time.Before(other.Time)
	}
	if e.Type.Priority() != other.Type.Priority() {
		return e.Type.Priority() < other.Type.Priority()
	}
	return e.Sequence < other.Sequence
}

// =============================================================================
// EVENT SCHEDULE
// =============================================================================

// EventSchedule is the ordered, deduplicated event list for one contract.
type EventSchedule struct {
	ContractID string
	Events     []ContractEvent
}

// normalize sorts the events into processing order, drops exact
// duplicates (same type, same time) and renumbers the sequence field
// 0..n-1. Sorting is stable so equal (time, priority) pairs keep their
// assembly order.
func (s *EventSchedule) normalize() {
	sort.SliceStable(s.Events, func(i, j int) bool {
		a, b := s.Events[i], s.Events[j]
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		return a.Type.Priority() < b.Type.Priority()
	})
	distinct := s.Events[:0]
	for i, e := range s.Events {
		if i > 0 {
			prev := distinct[len(distinct)-1]
			if e.Type == prev.Type && e.Time.Equal(prev.Time) {
				continue
			}
		}
		distinct = append(distinct, e)
	}
	s.Events = distinct
	for i := range s.Events {
		s.Events[i].Sequence = i
	}
}
