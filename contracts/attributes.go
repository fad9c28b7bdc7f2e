package contracts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/conventions"
	"github.com/warp/contract-engine/schedule"
)

// =============================================================================
// CONTRACT ROLE
// =============================================================================

// ContractRole states which side of the contract the modeled party is on.
// It fixes the sign of every signed state field and payoff.
type ContractRole string

const (
	// RoleAsset: the party receives principal back (lender, bond holder).
	RoleAsset ContractRole = "RPA"

	// RoleLiability: the party pays principal back (borrower, issuer).
	RoleLiability ContractRole = "RPL"
)

var (
	plusOne  = decimal.New(1, 0)
	minusOne = decimal.New(-1, 0)
)

// Sign returns +1 for the asset side, -1 for the liability side.
func (r ContractRole) Sign() decimal.Decimal {
	if r == RoleLiability {
		return minusOne
	}
	return plusOne
}

// Valid reports whether r is a recognized role.
func (r ContractRole) Valid() bool {
	return r == RoleAsset || r == RoleLiability
}

// =============================================================================
// SUB-SCHEDULE TERMS
// =============================================================================

// SubSchedule is one recurring part of the contract: an anchor date and
// an optional cycle. A nil cycle means a single occurrence at the anchor.
// A zero anchor is derived from the initial exchange date plus one cycle.
type SubSchedule struct {
	Anchor time.Time
	Cycle  *schedule.Cycle
}

// anchorOr resolves the effective anchor: the explicit one, or the
// initial exchange date advanced by one cycle.
func (s SubSchedule) anchorOr(ied time.Time, eom conventions.EndOfMonth) time.Time {
	if !s.Anchor.IsZero() {
		return s.Anchor
	}
	if s.Cycle == nil {
		return ied
	}
	return schedule.Step(ied, *s.Cycle, 1, eom)
}

// RateResetTerms configures the rate-reset sub-schedule.
type RateResetTerms struct {
	Schedule SubSchedule

	// MarketObject identifies the observed reference rate.
	MarketObject string

	// Multiplier and Spread turn the observation into the new rate:
	// rate = observed*Multiplier + Spread. A zero-valued Multiplier is
	// treated as one.
	Multiplier decimal.Decimal
	Spread     decimal.Decimal

	// LifeFloor and LifeCap bound the life of the rate. Nil means
	// unbounded.
	LifeFloor *decimal.Decimal
	LifeCap   *decimal.Decimal

	// NextResetRate, when present, turns the first reset after the
	// status date into a fixed reset at this rate.
	NextResetRate *decimal.Decimal
}

// effectiveMultiplier treats the zero value as identity so term sheets
// may omit the field.
func (r *RateResetTerms) effectiveMultiplier() decimal.Decimal {
	if r.Multiplier.IsZero() {
		return plusOne
	}
	return r.Multiplier
}

// clamp applies the life floor and cap to a candidate rate.
func (r *RateResetTerms) clamp(rate decimal.Decimal) decimal.Decimal {
	if r.LifeFloor != nil && rate.LessThan(*r.LifeFloor) {
		rate = *r.LifeFloor
	}
	if r.LifeCap != nil && rate.GreaterThan(*r.LifeCap) {
		rate = *r.LifeCap
	}
	return rate
}

// FeeBasis selects how fees are computed.
type FeeBasis string

const (
	// FeeAbsolute pays the flat fee rate at every fee event.
	FeeAbsolute FeeBasis = "A"

	// FeeNotional accrues the fee rate on the notional between fee
	// events, like interest.
	FeeNotional FeeBasis = "N"
)

// FeeTerms configures the fee sub-schedule.
type FeeTerms struct {
	Schedule SubSchedule
	Basis    FeeBasis
	Rate     decimal.Decimal

	// Accrued seeds the fee accrual at the initial exchange.
	Accrued decimal.Decimal
}

// ScalingEffect flags which multipliers a scaling event moves. The code
// letters follow the standard: I scales interest, N scales notional.
type ScalingEffect string

const (
	ScalingNone     ScalingEffect = "000"
	ScalingInterest ScalingEffect = "I00"
	ScalingNotional ScalingEffect = "0N0"
	ScalingBoth     ScalingEffect = "IN0"
)

// ScalesInterest reports whether interest payoffs are rescaled.
func (e ScalingEffect) ScalesInterest() bool {
	return e == ScalingInterest || e == ScalingBoth
}

// ScalesNotional reports whether redemption payoffs are rescaled.
func (e ScalingEffect) ScalesNotional() bool {
	return e == ScalingNotional || e == ScalingBoth
}

// ScalingTerms configures index scaling.
type ScalingTerms struct {
	Schedule SubSchedule
	Effect   ScalingEffect

	// MarketObject identifies the scaling index; IndexAtStatusDate is
	// the base level the observed index is divided by.
	MarketObject      string
	IndexAtStatusDate decimal.Decimal
}

// CalculationBaseMode declares what balance interest accrues against.
type CalculationBaseMode string

const (
	// CalcBaseNotional mirrors the current notional.
	CalcBaseNotional CalculationBaseMode = "NT"

	// CalcBaseInitial freezes the base at the initial exchange.
	CalcBaseInitial CalculationBaseMode = "NTIED"

	// CalcBaseLagged updates the base only at explicit fixing events.
	CalcBaseLagged CalculationBaseMode = "NTL"
)

// CalculationBaseTerms configures the interest calculation base.
type CalculationBaseTerms struct {
	Mode CalculationBaseMode

	// Amount seeds the frozen or lagged base. Nil means the notional.
	Amount *decimal.Decimal

	// Schedule drives fixing events in lagged mode.
	Schedule SubSchedule
}

// =============================================================================
// ARRAY TERMS - Exotic per-segment schedules
// =============================================================================

// PrincipalKind says which direction a principal segment moves.
type PrincipalKind string

const (
	PrincipalDecrease PrincipalKind = "DEC"
	PrincipalIncrease PrincipalKind = "INC"
)

// RateKind says whether a rate segment is pre-agreed or observed.
type RateKind string

const (
	RateFixed    RateKind = "FIX"
	RateVariable RateKind = "VAR"
)

// ArrayTerms hold the exotic variant's parallel per-segment arrays. Each
// principal segment i generates its recurring schedule from Anchors[i]
// and Cycles[i], bounded by the next segment's anchor (the contract end
// for the last segment). A nil cycle entry is a single occurrence.
type ArrayTerms struct {
	PrincipalAnchors []time.Time
	PrincipalCycles  []*schedule.Cycle
	PrincipalAmounts []decimal.Decimal
	PrincipalKinds   []PrincipalKind

	InterestAnchors []time.Time
	InterestCycles  []*schedule.Cycle

	RateAnchors []time.Time
	RateCycles  []*schedule.Cycle
	RateValues  []decimal.Decimal
	RateKinds   []RateKind
}

// =============================================================================
// CONTRACT ATTRIBUTES - The static terms
// =============================================================================

// ContractAttributes are the immutable terms a contract is simulated
// from. Construct once, never mutate; the engine only reads.
//
// Optional numeric terms are pointers so "absent" and "zero" stay
// distinguishable; optional sub-structures are nil when the contract
// does not carry that feature.
type ContractAttributes struct {
	ContractID   string
	ContractType ContractType
	Role         ContractRole
	Currency     string

	// StatusDate is the per-contract "now": the state reference time.
	StatusDate time.Time

	InitialExchangeDate time.Time

	// MaturityDate may be zero for amortizers; it is then derived from
	// the redemption schedule.
	MaturityDate time.Time

	PurchaseDate    time.Time
	PriceAtPurchase decimal.Decimal

	TerminationDate    time.Time
	PriceAtTermination decimal.Decimal

	// Notional is the unsigned principal amount; the role supplies the
	// sign. PremiumDiscount adjusts the initial exchange payoff.
	Notional        decimal.Decimal
	PremiumDiscount decimal.Decimal

	NominalRate decimal.Decimal

	// AccruedInterest seeds the accrual at the initial exchange; nil
	// derives it (zero for newly issued contracts).
	AccruedInterest *decimal.Decimal

	// CapitalizationEndDate converts interest payments at or before it
	// into capitalization events.
	CapitalizationEndDate time.Time

	DayCount    conventions.DayCount
	BusinessDay conventions.BusinessDayConvention
	EndOfMonth  conventions.EndOfMonth
	Calendar    conventions.Calendar

	InterestPayment     *SubSchedule
	PrincipalRedemption *SubSchedule

	// NextRedemption is the scheduled installment amount (unsigned).
	// Nil lets the engine derive it: linear amortizers spread the
	// notional over the redemption schedule, annuities solve for it.
	NextRedemption *decimal.Decimal

	RateReset       *RateResetTerms
	Fee             *FeeTerms
	Scaling         *ScalingTerms
	CalculationBase *CalculationBaseTerms

	// ArraySchedule holds the exotic variant's segments.
	ArraySchedule *ArrayTerms

	// AnalysisTimes add cashless snapshot events at the given times.
	AnalysisTimes []time.Time
}

// calendarOr returns the configured calendar or the no-holiday default.
func (a *ContractAttributes) calendarOr() conventions.Calendar {
	if a.Calendar == nil {
		return conventions.NoHolidays{}
	}
	return a.Calendar
}

// dayCounter builds the year-fraction calculator for the given maturity
// (state maturity once derived, attribute maturity before that).
func (a *ContractAttributes) dayCounter(maturity time.Time) conventions.DayCounter {
	return conventions.DayCounter{
		Convention:   a.DayCount,
		MaturityDate: maturity,
		Calendar:     a.calendarOr(),
	}
}

// calcBaseMode returns the declared calculation-base mode, defaulting to
// mirroring the notional.
func (a *ContractAttributes) calcBaseMode() CalculationBaseMode {
	if a.CalculationBase == nil || a.CalculationBase.Mode == "" {
		return CalcBaseNotional
	}
	return a.CalculationBase.Mode
}

// roleSign is shorthand for the role's +-1 multiplier.
func (a *ContractAttributes) roleSign() decimal.Decimal {
	return a.Role.Sign()
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the attribute combination once, before any schedule is
// assembled. Every failure is a ConfigurationError naming the offending
// attribute.
func (a *ContractAttributes) Validate() error {
	switch a.ContractType {
	case TypeBullet, TypeLinearAmortizer, TypeNegativeAmortizer, TypeAnnuity, TypeExotic:
	default:
		return &ConfigurationError{Attribute: "contractType", Reason: "unknown contract type"}
	}
	if !a.Role.Valid() {
		return &ConfigurationError{Attribute: "contractRole", Reason: "must be RPA or RPL"}
	}
	if a.InitialExchangeDate.IsZero() {
		return &ConfigurationError{Attribute: "initialExchangeDate", Reason: "required"}
	}
	if a.StatusDate.IsZero() {
		return &ConfigurationError{Attribute: "statusDate", Reason: "required"}
	}
	if !a.Notional.IsPositive() {
		return &ConfigurationError{Attribute: "notionalPrincipal", Reason: "must be positive"}
	}
	if a.DayCount != "" && !a.DayCount.Valid() {
		return &ConfigurationError{Attribute: "dayCountConvention", Reason: "unknown convention"}
	}
	if a.BusinessDay != "" && !a.BusinessDay.Valid() {
		return &ConfigurationError{Attribute: "businessDayConvention", Reason: "unknown convention"}
	}
	if a.EndOfMonth != "" && !a.EndOfMonth.Valid() {
		return &ConfigurationError{Attribute: "endOfMonthConvention", Reason: "unknown convention"}
	}
	if !a.TerminationDate.IsZero() && !a.PurchaseDate.IsZero() &&
		!a.TerminationDate.After(a.PurchaseDate) {
		return &ConfigurationError{Attribute: "terminationDate", Reason: "must follow the purchase date"}
	}
	if a.Scaling != nil && (a.Scaling.Effect.ScalesNotional() || a.Scaling.Effect.ScalesInterest()) &&
		!a.Scaling.IndexAtStatusDate.IsPositive() {
		return &ConfigurationError{Attribute: "scalingIndexAtStatusDate", Reason: "must be positive"}
	}

	switch a.ContractType {
	case TypeBullet:
		if a.MaturityDate.IsZero() {
			return &ConfigurationError{Attribute: "maturityDate", Reason: "required for bullet contracts"}
		}
	case TypeLinearAmortizer, TypeNegativeAmortizer, TypeAnnuity:
		if a.PrincipalRedemption == nil {
			return &ConfigurationError{Attribute: "cycleOfPrincipalRedemption", Reason: "amortizers need a redemption schedule"}
		}
		if a.MaturityDate.IsZero() && a.NextRedemption == nil {
			return &ConfigurationError{Attribute: "maturityDate", Reason: "no maturity and no redemption amount to derive it from"}
		}
		if a.ContractType == TypeNegativeAmortizer && a.NextRedemption == nil {
			return &ConfigurationError{Attribute: "nextPrincipalRedemptionPayment", Reason: "required for negative amortizers"}
		}
	case TypeExotic:
		if a.MaturityDate.IsZero() {
			return &ConfigurationError{Attribute: "maturityDate", Reason: "required for array-schedule contracts"}
		}
		if err := a.validateArrays(); err != nil {
			return err
		}
	}

	if a.calcBaseMode() == CalcBaseLagged && a.CalculationBase.Schedule.Anchor.IsZero() &&
		a.CalculationBase.Schedule.Cycle == nil {
		return &ConfigurationError{Attribute: "cycleOfInterestCalculationBase", Reason: "lagged base needs a fixing schedule"}
	}

	return nil
}

func (a *ContractAttributes) validateArrays() error {
	arr := a.ArraySchedule
	if arr == nil || len(arr.PrincipalAnchors) == 0 {
		return &ConfigurationError{Attribute: "arrayCycleAnchorDateOfPrincipalRedemption", Reason: "array-schedule contracts need principal segments"}
	}
	n := len(arr.PrincipalAnchors)
	if len(arr.PrincipalCycles) != n || len(arr.PrincipalAmounts) != n || len(arr.PrincipalKinds) != n {
		return &ConfigurationError{Attribute: "arrayNextPrincipalRedemptionPayment", Reason: "principal arrays must have equal length"}
	}
	if len(arr.InterestAnchors) != len(arr.InterestCycles) {
		return &ConfigurationError{Attribute: "arrayCycleOfInterestPayment", Reason: "interest arrays must have equal length"}
	}
	m := len(arr.RateAnchors)
	if len(arr.RateCycles) != m || len(arr.RateValues) != m || len(arr.RateKinds) != m {
		return &ConfigurationError{Attribute: "arrayRate", Reason: "rate arrays must have equal length"}
	}
	for _, kind := range arr.RateKinds {
		if kind == RateVariable && (a.RateReset == nil || a.RateReset.MarketObject == "") {
			return &ConfigurationError{Attribute: "marketObjectCodeOfRateReset", Reason: "variable rate segments need a market object"}
		}
	}
	for i := 1; i < n; i++ {
		if !arr.PrincipalAnchors[i].After(arr.PrincipalAnchors[i-1]) {
			return &ConfigurationError{Attribute: "arrayCycleAnchorDateOfPrincipalRedemption", Reason: "segment anchors must strictly increase"}
		}
	}
	return nil
}
