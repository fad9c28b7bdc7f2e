/*
Package terms turns term sheets into contract attributes.

PURPOSE:
  Converts flat JSON or YAML term sheets into an immutable
  contracts.ContractAttributes. Field names follow the standard contract
  dictionary, so term sheets written for other engines load unchanged.
  Decoding is strict: an unknown or misspelled field is an error naming
  the field, never silently dropped.

JSON SCHEMA (bullet example):
  {
    "contractType": "PAM",
    "contractRole": "RPA",
    "currency": "USD",
    "statusDate": "2021-01-01",
    "initialExchangeDate": "2021-01-02",
    "maturityDate": "2031-01-02",
    "notionalPrincipal": 1000000,
    "nominalInterestRate": 0.05,
    "dayCountConvention": "A360",
    "cycleAnchorDateOfInterestPayment": "2021-07-02",
    "cycleOfInterestPayment": "6M"
  }

KEY FEATURES:
  - Strict decode for JSON and YAML (unknown field = error)
  - Eager cycle parsing, so bad cycle syntax fails at construction
  - Enum validation with the offending value in the error
  - ISO-8601 timestamps with a date-only fallback
  - Defaults: role RPA, day count 30E360, end-of-month SD, business-day
    NONE, calendar NC; a missing contractID gets a generated UUID

USAGE:
  attrs, err := terms.FromJSON(data)
  if err != nil { ... }
  history, err := contracts.Simulate(attrs, observer)

SEE ALSO:
  - contracts/attributes.go: the target structure and its validation
  - schedule/cycle.go: the cycle string grammar
*/
package terms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/contract-engine/contracts"
	"github.com/warp/contract-engine/conventions"
	"github.com/warp/contract-engine/schedule"
)

// =============================================================================
// TERM SHEET - flat DTO
// =============================================================================

// TermSheet is the wire representation of one contract's terms. All
// fields are optional at the decode level; Attributes applies defaults
// and the contract-level validation decides what is required.
type TermSheet struct {
	ContractID   string `json:"contractID,omitempty" yaml:"contractID,omitempty"`
	ContractType string `json:"contractType" yaml:"contractType"`
	ContractRole string `json:"contractRole,omitempty" yaml:"contractRole,omitempty"`
	Currency     string `json:"currency,omitempty" yaml:"currency,omitempty"`

	StatusDate          string `json:"statusDate" yaml:"statusDate"`
	InitialExchangeDate string `json:"initialExchangeDate" yaml:"initialExchangeDate"`
	MaturityDate        string `json:"maturityDate,omitempty" yaml:"maturityDate,omitempty"`

	PurchaseDate        string  `json:"purchaseDate,omitempty" yaml:"purchaseDate,omitempty"`
	PriceAtPurchaseDate float64 `json:"priceAtPurchaseDate,omitempty" yaml:"priceAtPurchaseDate,omitempty"`
	TerminationDate     string  `json:"terminationDate,omitempty" yaml:"terminationDate,omitempty"`
	PriceAtTermination  float64 `json:"priceAtTerminationDate,omitempty" yaml:"priceAtTerminationDate,omitempty"`

	NotionalPrincipal    float64  `json:"notionalPrincipal" yaml:"notionalPrincipal"`
	PremiumDiscountAtIED float64  `json:"premiumDiscountAtIED,omitempty" yaml:"premiumDiscountAtIED,omitempty"`
	NominalInterestRate  float64  `json:"nominalInterestRate,omitempty" yaml:"nominalInterestRate,omitempty"`
	AccruedInterest      *float64 `json:"accruedInterest,omitempty" yaml:"accruedInterest,omitempty"`

	CapitalizationEndDate string `json:"capitalizationEndDate,omitempty" yaml:"capitalizationEndDate,omitempty"`

	DayCountConvention    string `json:"dayCountConvention,omitempty" yaml:"dayCountConvention,omitempty"`
	BusinessDayConvention string `json:"businessDayConvention,omitempty" yaml:"businessDayConvention,omitempty"`
	EndOfMonthConvention  string `json:"endOfMonthConvention,omitempty" yaml:"endOfMonthConvention,omitempty"`
	Calendar              string `json:"calendar,omitempty" yaml:"calendar,omitempty"`

	CycleAnchorDateOfInterestPayment string `json:"cycleAnchorDateOfInterestPayment,omitempty" yaml:"cycleAnchorDateOfInterestPayment,omitempty"`
	CycleOfInterestPayment           string `json:"cycleOfInterestPayment,omitempty" yaml:"cycleOfInterestPayment,omitempty"`

	CycleAnchorDateOfPrincipalRedemption string   `json:"cycleAnchorDateOfPrincipalRedemption,omitempty" yaml:"cycleAnchorDateOfPrincipalRedemption,omitempty"`
	CycleOfPrincipalRedemption           string   `json:"cycleOfPrincipalRedemption,omitempty" yaml:"cycleOfPrincipalRedemption,omitempty"`
	NextPrincipalRedemptionPayment       *float64 `json:"nextPrincipalRedemptionPayment,omitempty" yaml:"nextPrincipalRedemptionPayment,omitempty"`

	CycleAnchorDateOfRateReset  string   `json:"cycleAnchorDateOfRateReset,omitempty" yaml:"cycleAnchorDateOfRateReset,omitempty"`
	CycleOfRateReset            string   `json:"cycleOfRateReset,omitempty" yaml:"cycleOfRateReset,omitempty"`
	MarketObjectCodeOfRateReset string   `json:"marketObjectCodeOfRateReset,omitempty" yaml:"marketObjectCodeOfRateReset,omitempty"`
	RateMultiplier              float64  `json:"rateMultiplier,omitempty" yaml:"rateMultiplier,omitempty"`
	RateSpread                  float64  `json:"rateSpread,omitempty" yaml:"rateSpread,omitempty"`
	LifeFloor                   *float64 `json:"lifeFloor,omitempty" yaml:"lifeFloor,omitempty"`
	LifeCap                     *float64 `json:"lifeCap,omitempty" yaml:"lifeCap,omitempty"`
	NextResetRate               *float64 `json:"nextResetRate,omitempty" yaml:"nextResetRate,omitempty"`

	CycleAnchorDateOfFee string  `json:"cycleAnchorDateOfFee,omitempty" yaml:"cycleAnchorDateOfFee,omitempty"`
	CycleOfFee           string  `json:"cycleOfFee,omitempty" yaml:"cycleOfFee,omitempty"`
	FeeBasis             string  `json:"feeBasis,omitempty" yaml:"feeBasis,omitempty"`
	FeeRate              float64 `json:"feeRate,omitempty" yaml:"feeRate,omitempty"`
	FeeAccrued           float64 `json:"feeAccrued,omitempty" yaml:"feeAccrued,omitempty"`

	CycleAnchorDateOfScalingIndex  string  `json:"cycleAnchorDateOfScalingIndex,omitempty" yaml:"cycleAnchorDateOfScalingIndex,omitempty"`
	CycleOfScalingIndex            string  `json:"cycleOfScalingIndex,omitempty" yaml:"cycleOfScalingIndex,omitempty"`
	ScalingEffect                  string  `json:"scalingEffect,omitempty" yaml:"scalingEffect,omitempty"`
	MarketObjectCodeOfScalingIndex string  `json:"marketObjectCodeOfScalingIndex,omitempty" yaml:"marketObjectCodeOfScalingIndex,omitempty"`
	ScalingIndexAtStatusDate       float64 `json:"scalingIndexAtStatusDate,omitempty" yaml:"scalingIndexAtStatusDate,omitempty"`

	InterestCalculationBase                  string   `json:"interestCalculationBase,omitempty" yaml:"interestCalculationBase,omitempty"`
	InterestCalculationBaseAmount            *float64 `json:"interestCalculationBaseAmount,omitempty" yaml:"interestCalculationBaseAmount,omitempty"`
	CycleAnchorDateOfInterestCalculationBase string   `json:"cycleAnchorDateOfInterestCalculationBase,omitempty" yaml:"cycleAnchorDateOfInterestCalculationBase,omitempty"`
	CycleOfInterestCalculationBase           string   `json:"cycleOfInterestCalculationBase,omitempty" yaml:"cycleOfInterestCalculationBase,omitempty"`

	ArrayCycleAnchorDateOfPrincipalRedemption []string  `json:"arrayCycleAnchorDateOfPrincipalRedemption,omitempty" yaml:"arrayCycleAnchorDateOfPrincipalRedemption,omitempty"`
	ArrayCycleOfPrincipalRedemption           []string  `json:"arrayCycleOfPrincipalRedemption,omitempty" yaml:"arrayCycleOfPrincipalRedemption,omitempty"`
	ArrayNextPrincipalRedemptionPayment       []float64 `json:"arrayNextPrincipalRedemptionPayment,omitempty" yaml:"arrayNextPrincipalRedemptionPayment,omitempty"`
	ArrayIncreaseDecrease                     []string  `json:"arrayIncreaseDecrease,omitempty" yaml:"arrayIncreaseDecrease,omitempty"`

	ArrayCycleAnchorDateOfInterestPayment []string `json:"arrayCycleAnchorDateOfInterestPayment,omitempty" yaml:"arrayCycleAnchorDateOfInterestPayment,omitempty"`
	ArrayCycleOfInterestPayment           []string `json:"arrayCycleOfInterestPayment,omitempty" yaml:"arrayCycleOfInterestPayment,omitempty"`

	ArrayCycleAnchorDateOfRateReset []string  `json:"arrayCycleAnchorDateOfRateReset,omitempty" yaml:"arrayCycleAnchorDateOfRateReset,omitempty"`
	ArrayCycleOfRateReset           []string  `json:"arrayCycleOfRateReset,omitempty" yaml:"arrayCycleOfRateReset,omitempty"`
	ArrayRate                       []float64 `json:"arrayRate,omitempty" yaml:"arrayRate,omitempty"`
	ArrayFixedVariable              []string  `json:"arrayFixedVariable,omitempty" yaml:"arrayFixedVariable,omitempty"`

	AnalysisTimes []string `json:"analysisTimes,omitempty" yaml:"analysisTimes,omitempty"`
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// FromJSON decodes a JSON term sheet and builds the contract attributes.
// Unknown fields are rejected.
func FromJSON(data []byte) (*contracts.ContractAttributes, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var ts TermSheet
	if err := dec.Decode(&ts); err != nil {
		return nil, &contracts.ConfigurationError{Attribute: "termSheet", Reason: err.Error()}
	}
	return ts.Attributes()
}

// FromYAML decodes a YAML term sheet and builds the contract attributes.
// Unknown fields are rejected.
func FromYAML(data []byte) (*contracts.ContractAttributes, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var ts TermSheet
	if err := dec.Decode(&ts); err != nil {
		return nil, &contracts.ConfigurationError{Attribute: "termSheet", Reason: err.Error()}
	}
	return ts.Attributes()
}

// Attributes resolves the term sheet into validated contract attributes.
func (ts *TermSheet) Attributes() (*contracts.ContractAttributes, error) {
	attrs := &contracts.ContractAttributes{
		ContractID: ts.ContractID,
		Currency:   ts.Currency,
	}
	if attrs.ContractID == "" {
		attrs.ContractID = uuid.NewString()
	}

	var err error
	if attrs.ContractType, err = parseContractType(ts.ContractType); err != nil {
		return nil, err
	}
	if attrs.Role, err = parseRole(ts.ContractRole); err != nil {
		return nil, err
	}
	if attrs.DayCount, err = parseDayCount(ts.DayCountConvention); err != nil {
		return nil, err
	}
	if attrs.BusinessDay, err = parseBusinessDay(ts.BusinessDayConvention); err != nil {
		return nil, err
	}
	if attrs.EndOfMonth, err = parseEndOfMonth(ts.EndOfMonthConvention); err != nil {
		return nil, err
	}
	if attrs.Calendar, err = parseCalendar(ts.Calendar); err != nil {
		return nil, err
	}

	dates := []struct {
		field string
		src   string
		dst   *time.Time
	}{
		{"statusDate", ts.StatusDate, &attrs.StatusDate},
		{"initialExchangeDate", ts.InitialExchangeDate, &attrs.InitialExchangeDate},
		{"maturityDate", ts.MaturityDate, &attrs.MaturityDate},
		{"purchaseDate", ts.PurchaseDate, &attrs.PurchaseDate},
		{"terminationDate", ts.TerminationDate, &attrs.TerminationDate},
		{"capitalizationEndDate", ts.CapitalizationEndDate, &attrs.CapitalizationEndDate},
	}
	for _, d := range dates {
		if *d.dst, err = parseTime(d.field, d.src); err != nil {
			return nil, err
		}
	}

	attrs.Notional = dec(ts.NotionalPrincipal)
	attrs.PremiumDiscount = dec(ts.PremiumDiscountAtIED)
	attrs.NominalRate = dec(ts.NominalInterestRate)
	attrs.AccruedInterest = decPtr(ts.AccruedInterest)
	attrs.PriceAtPurchase = dec(ts.PriceAtPurchaseDate)
	attrs.PriceAtTermination = dec(ts.PriceAtTermination)
	attrs.NextRedemption = decPtr(ts.NextPrincipalRedemptionPayment)

	if attrs.InterestPayment, err = subSchedule("cycleAnchorDateOfInterestPayment",
		ts.CycleAnchorDateOfInterestPayment, "cycleOfInterestPayment", ts.CycleOfInterestPayment); err != nil {
		return nil, err
	}
	if attrs.PrincipalRedemption, err = subSchedule("cycleAnchorDateOfPrincipalRedemption",
		ts.CycleAnchorDateOfPrincipalRedemption, "cycleOfPrincipalRedemption", ts.CycleOfPrincipalRedemption); err != nil {
		return nil, err
	}

	if attrs.RateReset, err = ts.rateResetTerms(); err != nil {
		return nil, err
	}
	if attrs.Fee, err = ts.feeTerms(); err != nil {
		return nil, err
	}
	if attrs.Scaling, err = ts.scalingTerms(); err != nil {
		return nil, err
	}
	if attrs.CalculationBase, err = ts.calculationBaseTerms(); err != nil {
		return nil, err
	}
	if attrs.ArraySchedule, err = ts.arrayTerms(); err != nil {
		return nil, err
	}

	for i, s := range ts.AnalysisTimes {
		at, err := parseTime(fmt.Sprintf("analysisTimes[%d]", i), s)
		if err != nil {
			return nil, err
		}
		attrs.AnalysisTimes = append(attrs.AnalysisTimes, at)
	}

	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	return attrs, nil
}

// =============================================================================
// OPTIONAL TERM BLOCKS
// =============================================================================

func (ts *TermSheet) rateResetTerms() (*contracts.RateResetTerms, error) {
	if ts.CycleAnchorDateOfRateReset == "" && ts.CycleOfRateReset == "" &&
		ts.MarketObjectCodeOfRateReset == "" {
		return nil, nil
	}
	sub, err := subSchedule("cycleAnchorDateOfRateReset", ts.CycleAnchorDateOfRateReset,
		"cycleOfRateReset", ts.CycleOfRateReset)
	if err != nil {
		return nil, err
	}
	rr := &contracts.RateResetTerms{
		MarketObject:  ts.MarketObjectCodeOfRateReset,
		Multiplier:    dec(ts.RateMultiplier),
		Spread:        dec(ts.RateSpread),
		LifeFloor:     decPtr(ts.LifeFloor),
		LifeCap:       decPtr(ts.LifeCap),
		NextResetRate: decPtr(ts.NextResetRate),
	}
	if sub != nil {
		rr.Schedule = *sub
	}
	return rr, nil
}

func (ts *TermSheet) feeTerms() (*contracts.FeeTerms, error) {
	if ts.CycleAnchorDateOfFee == "" && ts.CycleOfFee == "" && ts.FeeRate == 0 {
		return nil, nil
	}
	basis, err := parseFeeBasis(ts.FeeBasis)
	if err != nil {
		return nil, err
	}
	sub, err := subSchedule("cycleAnchorDateOfFee", ts.CycleAnchorDateOfFee, "cycleOfFee", ts.CycleOfFee)
	if err != nil {
		return nil, err
	}
	fee := &contracts.FeeTerms{
		Basis:   basis,
		Rate:    dec(ts.FeeRate),
		Accrued: dec(ts.FeeAccrued),
	}
	if sub != nil {
		fee.Schedule = *sub
	}
	return fee, nil
}

func (ts *TermSheet) scalingTerms() (*contracts.ScalingTerms, error) {
	if ts.ScalingEffect == "" {
		return nil, nil
	}
	effect, err := parseScalingEffect(ts.ScalingEffect)
	if err != nil {
		return nil, err
	}
	sub, err := subSchedule("cycleAnchorDateOfScalingIndex", ts.CycleAnchorDateOfScalingIndex,
		"cycleOfScalingIndex", ts.CycleOfScalingIndex)
	if err != nil {
		return nil, err
	}
	sc := &contracts.ScalingTerms{
		Effect:            effect,
		MarketObject:      ts.MarketObjectCodeOfScalingIndex,
		IndexAtStatusDate: dec(ts.ScalingIndexAtStatusDate),
	}
	if sub != nil {
		sc.Schedule = *sub
	}
	return sc, nil
}

func (ts *TermSheet) calculationBaseTerms() (*contracts.CalculationBaseTerms, error) {
	if ts.InterestCalculationBase == "" {
		return nil, nil
	}
	mode, err := parseCalculationBase(ts.InterestCalculationBase)
	if err != nil {
		return nil, err
	}
	sub, err := subSchedule("cycleAnchorDateOfInterestCalculationBase", ts.CycleAnchorDateOfInterestCalculationBase,
		"cycleOfInterestCalculationBase", ts.CycleOfInterestCalculationBase)
	if err != nil {
		return nil, err
	}
	cb := &contracts.CalculationBaseTerms{
		Mode:   mode,
		Amount: decPtr(ts.InterestCalculationBaseAmount),
	}
	if sub != nil {
		cb.Schedule = *sub
	}
	return cb, nil
}

func (ts *TermSheet) arrayTerms() (*contracts.ArrayTerms, error) {
	if len(ts.ArrayCycleAnchorDateOfPrincipalRedemption) == 0 {
		return nil, nil
	}
	arr := &contracts.ArrayTerms{}
	var err error

	if arr.PrincipalAnchors, err = parseTimes("arrayCycleAnchorDateOfPrincipalRedemption",
		ts.ArrayCycleAnchorDateOfPrincipalRedemption); err != nil {
		return nil, err
	}
	if arr.PrincipalCycles, err = parseCycles("arrayCycleOfPrincipalRedemption",
		ts.ArrayCycleOfPrincipalRedemption); err != nil {
		return nil, err
	}
	for _, v := range ts.ArrayNextPrincipalRedemptionPayment {
		arr.PrincipalAmounts = append(arr.PrincipalAmounts, dec(v))
	}
	for i, s := range ts.ArrayIncreaseDecrease {
		kind, err := parsePrincipalKind(fmt.Sprintf("arrayIncreaseDecrease[%d]", i), s)
		if err != nil {
			return nil, err
		}
		arr.PrincipalKinds = append(arr.PrincipalKinds, kind)
	}

	if arr.InterestAnchors, err = parseTimes("arrayCycleAnchorDateOfInterestPayment",
		ts.ArrayCycleAnchorDateOfInterestPayment); err != nil {
		return nil, err
	}
	if arr.InterestCycles, err = parseCycles("arrayCycleOfInterestPayment",
		ts.ArrayCycleOfInterestPayment); err != nil {
		return nil, err
	}

	if arr.RateAnchors, err = parseTimes("arrayCycleAnchorDateOfRateReset",
		ts.ArrayCycleAnchorDateOfRateReset); err != nil {
		return nil, err
	}
	if arr.RateCycles, err = parseCycles("arrayCycleOfRateReset", ts.ArrayCycleOfRateReset); err != nil {
		return nil, err
	}
	for _, v := range ts.ArrayRate {
		arr.RateValues = append(arr.RateValues, dec(v))
	}
	for i, s := range ts.ArrayFixedVariable {
		kind, err := parseRateKind(fmt.Sprintf("arrayFixedVariable[%d]", i), s)
		if err != nil {
			return nil, err
		}
		arr.RateKinds = append(arr.RateKinds, kind)
	}
	return arr, nil
}

// =============================================================================
// FIELD PARSERS
// =============================================================================

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseTime accepts ISO-8601 timestamps, with or without zone, and bare
// dates. Empty input is the zero time.
func parseTime(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &contracts.ConfigurationError{Attribute: field, Reason: fmt.Sprintf("unparseable time %q", s)}
}

func parseTimes(field string, src []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(src))
	for i, s := range src {
		t, err := parseTime(fmt.Sprintf("%s[%d]", field, i), s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// parseCyclePtr parses one cycle string; empty means no cycle. The cycle
// error is passed through so callers can still match it as a schedule
// error.
func parseCyclePtr(field, s string) (*schedule.Cycle, error) {
	if s == "" {
		return nil, nil
	}
	c, err := schedule.ParseCycle(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &c, nil
}

func parseCycles(field string, src []string) ([]*schedule.Cycle, error) {
	out := make([]*schedule.Cycle, 0, len(src))
	for i, s := range src {
		c, err := parseCyclePtr(fmt.Sprintf("%s[%d]", field, i), s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// subSchedule builds the anchor+cycle pair, nil when both are absent.
func subSchedule(anchorField, anchor, cycleField, cycle string) (*contracts.SubSchedule, error) {
	if anchor == "" && cycle == "" {
		return nil, nil
	}
	at, err := parseTime(anchorField, anchor)
	if err != nil {
		return nil, err
	}
	c, err := parseCyclePtr(cycleField, cycle)
	if err != nil {
		return nil, err
	}
	return &contracts.SubSchedule{Anchor: at, Cycle: c}, nil
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func decPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// =============================================================================
// ENUM PARSERS
// =============================================================================

func parseContractType(s string) (contracts.ContractType, error) {
	switch contracts.ContractType(s) {
	case contracts.TypeBullet, contracts.TypeLinearAmortizer, contracts.TypeNegativeAmortizer,
		contracts.TypeAnnuity, contracts.TypeExotic:
		return contracts.ContractType(s), nil
	}
	return "", badEnum("contractType", s)
}

func parseRole(s string) (contracts.ContractRole, error) {
	switch s {
	case "":
		return contracts.RoleAsset, nil
	case "RPA":
		return contracts.RoleAsset, nil
	case "RPL":
		return contracts.RoleLiability, nil
	}
	return "", badEnum("contractRole", s)
}

func parseDayCount(s string) (conventions.DayCount, error) {
	if s == "" {
		return conventions.DayCountThirtyE360, nil
	}
	d := conventions.DayCount(s)
	if !d.Valid() {
		return "", badEnum("dayCountConvention", s)
	}
	return d, nil
}

// parseBusinessDay accepts the plain convention names and the standard
// dictionary codes. The "shift first" and "calculate first" code pairs
// collapse to the shift itself: adjustment is pure post-processing here,
// so the distinction has no observable effect.
func parseBusinessDay(s string) (conventions.BusinessDayConvention, error) {
	switch s {
	case "", "NONE", "NOS", "NULL":
		return conventions.BusinessDayNone, nil
	case "FOLLOWING", "SCF", "CSF":
		return conventions.BusinessDayFollowing, nil
	case "MODIFIEDFOLLOWING", "SCMF", "CSMF":
		return conventions.BusinessDayModifiedFollowing, nil
	case "PRECEDING", "SCP", "CSP":
		return conventions.BusinessDayPreceding, nil
	case "MODIFIEDPRECEDING", "SCMP", "CSMP":
		return conventions.BusinessDayModifiedPreceding, nil
	}
	return "", badEnum("businessDayConvention", s)
}

func parseEndOfMonth(s string) (conventions.EndOfMonth, error) {
	switch s {
	case "", "SD":
		return conventions.EndOfMonthSameDay, nil
	case "EOM":
		return conventions.EndOfMonthPinned, nil
	}
	return "", badEnum("endOfMonthConvention", s)
}

func parseCalendar(s string) (conventions.Calendar, error) {
	switch s {
	case "", "NC":
		return conventions.NoHolidays{}, nil
	case "MF":
		return conventions.MondayToFriday{}, nil
	}
	return nil, badEnum("calendar", s)
}

func parseFeeBasis(s string) (contracts.FeeBasis, error) {
	switch s {
	case "A":
		return contracts.FeeAbsolute, nil
	case "N":
		return contracts.FeeNotional, nil
	case "":
		return "", &contracts.ConfigurationError{Attribute: "feeBasis", Reason: "required when fee terms are present"}
	}
	return "", badEnum("feeBasis", s)
}

func parseScalingEffect(s string) (contracts.ScalingEffect, error) {
	switch contracts.ScalingEffect(s) {
	case contracts.ScalingNone, contracts.ScalingInterest, contracts.ScalingNotional, contracts.ScalingBoth:
		return contracts.ScalingEffect(s), nil
	}
	return "", badEnum("scalingEffect", s)
}

func parseCalculationBase(s string) (contracts.CalculationBaseMode, error) {
	switch contracts.CalculationBaseMode(s) {
	case contracts.CalcBaseNotional, contracts.CalcBaseInitial, contracts.CalcBaseLagged:
		return contracts.CalculationBaseMode(s), nil
	}
	return "", badEnum("interestCalculationBase", s)
}

func parsePrincipalKind(field, s string) (contracts.PrincipalKind, error) {
	switch s {
	case "DEC", "D", "DECREASE":
		return contracts.PrincipalDecrease, nil
	case "INC", "I", "INCREASE":
		return contracts.PrincipalIncrease, nil
	}
	return "", badEnum(field, s)
}

func parseRateKind(field, s string) (contracts.RateKind, error) {
	switch s {
	case "FIX", "F", "FIXED":
		return contracts.RateFixed, nil
	case "VAR", "V", "VARIABLE":
		return contracts.RateVariable, nil
	}
	return "", badEnum(field, s)
}

func badEnum(field, value string) error {
	return &contracts.ConfigurationError{Attribute: field, Reason: fmt.Sprintf("unknown value %q", value)}
}
