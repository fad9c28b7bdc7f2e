package contracts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/schedule"
)

// maxNettingSteps bounds the maturity search for contracts whose end is
// found by simulating the redemption schedule forward.
const maxNettingSteps = 10000

// deriveMaturity resolves the contract end. Explicit terms win;
// amortizers without one run their redemption schedule forward until
// the notional is exhausted.
func deriveMaturity(attrs *ContractAttributes) (time.Time, error) {
	if !attrs.MaturityDate.IsZero() {
		return attrs.MaturityDate, nil
	}
	switch attrs.ContractType {
	case TypeLinearAmortizer:
		return linearMaturity(attrs)
	case TypeNegativeAmortizer, TypeAnnuity:
		return nettingMaturity(attrs)
	default:
		return time.Time{}, &ConfigurationError{Attribute: "maturityDate", Reason: "required"}
	}
}

// linearMaturity places the end after as many full installments as the
// notional needs, the last one possibly partial:
//
//	maturity = anchor + (ceil(notional/prnxt) - 1) cycles
func linearMaturity(attrs *ContractAttributes) (time.Time, error) {
	prnxt := *attrs.NextRedemption
	if !prnxt.IsPositive() {
		return time.Time{}, &ConfigurationError{Attribute: "nextPrincipalRedemptionPayment", Reason: "must be positive"}
	}
	sub := attrs.PrincipalRedemption
	anchor := sub.anchorOr(attrs.InitialExchangeDate, attrs.EndOfMonth)
	if sub.Cycle == nil {
		return anchor, nil
	}
	n := attrs.Notional.Div(prnxt).Ceil().IntPart()
	if n < 1 {
		n = 1
	}
	return schedule.Step(anchor, *sub.Cycle, int(n-1), attrs.EndOfMonth), nil
}

// nettingMaturity walks the redemption schedule, netting each scheduled
// payment against the interest accrued over the period, until the
// balance drops inside the amortization tolerance. A payment that does
// not cover its period's interest would walk forever and is rejected.
func nettingMaturity(attrs *ContractAttributes) (time.Time, error) {
	prnxt := *attrs.NextRedemption
	if !prnxt.IsPositive() {
		return time.Time{}, &ConfigurationError{Attribute: "nextPrincipalRedemptionPayment", Reason: "must be positive"}
	}
	sub := attrs.PrincipalRedemption
	anchor := sub.anchorOr(attrs.InitialExchangeDate, attrs.EndOfMonth)
	if sub.Cycle == nil {
		return anchor, nil
	}

	dc := attrs.dayCounter(time.Time{})
	balance := attrs.Notional
	rate := attrs.NominalRate

	prev := schedule.Step(anchor, *sub.Cycle, -1, attrs.EndOfMonth)
	if prev.Before(attrs.InitialExchangeDate) {
		prev = attrs.InitialExchangeDate
	}
	for n := 0; n < maxNettingSteps; n++ {
		t := schedule.Step(anchor, *sub.Cycle, n, attrs.EndOfMonth)
		interest := dc.YearFraction(prev, t).Mul(rate).Mul(balance)
		net := prnxt.Sub(interest)
		if !net.IsPositive() {
			return time.Time{}, &ConfigurationError{Attribute: "nextPrincipalRedemptionPayment", Reason: "payment does not cover accrued interest"}
		}
		balance = balance.Sub(net)
		if balance.LessThanOrEqual(AmortizationTolerance) {
			return t, nil
		}
		prev = t
	}
	return time.Time{}, &ConfigurationError{Attribute: "cycleOfPrincipalRedemption", Reason: "schedule does not amortize the notional"}
}

// redemptionDates expands the principal redemption schedule through
// maturity, business-day adjusted. The date at maturity belongs to the
// schedule: the final installment is a redemption event, the maturity
// event then settles whatever remains.
func redemptionDates(attrs *ContractAttributes, maturity time.Time) []time.Time {
	sub := attrs.PrincipalRedemption
	if sub == nil {
		return nil
	}
	anchor := sub.anchorOr(attrs.InitialExchangeDate, attrs.EndOfMonth)
	if sub.Cycle == nil {
		return []time.Time{attrs.BusinessDay.Adjust(anchor, attrs.calendarOr())}
	}
	return schedule.Generate(anchor, *sub.Cycle, maturity, attrs.EndOfMonth, attrs.BusinessDay, attrs.calendarOr())
}

// seedRedemption resolves the role-signed installment amount carried in
// state. Explicit terms win; the linear amortizer spreads the notional
// evenly over its redemption dates; the annuity solves for the constant
// payment; the exotic variant starts on its first segment.
func seedRedemption(attrs *ContractAttributes, maturity time.Time) (decimal.Decimal, error) {
	sign := attrs.roleSign()
	switch attrs.ContractType {
	case TypeBullet:
		return decimal.Zero, nil
	case TypeExotic:
		return sign.Mul(attrs.ArraySchedule.PrincipalAmounts[0]), nil
	}
	if attrs.NextRedemption != nil {
		return sign.Mul(*attrs.NextRedemption), nil
	}
	dates := redemptionDates(attrs, maturity)
	if len(dates) == 0 {
		return decimal.Zero, &ConfigurationError{Attribute: "cycleOfPrincipalRedemption", Reason: "no redemption dates before maturity"}
	}
	switch attrs.ContractType {
	case TypeLinearAmortizer:
		count := decimal.NewFromInt(int64(len(dates)))
		return sign.Mul(attrs.Notional.Div(count)), nil
	case TypeAnnuity:
		accrued := decimal.Zero
		if attrs.AccruedInterest != nil {
			accrued = *attrs.AccruedInterest
		}
		payment := SolveAnnuityPayment(annuityStart(attrs), dates,
			attrs.Notional, accrued, attrs.NominalRate, attrs.dayCounter(maturity))
		return sign.Mul(payment), nil
	}
	return decimal.Zero, nil
}

// annuityStart is the accrual start for the initial annuity solve: one
// cycle before the redemption anchor, never before the initial exchange.
func annuityStart(attrs *ContractAttributes) time.Time {
	sub := attrs.PrincipalRedemption
	if sub == nil || sub.Cycle == nil {
		return attrs.InitialExchangeDate
	}
	anchor := sub.anchorOr(attrs.InitialExchangeDate, attrs.EndOfMonth)
	start := schedule.Step(anchor, *sub.Cycle, -1, attrs.EndOfMonth)
	if start.Before(attrs.InitialExchangeDate) {
		return attrs.InitialExchangeDate
	}
	return start
}
