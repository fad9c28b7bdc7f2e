package contracts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/contract-engine/conventions"
)

// SolveAnnuityPayment finds the constant installment that fully
// amortizes a balance over the given payment dates.
//
// Discounting every installment back to start at the contract rate and
// equating the discounted sum with the outstanding balance gives
//
//	payment = (notional + accrued) / sum over k of d(k)
//	d(k)    = product over i <= k of 1/(1 + rate*yf(t(i-1), t(i)))
//
// With a zero rate this collapses to equal installments. An empty date
// list yields zero; the caller decides whether that is an error.
func SolveAnnuityPayment(start time.Time, dates []time.Time, notional, accrued, rate decimal.Decimal, dc conventions.DayCounter) decimal.Decimal {
	if len(dates) == 0 {
		return decimal.Zero
	}
	discount := plusOne
	sum := decimal.Zero
	prev := start
	for _, t := range dates {
		factor := plusOne.Add(rate.Mul(dc.YearFraction(prev, t)))
		if factor.IsZero() {
			return decimal.Zero
		}
		discount = discount.Div(factor)
		sum = sum.Add(discount)
		prev = t
	}
	return notional.Add(accrued).Div(sum)
}
