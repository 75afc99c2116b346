// Package money holds the fixed-point rate arithmetic shared by the engines.
// Balances move as int64 whole currency units; fractional rate products are
// computed with decimals and rounded half-up to a unit at the moment they are
// credited, so repeated sweeps over the same inputs always produce the same
// amount.
package money

import (
	"github.com/shopspring/decimal"
)

var (
	// SavingsDailyRate is the pro-rata savings interest accrued per day
	// remaining to withdrawal, per unit contributed.
	SavingsDailyRate = decimal.RequireFromString("0.000329")

	// CooperativeDailyRate is the projected-dividend accrual per day
	// remaining in the year, per unit contributed.
	CooperativeDailyRate = decimal.RequireFromString("0.0004658")

	// DividendRate is the realized month-end dividend, as a share of the
	// membership balance at the snapshot instant.
	DividendRate = decimal.RequireFromString("0.02")

	// SavingsCancelPenaltyRate is withheld from the saved amount when a plan
	// is cancelled before maturity.
	SavingsCancelPenaltyRate = decimal.RequireFromString("0.02")
)

// ProRata returns round(days * rate * amount) in whole units.
func ProRata(days int, rate decimal.Decimal, amount int64) int64 {
	return decimal.NewFromInt(int64(days)).
		Mul(rate).
		Mul(decimal.NewFromInt(amount)).
		Round(0).
		IntPart()
}

// Share returns round(rate * amount) in whole units.
func Share(rate decimal.Decimal, amount int64) int64 {
	return rate.Mul(decimal.NewFromInt(amount)).Round(0).IntPart()
}

// PercentOf returns amount * percent / 100, truncated the way the loan
// contracts state it: whole-unit interest on whole-unit principals.
func PercentOf(amount, percent int64) int64 {
	return amount * percent / 100
}
