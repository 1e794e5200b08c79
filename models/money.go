package models

import "github.com/shopspring/decimal"

// Money columns are numeric(12,2).
const MoneyScale = 2

// MaxMoney is the largest value a numeric(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// FitsMoneyScale reports whether d has no digits past the cents.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// FitsMoney reports whether d can be stored in a money column unchanged.
func FitsMoney(d decimal.Decimal) bool {
	return FitsMoneyScale(d) && d.Abs().LessThanOrEqual(MaxMoney)
}
