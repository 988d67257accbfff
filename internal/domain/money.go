package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places carried by monetary values
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney applies banker's rounding to two decimals.
// Call it only at the final assignment; intermediates keep full precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyScale)
}

// Percent returns amount * pct / 100 without rounding
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}
