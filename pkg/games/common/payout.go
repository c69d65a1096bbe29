package common

import "github.com/shopspring/decimal"

// Common multipliers
var (
	Lose      = decimal.Zero
	Push      = decimal.NewFromInt(1)
	EvenMoney = decimal.NewFromInt(2)
)

// Multiplier builds a whole-number multiplier
func Multiplier(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Payout is bet times multiplier, rounded down to whole chips
func Payout(bet int64, multiplier decimal.Decimal) int64 {
	if bet <= 0 || !multiplier.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(bet).Mul(multiplier).Floor().IntPart()
}
