package kernel

import (
	"github.com/shopspring/decimal"
)

// Money is a monetary amount in the store currency, always held at 2 decimal
// places. Every constructor and arithmetic operation rounds its result before
// returning, so sums of Money values follow the round-then-sum policy the
// reconciliation math depends on. Amounts may be negative (gain/loss deltas).
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// MoneyFromFloat builds a Money from a float64, rounding to 2 decimals.
func MoneyFromFloat(v float64) Money {
	return Money{amount: decimal.NewFromFloat(v).Round(2)}
}

// MoneyFromDecimal builds a Money from a decimal value, rounding to 2 decimals.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

// MoneyFromString parses a decimal string such as "12.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d.Round(2)}, nil
}

// Add returns m + other rounded to 2 decimals.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// Sub returns m - other rounded to 2 decimals.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount).Round(2)}
}

// MulInt returns m multiplied by an integer quantity, rounded to 2 decimals.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal compares two amounts by value.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the underlying decimal for ratio math (margins).
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for serialization boundaries.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount with exactly 2 decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
