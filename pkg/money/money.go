// Package money provides currency-safe yen arithmetic using the Fowler
// Money pattern. Amounts are integer yen throughout; JPY has no minor
// units, so the stored int64 is the displayed value.
package money

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an immutable yen amount.
type Money struct {
	m *money.Money
}

// Yen creates a Money value from whole yen.
func Yen(amount int64) *Money {
	return &Money{m: money.New(amount, money.JPY)}
}

// Zero is the zero yen value.
func Zero() *Money {
	return Yen(0)
}

// Amount returns the value in whole yen.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Add returns m + other.
func (m *Money) Add(other *Money) (*Money, error) {
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, fmt.Errorf("add money: %w", err)
	}
	return &Money{m: sum}, nil
}

// Subtract returns m - other.
func (m *Money) Subtract(other *Money) (*Money, error) {
	diff, err := m.m.Subtract(other.m)
	if err != nil {
		return nil, fmt.Errorf("subtract money: %w", err)
	}
	return &Money{m: diff}, nil
}

// Abs returns the absolute value.
func (m *Money) Abs() *Money {
	return &Money{m: m.m.Absolute()}
}

// IsNegative reports whether the amount is below zero.
func (m *Money) IsNegative() bool {
	return m.m.IsNegative()
}

// Display renders the amount with the yen symbol and digit grouping,
// e.g. ¥12,800.
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return money.New(0, money.JPY).Display()
	}
	return m.m.Display()
}

// ShareOf returns the percentage this amount represents of total, rounded
// to one decimal place. A zero total yields zero.
func (m *Money) ShareOf(total *Money) decimal.Decimal {
	if total.Amount() == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(m.Amount()).
		Div(decimal.NewFromInt(total.Amount())).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}
