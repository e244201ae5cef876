// Package exact converts amounts of [money.Money] to and from arbitrary
// precision decimals.
//
// Unlike [money.Money.Decimal], which fails beyond 19 significant digits,
// the conversions in this package are exact over the whole range of amounts,
// and the arithmetic helpers only round the final result to nanounits.
package exact

import (
	"fmt"
	"math/big"

	"github.com/fixedmoney/money"
	"github.com/shopspring/decimal"
)

var (
	nanoExp   = int32(-money.FractionDigits)
	nanoScale = big.NewInt(money.FractionScale)
)

// Decimal returns the exact value of amount m.
func Decimal(m money.Money) decimal.Decimal {
	units := decimal.New(m.Units(), 0)
	return units.Add(decimal.New(int64(m.Nanos()), nanoExp))
}

// NewMoney returns an amount of the given currency equal to d.
// Digits beyond the ninth place after the decimal point are rounded using
// rounding half to even.
//
// NewMoney returns an error if the integer part of d is not within
// [money.MinUnits, money.MaxUnits].
func NewMoney(curr money.Currency, d decimal.Decimal) (money.Money, error) {
	nanos := d.RoundBank(money.FractionDigits).Shift(money.FractionDigits).BigInt()
	units, frac := new(big.Int).QuoRem(nanos, nanoScale, new(big.Int))
	if !units.IsInt64() {
		return money.Money{}, fmt.Errorf("converting %v: %w", d, &money.RangeError{
			Arg:   "units",
			Value: units.String(),
			Min:   fmt.Sprint(money.MinUnits),
			Max:   fmt.Sprint(money.MaxUnits),
		})
	}
	m, err := money.NewMoneyFromUnits(curr, units.Int64(), int32(frac.Int64())) //nolint:gosec
	if err != nil {
		return money.Money{}, fmt.Errorf("converting %v: %w", d, err)
	}
	return m, nil
}

// Mul returns the product of amount m and factor e, rounded to nanounits
// using rounding half to even.
func Mul(m money.Money, e decimal.Decimal) (money.Money, error) {
	p, err := NewMoney(m.Curr(), Decimal(m).Mul(e))
	if err != nil {
		return money.Money{}, fmt.Errorf("computing [%v * %v]: %w", m, e, err)
	}
	return p, nil
}

// Quo returns the quotient of amount m and divisor e, rounded to nanounits
// with half away from zero.
//
// Quo returns an error if the divisor is 0 or the quotient does not fit the
// unit range.
func Quo(m money.Money, e decimal.Decimal) (money.Money, error) {
	if e.IsZero() {
		return money.Money{}, fmt.Errorf("computing [%v / %v]: %w", m, e,
			&money.ArgumentError{Arg: "divisor", Value: e, Reason: "division by zero"})
	}
	q, err := NewMoney(m.Curr(), Decimal(m).DivRound(e, money.FractionDigits))
	if err != nil {
		return money.Money{}, fmt.Errorf("computing [%v / %v]: %w", m, e, err)
	}
	return q, nil
}
