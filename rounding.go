package money

import (
	"fmt"
	"math/big"
	"strconv"
)

// RoundingMode selects how a value lying between two representable
// neighbours is rounded.
type RoundingMode uint8

const (
	// ToEven rounds half to even (banker's rounding).
	ToEven RoundingMode = iota
	// AwayFromZero rounds half away from zero.
	AwayFromZero
	// TowardZero rounds half toward zero.
	TowardZero
	// RoundUp rounds half toward positive infinity, that is floor(x + 0.5).
	RoundUp
	// RoundDown rounds half toward negative infinity, that is ceil(x - 0.5).
	RoundDown
	// Stochastic draws p from a [RandomSource] and rounds like [RoundUp]
	// when p >= 0.5 and like [RoundDown] otherwise, so that rounding bias
	// cancels out over many operations.
	Stochastic
)

func (r RoundingMode) String() string {
	switch r {
	case ToEven:
		return "ToEven"
	case AwayFromZero:
		return "AwayFromZero"
	case TowardZero:
		return "TowardZero"
	case RoundUp:
		return "RoundUp"
	case RoundDown:
		return "RoundDown"
	case Stochastic:
		return "Stochastic"
	}
	return "RoundingMode(" + strconv.Itoa(int(r)) + ")"
}

// Places is the number of digits after the decimal point to round to.
// It must not exceed [MaxPlaces].
type Places uint8

// MaxPlaces is the finest supported rounding precision, equal to
// [FractionDigits].
const MaxPlaces Places = FractionDigits

func checkPlaces(p Places) error {
	if p > MaxPlaces {
		return &ArgumentError{Arg: "places", Value: int(p), Reason: "must be within [0, 9]"}
	}
	return nil
}

// quantum returns the smallest positive amount representable with p places.
func quantum(c Currency, p Places) Money {
	if p == 0 {
		return newMoneyUnsafe(c, 1, 0)
	}
	return newMoneyUnsafe(c, 0, int32(pow10[FractionDigits-int(p)])) //nolint:gosec
}

// away reports whether a value with a non-zero discarded part is rounded
// away from zero, given the sign of the value, the parity of its truncated
// quotient, and half, the comparison of the discarded part with one half.
func (r RoundingMode) away(neg, odd bool, half int, src RandomSource) (bool, error) {
	switch r {
	case ToEven:
		return half > 0 || (half == 0 && odd), nil
	case AwayFromZero:
		return half >= 0, nil
	case TowardZero:
		return half > 0, nil
	case RoundUp:
		if neg {
			return half > 0, nil
		}
		return half >= 0, nil
	case RoundDown:
		if neg {
			return half >= 0, nil
		}
		return half > 0, nil
	case Stochastic:
		if src == nil {
			src = defaultSource()
		}
		if src.Float64() >= 0.5 {
			return RoundUp.away(neg, odd, half, nil)
		}
		return RoundDown.away(neg, odd, half, nil)
	}
	return false, &ArgumentError{Arg: "mode", Value: r, Reason: "unsupported rounding mode"}
}

func (r RoundingMode) valid() bool {
	return r <= Stochastic
}

// roundQuo returns n / d rounded to an integer, d must be positive.
func (r RoundingMode) roundQuo(n, d int64, src RandomSource) (int64, error) {
	q, rem := n/d, n%d
	if rem == 0 {
		return q, nil
	}
	neg := rem < 0
	if neg {
		rem = -rem
	}
	half := 0
	switch {
	case 2*rem < d:
		half = -1
	case 2*rem > d:
		half = 1
	}
	away, err := r.away(neg, q%2 != 0, half, src)
	if err != nil {
		return 0, err
	}
	if away {
		if neg {
			q--
		} else {
			q++
		}
	}
	return q, nil
}

// roundRat returns x rounded to an integer.
func (r RoundingMode) roundRat(x *big.Rat, src RandomSource) (*big.Int, error) {
	q, rem := new(big.Int).QuoRem(x.Num(), x.Denom(), new(big.Int))
	if rem.Sign() == 0 {
		return q, nil
	}
	neg := rem.Sign() < 0
	rem.Abs(rem).Lsh(rem, 1)
	away, err := r.away(neg, q.Bit(0) == 1, rem.Cmp(x.Denom()), src)
	if err != nil {
		return nil, err
	}
	if away {
		if neg {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q, nil
}

// Rounder rounds amounts to a number of decimal places.
// Its zero value draws the randomness needed by [Stochastic] rounding from
// a process-wide Mersenne Twister seeded once on first use.
// Rounder is safe for concurrent use if its source is.
type Rounder struct {
	src RandomSource
}

// NewRounder returns a rounder drawing randomness from src.
// A nil source selects the process-wide default.
func NewRounder(src RandomSource) Rounder {
	return Rounder{src: src}
}

// Round returns amount m rounded to the given number of decimal places using
// the given mode, and the remainder m - rounded, so that callers can
// redistribute it. A fraction rounded up to a whole unit is carried into
// the units.
//
// Round returns an error if:
//   - places is greater than [MaxPlaces];
//   - the rounding mode is not supported;
//   - the carry makes the units exceed [MaxUnits].
func (r Rounder) Round(m Money, places Places, mode RoundingMode) (rounded, rem Money, err error) {
	rounded, rem, err = r.round(m, places, mode)
	if err != nil {
		return Money{}, Money{}, fmt.Errorf("rounding %v to %v places %v: %w", m, places, mode, err)
	}
	return rounded, rem, nil
}

func (r Rounder) round(m Money, places Places, mode RoundingMode) (rounded, rem Money, err error) {
	if err := checkPlaces(places); err != nil {
		return Money{}, Money{}, err
	}
	if !mode.valid() {
		return Money{}, Money{}, &ArgumentError{Arg: "mode", Value: mode, Reason: "unsupported rounding mode"}
	}
	d := pow10[FractionDigits-int(places)]
	// The low bit of the units decides ties when rounding to whole units.
	lo := m.units % 2
	q, err := mode.roundQuo(lo*FractionScale+int64(m.frac), d, r.src)
	if err != nil {
		return Money{}, Money{}, err
	}
	frac := q*d - lo*FractionScale
	rounded, err = newMoneySafe(m.curr, m.units, frac)
	if err != nil {
		return Money{}, Money{}, err
	}
	rem = newMoneyUnsafe(m.curr, 0, int32(int64(m.frac)-frac)) //nolint:gosec
	return rounded, rem, nil
}

// Round returns an amount rounded to the given number of decimal places
// using the given mode. [Stochastic] rounding draws from the process-wide
// default source, use [Rounder] to inject one.
// See also method [Money.RoundRem].
func (m Money) Round(places Places, mode RoundingMode) (Money, error) {
	rounded, _, err := Rounder{}.Round(m, places, mode)
	return rounded, err
}

// RoundRem is like [Money.Round] but also returns the remainder m - rounded.
func (m Money) RoundRem(places Places, mode RoundingMode) (rounded, rem Money, err error) {
	return Rounder{}.Round(m, places, mode)
}

// RoundToCurr returns an amount rounded to the scale of its currency using
// rounding half to even.
func (m Money) RoundToCurr() (Money, error) {
	return m.Round(Places(m.Curr().Scale()), ToEven)
}
