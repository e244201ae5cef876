package money

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unsafe"

	"github.com/govalues/decimal"
	"golang.org/x/exp/constraints"
)

const (
	// FractionScale is the divisor of the fractional part of an amount,
	// that is, amounts are stored with nanounit resolution.
	FractionScale = 1_000_000_000
	// FractionDigits is the number of digits after the decimal point stored
	// by an amount.
	FractionDigits = 9
	// MaxUnits is the largest number of whole units an amount can hold.
	MaxUnits = math.MaxInt64
	// MinUnits is the smallest number of whole units an amount can hold.
	// The range is symmetric, so negation never overflows.
	MinUnits = -math.MaxInt64
)

var (
	pow10    = [...]int64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000}
	bigScale = big.NewInt(FractionScale)
)

// Money represents an exact monetary amount as a number of whole units and
// a fraction of a unit scaled by [FractionScale], denominated in a [Currency].
// Its zero value corresponds to "XXX 0", an amount of zero in the ambient
// currency.
//
// The units and the fraction always carry the same sign, and the magnitude of
// the fraction is always less than [FractionScale].
// Money is immutable and safe for concurrent use by multiple goroutines.
type Money struct {
	units int64    // whole units
	frac  int32    // fractional units, scaled by FractionScale
	curr  Currency // XXX stands for the ambient currency
}

// newMoneyUnsafe creates a new amount without normalizing its parts.
// Use it only if you are absolutely sure that the arguments are valid.
func newMoneyUnsafe(c Currency, units int64, frac int32) Money {
	return Money{curr: c, units: units, frac: frac}
}

// newMoneySafe creates a new amount, carrying the excess of the fraction into
// units and reconciling the signs of both parts.
func newMoneySafe(c Currency, units, frac int64) (Money, error) {
	if frac >= FractionScale || frac <= -FractionScale {
		carry := frac / FractionScale
		frac -= carry * FractionScale
		var ok bool
		units, ok = addUnits(units, carry)
		if !ok {
			return Money{}, unitsRangeError("units", "overflow")
		}
	}
	switch {
	case units > 0 && frac < 0:
		units--
		frac += FractionScale
	case units < 0 && frac > 0:
		units++
		frac -= FractionScale
	}
	return newMoneyUnsafe(c, units, int32(frac)), nil //nolint:gosec
}

// addUnits returns a + b and reports whether the sum is within
// [MinUnits, MaxUnits].
func addUnits(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, c != math.MinInt64
}

func unitsRangeError(arg, value string) error {
	return &RangeError{
		Arg:   arg,
		Value: value,
		Min:   strconv.FormatInt(MinUnits, 10),
		Max:   strconv.FormatInt(MaxUnits, 10),
	}
}

// NewMoney returns an amount of the given currency equal to d.
// Digits beyond the ninth place after the decimal point are rounded using
// [rounding half to even]; a fraction rounded up to a whole unit is carried
// into the units.
// See also method [Money.Decimal].
//
// NewMoney returns a [*RangeError] if the integer part of d is not within
// [MinUnits, MaxUnits].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func NewMoney(curr Currency, d decimal.Decimal) (Money, error) {
	whole, frac, ok := d.Int64(FractionDigits)
	if !ok || whole == math.MinInt64 {
		return Money{}, unitsRangeError("value", d.String())
	}
	return newMoneyUnsafe(curr, whole, int32(frac)), nil //nolint:gosec
}

// MustNewMoney is like [NewMoney] but panics if the amount cannot be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewMoney(curr Currency, d decimal.Decimal) Money {
	m, err := NewMoney(curr, d)
	if err != nil {
		panic(fmt.Sprintf("NewMoney(%v, %v) failed: %v", curr, d, err))
	}
	return m
}

// NewMoneyFromUnits returns an amount equal to units + nanos / 10^9.
// This is the same representation as the [google.type.Money] message.
// See also methods [Money.Units] and [Money.Nanos].
//
// NewMoneyFromUnits returns an error if:
//   - units is [math.MinInt64];
//   - nanos is not within the range (-10^9, 10^9);
//   - units and nanos have different signs.
//
// [google.type.Money]: https://github.com/googleapis/googleapis/blob/master/google/type/money.proto
func NewMoneyFromUnits(curr Currency, units int64, nanos int32) (Money, error) {
	if units == math.MinInt64 {
		return Money{}, unitsRangeError("units", strconv.FormatInt(units, 10))
	}
	if nanos <= -FractionScale || nanos >= FractionScale {
		return Money{}, &RangeError{
			Arg:   "nanos",
			Value: strconv.FormatInt(int64(nanos), 10),
			Min:   strconv.Itoa(-FractionScale + 1),
			Max:   strconv.Itoa(FractionScale - 1),
		}
	}
	if (units > 0 && nanos < 0) || (units < 0 && nanos > 0) {
		return Money{}, &ArgumentError{Arg: "nanos", Value: nanos, Reason: "sign differs from units"}
	}
	return newMoneyUnsafe(curr, units, nanos), nil
}

// NewMoneyFromInt converts an integer of any width and signedness to an
// amount of the given currency.
//
// NewMoneyFromInt returns a [*RangeError] if v is not within
// [MinUnits, MaxUnits].
func NewMoneyFromInt[T constraints.Integer](curr Currency, v T) (Money, error) {
	if v < 0 {
		if int64(v) == math.MinInt64 {
			return Money{}, unitsRangeError("value", fmt.Sprint(v))
		}
		return newMoneyUnsafe(curr, int64(v), 0), nil
	}
	if uint64(v) > MaxUnits {
		return Money{}, unitsRangeError("value", fmt.Sprint(v))
	}
	return newMoneyUnsafe(curr, int64(v), 0), nil //nolint:gosec
}

// NewMoneyFromFloat converts a binary floating-point number to a (possibly
// rounded) amount of the given currency.
// The shortest decimal representation of v is used, so float32(0.1) becomes
// exactly 0.1.
//
// NewMoneyFromFloat returns a [*RangeError] if v is a special value (NaN or Inf)
// or if its integer part is not within [MinUnits, MaxUnits].
func NewMoneyFromFloat[T constraints.Float](curr Currency, v T) (Money, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, unitsRangeError("value", strconv.FormatFloat(f, 'g', -1, 64))
	}
	var zero T
	bits := 64
	if unsafe.Sizeof(zero) == 4 {
		bits = 32
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	d, err := decimal.Parse(s)
	if err != nil {
		return Money{}, unitsRangeError("value", s)
	}
	return NewMoney(curr, d)
}

// FromInt is like [NewMoneyFromInt] but uses the ambient currency.
func FromInt[T constraints.Integer](v T) (Money, error) {
	return NewMoneyFromInt(XXX, v)
}

// FromFloat is like [NewMoneyFromFloat] but uses the ambient currency.
func FromFloat[T constraints.Float](v T) (Money, error) {
	return NewMoneyFromFloat(XXX, v)
}

// ParseMoney converts currency and decimal strings to a (possibly rounded)
// amount. See also constructors [ParseCurr], [Parse] and [decimal.Parse].
func ParseMoney(curr, amount string) (Money, error) {
	// Currency
	c, err := ParseCurr(curr)
	if err != nil {
		return Money{}, fmt.Errorf("parsing currency: %w", err)
	}
	// Decimal
	d, err := decimal.Parse(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount: %w", err)
	}
	// Money
	m, err := NewMoney(c, d)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount: %w", err)
	}
	return m, nil
}

// MustParseMoney is like [ParseMoney] but panics if any of the strings cannot be parsed.
// This function simplifies safe initialization of global variables holding amounts.
func MustParseMoney(curr, amount string) Money {
	m, err := ParseMoney(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseMoney(%q, %q) failed: %v", curr, amount, err))
	}
	return m
}

// Parse converts a string to an amount.
// The string may start with a 3-letter currency code, optionally followed by
// spaces; without a code the amount takes the ambient currency:
//
//	USD 12.50
//	usd12.50
//	-0.05
//
// Currency symbols are not recognized here, see package locale.
func Parse(s string) (Money, error) {
	text := strings.TrimSpace(s)
	curr := XXX
	if len(text) >= 3 && isLetters(text[:3]) {
		c, err := ParseCurr(text[:3])
		if err != nil {
			return Money{}, fmt.Errorf("parsing %q: %w", s, err)
		}
		curr = c
		text = strings.TrimSpace(text[3:])
	}
	d, err := decimal.Parse(text)
	if err != nil {
		return Money{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	m, err := NewMoney(curr, d)
	if err != nil {
		return Money{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return m, nil
}

// TryParse is like [Parse] but reports failure with a boolean.
func TryParse(s string) (Money, bool) {
	m, err := Parse(s)
	if err != nil {
		return Money{}, false
	}
	return m, true
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// Curr returns the currency of the amount.
// Amounts created without a currency report the ambient currency,
// see [SetCurrencyResolver].
func (m Money) Curr() Currency {
	return m.curr.resolve()
}

// Units returns the whole units of the amount.
func (m Money) Units() int64 {
	return m.units
}

// Nanos returns the fractional part of the amount in units of 10^-9.
// It has the same sign as [Money.Units] unless the units are zero.
func (m Money) Nanos() int32 {
	return m.frac
}

// Decimal returns the logical value units + nanos / 10^9 with the smallest
// scale that represents it exactly, see [Money.MinScale].
// See also constructor [NewMoney].
//
// Decimal returns a [*RangeError] if the value needs more than
// [decimal.MaxPrec] significant digits, which can only happen for amounts
// of 10^10 units or more. Package exact converts such amounts without loss.
func (m Money) Decimal() (decimal.Decimal, error) {
	scale := m.MinScale()
	if prec := unitsDigits(m.units) + scale; prec > decimal.MaxPrec {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", m, &RangeError{
			Arg:   "digits",
			Value: strconv.Itoa(prec),
			Min:   "0",
			Max:   strconv.Itoa(decimal.MaxPrec),
		})
	}
	d, err := decimal.NewFromInt64(m.units, int64(m.frac)/pow10[FractionDigits-scale], scale)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", m, err)
	}
	return d, nil
}

// unitsDigits returns the number of decimal digits of |units|, 0 for zero.
func unitsDigits(units int64) int {
	if units == 0 {
		return 0
	}
	if units < 0 {
		units = -units
	}
	return len(strconv.FormatInt(units, 10))
}

// Float64 returns the nearest binary floating-point number.
// This conversion may lose data.
func (m Money) Float64() (f float64, ok bool) {
	f, _ = new(big.Rat).SetFrac(m.bigNanos(), bigScale).Float64()
	return f, !math.IsInf(f, 0)
}

// ToInt returns the whole units of amount m truncated toward zero as an
// integer of type T.
//
// ToInt returns a [*RangeError] if the units do not fit into T.
func ToInt[T constraints.Integer](m Money) (T, error) {
	v := T(m.units)
	if int64(v) != m.units || (v < 0) != (m.units < 0) {
		lo, hi := intBounds[T]()
		return 0, &RangeError{Arg: "units", Value: strconv.FormatInt(m.units, 10), Min: lo, Max: hi}
	}
	return v, nil
}

// intBounds returns the smallest and largest values of T.
func intBounds[T constraints.Integer]() (lo, hi string) {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	if ^zero < 0 {
		umax := uint64(math.MaxUint64) >> (65 - bits)
		return "-" + strconv.FormatUint(umax+1, 10), strconv.FormatUint(umax, 10)
	}
	return "0", strconv.FormatUint(uint64(math.MaxUint64)>>(64-bits), 10)
}

// bigNanos returns the amount in units of 10^-9.
func (m Money) bigNanos() *big.Int {
	n := big.NewInt(m.units)
	n.Mul(n, bigScale)
	return n.Add(n, big.NewInt(int64(m.frac)))
}

// newMoneyFromNanos converts an amount in units of 10^-9 back to money.
func newMoneyFromNanos(c Currency, n *big.Int) (Money, error) {
	units, frac := new(big.Int).QuoRem(n, bigScale, new(big.Int))
	if !units.IsInt64() || units.Int64() == math.MinInt64 {
		return Money{}, unitsRangeError("units", units.String())
	}
	return newMoneyUnsafe(c, units.Int64(), int32(frac.Int64())), nil //nolint:gosec
}

// Sign returns:
//
//	-1 if m < 0
//	 0 if m = 0
//	+1 if m > 0
func (m Money) Sign() int {
	switch {
	case m.units < 0 || m.frac < 0:
		return -1
	case m.units > 0 || m.frac > 0:
		return 1
	}
	return 0
}

// IsZero returns:
//
//	true  if m = 0
//	false otherwise
func (m Money) IsZero() bool {
	return m.units == 0 && m.frac == 0
}

// IsNeg returns:
//
//	true  if m < 0
//	false otherwise
func (m Money) IsNeg() bool {
	return m.Sign() < 0
}

// IsPos returns:
//
//	true  if m > 0
//	false otherwise
func (m Money) IsPos() bool {
	return m.Sign() > 0
}

// MinScale returns the smallest number of digits after the decimal point
// needed to represent the amount without rounding.
func (m Money) MinScale() int {
	f := m.frac
	if f == 0 {
		return 0
	}
	scale := FractionDigits
	for f%10 == 0 {
		f /= 10
		scale--
	}
	return scale
}

// Zero returns an amount of zero in the same currency as amount m.
func (m Money) Zero() Money {
	return newMoneyUnsafe(m.curr, 0, 0)
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	if m.IsNeg() {
		return m.Neg()
	}
	return m
}

// Neg returns an amount with the opposite sign.
func (m Money) Neg() Money {
	return newMoneyUnsafe(m.curr, -m.units, -m.frac)
}

// SameCurr returns true if amounts are denominated in the same currency,
// treating an unspecified currency as the ambient one.
// See also method [Money.Curr].
func (m Money) SameCurr(b Money) bool {
	return m.Curr() == b.Curr()
}

// commonCurr returns the currency of the result of a binary operation,
// preferring an explicit currency over the ambient one.
func (m Money) commonCurr(b Money) Currency {
	if m.curr == XXX {
		return b.curr
	}
	return m.curr
}

// Add returns the exact sum of amounts m and b.
//
// Add returns an error if:
//   - amounts are denominated in different currencies;
//   - the units of the result are not within [MinUnits, MaxUnits].
func (m Money) Add(b Money) (Money, error) {
	c, err := m.add(b)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v + %v]: %w", m, b, err)
	}
	return c, nil
}

func (m Money) add(b Money) (Money, error) {
	if !m.SameCurr(b) {
		return Money{}, mismatch(m, b)
	}
	units, ok := addUnits(m.units, b.units)
	if !ok {
		return Money{}, unitsRangeError("units", "overflow")
	}
	return newMoneySafe(m.commonCurr(b), units, int64(m.frac)+int64(b.frac))
}

// Sub returns the exact difference between amounts m and b.
//
// Sub returns an error if:
//   - amounts are denominated in different currencies;
//   - the units of the result are not within [MinUnits, MaxUnits].
func (m Money) Sub(b Money) (Money, error) {
	c, err := m.sub(b)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v - %v]: %w", m, b, err)
	}
	return c, nil
}

func (m Money) sub(b Money) (Money, error) {
	if !m.SameCurr(b) {
		return Money{}, mismatch(m, b)
	}
	return m.add(b.Neg())
}

// Mul returns the (possibly rounded) product of amount m and factor e.
// The product is computed exactly and then rounded to nanos using
// [rounding half to even].
//
// Mul returns an error if the integer part of the result is not within
// [MinUnits, MaxUnits].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (m Money) Mul(e decimal.Decimal) (Money, error) {
	c, err := m.mul(e)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v * %v]: %w", m, e, err)
	}
	return c, nil
}

func (m Money) mul(e decimal.Decimal) (Money, error) {
	x := new(big.Rat).SetInt(m.bigNanos())
	x.Mul(x, decimalRat(e))
	return roundNanos(m.curr, x)
}

// Quo returns the (possibly rounded) quotient of amount m and divisor e.
// The quotient is computed exactly and then rounded to nanos using
// [rounding half to even].
//
// Quo returns an error if:
//   - the divisor is 0;
//   - the integer part of the result is not within [MinUnits, MaxUnits].
//
// [rounding half to even]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_to_even
func (m Money) Quo(e decimal.Decimal) (Money, error) {
	c, err := m.quo(e)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v / %v]: %w", m, e, err)
	}
	return c, nil
}

func (m Money) quo(e decimal.Decimal) (Money, error) {
	if e.IsZero() {
		return Money{}, &ArgumentError{Arg: "divisor", Value: e, Reason: "division by zero"}
	}
	x := new(big.Rat).SetInt(m.bigNanos())
	x.Quo(x, decimalRat(e))
	return roundNanos(m.curr, x)
}

// roundNanos rounds an amount in units of 10^-9 half to even and converts
// it back to money.
func roundNanos(c Currency, x *big.Rat) (Money, error) {
	n, err := ToEven.roundRat(x, nil)
	if err != nil {
		return Money{}, err
	}
	return newMoneyFromNanos(c, n)
}

// decimalRat returns the exact value of d.
func decimalRat(d decimal.Decimal) *big.Rat {
	r, ok := new(big.Rat).SetString(d.String())
	if !ok {
		panic(fmt.Sprintf("big.Rat.SetString(%q) failed", d))
	}
	return r
}

// Sum returns the exact sum of the amounts.
// The sum of no amounts is the zero value.
//
// Sum returns an error if the amounts are denominated in different currencies
// or if the units of the result are not within [MinUnits, MaxUnits].
func Sum(amounts ...Money) (Money, error) {
	var s Money
	for i, m := range amounts {
		if i == 0 {
			s = m
			continue
		}
		var err error
		s, err = s.add(m)
		if err != nil {
			return Money{}, fmt.Errorf("summing %v amounts: %w", len(amounts), err)
		}
	}
	return s, nil
}

// cmp compares units first and the fraction second.
func (m Money) cmp(b Money) int {
	switch {
	case m.units < b.units:
		return -1
	case m.units > b.units:
		return 1
	case m.frac < b.frac:
		return -1
	case m.frac > b.frac:
		return 1
	}
	return 0
}

// Cmp compares amounts and returns:
//
//	-1 if m < b
//	 0 if m = b
//	+1 if m > b
//
// Cmp returns an error if amounts are denominated in different currencies.
func (m Money) Cmp(b Money) (int, error) {
	if !m.SameCurr(b) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", m, b, mismatch(m, b))
	}
	return m.cmp(b), nil
}

// CmpAbs compares absolute values of amounts and returns:
//
//	-1 if |m| < |b|
//	 0 if |m| = |b|
//	+1 if |m| > |b|
//
// CmpAbs returns an error if amounts are denominated in different currencies.
func (m Money) CmpAbs(b Money) (int, error) {
	if !m.SameCurr(b) {
		return 0, fmt.Errorf("comparing [abs(%v)] and [abs(%v)]: %w", m, b, mismatch(m, b))
	}
	return m.Abs().cmp(b.Abs()), nil
}

// Equal reports whether amounts m and b are numerically equal.
// Unlike ==, Equal treats an unspecified currency as the ambient one.
//
// Equal returns an error if amounts are denominated in different currencies.
func (m Money) Equal(b Money) (bool, error) {
	c, err := m.Cmp(b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Min returns the smaller amount.
//
// Min returns an error if amounts are denominated in different currencies.
func (m Money) Min(b Money) (Money, error) {
	switch c, err := m.Cmp(b); {
	case err != nil:
		return Money{}, err
	case c <= 0:
		return m, nil
	default:
		return b, nil
	}
}

// Max returns the larger amount.
//
// Max returns an error if amounts are denominated in different currencies.
func (m Money) Max(b Money) (Money, error) {
	switch c, err := m.Cmp(b); {
	case err != nil:
		return Money{}, err
	case c >= 0:
		return m, nil
	default:
		return b, nil
	}
}

// appendAmount appends the decimal digits of the amount.
// A negative digits argument keeps the significant digits of the fraction
// but never fewer than the scale of the currency.
func (m Money) appendAmount(buf []byte, digits int) []byte {
	if digits >= 0 && digits < FractionDigits {
		if r, _, err := (Rounder{}).round(m, Places(digits), ToEven); err == nil {
			m = r
		}
	}
	units, frac := m.units, m.frac
	if m.IsNeg() {
		buf = append(buf, '-')
		units, frac = -units, -frac
	}
	buf = strconv.AppendInt(buf, units, 10)

	n := digits
	if n < 0 {
		n = max(m.MinScale(), m.Curr().Scale())
	}
	if n == 0 {
		return buf
	}
	buf = append(buf, '.')
	fs := fmt.Sprintf("%09d", frac)
	buf = append(buf, fs[:min(n, FractionDigits)]...)
	for i := FractionDigits; i < n; i++ {
		buf = append(buf, '0')
	}
	return buf
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of an amount, such as "USD 0.05".
// Trailing zeros are removed but the fraction keeps at least as many digits
// as the scale of the currency.
// See also method [Money.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (m Money) String() string {
	buf := make([]byte, 0, 40)
	buf = append(buf, m.Curr().Code()...)
	buf = append(buf, ' ')
	return string(m.appendAmount(buf, -1))
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example     | Description                |
//	| ------ | ----------- | -------------------------- |
//	| %s, %v | USD 5.678   | Currency and amount        |
//	| %q     | "USD 5.678" | Quoted currency and amount |
//	| %f     | 5.678       | Amount                     |
//	| %c     | USD         | Currency                   |
//
// Precision is only supported for the %f verb, the amount is rounded using
// rounding half to even.
// The '-' format flag can be used with all verbs, the '+' flag with %f.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (m Money) Format(state fmt.State, verb rune) {
	var body []byte
	switch verb {
	case 's', 'S', 'v', 'V':
		body = []byte(m.String())
	case 'q', 'Q':
		body = strconv.AppendQuote(nil, m.String())
	case 'f', 'F':
		digits := -1
		if p, ok := state.Precision(); ok {
			digits = p
		}
		if state.Flag('+') && !m.IsNeg() {
			body = append(body, '+')
		}
		body = m.appendAmount(body, digits)
	case 'c', 'C':
		body = []byte(m.Curr().Code())
	default:
		body = []byte("%!" + string(verb) + "(money.Money=" + m.String() + ")")
	}

	// Padding
	if w, ok := state.Width(); ok && w > len(body) {
		pad := strings.Repeat(" ", w-len(body))
		if state.Flag('-') {
			body = append(body, pad...)
		} else {
			body = append([]byte(pad), body...)
		}
	}

	//nolint:errcheck
	state.Write(body)
}
