package money

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
)

//go:generate go run scripts/currency/codegen.go

// Currency identifies the unit an amount of [Money] is denominated in.
// The zero value is [XXX], which marks an amount whose currency was not
// specified. Such amounts take the ambient currency returned by the resolver
// installed with [SetCurrencyResolver].
//
// Currency is an integer index into an in-memory table holding the
// [ISO 4217] code, numeric code, scale and name of the currency, so values
// are comparable with == and safe to share between goroutines.
// Persist the alphabetic code returned by [Currency.Code], not the index.
//
// [ISO 4217]: https://en.wikipedia.org/wiki/ISO_4217
type Currency uint8

var errInvalidCurrency = errors.New("invalid currency")

// CurrencyResolver returns the ambient currency used for amounts created
// without an explicit currency.
type CurrencyResolver func() Currency

var ambient atomic.Pointer[CurrencyResolver]

// SetCurrencyResolver installs the resolver consulted by [Money.Curr] for
// amounts without an explicit currency. A nil resolver restores the default,
// which always returns [XXX].
// The resolver may be called concurrently and must be cheap; see package
// locale for a resolver derived from the process environment.
func SetCurrencyResolver(r CurrencyResolver) {
	if r == nil {
		ambient.Store(nil)
		return
	}
	ambient.Store(&r)
}

// DefaultCurrency returns the ambient currency.
func DefaultCurrency() Currency {
	r := ambient.Load()
	if r == nil {
		return XXX
	}
	return (*r)()
}

// resolve maps an unspecified currency onto the ambient one.
func (c Currency) resolve() Currency {
	if c == XXX {
		return DefaultCurrency()
	}
	return c
}

// ParseCurr converts a string to currency.
// The input string must be in one of the following formats:
//
//	USD
//	usd
//	840
//
// ParseCurr returns an error if the string does not represent a valid currency code.
func ParseCurr(curr string) (Currency, error) {
	c, ok := currLookup[curr]
	if !ok {
		return XXX, errInvalidCurrency
	}
	return c, nil
}

// MustParseCurr is like [ParseCurr] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding currencies.
func MustParseCurr(curr string) Currency {
	c, err := ParseCurr(curr)
	if err != nil {
		panic(fmt.Sprintf("ParseCurr(%q) failed: %v", curr, err))
	}
	return c
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of the Currency value.
// See also method [Currency.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface and
// accepts the same forms as [ParseCurr].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	curr, err := ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %q: %w", text, err)
	}
	*c = curr
	return nil
}

// AppendText implements the [encoding.TextAppender] interface by appending
// the 3-letter code.
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (c Currency) AppendText(text []byte) ([]byte, error) {
	return append(text, c.Code()...), nil
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Currency) MarshalText() ([]byte, error) {
	return c.AppendText(make([]byte, 0, 3))
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// A JSON null leaves the currency unchanged.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Currency) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	code, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %s: %w", data, errInvalidCurrency)
	}
	return c.UnmarshalText([]byte(code))
}

// MarshalJSON implements the [json.Marshaler] interface and encodes the
// currency as a quoted 3-letter code.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Currency) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, c.Code()), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description     |
//	| ---------- | ------- | --------------- |
//	| %c, %s, %v | USD     | Currency        |
//	| %q         | "USD"   | Quoted currency |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (c Currency) Format(state fmt.State, verb rune) {
	// Currency symbols
	curr := c.Code()
	currlen := len(curr)

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + currlen + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for range tspaces {
		buf[pos] = ' '
		pos--
	}

	// Closing quote
	for range tquote {
		buf[pos] = '"'
		pos--
	}

	// Currency symbols
	for i := range currlen {
		buf[pos] = curr[currlen-i-1]
		pos--
	}

	// Opening quote
	for range lquote {
		buf[pos] = '"'
		pos--
	}

	// Leading spaces
	for range lspaces {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.Currency="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// Scale returns the number of digits after the decimal point required for
// representing the minor unit of a currency.
// The currently supported currencies use scales of 0, 2, or 3:
//   - A scale of 0 indicates currencies without minor units.
//     For example, the [Japanese Yen] does not have minor units.
//   - A scale of 2 indicates currencies that use 2 digits to represent their minor units.
//     For example, the [US Dollar] represents its minor unit, 1 cent, as 0.01 dollars.
//   - A scale of 3 indicates currencies with 3 digits in their minor units.
//     For instance, the minor unit of the [Omani Rial], 1 baisa, is represented as 0.001 rials.
//
// [Japanese Yen]: https://en.wikipedia.org/wiki/Japanese_yen
// [US Dollar]: https://en.wikipedia.org/wiki/United_States_dollar
// [Omani Rial]: https://en.wikipedia.org/wiki/Omani_rial
func (c Currency) Scale() int {
	return int(scaleLookup[c])
}

// Num returns the [3-digit code] assigned to the currency by the ISO 4217 standard.
// If the currency does not have such a [code], the method will return an empty string.
//
// [3-digit code]: https://en.wikipedia.org/wiki/ISO_4217#Numeric_codes
// [code]: https://en.wikipedia.org/wiki/ISO_4217#X_currencies_(funds,_precious_metals,_supranationals,_other)
func (c Currency) Num() string {
	return numLookup[c]
}

// Code returns the [3-letter code] assigned to the currency by the ISO 4217 standard.
// This code is a unique identifier of the currency and is used in
// international finance and commerce.
// This method always returns a valid code.
//
// [3-letter code]: https://en.wikipedia.org/wiki/ISO_4217#National_currencies
func (c Currency) Code() string {
	return codeLookup[c]
}

// Name returns the English name of the currency.
func (c Currency) Name() string {
	return nameLookup[c]
}

// Currencies returns all known currencies ordered by code, starting with [XXX].
func Currencies() []Currency {
	cs := make([]Currency, len(codeLookup))
	for i := range cs {
		cs[i] = Currency(i) //nolint:gosec
	}
	return cs
}
