// Package locale formats and parses amounts of [money.Money] using the
// conventions of a language, and derives the ambient currency from the
// process environment.
//
// Symbols and separators come from the CLDR tables shipped with
// [golang.org/x/text]. Amounts are rendered as the currency symbol
// followed by a space and the localized number, for example "$ 1,234.50"
// or "€ 1.234,50".
package locale

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/fixedmoney/money"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// envKeys are consulted in order, the first non-empty one wins.
var envKeys = [...]string{"LC_ALL", "LC_MONETARY", "LANG"}

// FromEnv returns the language of the monetary locale of the process,
// as given by the LC_ALL, LC_MONETARY and LANG environment variables.
// It returns [language.Und] for the "C" and "POSIX" locales and for values
// that cannot be parsed.
func FromEnv() language.Tag {
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			return tagFromLocale(v)
		}
	}
	return language.Und
}

// tagFromLocale converts a POSIX locale name, such as "de_DE.UTF-8@euro",
// to a language tag.
func tagFromLocale(s string) language.Tag {
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "@")
	switch s {
	case "", "C", "POSIX":
		return language.Und
	}
	t, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und
	}
	return t
}

// CurrencyFor returns the currency used in the region of the given language.
// It returns false if the region cannot be determined or its currency is
// not known to package money.
func CurrencyFor(tag language.Tag) (money.Currency, bool) {
	if tag.IsRoot() {
		return money.XXX, false
	}
	u, conf := currency.FromTag(tag)
	if conf == language.No {
		return money.XXX, false
	}
	c, err := money.ParseCurr(u.String())
	if err != nil {
		return money.XXX, false
	}
	return c, true
}

// Install sets the ambient currency of package money to the currency of
// the locale returned by [FromEnv].
// If no currency can be derived, the resolver is left untouched and
// Install returns false.
func Install() (money.Currency, bool) {
	c, ok := CurrencyFor(FromEnv())
	if !ok {
		return money.XXX, false
	}
	money.SetCurrencyResolver(func() money.Currency { return c })
	return c, true
}

// Symbol returns the symbol of currency c in the given language, such as
// "$" for USD in English. Currencies without a localized symbol are
// represented by their code.
func Symbol(c money.Currency, tag language.Tag) string {
	return symbol(message.NewPrinter(tag), currency.Symbol, c)
}

func symbol(p *message.Printer, f currency.Formatter, c money.Currency) string {
	if c == money.XXX {
		return c.Code()
	}
	u, err := currency.ParseISO(c.Code())
	if err != nil {
		return c.Code()
	}
	return p.Sprint(f(u))
}

// separators holds the grouping and decimal separators of a language.
type separators struct {
	group, decimal string
}

func separatorsFor(p *message.Printer) separators {
	return separators{
		group:   firstNonDigits(p.Sprint(number.Decimal(1234567))),
		decimal: firstNonDigits(p.Sprint(number.Decimal(1.5))),
	}
}

// firstNonDigits returns the first run of non-digit runes in s.
func firstNonDigits(s string) string {
	start := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if start < 0 {
		return ""
	}
	end := strings.IndexFunc(s[start:], unicode.IsDigit)
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}

// Format returns the localized representation of amount m: the currency
// symbol, a space and the amount with the grouping and decimal separators
// of the given language.
// The fraction keeps the digits shown by [money.Money.String].
func Format(m money.Money, tag language.Tag) string {
	p := message.NewPrinter(tag)
	var b strings.Builder
	b.WriteString(symbol(p, currency.Symbol, m.Curr()))
	b.WriteByte(' ')
	abs := m.Abs()
	if m.IsNeg() {
		b.WriteByte('-')
	}
	b.WriteString(p.Sprint(number.Decimal(abs.Units())))
	if _, frac, ok := strings.Cut(fmt.Sprintf("%f", abs), "."); ok {
		n, _ := strconv.ParseInt(frac, 10, 64)
		b.WriteString(separatorsFor(p).decimal)
		b.WriteString(p.Sprint(number.Decimal(n, number.MinIntegerDigits(len(frac)), number.NoSeparator())))
	}
	return b.String()
}

// Parse converts a localized string, such as "$1,234.50" or "1.234,50 €",
// to an amount.
// The currency is identified by its code or by its symbol in the given
// language, placed before or after the number. When a symbol is shared by
// several currencies, the currency of the language's region is preferred.
// Without a symbol the amount takes the currency of the region, or [money.XXX]
// if the region has none.
// Digits must be ASCII.
func Parse(s string, tag language.Tag) (money.Money, error) {
	p := message.NewPrinter(tag)
	def, _ := CurrencyFor(tag)

	text := strings.TrimSpace(s)
	neg := false
	if rest, ok := strings.CutPrefix(text, "-"); ok {
		neg, text = true, strings.TrimSpace(rest)
	}
	curr, text, ok := matchCurrency(p, def, text)
	if !ok {
		curr = def
	}
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "-"); ok && !neg {
		neg, text = true, rest
	}

	sep := separatorsFor(p)
	if sep.group != "" {
		text = strings.ReplaceAll(text, sep.group, "")
		if strings.TrimSpace(sep.group) == "" {
			text = strings.Join(strings.Fields(text), "")
		}
	}
	if sep.decimal != "" && sep.decimal != "." {
		text = strings.Replace(text, sep.decimal, ".", 1)
	}
	if neg {
		text = "-" + text
	}

	m, err := money.ParseMoney(curr.Code(), text)
	if err != nil {
		return money.Money{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return m, nil
}

// matchCurrency finds the longest currency code or symbol at either end of s
// and returns the currency and the remaining text.
func matchCurrency(p *message.Printer, def money.Currency, s string) (money.Currency, string, bool) {
	var (
		best    money.Currency
		bestLen int
		rest    string
	)
	for _, c := range money.Currencies()[1:] {
		for _, cand := range [...]string{
			c.Code(),
			symbol(p, currency.Symbol, c),
			symbol(p, currency.NarrowSymbol, c),
		} {
			n := len(cand)
			if n == 0 || n < bestLen || (n == bestLen && (best == def || c != def)) {
				continue
			}
			switch {
			case strings.HasPrefix(s, cand):
				best, bestLen, rest = c, n, s[n:]
			case strings.HasSuffix(s, cand):
				best, bestLen, rest = c, n, s[:len(s)-n]
			}
		}
	}
	if bestLen == 0 {
		return money.XXX, s, false
	}
	return best, rest, true
}
