package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

var (
	// ErrRange is reported when a numeric input does not fit the representable
	// unit range or when a distribution ratio or count is outside its domain.
	ErrRange = errors.New("value out of range")
	// ErrCurrencyMismatch is reported when an operation combines amounts
	// denominated in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidArgument is reported for unsupported rounding modes, places,
	// receiver policies, and weight sums outside (0, 1].
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAllocationMismatch is reported when distributed shares do not add up
	// to the distributed total. It always indicates a defect.
	ErrAllocationMismatch = errors.New("allocation mismatch")
)

// RangeError describes a value that does not fit its valid domain.
// It unwraps to [ErrRange].
type RangeError struct {
	Arg   string // name of the offending argument
	Value string // offending value
	Min   string // lower bound of the valid domain
	Max   string // upper bound of the valid domain
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v %v is not within [%v, %v]: %v", e.Arg, e.Value, e.Min, e.Max, ErrRange)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

// CurrencyMismatchError describes an operation between amounts in different
// currencies. It unwraps to [ErrCurrencyMismatch].
type CurrencyMismatchError struct {
	Left  Currency
	Right Currency
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("%v and %v: %v", e.Left, e.Right, ErrCurrencyMismatch)
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}

// ArgumentError describes an argument that is well-formed but not supported.
// It unwraps to [ErrInvalidArgument].
type ArgumentError struct {
	Arg    string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%v %v: %v: %v", e.Arg, e.Value, e.Reason, ErrInvalidArgument)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// AllocationMismatchError is returned by [Distributor] when the sum of the
// shares differs from the total. It unwraps to [ErrAllocationMismatch].
type AllocationMismatchError struct {
	Total        Money             // amount that was distributed
	Distributed  Money             // sum of the computed shares
	Distribution []decimal.Decimal // ratios the distribution was made with
}

func (e *AllocationMismatchError) Error() string {
	ratios := make([]string, len(e.Distribution))
	for i, r := range e.Distribution {
		ratios[i] = r.String()
	}
	return fmt.Sprintf("distributing %v by [%v]: shares add up to %v: %v",
		e.Total, strings.Join(ratios, ", "), e.Distributed, ErrAllocationMismatch)
}

func (e *AllocationMismatchError) Unwrap() error {
	return ErrAllocationMismatch
}

func mismatch(a, b Money) error {
	return &CurrencyMismatchError{Left: a.Curr(), Right: b.Curr()}
}
