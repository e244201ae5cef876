/*
Package money implements exact fixed-point monetary values and the
distribution of a total into shares that add up to it exactly.

# Features

  - Immutable monetary values, safe for concurrent use by multiple goroutines
  - Exact addition, subtraction, negation and comparison
  - Six rounding modes, including stochastic rounding with an injectable
    random source
  - Distribution of a total by count, by ratio or by weights, with a
    selectable policy for the shares receiving the rounding remainder
  - Support for various currencies and their corresponding scales

# Representation

A [Money] value is made of three parts: a signed number of whole units,
a signed fraction of a unit scaled by [FractionScale], and a [Currency].
Both numeric parts always carry the same sign, so the logical value of an
amount is units + fraction / 10^9.
The [Currency] type is an integer index into an in-memory table holding the
code, numeric code, name and scale of each currency.
The special currency XXX stands for "no currency specified" and resolves to
the ambient currency, see [SetCurrencyResolver].

# Supported Ranges

The whole units of an amount range from -9,223,372,036,854,775,807 to
9,223,372,036,854,775,807 and the fraction has a fixed resolution of 10^-9.
The range is symmetric, so negation never overflows.
Conversion to [decimal.Decimal] is exact and fails with [ErrRange] when the
amount needs more than 19 significant digits; subpackage exact provides an
unbounded conversion.

# Operations

Addition, subtraction, negation and comparison are exact.
Multiplication and division by a [decimal.Decimal] are computed exactly over
the whole range and the result is rounded half to even to nine places.
Operations combining amounts in different currencies fail with
[ErrCurrencyMismatch].

# Rounding

A [Rounder] rounds an amount to a number of [Places] using a [RoundingMode]
and returns the remainder, so that the remainder can be redistributed.
[Stochastic] rounding draws from a [RandomSource]; without one, a
process-wide Mersenne Twister is created on first use.

# Distribution

A [Distributor] splits a total into shares rounded to a number of places.
Every provisional share is reduced by half a quantum before rounding, so
the shares never add up to more than the total, and the remainder is then
handed out one quantum at a time following a [Receivers] policy.
The shares always add up to the total; a mismatch is reported as an
[*AllocationMismatchError].

# Errors

All errors wrap one of the sentinels [ErrRange], [ErrCurrencyMismatch],
[ErrInvalidArgument] or [ErrAllocationMismatch], and carry the offending
values in typed errors such as [*RangeError].
Functions prefixed with Must panic instead of returning an error.
*/
package money
