package money

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// Receivers selects the shares that absorb the remainder left over after
// the provisional shares have been rounded.
type Receivers uint8

const (
	// FirstToLast gives one quantum to share 0, then share 1, and so on.
	FirstToLast Receivers = iota
	// LastToFirst gives one quantum to the last share, then the one before
	// it, and so on down to share 0.
	LastToFirst
	// Random gives one quantum to shares chosen uniformly at random,
	// without replacement.
	Random
)

func (r Receivers) String() string {
	switch r {
	case FirstToLast:
		return "FirstToLast"
	case LastToFirst:
		return "LastToFirst"
	case Random:
		return "Random"
	}
	return "Receivers(" + strconv.Itoa(int(r)) + ")"
}

// ParseReceivers converts a policy name, such as "LastToFirst" or
// "last-to-first", to [Receivers]. Case, dashes and underscores are ignored.
func ParseReceivers(s string) (Receivers, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	for r := FirstToLast; r <= Random; r++ {
		if key == strings.ToLower(r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("parsing receivers: %w",
		&ArgumentError{Arg: "receivers", Value: s, Reason: "unknown receiver policy"})
}

// MaxShares is the largest number of shares a [Distributor] produces.
const MaxShares = 1 << 20

var (
	ratOne  = big.NewRat(1, 1)
	ratHalf = big.NewRat(1, 2)
)

// Distributor splits a total into shares that add up to the total exactly.
//
// Every provisional share is the proportional part of the total reduced by
// half a quantum and rounded away from zero to the configured number of
// places, so the provisional shares never add up to more than the total.
// The remainder is then handed out one quantum at a time in the order
// selected by [Receivers].
//
// Distributor is an immutable value and is safe for concurrent use if its
// random source is.
type Distributor struct {
	total  Money
	recv   Receivers
	places Places
	src    RandomSource
}

// NewDistributor returns a distributor of total that rounds shares to the
// given number of places and assigns remainders following recv.
// [Random] assignment draws from the process-wide default source, see
// [Distributor.WithSource].
//
// NewDistributor returns an [*ArgumentError] if places is greater than
// [MaxPlaces] or recv is not supported.
func NewDistributor(total Money, recv Receivers, places Places) (Distributor, error) {
	if err := checkPlaces(places); err != nil {
		return Distributor{}, fmt.Errorf("creating distributor: %w", err)
	}
	if recv > Random {
		return Distributor{}, fmt.Errorf("creating distributor: %w",
			&ArgumentError{Arg: "receivers", Value: recv, Reason: "unsupported receiver policy"})
	}
	return Distributor{total: total, recv: recv, places: places}, nil
}

// WithSource returns a copy of the distributor drawing randomness from src.
func (d Distributor) WithSource(src RandomSource) Distributor {
	d.src = src
	return d
}

// Total returns the amount being distributed.
func (d Distributor) Total() Money {
	return d.total
}

// Quantum returns the smallest amount handed out while assigning remainders.
func (d Distributor) Quantum() Money {
	return quantum(d.total.curr, d.places)
}

// DistributeCount splits the total into count shares of equal proportion.
// It is equivalent to [Distributor.DistributeRatio] with ratio 1/count.
//
// DistributeCount returns a [*RangeError] if count is not within
// [1, MaxShares].
func (d Distributor) DistributeCount(count int) ([]Money, error) {
	res, err := d.distributeCount(count)
	if err != nil {
		return nil, fmt.Errorf("distributing %v into %v shares: %w", d.total, count, err)
	}
	return res, nil
}

func (d Distributor) distributeCount(count int) ([]Money, error) {
	if count < 1 || count > MaxShares {
		return nil, &RangeError{Arg: "count", Value: strconv.Itoa(count), Min: "1", Max: strconv.Itoa(MaxShares)}
	}
	ratio, err := decimal.One.Quo(decimal.MustNew(int64(count), 0))
	if err != nil {
		return nil, err
	}
	return d.allocate(uniform(count), []decimal.Decimal{ratio})
}

// DistributeRatio splits the total into floor(1/ratio) shares of equal
// proportion.
//
// DistributeRatio returns a [*RangeError] if:
//   - ratio is not within (0, 1];
//   - floor(1/ratio) is greater than [MaxShares].
func (d Distributor) DistributeRatio(ratio decimal.Decimal) ([]Money, error) {
	res, err := d.distributeRatio(ratio)
	if err != nil {
		return nil, fmt.Errorf("distributing %v by ratio %v: %w", d.total, ratio, err)
	}
	return res, nil
}

func (d Distributor) distributeRatio(ratio decimal.Decimal) ([]Money, error) {
	if !ratio.IsPos() || ratio.Cmp(decimal.One) > 0 {
		return nil, &RangeError{Arg: "ratio", Value: ratio.String(), Min: "0 (exclusive)", Max: "1"}
	}
	q, _, err := decimal.One.QuoRem(ratio)
	if err != nil {
		return nil, &RangeError{Arg: "count", Value: "1 / " + ratio.String(), Min: "1", Max: strconv.Itoa(MaxShares)}
	}
	count, _, ok := q.Int64(0)
	if !ok || count > MaxShares {
		return nil, &RangeError{Arg: "count", Value: q.String(), Min: "1", Max: strconv.Itoa(MaxShares)}
	}
	return d.allocate(uniform(int(count)), []decimal.Decimal{ratio})
}

// DistributeWeights splits the total into one share per weight, in
// proportion to the weights.
// Weights adding up to less than 1 are normalized by their sum rather than
// leaving a remainder, so weights 0.2 and 0.2 split the total in halves and
// the shares always add up to the whole total.
//
// DistributeWeights returns an error if:
//   - no weights are given ([*ArgumentError]);
//   - any weight is not within (0, 1] ([*RangeError]);
//   - the weights add up to more than 1 ([*ArgumentError]).
func (d Distributor) DistributeWeights(weights ...decimal.Decimal) ([]Money, error) {
	res, err := d.distributeWeights(weights)
	if err != nil {
		return nil, fmt.Errorf("distributing %v by weights %v: %w", d.total, weights, err)
	}
	return res, nil
}

func (d Distributor) distributeWeights(weights []decimal.Decimal) ([]Money, error) {
	if len(weights) == 0 {
		return nil, &ArgumentError{Arg: "weights", Value: 0, Reason: "at least one weight is required"}
	}
	if len(weights) > MaxShares {
		return nil, &RangeError{Arg: "count", Value: strconv.Itoa(len(weights)), Min: "1", Max: strconv.Itoa(MaxShares)}
	}
	sum := new(big.Rat)
	ws := make([]*big.Rat, len(weights))
	for i, w := range weights {
		if !w.IsPos() || w.Cmp(decimal.One) > 0 {
			return nil, &RangeError{Arg: fmt.Sprintf("weights[%d]", i), Value: w.String(), Min: "0 (exclusive)", Max: "1"}
		}
		ws[i] = decimalRat(w)
		sum.Add(sum, ws[i])
	}
	if sum.Cmp(ratOne) > 0 {
		return nil, &ArgumentError{Arg: "weights", Value: sum.FloatString(19), Reason: "sum must be within (0, 1]"}
	}
	return d.allocate(ws, slices.Clone(weights))
}

func uniform(count int) []*big.Rat {
	ws := make([]*big.Rat, count)
	for i := range ws {
		ws[i] = ratOne
	}
	return ws
}

// allocate splits the total in proportion to the relative weights ws.
// The distribution is only reported back in errors.
func (d Distributor) allocate(ws []*big.Rat, distribution []decimal.Decimal) ([]Money, error) {
	switch {
	case len(ws) == 1:
		return []Money{d.total}, nil
	case d.total.IsZero():
		shares := make([]Money, len(ws))
		for i := range shares {
			shares[i] = d.total
		}
		return shares, nil
	case d.total.IsNeg():
		// Negative totals mirror the positive ones.
		m := d
		m.total = d.total.Neg()
		shares, err := m.allocate(ws, distribution)
		if err != nil {
			return nil, err
		}
		for i := range shares {
			shares[i] = shares[i].Neg()
		}
		return shares, nil
	}

	sum := new(big.Rat)
	for _, w := range ws {
		sum.Add(sum, w)
	}
	total := d.total.bigNanos()
	q := d.Quantum()
	// total in quanta, divided by the sum of weights
	unit := new(big.Rat).SetFrac(total, new(big.Int).Mul(q.bigNanos(), sum.Num()))
	unit.Mul(unit, new(big.Rat).SetInt(sum.Denom()))

	shares := make([]Money, len(ws))
	running := d.total.Zero()
	var prevW *big.Rat
	for i, w := range ws {
		if prevW != nil && w.Cmp(prevW) == 0 {
			shares[i] = shares[i-1]
		} else {
			x := new(big.Rat).Mul(unit, w)
			x.Sub(x, ratHalf)
			k, err := AwayFromZero.roundRat(x, nil)
			if err != nil {
				return nil, err
			}
			share, err := newMoneyFromNanos(d.total.curr, k.Mul(k, q.bigNanos()))
			if err != nil {
				return nil, err
			}
			shares[i] = share
		}
		prevW = w
		var err error
		running, err = running.add(shares[i])
		if err != nil {
			return nil, err
		}
	}

	rem, err := d.total.sub(running)
	if err != nil {
		return nil, err
	}
	if err := d.assign(shares, rem); err != nil {
		return nil, err
	}

	distributed, err := Sum(shares...)
	if err != nil {
		return nil, err
	}
	if distributed.cmp(d.total) != 0 {
		return nil, &AllocationMismatchError{Total: d.total, Distributed: distributed, Distribution: distribution}
	}
	return shares, nil
}

// assign hands the remainder out to the shares one quantum at a time.
// A part of the remainder smaller than a quantum, left when the total is
// finer than the rounding places, goes to the next share in order.
func (d Distributor) assign(shares []Money, rem Money) error {
	if rem.IsZero() {
		return nil
	}
	q := d.Quantum()
	steps, residue := new(big.Int).QuoRem(rem.bigNanos(), q.bigNanos(), new(big.Int))
	if !steps.IsInt64() {
		return &RangeError{Arg: "remainder", Value: rem.String(), Min: "0", Max: strconv.Itoa(MaxShares)}
	}
	k := steps.Int64()
	if k < 0 {
		k = -k
		q = q.Neg()
	}
	needed := k
	if residue.Sign() != 0 {
		needed++
	}
	order := d.order(len(shares), needed)
	n := int64(len(order))

	var err error
	for i := int64(0); i < k; i++ {
		j := order[i%n]
		shares[j], err = shares[j].add(q)
		if err != nil {
			return err
		}
	}
	if residue.Sign() != 0 {
		r, err := newMoneyFromNanos(d.total.curr, residue)
		if err != nil {
			return err
		}
		j := order[k%n]
		shares[j], err = shares[j].add(r)
		if err != nil {
			return err
		}
	}
	return nil
}

// order returns the indices of the n shares in the order they receive
// remainder quanta. For [Random] only the first needed positions are drawn.
func (d Distributor) order(n int, needed int64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	switch d.recv {
	case LastToFirst:
		slices.Reverse(idx)
	case Random:
		src := d.src
		if src == nil {
			src = defaultSource()
		}
		draws := int(min(needed, int64(n)))
		for i := 0; i < draws; i++ {
			j := i + pick(src, n-i)
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	return idx
}

// Distribute splits amount m into count shares rounded to the given places.
// See [Distributor.DistributeCount].
func (m Money) Distribute(recv Receivers, places Places, count int) ([]Money, error) {
	d, err := NewDistributor(m, recv, places)
	if err != nil {
		return nil, err
	}
	return d.DistributeCount(count)
}

// DistributeRatio splits amount m into floor(1/ratio) shares rounded to the
// given places. See [Distributor.DistributeRatio].
func (m Money) DistributeRatio(recv Receivers, places Places, ratio decimal.Decimal) ([]Money, error) {
	d, err := NewDistributor(m, recv, places)
	if err != nil {
		return nil, err
	}
	return d.DistributeRatio(ratio)
}

// DistributeWeights splits amount m in proportion to the weights, rounding
// shares to the given places. A sum of weights below 1 is normalized.
// See [Distributor.DistributeWeights].
func (m Money) DistributeWeights(recv Receivers, places Places, weights ...decimal.Decimal) ([]Money, error) {
	d, err := NewDistributor(m, recv, places)
	if err != nil {
		return nil, err
	}
	return d.DistributeWeights(weights...)
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// Parts are rounded to the scale of the currency, or to the scale of the
// amount if it is finer, and the remainder is distributed among the first
// parts of the slice.
//
// Split returns an error if the number of parts is not within [1, MaxShares].
func (m Money) Split(parts int) ([]Money, error) {
	places := Places(min(max(m.Curr().Scale(), m.MinScale()), FractionDigits)) //nolint:gosec
	return m.Distribute(FirstToLast, places, parts)
}
