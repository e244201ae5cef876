// Package protomoney maps amounts of [money.Money] onto the
// [google.type.Money] protocol buffer message.
//
// Both types store whole units and nanounits with the same sign, so the
// mapping is exact in both directions.
//
// [google.type.Money]: https://github.com/googleapis/googleapis/blob/master/google/type/money.proto
package protomoney

import (
	"fmt"

	"github.com/fixedmoney/money"
	moneypb "google.golang.org/genproto/googleapis/type/money"
	"google.golang.org/protobuf/encoding/protojson"
)

// ToProto returns the message representing amount m.
// Amounts without a currency carry the code of the ambient currency.
func ToProto(m money.Money) *moneypb.Money {
	return &moneypb.Money{
		CurrencyCode: m.Curr().Code(),
		Units:        m.Units(),
		Nanos:        m.Nanos(),
	}
}

// FromProto returns the amount represented by message p.
// An empty currency code stands for the ambient currency.
//
// FromProto returns an error if p is nil, its currency code is unknown,
// or its units and nanos do not form a valid amount.
func FromProto(p *moneypb.Money) (money.Money, error) {
	if p == nil {
		return money.Money{}, fmt.Errorf("converting message: %w",
			&money.ArgumentError{Arg: "message", Value: nil, Reason: "nil message"})
	}
	curr := money.XXX
	if code := p.GetCurrencyCode(); code != "" {
		if err := curr.UnmarshalText([]byte(code)); err != nil {
			return money.Money{}, fmt.Errorf("converting message %v: %w", p, err)
		}
	}
	m, err := money.NewMoneyFromUnits(curr, p.GetUnits(), p.GetNanos())
	if err != nil {
		return money.Money{}, fmt.Errorf("converting message %v: %w", p, err)
	}
	return m, nil
}

// MarshalJSON returns the canonical JSON encoding of the message
// representing amount m.
func MarshalJSON(m money.Money) ([]byte, error) {
	b, err := protojson.Marshal(ToProto(m))
	if err != nil {
		return nil, fmt.Errorf("marshaling %v: %w", m, err)
	}
	return b, nil
}

// UnmarshalJSON decodes the JSON encoding of a [google.type.Money] message.
//
// [google.type.Money]: https://github.com/googleapis/googleapis/blob/master/google/type/money.proto
func UnmarshalJSON(b []byte) (money.Money, error) {
	var p moneypb.Money
	if err := protojson.Unmarshal(b, &p); err != nil {
		return money.Money{}, fmt.Errorf("unmarshaling %T: %w", money.Money{}, err)
	}
	return FromProto(&p)
}
