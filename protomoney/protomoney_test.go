package protomoney

import (
	"testing"

	"github.com/fixedmoney/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	moneypb "google.golang.org/genproto/googleapis/type/money"
	"google.golang.org/protobuf/proto"
)

func TestToProto(t *testing.T) {
	tests := []struct {
		name string
		m    money.Money
		want *moneypb.Money
	}{
		{"zero", money.Money{}, &moneypb.Money{CurrencyCode: "XXX"}},
		{"positive", money.MustParseMoney("USD", "1.75"), &moneypb.Money{CurrencyCode: "USD", Units: 1, Nanos: 750_000_000}},
		{"negative", money.MustParseMoney("USD", "-1.75"), &moneypb.Money{CurrencyCode: "USD", Units: -1, Nanos: -750_000_000}},
		{"fraction", money.MustParseMoney("EUR", "-0.05"), &moneypb.Money{CurrencyCode: "EUR", Nanos: -50_000_000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToProto(tt.m)
			assert.True(t, proto.Equal(tt.want, got), "ToProto(%v) = %v, want %v", tt.m, got, tt.want)

			back, err := FromProto(got)
			require.NoError(t, err)
			assert.Equal(t, tt.m.Curr(), back.Curr())
			assert.Equal(t, tt.m.Units(), back.Units())
			assert.Equal(t, tt.m.Nanos(), back.Nanos())
		})
	}
}

func TestFromProto(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := FromProto(&moneypb.Money{Units: 3, Nanos: 10})
		require.NoError(t, err)
		assert.Equal(t, money.XXX, got.Curr())
		assert.Equal(t, "XXX 3.00000001", got.String())

		got, err = FromProto(&moneypb.Money{CurrencyCode: "jpy", Units: -5})
		require.NoError(t, err)
		assert.Equal(t, money.MustParseMoney("JPY", "-5"), got)
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			p       *moneypb.Money
			wantErr error
		}{
			"nil":      {nil, money.ErrInvalidArgument},
			"sign":     {&moneypb.Money{CurrencyCode: "USD", Units: 1, Nanos: -1}, money.ErrInvalidArgument},
			"nanos":    {&moneypb.Money{CurrencyCode: "USD", Nanos: 1_000_000_000}, money.ErrRange},
			"units":    {&moneypb.Money{CurrencyCode: "USD", Units: -9223372036854775808}, money.ErrRange},
			"currency": {&moneypb.Money{CurrencyCode: "BTC", Units: 1}, nil},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := FromProto(tt.p)
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			})
		}
	})
}

func TestJSON(t *testing.T) {
	m := money.MustParseMoney("USD", "1.5")
	b, err := MarshalJSON(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currencyCode":"USD","units":"1","nanos":500000000}`, string(b))

	got, err := UnmarshalJSON(b)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = UnmarshalJSON([]byte(`{"currencyCode":"USD","units":"x"}`))
	assert.Error(t, err)
}
