package money

import (
	"errors"
	"math"
	"testing"
)

// seqSource replays a fixed sequence of draws.
type seqSource struct {
	draws []float64
	next  int
}

func (s *seqSource) Float64() float64 {
	p := s.draws[s.next%len(s.draws)]
	s.next++
	return p
}

func TestRoundingMode_String(t *testing.T) {
	tests := []struct {
		mode RoundingMode
		want string
	}{
		{ToEven, "ToEven"},
		{AwayFromZero, "AwayFromZero"},
		{TowardZero, "TowardZero"},
		{RoundUp, "RoundUp"},
		{RoundDown, "RoundDown"},
		{Stochastic, "Stochastic"},
		{RoundingMode(42), "RoundingMode(42)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("RoundingMode(%d).String() = %q, want %q", uint8(tt.mode), got, tt.want)
		}
	}
}

func TestRounder_Round(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		modes := []RoundingMode{ToEven, AwayFromZero, TowardZero, RoundUp, RoundDown}
		tests := []struct {
			m      string
			places Places
			want   [5]string
		}{
			{"1.005", 2, [5]string{"1.00", "1.01", "1.00", "1.01", "1.00"}},
			{"1.015", 2, [5]string{"1.02", "1.02", "1.01", "1.02", "1.01"}},
			{"-1.005", 2, [5]string{"-1.00", "-1.01", "-1.00", "-1.00", "-1.01"}},
			{"-1.015", 2, [5]string{"-1.02", "-1.02", "-1.01", "-1.01", "-1.02"}},
			{"1.006", 2, [5]string{"1.01", "1.01", "1.01", "1.01", "1.01"}},
			{"1.004", 2, [5]string{"1.00", "1.00", "1.00", "1.00", "1.00"}},
			{"-1.004", 2, [5]string{"-1.00", "-1.00", "-1.00", "-1.00", "-1.00"}},
			{"0.995", 2, [5]string{"1.00", "1.00", "0.99", "1.00", "0.99"}},
			{"-0.995", 2, [5]string{"-1.00", "-1.00", "-0.99", "-0.99", "-1.00"}},
			{"2.5", 0, [5]string{"2", "3", "2", "3", "2"}},
			{"3.5", 0, [5]string{"4", "4", "3", "4", "3"}},
			{"-2.5", 0, [5]string{"-2", "-3", "-2", "-2", "-3"}},
			{"-3.5", 0, [5]string{"-4", "-4", "-3", "-3", "-4"}},
			{"0.5", 0, [5]string{"0", "1", "0", "1", "0"}},
			{"0.123456789", 9, [5]string{"0.123456789", "0.123456789", "0.123456789", "0.123456789", "0.123456789"}},
			{"0.000000005", 8, [5]string{"0", "0.00000001", "0", "0.00000001", "0"}},
		}
		for _, tt := range tests {
			m := MustParseMoney("USD", tt.m)
			for i, mode := range modes {
				got, rem, err := Rounder{}.Round(m, tt.places, mode)
				if err != nil {
					t.Errorf("Round(%v, %v, %v) failed: %v", m, tt.places, mode, err)
					continue
				}
				want := MustParseMoney("USD", tt.want[i])
				if got != want {
					t.Errorf("Round(%v, %v, %v) = %v, want %v", m, tt.places, mode, got, want)
				}
				back, err := got.Add(rem)
				if err != nil {
					t.Errorf("%v.Add(%v) failed: %v", got, rem, err)
					continue
				}
				if back != m {
					t.Errorf("Round(%v, %v, %v) remainder = %v, rounded + remainder = %v", m, tt.places, mode, rem, back)
				}
			}
		}
	})

	t.Run("stochastic", func(t *testing.T) {
		tests := []struct {
			m     string
			draws []float64
			want  string
			used  int
		}{
			{"1.005", []float64{0.7}, "1.01", 1},
			{"1.005", []float64{0.5}, "1.01", 1},
			{"1.005", []float64{0.2}, "1.00", 1},
			{"-1.005", []float64{0.7}, "-1.00", 1},
			{"-1.005", []float64{0.2}, "-1.01", 1},
			{"1.004", []float64{0.9}, "1.00", 1},
			{"1.006", []float64{0.1}, "1.01", 1},
			{"1.01", []float64{0.9}, "1.01", 0},
		}
		for _, tt := range tests {
			src := &seqSource{draws: tt.draws}
			m := MustParseMoney("USD", tt.m)
			got, _, err := NewRounder(src).Round(m, 2, Stochastic)
			if err != nil {
				t.Errorf("Round(%v, 2, Stochastic) failed: %v", m, err)
				continue
			}
			if want := MustParseMoney("USD", tt.want); got != want {
				t.Errorf("Round(%v, 2, Stochastic) with %v = %v, want %v", m, tt.draws, got, want)
			}
			if src.next != tt.used {
				t.Errorf("Round(%v, 2, Stochastic) drew %v values, want %v", m, src.next, tt.used)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			m       Money
			places  Places
			mode    RoundingMode
			wantErr error
		}{
			"places":   {MustParseMoney("USD", "1"), MaxPlaces + 1, ToEven, ErrInvalidArgument},
			"mode":     {MustParseMoney("USD", "1"), 2, RoundingMode(6), ErrInvalidArgument},
			"overflow": {mustMoneyFromUnits(USD, math.MaxInt64, 999_999_999), 2, AwayFromZero, ErrRange},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, _, err := Rounder{}.Round(tt.m, tt.places, tt.mode)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Round(%v, %v, %v) = %v, want %v", tt.m, tt.places, tt.mode, err, tt.wantErr)
				}
			})
		}
	})
}

func TestMoney_Round(t *testing.T) {
	m := MustParseMoney("USD", "-1.015")
	got, err := m.Round(2, ToEven)
	if err != nil {
		t.Fatalf("%v.Round(2, ToEven) failed: %v", m, err)
	}
	if want := MustParseMoney("USD", "-1.02"); got != want {
		t.Errorf("%v.Round(2, ToEven) = %v, want %v", m, got, want)
	}

	rounded, rem, err := m.RoundRem(1, TowardZero)
	if err != nil {
		t.Fatalf("%v.RoundRem(1, TowardZero) failed: %v", m, err)
	}
	if want := MustParseMoney("USD", "-1"); rounded != want {
		t.Errorf("%v.RoundRem(1, TowardZero) = %v, want %v", m, rounded, want)
	}
	if want := MustParseMoney("USD", "-0.015"); rem != want {
		t.Errorf("%v.RoundRem(1, TowardZero) remainder = %v, want %v", m, rem, want)
	}
}

func TestMoney_RoundToCurr(t *testing.T) {
	tests := []struct {
		curr, m, want string
	}{
		{"JPY", "2.5", "2"},
		{"JPY", "3.5", "4"},
		{"USD", "1.005", "1.00"},
		{"USD", "1.015", "1.02"},
		{"OMR", "1.0005", "1.000"},
		{"OMR", "1.0015", "1.002"},
		{"XXX", "0.5", "0"},
	}
	for _, tt := range tests {
		m := MustParseMoney(tt.curr, tt.m)
		got, err := m.RoundToCurr()
		if err != nil {
			t.Errorf("%v.RoundToCurr() failed: %v", m, err)
			continue
		}
		if want := MustParseMoney(tt.curr, tt.want); got != want {
			t.Errorf("%v.RoundToCurr() = %v, want %v", m, got, want)
		}
	}
}

func TestMT19937(t *testing.T) {
	a := NewMT19937(42)
	b := NewMT19937(42)
	c := NewMT19937(43)
	same := true
	for i := 0; i < 100; i++ {
		x, y, z := a.Float64(), b.Float64(), c.Float64()
		if x != y {
			t.Fatalf("draw %v: %v != %v for equal seeds", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %v: %v is not within [0, 1)", i, x)
		}
		if x != z {
			same = false
		}
	}
	if same {
		t.Errorf("sources with different seeds produced the same sequence")
	}
}
