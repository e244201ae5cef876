package money

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/govalues/decimal"
)

func amounts(curr string, ss ...string) []Money {
	res := make([]Money, len(ss))
	for i, s := range ss {
		res[i] = MustParseMoney(curr, s)
	}
	return res
}

var cmpMoney = cmp.AllowUnexported(Money{})

func TestReceivers_String(t *testing.T) {
	tests := []struct {
		recv Receivers
		want string
	}{
		{FirstToLast, "FirstToLast"},
		{LastToFirst, "LastToFirst"},
		{Random, "Random"},
		{Receivers(7), "Receivers(7)"},
	}
	for _, tt := range tests {
		if got := tt.recv.String(); got != tt.want {
			t.Errorf("Receivers(%d).String() = %q, want %q", uint8(tt.recv), got, tt.want)
		}
	}
}

func TestNewDistributor(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		total := MustParseMoney("USD", "0.05")
		d, err := NewDistributor(total, LastToFirst, 2)
		if err != nil {
			t.Fatalf("NewDistributor(%v, LastToFirst, 2) failed: %v", total, err)
		}
		if got := d.Total(); got != total {
			t.Errorf("Total() = %v, want %v", got, total)
		}
		if got, want := d.Quantum(), MustParseMoney("USD", "0.01"); got != want {
			t.Errorf("Quantum() = %v, want %v", got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			recv   Receivers
			places Places
		}{
			"places":    {FirstToLast, MaxPlaces + 1},
			"receivers": {Receivers(3), 2},
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := NewDistributor(MustParseMoney("USD", "1"), tt.recv, tt.places)
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("NewDistributor(USD 1, %v, %v) = %v, want %v", tt.recv, tt.places, err, ErrInvalidArgument)
				}
			})
		}
	})
}

func TestDistributor_DistributeRatio(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			total  string
			recv   Receivers
			places Places
			ratio  string
			want   []string
		}{
			{"0.05", LastToFirst, 2, "0.3", []string{"0.01", "0.02", "0.02"}},
			{"0.05", FirstToLast, 2, "0.3", []string{"0.02", "0.02", "0.01"}},
			{"0.05", LastToFirst, 7, "0.3", []string{"0.0166666", "0.0166667", "0.0166667"}},
			{"0.05", FirstToLast, 7, "0.3", []string{"0.0166667", "0.0166667", "0.0166666"}},
			{"-0.05", LastToFirst, 2, "0.3", []string{"-0.01", "-0.02", "-0.02"}},
			{"0.05", LastToFirst, 2, "1", []string{"0.05"}},
			{"0.05", LastToFirst, 2, "0.6", []string{"0.05"}},
			{"0.055", FirstToLast, 2, "0.5", []string{"0.03", "0.025"}},
			{"0.055", LastToFirst, 2, "0.5", []string{"0.025", "0.03"}},
			{"100", FirstToLast, 0, "0.25", []string{"25", "25", "25", "25"}},
			{"10", FirstToLast, 0, "0.25", []string{"3", "3", "2", "2"}},
			{"10", LastToFirst, 0, "0.25", []string{"2", "2", "3", "3"}},
			{"0.01", FirstToLast, 2, "0.2", []string{"0.01", "0", "0", "0", "0"}},
			{"0.01", LastToFirst, 2, "0.2", []string{"0", "0", "0", "0", "0.01"}},
			{"0", FirstToLast, 2, "0.5", []string{"0", "0"}},
		}
		for _, tt := range tests {
			total := MustParseMoney("USD", tt.total)
			d, err := NewDistributor(total, tt.recv, tt.places)
			if err != nil {
				t.Fatalf("NewDistributor(%v, %v, %v) failed: %v", total, tt.recv, tt.places, err)
			}
			ratio := decimal.MustParse(tt.ratio)
			got, err := d.DistributeRatio(ratio)
			if err != nil {
				t.Errorf("DistributeRatio(%v) of %v failed: %v", ratio, total, err)
				continue
			}
			want := amounts("USD", tt.want...)
			if diff := cmp.Diff(want, got, cmpMoney); diff != "" {
				t.Errorf("DistributeRatio(%v) of %v with %v at %v places mismatch (-want +got):\n%s",
					ratio, total, tt.recv, tt.places, diff)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{"0", "-0.5", "1.01", "2", "0.0000001"}
		d, err := NewDistributor(MustParseMoney("USD", "1"), FirstToLast, 2)
		if err != nil {
			t.Fatalf("NewDistributor failed: %v", err)
		}
		for _, tt := range tests {
			ratio := decimal.MustParse(tt)
			_, err := d.DistributeRatio(ratio)
			if !errors.Is(err, ErrRange) {
				t.Errorf("DistributeRatio(%v) = %v, want %v", ratio, err, ErrRange)
			}
		}
	})
}

func TestDistributor_DistributeCount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			total string
			recv  Receivers
			count int
			want  []string
		}{
			{"1", FirstToLast, 1, []string{"1"}},
			{"1", FirstToLast, 3, []string{"0.34", "0.33", "0.33"}},
			{"1", LastToFirst, 3, []string{"0.33", "0.33", "0.34"}},
			{"-1", FirstToLast, 3, []string{"-0.34", "-0.33", "-0.33"}},
			{"0.02", FirstToLast, 3, []string{"0.01", "0.01", "0"}},
			{"0.02", LastToFirst, 3, []string{"0", "0.01", "0.01"}},
		}
		for _, tt := range tests {
			total := MustParseMoney("USD", tt.total)
			d, err := NewDistributor(total, tt.recv, 2)
			if err != nil {
				t.Fatalf("NewDistributor(%v, %v, 2) failed: %v", total, tt.recv, err)
			}
			got, err := d.DistributeCount(tt.count)
			if err != nil {
				t.Errorf("DistributeCount(%v) of %v failed: %v", tt.count, total, err)
				continue
			}
			want := amounts("USD", tt.want...)
			if diff := cmp.Diff(want, got, cmpMoney); diff != "" {
				t.Errorf("DistributeCount(%v) of %v with %v mismatch (-want +got):\n%s", tt.count, total, tt.recv, diff)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []int{-1, 0, MaxShares + 1}
		d, err := NewDistributor(MustParseMoney("USD", "1"), FirstToLast, 2)
		if err != nil {
			t.Fatalf("NewDistributor failed: %v", err)
		}
		for _, tt := range tests {
			_, err := d.DistributeCount(tt)
			if !errors.Is(err, ErrRange) {
				t.Errorf("DistributeCount(%v) = %v, want %v", tt, err, ErrRange)
			}
		}
	})
}

func TestDistributor_DistributeWeights(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			total   string
			recv    Receivers
			weights []string
			want    []string
		}{
			{"0.05", LastToFirst, []string{"0.7", "0.3"}, []string{"0.03", "0.02"}},
			{"0.05", FirstToLast, []string{"0.7", "0.3"}, []string{"0.04", "0.01"}},
			{"10", FirstToLast, []string{"0.25", "0.25"}, []string{"5.00", "5.00"}},
			{"100", FirstToLast, []string{"0.5", "0.3", "0.2"}, []string{"50", "30", "20"}},
			{"1", FirstToLast, []string{"0.5", "0.25", "0.25"}, []string{"0.50", "0.25", "0.25"}},
			{"1", FirstToLast, []string{"0.2", "0.2", "0.2"}, []string{"0.34", "0.33", "0.33"}},
			{"-0.05", LastToFirst, []string{"0.7", "0.3"}, []string{"-0.03", "-0.02"}},
			{"7", FirstToLast, []string{"1"}, []string{"7"}},
			{"0.10", FirstToLast, []string{"0.2", "0.2"}, []string{"0.05", "0.05"}},
			{"0.05", FirstToLast, []string{"0.1", "0.1", "0.1"}, []string{"0.02", "0.02", "0.01"}},
		}
		for _, tt := range tests {
			total := MustParseMoney("USD", tt.total)
			d, err := NewDistributor(total, tt.recv, 2)
			if err != nil {
				t.Fatalf("NewDistributor(%v, %v, 2) failed: %v", total, tt.recv, err)
			}
			weights := make([]decimal.Decimal, len(tt.weights))
			for i, w := range tt.weights {
				weights[i] = decimal.MustParse(w)
			}
			got, err := d.DistributeWeights(weights...)
			if err != nil {
				t.Errorf("DistributeWeights(%v) of %v failed: %v", weights, total, err)
				continue
			}
			want := amounts("USD", tt.want...)
			if diff := cmp.Diff(want, got, cmpMoney); diff != "" {
				t.Errorf("DistributeWeights(%v) of %v with %v mismatch (-want +got):\n%s", weights, total, tt.recv, diff)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			weights []string
			wantErr error
		}{
			"empty":    {nil, ErrInvalidArgument},
			"zero":     {[]string{"0.5", "0"}, ErrRange},
			"negative": {[]string{"-0.5"}, ErrRange},
			"large":    {[]string{"1.5"}, ErrRange},
			"sum":      {[]string{"0.6", "0.6"}, ErrInvalidArgument},
		}
		d, err := NewDistributor(MustParseMoney("USD", "1"), FirstToLast, 2)
		if err != nil {
			t.Fatalf("NewDistributor failed: %v", err)
		}
		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				weights := make([]decimal.Decimal, len(tt.weights))
				for i, w := range tt.weights {
					weights[i] = decimal.MustParse(w)
				}
				_, err := d.DistributeWeights(weights...)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DistributeWeights(%v) = %v, want %v", weights, err, tt.wantErr)
				}
			})
		}
	})
}

func TestDistributor_Random(t *testing.T) {
	tests := []struct {
		draws []float64
		want  []string
	}{
		{[]float64{0.9, 0.0}, []string{"0.01", "0.02", "0.02"}},
		{[]float64{0.0, 0.9}, []string{"0.02", "0.01", "0.02"}},
		{[]float64{0.0, 0.0}, []string{"0.02", "0.02", "0.01"}},
		{[]float64{0.4, 0.6}, []string{"0.01", "0.02", "0.02"}},
	}
	total := MustParseMoney("USD", "0.05")
	for _, tt := range tests {
		src := &seqSource{draws: tt.draws}
		d, err := NewDistributor(total, Random, 2)
		if err != nil {
			t.Fatalf("NewDistributor(%v, Random, 2) failed: %v", total, err)
		}
		got, err := d.WithSource(src).DistributeCount(3)
		if err != nil {
			t.Errorf("DistributeCount(3) with %v failed: %v", tt.draws, err)
			continue
		}
		want := amounts("USD", tt.want...)
		if diff := cmp.Diff(want, got, cmpMoney); diff != "" {
			t.Errorf("DistributeCount(3) with %v mismatch (-want +got):\n%s", tt.draws, diff)
		}
		if src.next != 2 {
			t.Errorf("DistributeCount(3) drew %v values, want 2", src.next)
		}
	}
}

func TestDistributor_Laws(t *testing.T) {
	totals := []Money{
		MustParseMoney("USD", "0"),
		MustParseMoney("USD", "0.01"),
		MustParseMoney("USD", "0.05"),
		MustParseMoney("USD", "-0.05"),
		MustParseMoney("USD", "100"),
		MustParseMoney("USD", "1234.567891"),
		MustParseMoney("JPY", "-98765"),
		MustParseMoney("OMR", "0.000000001"),
		mustMoneyFromUnits(EUR, 9223372036854775807, 999_999_999),
		mustMoneyFromUnits(EUR, -9223372036854775807, -999_999_999),
	}
	ratios := []string{"1", "0.5", "0.3", "0.25", "0.07", "0.013"}
	weights := [][]string{
		{"1"},
		{"0.7", "0.3"},
		{"0.2", "0.2", "0.2"},
		{"0.1", "0.25", "0.05"},
		{"0.333", "0.333", "0.334"},
		{"0.000000001", "0.999999999"},
		{"0.01", "0.01", "0.01", "0.01", "0.01", "0.01", "0.01"},
	}
	src := NewMT19937(7)

	for _, total := range totals {
		for _, places := range []Places{0, 2, 3, 7, 9} {
			for _, r := range ratios {
				ratio := decimal.MustParse(r)
				q, _, err := decimal.One.QuoRem(ratio)
				if err != nil {
					t.Fatalf("QuoRem(1, %v) failed: %v", ratio, err)
				}
				count, _, _ := q.Int64(0)

				results := map[Receivers][]Money{}
				for _, recv := range []Receivers{FirstToLast, LastToFirst, Random} {
					d, err := NewDistributor(total, recv, places)
					if err != nil {
						t.Fatalf("NewDistributor(%v, %v, %v) failed: %v", total, recv, places, err)
					}
					shares, err := d.WithSource(src).DistributeRatio(ratio)
					if err != nil {
						t.Errorf("DistributeRatio(%v) of %v with %v at %v places failed: %v", ratio, total, recv, places, err)
						continue
					}
					if len(shares) != int(count) {
						t.Errorf("DistributeRatio(%v) of %v returned %v shares, want %v", ratio, total, len(shares), count)
					}
					sum, err := Sum(shares...)
					if err != nil {
						t.Errorf("Sum(%v) failed: %v", shares, err)
						continue
					}
					if sum != total {
						t.Errorf("DistributeRatio(%v) of %v with %v at %v places adds up to %v", ratio, total, recv, places, sum)
					}
					results[recv] = shares
				}

				first := slices.Clone(results[FirstToLast])
				last := slices.Clone(results[LastToFirst])
				slices.SortFunc(first, func(a, b Money) int { return a.cmp(b) })
				slices.SortFunc(last, func(a, b Money) int { return a.cmp(b) })
				if diff := cmp.Diff(first, last, cmpMoney); diff != "" {
					t.Errorf("DistributeRatio(%v) of %v at %v places: FirstToLast and LastToFirst differ (-first +last):\n%s",
						ratio, total, places, diff)
				}
			}

			for _, wv := range weights {
				ws := make([]decimal.Decimal, len(wv))
				for i, w := range wv {
					ws[i] = decimal.MustParse(w)
				}
				for _, recv := range []Receivers{FirstToLast, LastToFirst, Random} {
					d, err := NewDistributor(total, recv, places)
					if err != nil {
						t.Fatalf("NewDistributor(%v, %v, %v) failed: %v", total, recv, places, err)
					}
					shares, err := d.WithSource(src).DistributeWeights(ws...)
					if err != nil {
						t.Errorf("DistributeWeights(%v) of %v with %v at %v places failed: %v", ws, total, recv, places, err)
						continue
					}
					if len(shares) != len(ws) {
						t.Errorf("DistributeWeights(%v) of %v returned %v shares, want %v", ws, total, len(shares), len(ws))
					}
					sum, err := Sum(shares...)
					if err != nil {
						t.Errorf("Sum(%v) failed: %v", shares, err)
						continue
					}
					if sum != total {
						t.Errorf("DistributeWeights(%v) of %v with %v at %v places adds up to %v", ws, total, recv, places, sum)
					}
				}
			}
		}
	}
}

func TestMoney_Distribute(t *testing.T) {
	m := MustParseMoney("USD", "0.05")

	got, err := m.DistributeRatio(LastToFirst, 2, decimal.MustParse("0.3"))
	if err != nil {
		t.Fatalf("%v.DistributeRatio failed: %v", m, err)
	}
	if diff := cmp.Diff(amounts("USD", "0.01", "0.02", "0.02"), got, cmpMoney); diff != "" {
		t.Errorf("%v.DistributeRatio mismatch (-want +got):\n%s", m, diff)
	}

	got, err = m.Distribute(FirstToLast, 2, 2)
	if err != nil {
		t.Fatalf("%v.Distribute failed: %v", m, err)
	}
	if diff := cmp.Diff(amounts("USD", "0.03", "0.02"), got, cmpMoney); diff != "" {
		t.Errorf("%v.Distribute mismatch (-want +got):\n%s", m, diff)
	}

	got, err = m.DistributeWeights(LastToFirst, 2, decimal.MustParse("0.7"), decimal.MustParse("0.3"))
	if err != nil {
		t.Fatalf("%v.DistributeWeights failed: %v", m, err)
	}
	if diff := cmp.Diff(amounts("USD", "0.03", "0.02"), got, cmpMoney); diff != "" {
		t.Errorf("%v.DistributeWeights mismatch (-want +got):\n%s", m, diff)
	}

	if _, err := m.Distribute(FirstToLast, MaxPlaces+1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("%v.Distribute(FirstToLast, %v, 2) = %v, want %v", m, MaxPlaces+1, err, ErrInvalidArgument)
	}
}

func TestMoney_Split(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr, m string
			parts   int
			want    []string
		}{
			{"USD", "1", 3, []string{"0.34", "0.33", "0.33"}},
			{"USD", "-1", 3, []string{"-0.34", "-0.33", "-0.33"}},
			{"JPY", "10", 4, []string{"3", "3", "2", "2"}},
			{"USD", "0.005", 2, []string{"0.003", "0.002"}},
			{"OMR", "1", 1, []string{"1"}},
		}
		for _, tt := range tests {
			m := MustParseMoney(tt.curr, tt.m)
			got, err := m.Split(tt.parts)
			if err != nil {
				t.Errorf("%v.Split(%v) failed: %v", m, tt.parts, err)
				continue
			}
			if diff := cmp.Diff(amounts(tt.curr, tt.want...), got, cmpMoney); diff != "" {
				t.Errorf("%v.Split(%v) mismatch (-want +got):\n%s", m, tt.parts, diff)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		m := MustParseMoney("USD", "1")
		if _, err := m.Split(0); !errors.Is(err, ErrRange) {
			t.Errorf("%v.Split(0) = %v, want %v", m, err, ErrRange)
		}
	})
}

func TestAllocationMismatchError(t *testing.T) {
	err := error(&AllocationMismatchError{
		Total:        MustParseMoney("USD", "0.05"),
		Distributed:  MustParseMoney("USD", "0.04"),
		Distribution: []decimal.Decimal{decimal.MustParse("0.3")},
	})
	if !errors.Is(err, ErrAllocationMismatch) {
		t.Errorf("errors.Is(%v, ErrAllocationMismatch) = false", err)
	}
	want := "distributing USD 0.05 by [0.3]: shares add up to USD 0.04: allocation mismatch"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	var target *AllocationMismatchError
	if !errors.As(err, &target) || target.Distributed != MustParseMoney("USD", "0.04") {
		t.Errorf("errors.As(%v) did not return the error", err)
	}
}

func TestParseReceivers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s    string
			want Receivers
		}{
			{"FirstToLast", FirstToLast},
			{"first-to-last", FirstToLast},
			{"LAST_TO_FIRST", LastToFirst},
			{"random", Random},
		}
		for _, tt := range tests {
			got, err := ParseReceivers(tt.s)
			if err != nil {
				t.Errorf("ParseReceivers(%q) failed: %v", tt.s, err)
				continue
			}
			if got != tt.want {
				t.Errorf("ParseReceivers(%q) = %v, want %v", tt.s, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, s := range []string{"", "first", "Receivers(3)"} {
			_, err := ParseReceivers(s)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseReceivers(%q) = %v, want %v", s, err, ErrInvalidArgument)
			}
		}
	})
}
