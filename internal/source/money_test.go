package source

import (
	"math"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"$1,234.56", 1234.56, false},
		{"1234.56", 1234.56, false},
		{"$0.00", 0, false},
		{"(1,234.56)", -1234.56, false},
		{"($500.00)", -500, false},
		{"-$123.45", -123.45, false},
		{"$-123.45", -123.45, false},
		{"$-", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{"  $2,000,000.00  ", 2000000, false},
		{"(-100)", 100, false},
		{"twelve dollars", 0, true},
		{"$12.3.4", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseCurrency(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCurrency(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ParseCurrency(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
