package components

import "testing"

func TestLayoutRowSumsExactly(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{120, 4},
		{121, 4},
		{123, 4},
		{80, 3},
		{10, 1},
	}

	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		if len(widths) != tt.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tt.total, tt.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}
}

func TestLayoutRowZeroItems(t *testing.T) {
	if widths := LayoutRow(100, 0); widths != nil {
		t.Fatalf("LayoutRow(100, 0) = %v, want nil", widths)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if idx := TabIdxByKey('r'); idx != 1 {
		t.Fatalf("TabIdxByKey('r') = %d, want 1", idx)
	}
	if idx := TabIdxByKey('z'); idx != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", idx)
	}
}
