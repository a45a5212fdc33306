package indices

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPercentileLinearInterpolation(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1) // 1..100
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{25, 25.75},
		{50, 50.5},
		{75, 75.25},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Percentile(values, tt.p); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPercentileUnsortedInput(t *testing.T) {
	if got := Percentile([]float64{3, 1, 2}, 50); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestPercentileEmpty(t *testing.T) {
	if !math.IsNaN(Percentile(nil, 50)) {
		t.Fatal("expected NaN for empty sample")
	}
}

func TestRollingMeans(t *testing.T) {
	got := RollingMeans([]float64{1, 2, 3, 4}, 2)
	want := []float64{1.5, 2.5, 3.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(got))
	}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Errorf("window %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRollingMeansShortSample(t *testing.T) {
	if got := RollingMeans([]float64{1, 2}, 7); got != nil {
		t.Fatalf("expected nil for short sample, got %v", got)
	}
}

func TestRunLengths(t *testing.T) {
	runs := runLengths([]bool{true, true, false, true, false, false, true, true, true})
	want := []int{2, 1, 3}
	if len(runs) != len(want) {
		t.Fatalf("expected %v, got %v", want, runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, runs)
		}
	}
}

func TestCheckDisjoint(t *testing.T) {
	if err := CheckDisjoint([]string{"a", "b"}, []string{"c"}); err != nil {
		t.Fatalf("disjoint lists should pass: %v", err)
	}
	if err := CheckDisjoint([]string{"a", "b"}, []string{"b"}); err == nil {
		t.Fatal("overlapping lists should fail")
	}
}
