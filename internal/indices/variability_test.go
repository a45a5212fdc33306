package indices

import (
	"math"
	"testing"
	"time"
)

func TestVariability(t *testing.T) {
	records := append(
		dailyRecords(time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC), []float64{10, 10}),
		dailyRecords(time.Date(2002, 6, 1, 0, 0, 0, 0, time.UTC), []float64{20, 20})...,
	)

	got := Variability(records)
	wantStd := math.Sqrt(100.0 / 3.0)
	if !almostEqual(got["std_daily"], wantStd, 1e-9) {
		t.Errorf("std_daily = %v, want %v", got["std_daily"], wantStd)
	}
	if !almostEqual(got["cv_daily"], wantStd/15.0, 1e-9) {
		t.Errorf("cv_daily = %v, want %v", got["cv_daily"], wantStd/15.0)
	}
	// annual means 10 and 20: sd 7.0711, mean 15
	if !almostEqual(got["cv_annual"], math.Sqrt2*5/15, 1e-9) {
		t.Errorf("cv_annual = %v, want %v", got["cv_annual"], math.Sqrt2*5/15)
	}
}

func TestVariabilitySingleYear(t *testing.T) {
	records := dailyRecords(time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3})
	got := Variability(records)
	if !math.IsNaN(got["cv_annual"]) {
		t.Errorf("cv_annual = %v, want NaN with one year", got["cv_annual"])
	}
	if math.IsNaN(got["std_daily"]) {
		t.Error("std_daily should still compute within a single year")
	}
}

func TestBaseflow(t *testing.T) {
	got := Baseflow([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	// min 7-day mean is 4, overall mean 5.5
	if !almostEqual(got["bfi"], 4.0/5.5, 1e-12) {
		t.Errorf("bfi = %v, want %v", got["bfi"], 4.0/5.5)
	}
}

func TestBaseflowDegenerate(t *testing.T) {
	if v := Baseflow([]float64{1, 2, 3})["bfi"]; !math.IsNaN(v) {
		t.Errorf("bfi = %v, want NaN for fewer than 7 days", v)
	}
	if v := Baseflow(make([]float64, 10))["bfi"]; !math.IsNaN(v) {
		t.Errorf("bfi = %v, want NaN for zero mean flow", v)
	}
}
