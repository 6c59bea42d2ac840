package calculator

import (
	"math"
	"testing"

	"Stonitor/internal/model"
)

func ptr(v float64) *float64 { return &v }

func series(prices ...float64) []model.PricePoint {
	out := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		out[i] = model.PricePoint{Timestamp: int64(1000 + i*60), Price: p}
	}
	return out
}

func TestPercentChange_PreviousCloseFallback(t *testing.T) {
	pts := series(100, 105, 110)

	base, ok := ChangeBase(&model.Metadata{}, pts)
	if !ok || base != 100 {
		t.Fatalf("expected first point as base, got %v (ok=%v)", base, ok)
	}
	pct, _ := PercentChange(110, base)
	if math.Abs(pct-10) > 1e-9 {
		t.Errorf("expected +10%%, got %v", pct)
	}

	base, _ = ChangeBase(&model.Metadata{PreviousClose: ptr(90)}, pts)
	pct, _ = PercentChange(110, base)
	want := (110.0 - 90.0) / 90.0 * 100
	if math.Abs(pct-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, pct)
	}
	if got := AbsoluteChange(base, pct); math.Abs(got-20) > 1e-9 {
		t.Errorf("expected absolute change 20, got %v", got)
	}
}

func TestPercentChange_NoBase(t *testing.T) {
	if _, ok := ChangeBase(nil, nil); ok {
		t.Error("expected no base for empty series without metadata")
	}
	if _, ok := PercentChange(10, 0); ok {
		t.Error("expected zero base to be rejected")
	}
}

func TestPriceBounds(t *testing.T) {
	low, high, err := PriceBounds(series(5, 3, 9, 4))
	if err != nil || low != 3 || high != 9 {
		t.Errorf("expected 3..9, got %v..%v (%v)", low, high, err)
	}
	if _, _, err := PriceBounds(nil); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestResample_SharedAxis(t *testing.T) {
	prices := series(1, 2, 3, 4, 5, 6)
	volumes := make([]model.VolumePoint, len(prices))
	for i, p := range prices {
		volumes[i] = model.VolumePoint{Timestamp: p.Timestamp, Volume: 10}
	}

	cols := Resample(prices, volumes, 3)
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	for i, c := range cols {
		if c.Volume != 20 {
			t.Errorf("column %d: expected volume 20, got %v", i, c.Volume)
		}
	}
	if cols[0].Start != prices[0].Timestamp || cols[2].End != prices[5].Timestamp {
		t.Errorf("unexpected column bounds: %+v", cols)
	}
	if cols[2].Price != 6 {
		t.Errorf("expected last bucket to close at 6, got %v", cols[2].Price)
	}

	if got := Resample(prices, volumes, 100); len(got) != 6 {
		t.Errorf("expected width capped to series length, got %d", len(got))
	}
	if got := Resample(nil, nil, 10); got != nil {
		t.Errorf("expected nil for empty series, got %v", got)
	}
}

func TestScaleToRows(t *testing.T) {
	tests := []struct {
		value, low, high float64
		rows, want       int
	}{
		{0, 0, 10, 11, 0},
		{10, 0, 10, 11, 10},
		{5, 0, 10, 11, 5},
		{7, 7, 7, 5, 2},
		{20, 0, 10, 5, 4},
	}
	for _, tt := range tests {
		if got := ScaleToRows(tt.value, tt.low, tt.high, tt.rows); got != tt.want {
			t.Errorf("ScaleToRows(%v,%v,%v,%d) = %d, want %d", tt.value, tt.low, tt.high, tt.rows, got, tt.want)
		}
	}
}

func TestOverlayVolume(t *testing.T) {
	cols := []Column{{Volume: 0}, {Volume: 50}, {Volume: 100}}
	got := OverlayVolume(cols, 100, 200, 0.25)
	want := []float64{100, 112.5, 125}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("column %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
