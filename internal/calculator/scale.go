package calculator

import (
	"math"

	"Stonitor/internal/model"
)

// Column is one horizontal bucket of a resampled chart.
type Column struct {
	Start  int64   // first timestamp in the bucket
	End    int64   // last timestamp in the bucket
	Price  float64 // closing price of the bucket
	Volume float64 // summed volume of the bucket
}

// Resample folds index-aligned price and volume series into at most width
// buckets sharing one time axis. Each bucket keeps its last price and the sum
// of its volumes.
func Resample(prices []model.PricePoint, volumes []model.VolumePoint, width int) []Column {
	n := len(prices)
	if n == 0 || width <= 0 {
		return nil
	}
	if width > n {
		width = n
	}

	cols := make([]Column, width)
	for c := 0; c < width; c++ {
		from := c * n / width
		to := (c + 1) * n / width
		col := Column{Start: prices[from].Timestamp, End: prices[to-1].Timestamp, Price: prices[to-1].Price}
		for i := from; i < to && i < len(volumes); i++ {
			col.Volume += volumes[i].Volume
		}
		cols[c] = col
	}
	return cols
}

// ScaleToRows maps value in [low, high] onto 0..rows-1, 0 being the bottom row.
func ScaleToRows(value, low, high float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos, err := Position(value, low, high)
	if err != nil {
		return 0
	}
	return int(math.Round(pos * float64(rows-1)))
}

// OverlayVolume rescales volumes into the lower fraction of the price axis so
// both series can be drawn on one chart: the largest volume maps to
// low + frac*(high-low), zero volume maps to low.
func OverlayVolume(cols []Column, low, high, frac float64) []float64 {
	out := make([]float64, len(cols))
	maxVol := 0.0
	for _, c := range cols {
		if c.Volume > maxVol {
			maxVol = c.Volume
		}
	}
	span := (high - low) * frac
	for i, c := range cols {
		if maxVol == 0 {
			out[i] = low
			continue
		}
		out[i] = low + c.Volume/maxVol*span
	}
	return out
}
