package calculator

import (
	"errors"
	"math"

	"Stonitor/internal/model"
)

// PriceBounds returns the lowest and highest price in the series.
func PriceBounds(points []model.PricePoint) (low, high float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no price points provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
	}
	return low, high, nil
}

// MaxVolume returns the largest volume in the series, 0 when empty.
func MaxVolume(points []model.VolumePoint) float64 {
	max := 0.0
	for _, v := range points {
		if v.Volume > max {
			max = v.Volume
		}
	}
	return max
}

// Position returns where value sits within [low, high] (0.0~1.0).
func Position(value, low, high float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (value - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
