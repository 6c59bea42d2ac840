package calculator

import "Stonitor/internal/model"

// PercentChange returns (latest-base)/base*100. ok is false when base is zero.
func PercentChange(latest, base float64) (pct float64, ok bool) {
	if base == 0 {
		return 0, false
	}
	return (latest - base) / base * 100, true
}

// ChangeBase picks the reference price for a series: the previous close when
// the provider supplied one, otherwise the first point of the series.
func ChangeBase(meta *model.Metadata, points []model.PricePoint) (float64, bool) {
	if meta != nil && meta.PreviousClose != nil {
		return *meta.PreviousClose, true
	}
	if len(points) > 0 {
		return points[0].Price, true
	}
	return 0, false
}

// AbsoluteChange converts a percent change back to a price delta against base.
func AbsoluteChange(base, pct float64) float64 {
	return base * (pct / 100)
}
