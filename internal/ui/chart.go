package ui

import (
	"fmt"
	"strings"
	"time"

	"Stonitor/internal/calculator"
	"Stonitor/internal/model"
)

// volumeBand is the share of the chart height given to volume bars.
const volumeBand = 0.25

const axisWidth = 10

// visibleWindow returns the [start, end) slice of n points shown at the given
// zoom level (each level halves the span) and pan offset (points hidden on
// the right).
func visibleWindow(n, zoom, pan int) (start, end int) {
	if n == 0 {
		return 0, 0
	}
	span := n >> uint(zoom)
	if span < 2 {
		span = min(2, n)
	}
	if pan > n-span {
		pan = n - span
	}
	if pan < 0 {
		pan = 0
	}
	end = n - pan
	return end - span, end
}

func formatTimestamp(ts int64, intraday bool) string {
	t := time.Unix(ts, 0)
	if intraday {
		return t.Format("15:04:05")
	}
	return t.Format("2006-01-02")
}

// renderChart draws the price line over volume bars on one shared time axis.
// Volumes are rescaled into the bottom band of the price axis.
func renderChart(prices []model.PricePoint, volumes []model.VolumePoint, width, height int, intraday bool) string {
	plotWidth := width - axisWidth
	if plotWidth < 2 || height < 3 {
		return ""
	}
	cols := calculator.Resample(prices, volumes, plotWidth)
	if len(cols) == 0 {
		return dimStyle.Render("waiting for data…")
	}

	low, high, err := calculator.PriceBounds(prices)
	if err != nil {
		return ""
	}
	span := high - low
	if span == 0 {
		span = high * 0.01
		if span == 0 {
			span = 1
		}
		low -= span / 2
		high += span / 2
	}
	// Extend the axis downward so volume tops out where the price range starts.
	axisLow := low - span*volumeBand/(1-volumeBand)
	volTops := calculator.OverlayVolume(cols, axisLow, high, volumeBand)

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", len(cols)))
	}
	for i, c := range cols {
		if c.Volume > 0 {
			top := calculator.ScaleToRows(volTops[i], axisLow, high, height)
			for r := 0; r <= top; r++ {
				grid[r][i] = '▒'
			}
		}
		grid[calculator.ScaleToRows(c.Price, axisLow, high, height)][i] = '•'
	}

	lineStyle := gainStyle
	if cols[len(cols)-1].Price < cols[0].Price {
		lineStyle = lossStyle
	}
	priceLowRow := calculator.ScaleToRows(low, axisLow, high, height)

	var b strings.Builder
	for r := height - 1; r >= 0; r-- {
		label := ""
		switch r {
		case height - 1:
			label = fmt.Sprintf("%.2f", high)
		case priceLowRow:
			label = fmt.Sprintf("%.2f", low)
		case 0:
			label = "vol " + compactVolume(calculator.MaxVolume(volumes))
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("%*s ", axisWidth-1, label)))
		for _, ch := range grid[r] {
			switch ch {
			case '•':
				b.WriteString(lineStyle.Render(string(ch)))
			case '▒':
				b.WriteString(volumeStyle.Render(string(ch)))
			default:
				b.WriteRune(ch)
			}
		}
		b.WriteByte('\n')
	}

	open := "open " + formatTimestamp(cols[0].Start, intraday)
	closeLabel := formatTimestamp(cols[len(cols)-1].End, intraday) + " close"
	gap := len(cols) - len(open) - len(closeLabel)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", axisWidth))
	b.WriteString(dimStyle.Render(open + strings.Repeat(" ", gap) + closeLabel))
	return b.String()
}

func compactVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
