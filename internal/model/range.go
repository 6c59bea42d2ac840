package model

// Range is the token selecting the history window of a series fetch.
type Range string

const (
	RangeIntraday Range = "1d"
	Range5Day     Range = "5d"
	Range1Month   Range = "1mo"
	Range3Month   Range = "3mo"
	Range6Month   Range = "6mo"
	Range1Year    Range = "1y"
	RangeYTD      Range = "ytd"
	RangeMax      Range = "max"
)

// Ranges lists the selectable tokens in display order.
var Ranges = []Range{
	RangeIntraday, Range5Day, Range1Month, Range3Month,
	Range6Month, Range1Year, RangeYTD, RangeMax,
}

// Valid reports whether r is a known token.
func (r Range) Valid() bool {
	for _, v := range Ranges {
		if v == r {
			return true
		}
	}
	return false
}

// Interval returns the bar interval requested for this window.
func (r Range) Interval() string {
	switch r {
	case RangeIntraday:
		return "1m"
	case Range5Day:
		return "15m"
	default:
		return "1d"
	}
}

// Intraday reports whether the window is shorter than one trading week,
// i.e. whether time labels should show the clock rather than the date.
func (r Range) Intraday() bool {
	return r == RangeIntraday || r == Range5Day
}

func (r Range) String() string { return string(r) }
