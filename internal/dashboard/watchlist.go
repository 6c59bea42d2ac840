package dashboard

import "time"

// DefaultRefreshInterval is the minimum time between two watch-list rounds.
const DefaultRefreshInterval = 2 * time.Second

// Row is the display data of one watch-list entry.
type Row struct {
	Ticker    string
	Price     float64
	Currency  string
	Change    float64 // absolute change vs previous close
	ChangePct float64
	HasChange bool // false when metadata or previous close is missing
	Failed    bool
	Fetching  bool
}

// WatchList is a fixed, ordered set of snapshot view models refreshed on a
// shared throttle, independent of the focused chart.
type WatchList struct {
	entries     []*ViewModel
	interval    time.Duration
	lastRefresh time.Time
}

// NewWatchList creates one snapshot view per ticker. The first Tick refreshes
// immediately rather than one interval after construction.
func NewWatchList(tickers []string, coord *Coordinator, interval time.Duration) *WatchList {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	w := &WatchList{interval: interval}
	for _, t := range tickers {
		w.entries = append(w.entries, NewSnapshotView(t, coord))
	}
	return w
}

// Tick runs one refresh round over every entry when more than the interval
// has elapsed since the previous round; otherwise it does nothing. It reports
// whether a round ran.
func (w *WatchList) Tick(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) <= w.interval {
		return false
	}
	for _, e := range w.entries {
		e.Tick()
	}
	w.lastRefresh = now
	return true
}

// Len returns the number of entries.
func (w *WatchList) Len() int { return len(w.entries) }

// Entry returns the i-th view model.
func (w *WatchList) Entry(i int) *ViewModel { return w.entries[i] }

// Rows returns display rows in configured order.
func (w *WatchList) Rows() []Row {
	rows := make([]Row, len(w.entries))
	for i, e := range w.entries {
		abs, pct, ok := e.Change()
		rows[i] = Row{
			Ticker:    e.Ticker(),
			Price:     e.LatestPrice(),
			Currency:  e.Metadata().CurrencyCode(),
			Change:    abs,
			ChangePct: pct,
			HasChange: ok,
			Failed:    e.Failed(),
			Fetching:  e.Fetching(),
		}
	}
	return rows
}

// Select returns the ticker of the activated entry.
func (w *WatchList) Select(i int) (string, bool) {
	if i < 0 || i >= len(w.entries) {
		return "", false
	}
	return w.entries[i].Ticker(), true
}
