package dashboard

import (
	"Stonitor/internal/calculator"
	"Stonitor/internal/fetch"
	"Stonitor/internal/model"
)

// Shape selects what a ViewModel fetches.
type Shape int

const (
	// Snapshot keeps only the latest close (watch-list rows).
	Snapshot Shape = iota
	// Series keeps a bounded price/volume history (the focused chart).
	Series
)

func (s Shape) String() string {
	if s == Series {
		return "series"
	}
	return "snapshot"
}

// ViewModel holds one ticker's display buffers and the slot feeding them.
// All methods must be called from the redraw goroutine.
type ViewModel struct {
	ticker string
	rng    model.Range
	shape  Shape

	prices   []model.PricePoint
	volumes  []model.VolumePoint
	price    float64
	metadata *model.Metadata
	failed   bool

	resetRequested bool

	slot  fetch.Slot[*model.Chart]
	coord *Coordinator
}

// NewSeriesView creates the focused-chart view model.
func NewSeriesView(ticker string, rng model.Range, coord *Coordinator) *ViewModel {
	return &ViewModel{ticker: ticker, rng: rng, shape: Series, coord: coord}
}

// NewSnapshotView creates a watch-list row view model.
func NewSnapshotView(ticker string, coord *Coordinator) *ViewModel {
	return &ViewModel{ticker: ticker, rng: model.RangeIntraday, shape: Snapshot, coord: coord}
}

// Tick runs one refresh step: start a fetch, or reconcile a finished one.
// It reports whether the buffers changed.
func (v *ViewModel) Tick() bool {
	return v.coord.Refresh(v)
}

// ChangeTicker switches the ticker and asks the display to drop zoom/pan
// state. Buffers are kept until the next reconciliation replaces them.
func (v *ViewModel) ChangeTicker(ticker string) {
	v.ticker = ticker
	v.resetRequested = true
}

// SetRange switches the history window of a series view.
func (v *ViewModel) SetRange(rng model.Range) {
	if rng == v.rng {
		return
	}
	v.rng = rng
	v.resetRequested = true
}

// ConsumeReset returns the reset flag and clears it.
func (v *ViewModel) ConsumeReset() bool {
	r := v.resetRequested
	v.resetRequested = false
	return r
}

func (v *ViewModel) Ticker() string               { return v.ticker }
func (v *ViewModel) Range() model.Range           { return v.rng }
func (v *ViewModel) Shape() Shape                 { return v.shape }
func (v *ViewModel) Prices() []model.PricePoint   { return v.prices }
func (v *ViewModel) Volumes() []model.VolumePoint { return v.volumes }
func (v *ViewModel) Metadata() *model.Metadata    { return v.metadata }
func (v *ViewModel) Failed() bool                 { return v.failed }
func (v *ViewModel) ResetRequested() bool         { return v.resetRequested }
func (v *ViewModel) Fetching() bool               { return v.slot.State() == fetch.InFlight }

// LatestPrice is the last point of the series, or the snapshot price.
func (v *ViewModel) LatestPrice() float64 {
	if v.shape == Snapshot {
		return v.price
	}
	if len(v.prices) == 0 {
		return 0
	}
	return v.prices[len(v.prices)-1].Price
}

// Change returns the absolute and percent change of the latest price against
// the previous close. A series view falls back to its first point when the
// provider gave no previous close; a snapshot view has no fallback.
func (v *ViewModel) Change() (abs, pct float64, ok bool) {
	var base float64
	if v.shape == Series {
		base, ok = calculator.ChangeBase(v.metadata, v.prices)
	} else if v.metadata != nil && v.metadata.PreviousClose != nil {
		base, ok = *v.metadata.PreviousClose, true
	}
	if !ok {
		return 0, 0, false
	}
	pct, ok = calculator.PercentChange(v.LatestPrice(), base)
	if !ok {
		return 0, 0, false
	}
	return calculator.AbsoluteChange(base, pct), pct, true
}

// PercentChange is Change without the absolute delta.
func (v *ViewModel) PercentChange() float64 {
	_, pct, _ := v.Change()
	return pct
}

// requestKey identifies what the view currently wants fetched.
func (v *ViewModel) requestKey() string {
	if v.shape == Snapshot {
		return v.ticker
	}
	return v.ticker + "|" + string(v.rng)
}
