package dashboard

import (
	"context"
	"log"

	"Stonitor/internal/fetch"
	"Stonitor/internal/model"
	"Stonitor/internal/provider"
)

// Coordinator issues fetches for view models through their slots and merges
// finished results into their buffers.
type Coordinator struct {
	Provider provider.Provider
	Ctx      context.Context

	// DiscardStale drops results issued for a ticker or range the view no
	// longer shows. When false a late result is applied to whatever the view
	// currently displays.
	DiscardStale bool
}

// NewCoordinator creates a Coordinator. ctx bounds every background fetch.
func NewCoordinator(ctx context.Context, p provider.Provider, discardStale bool) *Coordinator {
	return &Coordinator{Provider: p, Ctx: ctx, DiscardStale: discardStale}
}

// Refresh polls the view's slot. Pending leaves the buffers untouched; a
// finished fetch replaces them. It reports whether the buffers changed.
func (c *Coordinator) Refresh(v *ViewModel) bool {
	out := v.slot.Poll(v.requestKey(), c.operation(v))
	if out.Pending() {
		return false
	}

	if c.DiscardStale && out.Key != v.requestKey() {
		log.Printf("[INFO] discarding stale %s result for %s (now %s)", v.shape, out.Key, v.requestKey())
		return false
	}

	if out.Err != nil {
		log.Printf("[WARN] fetch %s failed: %v", v.ticker, out.Err)
		c.fail(v)
		return true
	}
	if !c.apply(v, out.Value) {
		log.Printf("[WARN] fetch %s failed: %v", v.ticker, provider.ErrNoData)
		c.fail(v)
	}
	return true
}

// operation captures the ticker and range at issue time.
func (c *Coordinator) operation(v *ViewModel) fetch.Operation[*model.Chart] {
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ticker, rng, p := v.ticker, v.rng, c.Provider
	if v.shape == Snapshot {
		return func() (*model.Chart, error) { return p.LatestQuote(ctx, ticker) }
	}
	return func() (*model.Chart, error) { return p.History(ctx, ticker, rng) }
}

func (c *Coordinator) apply(v *ViewModel, chart *model.Chart) bool {
	if chart == nil {
		return false
	}
	switch v.shape {
	case Snapshot:
		last, ok := chart.LastQuote()
		if !ok {
			return false
		}
		v.price = last.Close
	case Series:
		prices := make([]model.PricePoint, len(chart.Quotes))
		volumes := make([]model.VolumePoint, len(chart.Quotes))
		for i, q := range chart.Quotes {
			ts := q.Time.Unix()
			prices[i] = model.PricePoint{Timestamp: ts, Price: q.Close}
			volumes[i] = model.VolumePoint{Timestamp: ts, Volume: q.Volume}
		}
		v.prices = prices
		v.volumes = volumes
	}
	meta := chart.Meta
	v.metadata = &meta
	v.failed = false
	return true
}

// fail resets every field that depends on a successful fetch.
func (c *Coordinator) fail(v *ViewModel) {
	v.metadata = nil
	v.failed = true
	switch v.shape {
	case Snapshot:
		v.price = 0
	case Series:
		v.prices = nil
		v.volumes = nil
	}
}
