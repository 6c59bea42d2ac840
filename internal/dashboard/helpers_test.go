package dashboard

import (
	"context"
	"testing"
	"time"

	"Stonitor/internal/model"
	"Stonitor/internal/provider"
)

func ptr(v float64) *float64 { return &v }

func chartOf(symbol string, prevClose *float64, closes ...float64) *model.Chart {
	c := &model.Chart{Meta: model.Metadata{Symbol: symbol, ExchangeName: "NMS", InstrumentType: "EQUITY", PreviousClose: prevClose}}
	for i, p := range closes {
		c.Quotes = append(c.Quotes, model.OHLCV{
			Time:   time.Unix(int64(1700000000+i*60), 0),
			Close:  p,
			Volume: float64(1000 * (i + 1)),
		})
	}
	return c
}

// tickUntil drives fn until it reports a change or the deadline passes.
func tickUntil(t *testing.T, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no reconciliation before deadline")
}

func newCoord(p provider.Provider, discardStale bool) *Coordinator {
	return NewCoordinator(context.Background(), p, discardStale)
}
