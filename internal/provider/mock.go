package provider

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"Stonitor/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Price float64 // base price; 0 derives one from the ticker
	Bars  int     // bars per chart, default 120

	// Err, when set, is returned by every call.
	Err error
	// Gate, when set, blocks every call until it is closed or ctx ends.
	Gate chan struct{}

	mu       sync.Mutex
	charts   map[string]*model.Chart
	searches map[string]*model.SearchResult

	LatestCalls  atomic.Int32
	HistoryCalls atomic.Int32
	SearchCalls  atomic.Int32
}

// NewMockProvider creates a mock whose charts are a deterministic random walk.
func NewMockProvider() *MockProvider {
	return &MockProvider{Bars: 120}
}

func (m *MockProvider) Name() string { return "mock" }

// SetChart pins the response for a ticker.
func (m *MockProvider) SetChart(ticker string, c *model.Chart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.charts == nil {
		m.charts = make(map[string]*model.Chart)
	}
	m.charts[ticker] = c
}

// SetSearch pins the response for a query.
func (m *MockProvider) SetSearch(query string, r *model.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searches == nil {
		m.searches = make(map[string]*model.SearchResult)
	}
	m.searches[query] = r
}

func (m *MockProvider) wait(ctx context.Context) error {
	if m.Gate == nil {
		return nil
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockProvider) LatestQuote(ctx context.Context, ticker string) (*model.Chart, error) {
	m.LatestCalls.Add(1)
	return m.chart(ctx, ticker, model.RangeIntraday)
}

func (m *MockProvider) History(ctx context.Context, ticker string, rng model.Range) (*model.Chart, error) {
	m.HistoryCalls.Add(1)
	return m.chart(ctx, ticker, rng)
}

func (m *MockProvider) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	m.SearchCalls.Add(1)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	pinned, ok := m.searches[query]
	m.mu.Unlock()
	if ok {
		return pinned, nil
	}
	return &model.SearchResult{
		Query: query,
		Quotes: []model.SearchQuote{{
			Symbol:    strings.ToUpper(query),
			ShortName: strings.ToUpper(query) + " Inc.",
			Exchange:  "NMS",
			QuoteType: "EQUITY",
		}},
	}, nil
}

func (m *MockProvider) chart(ctx context.Context, ticker string, rng model.Range) (*model.Chart, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	pinned, ok := m.charts[ticker]
	m.mu.Unlock()
	if ok {
		return pinned, nil
	}

	base := m.Price
	if base == 0 {
		base = seedPrice(ticker)
	}
	step := 24 * time.Hour
	if rng.Intraday() {
		step = time.Minute
	}
	currency := "USD"
	prev := base
	return &model.Chart{
		Meta: model.Metadata{
			Symbol:             ticker,
			ExchangeName:       "NMS",
			InstrumentType:     "EQUITY",
			Currency:           &currency,
			PreviousClose:      &prev,
			RegularMarketPrice: base,
		},
		Quotes: generateMockBars(ticker, base, m.bars(), step, time.Now()),
	}, nil
}

func (m *MockProvider) bars() int {
	if m.Bars <= 0 {
		return 120
	}
	return m.Bars
}

func seedPrice(ticker string) float64 {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	return 20 + float64(h.Sum32()%480)
}

func generateMockBars(ticker string, basePrice float64, count int, step time.Duration, end time.Time) []model.OHLCV {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	state := h.Sum64() | 1

	bars := make([]model.OHLCV, count)
	p := basePrice
	for i := 0; i < count; i++ {
		// xorshift keeps the walk reproducible per ticker
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		drift := (float64(state%2001)/1000 - 1) * 0.004
		p *= 1 + drift
		bars[i] = model.OHLCV{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: float64(100000 + state%900000),
		}
	}
	return bars
}
