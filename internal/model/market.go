package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PricePoint is one (timestamp, close) sample of the price series.
type PricePoint struct {
	Timestamp int64
	Price     float64
}

// VolumePoint is one (timestamp, volume) sample, index-aligned with the price series.
type VolumePoint struct {
	Timestamp int64
	Volume    float64
}

// Metadata is the instrument snapshot returned alongside a chart.
type Metadata struct {
	Symbol             string   `json:"symbol"`
	ExchangeName       string   `json:"exchange_name"`
	InstrumentType     string   `json:"instrument_type"`
	Currency           *string  `json:"currency,omitempty"`
	PreviousClose      *float64 `json:"previous_close,omitempty"`
	ChartPreviousClose *float64 `json:"chart_previous_close,omitempty"`
	RegularMarketPrice float64  `json:"regular_market_price"`
}

// CurrencyCode returns the currency or "" when the provider omitted it.
func (m *Metadata) CurrencyCode() string {
	if m == nil || m.Currency == nil {
		return ""
	}
	return *m.Currency
}

// Chart is a provider response: instrument metadata plus the quote list.
type Chart struct {
	Meta   Metadata `json:"meta"`
	Quotes []OHLCV  `json:"quotes"`
}

// LastQuote returns the most recent bar.
func (c *Chart) LastQuote() (OHLCV, bool) {
	if c == nil || len(c.Quotes) == 0 {
		return OHLCV{}, false
	}
	return c.Quotes[len(c.Quotes)-1], true
}
