package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"Stonitor/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements Provider using Yahoo Finance public API.
type YahooProvider struct {
	BaseURL     string
	Client      *http.Client
	QuotesCount int // search result limit
}

// NewYahooProvider creates a new Yahoo Finance provider with optional proxy support.
func NewYahooProvider(baseURL, proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		QuotesCount: 10,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           *string  `json:"currency"`
				Symbol             string   `json:"symbol"`
				ExchangeName       string   `json:"exchangeName"`
				InstrumentType     string   `json:"instrumentType"`
				RegularMarketPrice float64  `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooSearch is the response structure from Yahoo Finance search API.
type yahooSearch struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// at tolerates indicator arrays shorter than the timestamp list.
func at(vals []interface{}, i int) float64 {
	if i >= len(vals) {
		return 0
	}
	return toFloat(vals[i])
}

// get returns the body of any response; callers check the status after
// looking for an error object in the body.
func (p *YahooProvider) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	return fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol, interval, rng string) (*model.Chart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		p.BaseURL, url.PathEscape(symbol), interval, rng)

	body, status, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	// Unknown symbols come back as 404 with the error object in the body.
	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if status != http.StatusOK {
		return nil, statusError(status, body)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	meta := result.Meta
	out := &model.Chart{
		Meta: model.Metadata{
			Symbol:             meta.Symbol,
			ExchangeName:       meta.ExchangeName,
			InstrumentType:     meta.InstrumentType,
			Currency:           meta.Currency,
			PreviousClose:      meta.PreviousClose,
			ChartPreviousClose: meta.ChartPreviousClose,
			RegularMarketPrice: meta.RegularMarketPrice,
		},
		Quotes: make([]model.OHLCV, 0, len(result.Timestamp)),
	}

	for i, ts := range result.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (halts, pre-market gaps)
		}
		out.Quotes = append(out.Quotes, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}
	if len(out.Quotes) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}

	sort.SliceStable(out.Quotes, func(i, j int) bool { return out.Quotes[i].Time.Before(out.Quotes[j].Time) })
	return out, nil
}

// LatestQuote fetches today's one-minute chart; callers use its last quote.
func (p *YahooProvider) LatestQuote(ctx context.Context, ticker string) (*model.Chart, error) {
	return p.fetchChart(ctx, ticker, model.RangeIntraday.Interval(), string(model.RangeIntraday))
}

// History fetches the window selected by rng.
func (p *YahooProvider) History(ctx context.Context, ticker string, rng model.Range) (*model.Chart, error) {
	if !rng.Valid() {
		return nil, fmt.Errorf("unknown range %q", rng)
	}
	return p.fetchChart(ctx, ticker, rng.Interval(), string(rng))
}

// Search looks up candidate symbols for a free-text query.
func (p *YahooProvider) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=%d&newsCount=0",
		p.BaseURL, url.QueryEscape(query), p.QuotesCount)

	body, status, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, body)
	}

	var sr yahooSearch
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("yahoo decode search: %w", err)
	}

	res := &model.SearchResult{Query: query, Quotes: make([]model.SearchQuote, 0, len(sr.Quotes))}
	for _, q := range sr.Quotes {
		if q.Symbol == "" {
			continue
		}
		res.Quotes = append(res.Quotes, model.SearchQuote{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}
	return res, nil
}
