package model

// SearchQuote is one candidate symbol returned by a free-text search.
type SearchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Exchange  string `json:"exchange"`
	QuoteType string `json:"quote_type"`
}

// SearchResult is the provider answer to a search query.
type SearchResult struct {
	Query  string        `json:"query"`
	Quotes []SearchQuote `json:"quotes"`
}

// excludedQuoteTypes are instrument types never offered as chart targets.
var excludedQuoteTypes = map[string]bool{
	"MUTUALFUND": true,
	"INDEX":      true,
	"OPTION":     true,
	"CURRENCY":   true,
	"FUTURE":     true,
}

// IsEquityLike reports whether the quote type may be shown in search results.
func IsEquityLike(quoteType string) bool {
	return !excludedQuoteTypes[quoteType]
}

// FilterEquities drops funds, indices, options, currencies and futures.
func FilterEquities(quotes []SearchQuote) []SearchQuote {
	out := make([]SearchQuote, 0, len(quotes))
	for _, q := range quotes {
		if IsEquityLike(q.QuoteType) {
			out = append(out, q)
		}
	}
	return out
}
