package dashboard

import (
	"context"
	"log"

	"Stonitor/internal/fetch"
	"Stonitor/internal/model"
	"Stonitor/internal/provider"
)

// Search runs symbol lookups for the text in the search box. It polls until
// the current query has an answer, then goes quiet until the text changes.
type Search struct {
	provider provider.Provider
	ctx      context.Context

	query   string
	found   bool
	results []model.SearchQuote
	answers string // query the results belong to

	slot fetch.Slot[*model.SearchResult]
}

// NewSearch creates an idle search flow.
func NewSearch(ctx context.Context, p provider.Provider) *Search {
	return &Search{provider: p, ctx: ctx, found: true}
}

// SetQuery updates the text being searched. An empty query clears results.
func (s *Search) SetQuery(q string) {
	if q == s.query {
		return
	}
	s.query = q
	if q == "" {
		s.results = nil
		s.found = true
		return
	}
	s.found = false
}

// Query returns the current search text.
func (s *Search) Query() string { return s.query }

// Searching reports whether an answer for the current query is outstanding.
func (s *Search) Searching() bool { return !s.found }

// Results returns the equity-like candidates for the current query, or nil
// while the current text has no answer yet.
func (s *Search) Results() []model.SearchQuote {
	if s.answers != s.query {
		return nil
	}
	return s.results
}

// Tick drives the lookup. It reports whether results changed.
func (s *Search) Tick() bool {
	if s.found && s.slot.State() == fetch.Idle {
		return false
	}

	query, p, ctx := s.query, s.provider, s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	out := s.slot.Poll(query, func() (*model.SearchResult, error) {
		return p.Search(ctx, query)
	})
	if out.Pending() {
		return false
	}
	if out.Key != s.query {
		// Answer to text the user has since edited; the next tick asks again.
		return false
	}

	s.found = true
	s.answers = out.Key
	if out.Err != nil || out.Value == nil {
		log.Printf("[WARN] search %q failed: %v", out.Key, out.Err)
		s.results = nil
		return true
	}
	s.results = model.FilterEquities(out.Value.Quotes)
	return true
}
