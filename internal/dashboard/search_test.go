package dashboard

import (
	"context"
	"errors"
	"testing"

	"Stonitor/internal/model"
	"Stonitor/internal/provider"
)

func TestSearch_FiltersAndStops(t *testing.T) {
	m := provider.NewMockProvider()
	m.SetSearch("apple", &model.SearchResult{Query: "apple", Quotes: []model.SearchQuote{
		{Symbol: "AAPL", QuoteType: "EQUITY"},
		{Symbol: "^APL", QuoteType: "INDEX"},
		{Symbol: "APLFX", QuoteType: "MUTUALFUND"},
	}})
	s := NewSearch(context.Background(), m)

	if s.Tick() {
		t.Error("expected an empty search to do nothing")
	}
	s.SetQuery("apple")
	tickUntil(t, s.Tick)

	res := s.Results()
	if len(res) != 1 || res[0].Symbol != "AAPL" {
		t.Fatalf("expected only AAPL, got %+v", res)
	}
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if n := m.SearchCalls.Load(); n != 1 {
		t.Errorf("expected no more lookups once answered, got %d", n)
	}
}

func TestSearch_DiscardsAnswerToEditedQuery(t *testing.T) {
	m := provider.NewMockProvider()
	m.Gate = make(chan struct{})
	s := NewSearch(context.Background(), m)

	s.SetQuery("tes")
	s.Tick()
	s.SetQuery("tesla")
	close(m.Gate)

	tickUntil(t, s.Tick)
	if res := s.Results(); len(res) != 1 || res[0].Symbol != "TESLA" {
		t.Errorf("expected results for the latest text, got %+v", res)
	}
	if n := m.SearchCalls.Load(); n != 2 {
		t.Errorf("expected 2 lookups, got %d", n)
	}
}

func TestSearch_ErrorAndClear(t *testing.T) {
	m := provider.NewMockProvider()
	m.Err = errors.New("rate limited")
	s := NewSearch(context.Background(), m)

	s.SetQuery("nvda")
	tickUntil(t, s.Tick)
	if s.Results() != nil || s.Searching() {
		t.Errorf("expected no results and search finished after failure")
	}

	s.SetQuery("")
	if s.Searching() || s.Results() != nil {
		t.Error("expected empty query to clear")
	}
}

func TestSearch_EditedQueryHidesEarlierResults(t *testing.T) {
	m := provider.NewMockProvider()
	s := NewSearch(context.Background(), m)

	s.SetQuery("f")
	tickUntil(t, s.Tick)
	if res := s.Results(); len(res) != 1 || res[0].Symbol != "F" {
		t.Fatalf("expected results for f, got %+v", res)
	}

	m.Gate = make(chan struct{})
	defer close(m.Gate)
	s.SetQuery("fb")
	s.Tick()
	if res := s.Results(); res != nil {
		t.Errorf("expected no results while fb is unanswered, got %+v", res)
	}
	if !s.Searching() {
		t.Error("expected search outstanding for fb")
	}
}
