package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"Stonitor/internal/dashboard"
	"Stonitor/internal/model"
	"Stonitor/internal/provider"
	"Stonitor/internal/recorder"
)

type captureRecorder struct {
	snaps []*recorder.Snapshot
}

func (c *captureRecorder) RecordSnapshot(s *recorder.Snapshot) error {
	c.snaps = append(c.snaps, s)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

func newTestModel(t *testing.T, rec recorder.Recorder) (Model, *provider.MockProvider) {
	t.Helper()
	p := provider.NewMockProvider()
	coord := dashboard.NewCoordinator(context.Background(), p, true)
	chart := dashboard.NewSeriesView("TSLA", model.RangeIntraday, coord)
	watch := dashboard.NewWatchList([]string{"TSLA", "GOOGL", "AMZN"}, coord, 10*time.Millisecond)
	search := dashboard.NewSearch(context.Background(), p)
	return New(chart, watch, search, rec, "session-test", 10*time.Millisecond), p
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// frames runs redraw iterations until cond holds.
func frames(t *testing.T, m Model, cond func(Model) bool) Model {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m = send(t, m, frameMsg(time.Now()))
		if cond(m) {
			return m
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached")
	return m
}

func TestTypedTickerChangesChart(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(t, m, keyRunes("/"))
	if m.focus != focusInput {
		t.Fatal("expected input focus")
	}
	m = send(t, m, keyRunes("nvda"))
	if m.search.Query() != "nvda" {
		t.Errorf("expected search query to follow input, got %q", m.search.Query())
	}
	m.resultCursor = 0

	// Enter before any search answer opens the typed ticker.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.chart.Ticker() != "NVDA" {
		t.Errorf("expected NVDA, got %q", m.chart.Ticker())
	}
	if m.focus != focusWatchlist || m.input.Value() != "" {
		t.Error("expected input cleared and blurred")
	}
}

func TestSearchResultSelection(t *testing.T) {
	m, p := newTestModel(t, nil)
	p.SetSearch("micro", &model.SearchResult{Query: "micro", Quotes: []model.SearchQuote{
		{Symbol: "^MSX", ShortName: "Micro index", QuoteType: "INDEX"},
		{Symbol: "MSFT", ShortName: "Microsoft", QuoteType: "EQUITY"},
		{Symbol: "MU", ShortName: "Micron", QuoteType: "EQUITY"},
	}})

	m = send(t, m, keyRunes("/"))
	m = send(t, m, keyRunes("micro"))
	m = frames(t, m, func(m Model) bool { return len(m.search.Results()) == 2 })

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.chart.Ticker() != "MU" {
		t.Errorf("expected MU, got %q", m.chart.Ticker())
	}
}

func TestWatchlistSelectionAndRange(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.chart.Ticker() != "GOOGL" {
		t.Errorf("expected GOOGL, got %q", m.chart.Ticker())
	}

	m = send(t, m, keyRunes("4"))
	if m.chart.Range() != model.Range3Month {
		t.Errorf("expected 3mo, got %s", m.chart.Range())
	}

	m.zoom, m.pan = 2, 5
	m = send(t, m, frameMsg(time.Now()))
	if m.zoom != 0 || m.pan != 0 {
		t.Errorf("expected zoom/pan reset after ticker change, got %d/%d", m.zoom, m.pan)
	}
}

func TestFramesFillBuffersAndRender(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = frames(t, m, func(m Model) bool {
		return len(m.chart.Prices()) > 0 && m.watch.Rows()[2].Price > 0
	})

	out := m.View()
	for _, want := range []string{"TSLA", "GOOGL", "AMZN", "Current price", "open "} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestSnapshotRecordsScreen(t *testing.T) {
	rec := &captureRecorder{}
	m, _ := newTestModel(t, rec)

	next, cmd := m.Update(SnapshotMsg{})
	if cmd == nil {
		t.Fatal("expected a record command")
	}
	msg := cmd()
	if r, ok := msg.(recordedMsg); !ok || r.err != nil {
		t.Fatalf("unexpected message %#v", msg)
	}
	next.Update(msg)

	if len(rec.snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(rec.snaps))
	}
	snap := rec.snaps[0]
	if snap.SessionID != "session-test" || len(snap.Entries) != 4 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if !snap.Entries[0].Focused || snap.Entries[0].Ticker != "TSLA" {
		t.Errorf("expected focused chart first, got %+v", snap.Entries[0])
	}
}

// heldSearch blocks lookups of one query until release is closed.
type heldSearch struct {
	*provider.MockProvider
	query   string
	release chan struct{}
}

func (h *heldSearch) Search(ctx context.Context, q string) (*model.SearchResult, error) {
	if q == h.query {
		<-h.release
	}
	return h.MockProvider.Search(ctx, q)
}

func TestEnterOpensTypedTextOverEarlierResults(t *testing.T) {
	p := &heldSearch{MockProvider: provider.NewMockProvider(), query: "FB", release: make(chan struct{})}
	defer close(p.release)
	coord := dashboard.NewCoordinator(context.Background(), p, true)
	m := New(dashboard.NewSeriesView("TSLA", model.RangeIntraday, coord),
		dashboard.NewWatchList([]string{"TSLA"}, coord, 10*time.Millisecond),
		dashboard.NewSearch(context.Background(), p), nil, "session-test", 10*time.Millisecond)

	m = send(t, m, keyRunes("/"))
	m = send(t, m, keyRunes("F"))
	m = frames(t, m, func(m Model) bool { return len(m.search.Results()) == 1 })

	m = send(t, m, keyRunes("B"))
	m = send(t, m, frameMsg(time.Now()))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.chart.Ticker() != "FB" {
		t.Errorf("expected typed FB, got %q", m.chart.Ticker())
	}
}
