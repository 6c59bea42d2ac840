package ui

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"Stonitor/internal/dashboard"
	"Stonitor/internal/model"
	"Stonitor/internal/recorder"
)

// frameMsg drives one redraw-loop iteration.
type frameMsg time.Time

// SnapshotMsg asks the model to journal what is currently displayed.
type SnapshotMsg struct{}

type recordedMsg struct{ err error }

type focus int

const (
	focusWatchlist focus = iota
	focusInput
)

const sidePanelWidth = 30

// Model is the terminal dashboard. It is the only goroutine touching the
// view models; background fetches hand results over through their slots.
type Model struct {
	chart  *dashboard.ViewModel
	watch  *dashboard.WatchList
	search *dashboard.Search

	rec     recorder.Recorder
	session string
	frame   time.Duration
	now     func() time.Time

	input        textinput.Model
	focus        focus
	cursor       int
	resultCursor int
	zoom         int
	pan          int
	width        int
	height       int
}

// New creates the dashboard model.
func New(chart *dashboard.ViewModel, watch *dashboard.WatchList, search *dashboard.Search,
	rec recorder.Recorder, session string, frame time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter stock name"
	ti.CharLimit = 32
	ti.Width = sidePanelWidth - 4
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if frame <= 0 {
		frame = 100 * time.Millisecond
	}
	return Model{
		chart:   chart,
		watch:   watch,
		search:  search,
		rec:     rec,
		session: session,
		frame:   frame,
		now:     time.Now,
		input:   ti,
	}
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return frameCmd(m.frame)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.chart.Tick()
		m.watch.Tick(time.Time(msg))
		m.search.Tick()
		if m.chart.ConsumeReset() {
			m.zoom, m.pan = 0, 0
		}
		if n := len(m.search.Results()); m.resultCursor >= n {
			m.resultCursor = max(0, n-1)
		}
		return m, frameCmd(m.frame)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case SnapshotMsg:
		return m, m.recordCmd()

	case recordedMsg:
		if msg.err != nil {
			log.Printf("[ERROR] record snapshot: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateWatchlist(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurInput()
		return m, nil
	case "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
		return m, nil
	case "down":
		if m.resultCursor < len(m.search.Results())-1 {
			m.resultCursor++
		}
		return m, nil
	case "enter":
		ticker := model.NormalizeTicker(m.input.Value())
		if results := m.search.Results(); len(results) > 0 && m.resultCursor < len(results) {
			ticker = results[m.resultCursor].Symbol
		}
		if ticker != "" {
			m.chart.ChangeTicker(ticker)
		}
		m.input.SetValue("")
		m.search.SetQuery("")
		m.blurInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search.SetQuery(strings.TrimSpace(m.input.Value()))
	return m, cmd
}

func (m Model) updateWatchlist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "/", "i":
		m.focus = focusInput
		m.resultCursor = 0
		cmd := m.input.Focus()
		return m, cmd
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.watch.Len()-1 {
			m.cursor++
		}
	case "enter":
		if ticker, ok := m.watch.Select(m.cursor); ok {
			m.chart.ChangeTicker(ticker)
		}
	case "+", "=":
		m.zoom++
	case "-":
		if m.zoom > 0 {
			m.zoom--
		}
	case "h", "left":
		n := len(m.chart.Prices())
		start, end := visibleWindow(n, m.zoom, 0)
		m.pan = max(0, min(m.pan+m.panStep(), n-(end-start)))
	case "l", "right":
		m.pan = max(0, m.pan-m.panStep())
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(model.Ranges) {
				m.chart.SetRange(model.Ranges[i])
			}
		}
	}
	return m, nil
}

func (m *Model) blurInput() {
	m.input.Blur()
	m.focus = focusWatchlist
}

// panStep moves by a quarter of the visible span.
func (m Model) panStep() int {
	start, end := visibleWindow(len(m.chart.Prices()), m.zoom, m.pan)
	return max(1, (end-start)/4)
}

// snapshot copies what is on screen so it can be written off the redraw loop.
func (m Model) snapshot() *recorder.Snapshot {
	snap := &recorder.Snapshot{SessionID: m.session, TakenAt: m.now()}

	_, pct, ok := m.chart.Change()
	snap.Entries = append(snap.Entries, recorder.EntrySnapshot{
		Ticker:    m.chart.Ticker(),
		Price:     m.chart.LatestPrice(),
		ChangePct: pct,
		HasChange: ok,
		Currency:  m.chart.Metadata().CurrencyCode(),
		Focused:   true,
		Failed:    m.chart.Failed(),
	})
	for _, r := range m.watch.Rows() {
		snap.Entries = append(snap.Entries, recorder.EntrySnapshot{
			Ticker:    r.Ticker,
			Price:     r.Price,
			ChangePct: r.ChangePct,
			HasChange: r.HasChange,
			Currency:  r.Currency,
			Failed:    r.Failed,
		})
	}
	return snap
}

func (m Model) recordCmd() tea.Cmd {
	snap, rec := m.snapshot(), m.rec
	return func() tea.Msg {
		return recordedMsg{err: rec.RecordSnapshot(snap)}
	}
}
