package recorder

import "time"

// EntrySnapshot is one ticker's displayed state at snapshot time.
type EntrySnapshot struct {
	Ticker    string
	Price     float64
	ChangePct float64
	HasChange bool
	Currency  string
	Focused   bool // the chart ticker rather than a watch-list row
	Failed    bool
}

// Snapshot is everything on screen at one cron firing.
type Snapshot struct {
	SessionID string
	TakenAt   time.Time
	Entries   []EntrySnapshot
}

// Recorder persists displayed quotes for later analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	Close() error
}
