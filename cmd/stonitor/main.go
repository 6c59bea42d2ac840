package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"Stonitor/internal/config"
	"Stonitor/internal/dashboard"
	"Stonitor/internal/provider"
	"Stonitor/internal/recorder"
	"Stonitor/internal/scheduler"
	"Stonitor/internal/ui"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup, so main exits only after they have run.
func run() int {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		return 1
	}

	// The terminal belongs to the dashboard; logs go to a file.
	logFile, err := tea.LogToFile(cfg.LogFile, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	session := uuid.NewString()
	log.Printf("[INFO] Stonitor starting, session %s", session)

	// Init provider
	var p provider.Provider
	switch cfg.Provider.Name {
	case "mock":
		p = provider.NewMockProvider()
	default:
		p = provider.NewYahooProvider(cfg.Provider.BaseURL, cfg.Proxy, cfg.Provider.Timeout)
	}
	if cfg.Cache.RedisAddr != "" {
		cp, err := provider.NewCachedProvider(p, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
		if err != nil {
			log.Printf("[WARN] init redis cache failed, fetching directly: %v", err)
		} else {
			p = cp
			defer cp.Close()
		}
	}
	log.Printf("[INFO] data source: %s", p.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown of in-flight fetches
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coord := dashboard.NewCoordinator(ctx, p, *cfg.Chart.DiscardStale)
	chart := dashboard.NewSeriesView(cfg.Chart.Ticker, cfg.Chart.Range, coord)
	watch := dashboard.NewWatchList(cfg.Watchlist.Tickers, coord, cfg.Watchlist.RefreshInterval)
	search := dashboard.NewSearch(ctx, p)

	m := ui.New(chart, watch, search, rec, session, cfg.UI.FrameInterval)
	program := tea.NewProgram(m, tea.WithAltScreen())

	// Snapshot journal; the job only signals the UI goroutine, which owns the views.
	if cfg.Database.SQLitePath != "" && cfg.Schedule.SnapshotCron != "" {
		sched := scheduler.NewScheduler()
		if err := sched.RegisterSnapshot(cfg.Schedule.SnapshotCron, func() {
			program.Send(ui.SnapshotMsg{})
		}); err != nil {
			log.Printf("[ERROR] register snapshot cron: %v", err)
		} else {
			sched.Start()
			defer sched.Stop()
		}
	}

	if _, err := program.Run(); err != nil {
		log.Printf("[ERROR] dashboard: %v", err)
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		return 1
	}
	log.Println("[INFO] Stonitor stopped")
	return 0
}
