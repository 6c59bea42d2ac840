package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the periodic snapshot task.
type Scheduler struct {
	Cron *cron.Cron
}

// NewScheduler creates a Scheduler whose specs include a seconds field.
func NewScheduler() *Scheduler {
	return &Scheduler{Cron: cron.New(cron.WithSeconds())}
}

// RegisterSnapshot runs job on every firing of spec. The job must not touch
// display state directly; it only hands a request to the redraw loop.
func (s *Scheduler) RegisterSnapshot(spec string, job func()) error {
	if _, err := s.Cron.AddFunc(spec, func() {
		log.Println("[INFO] snapshot triggered")
		job()
	}); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}
