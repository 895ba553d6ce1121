// Package scheduler wires up the cron job that periodically re-fetches every
// listed collection from the backend.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Refresher reloads one collection from its source.
type Refresher interface {
	Load(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the refresh loop.
type Scheduler struct {
	cron       *cron.Cron
	refreshers []Refresher
	spec       string // cron spec, e.g. "@every 15m"
}

// New creates a Scheduler that refreshes every intervalMinutes minutes.
func New(intervalMinutes int, refreshers ...Refresher) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cron.DefaultLogger)),
		refreshers: refreshers,
		spec:       fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the job and starts the scheduler. Also runs one refresh
// immediately so the listings are populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.RunRefresh(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// RunRefresh reloads every registered collection once. Failures are logged
// and do not abort the cycle; a listing that still holds a previous
// collection keeps serving it.
func (s *Scheduler) RunRefresh(ctx context.Context) {
	log.Println("[scheduler] Refresh cycle started")

	for _, r := range s.refreshers {
		if err := r.Load(ctx); err != nil {
			log.Printf("[scheduler] Refresh error: %v", err)
		}
	}

	log.Println("[scheduler] Refresh cycle complete")
}
