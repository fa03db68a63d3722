// Package expiry runs the scheduled subscription expiry sweep.
package expiry

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/irondistrict/membership-api/internal/app/subscriptions"
)

const sweepTimeout = 30 * time.Second

// Sweeper periodically flips Active subscriptions past their end date to
// Expired. The sweep is an eager catch-up: read paths already derive the
// effective state, so a missed run never serves stale answers.
type Sweeper struct {
	svc  *subscriptions.Service
	log  *slog.Logger
	cron *cron.Cron
}

func NewSweeper(svc *subscriptions.Service, log *slog.Logger) *Sweeper {
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{svc: svc, log: log}
}

// Start schedules the sweep with a cron expression (e.g. "@hourly" or
// "0 3 * * *") and runs one sweep immediately to catch up after a restart.
func (s *Sweeper) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, s.runOnce); err != nil {
		return err
	}
	s.cron = c
	c.Start()
	go s.runOnce()
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Sweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.svc.ExpireDueSubscriptions(ctx)
	if err != nil {
		s.log.Error("expiry sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Info("expired subscriptions", "count", n)
	}
}
