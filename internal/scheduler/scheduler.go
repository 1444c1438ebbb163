// Package scheduler runs the nightly billing pass in-process on a cron
// schedule. Deployments that trigger the run externally (via the
// /internal/billing/run endpoint) leave it disabled.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/hearthstack/household-backend/internal/services"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	processor *services.BillingProcessor
}

func New(processor *services.BillingProcessor) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		processor: processor,
	}
}

// Start registers the billing job and begins the cron loop.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.runBilling)
	if err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("billing scheduler started", "schedule", schedule)
	return nil
}

// Stop halts the cron loop and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runBilling() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	started := time.Now()
	summary, err := s.processor.Run(ctx, started)
	if err != nil {
		slog.Error("nightly billing run failed", "error", err)
		return
	}
	slog.Info("nightly billing run complete",
		"synced_users", summary.SyncedUsers,
		"sync_failed", summary.SyncFailed,
		"archived", summary.ArchivedCount,
		"demoted", summary.DemotedCount,
		"warnings", len(summary.Warnings),
		"duration", time.Since(started).Round(time.Millisecond).String(),
	)
}
