// Package scheduler runs the expiry sweep on a cron cadence.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/teranga/cagnotte/pkg/config"
	"github.com/teranga/cagnotte/pkg/service/sweep"
)

// Scheduler manages the cron job driving the sweep.
type Scheduler struct {
	cron   *cron.Cron
	svc    *sweep.Service
	cfg    *config.Sweep
	logger *slog.Logger
}

// New creates a scheduler for the sweep service.
func New(svc *sweep.Service, cfg *config.Sweep, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger))),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the sweep job and starts the cron scheduler. Overlapping
// firings are allowed; the sweep tolerates them.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runSweep); err != nil {
		return err
	}
	s.logger.Info("scheduled expiry sweep", "schedule", s.cfg.Schedule)
	s.cron.Start()
	return nil
}

// Stop gracefully stops the cron scheduler; the returned context is done when
// any running job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runSweep() {
	res, err := s.svc.Run(context.Background(), time.Now())
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
		return
	}
	if len(res.Errors) > 0 {
		s.logger.Warn("expiry sweep finished with per-fund errors",
			"errors", len(res.Errors))
	}
}
