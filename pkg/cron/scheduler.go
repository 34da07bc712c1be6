// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/service"
)

// Scheduler runs the periodic mail sync using robfig/cron.
type Scheduler struct {
	cron     *cron.Cron
	importer *service.Service
	schedule string
	logger   *slog.Logger
}

// NewScheduler creates a job scheduler. schedule is a standard 5-field
// cron expression.
func NewScheduler(importer *service.Service, schedule string, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:     c,
		importer: importer,
		schedule: schedule,
		logger:   logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.syncMail)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("mail_sync_schedule", s.schedule),
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the mail sync (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.syncMail()
}

func (s *Scheduler) syncMail() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s.logger.Info("starting scheduled mail sync")

	summary, err := s.importer.SyncMail(ctx)
	if err != nil {
		s.logger.Error("scheduled mail sync failed", slog.Any("error", err))
		return
	}

	s.logger.Info("scheduled mail sync completed",
		slog.Int("inserted", summary.Inserted),
		slog.Int("duplicates", summary.Skipped),
		slog.Int("unrecognized", summary.RowsSkipped),
	)
}
