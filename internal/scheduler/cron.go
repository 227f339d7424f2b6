package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is a unit of work run by the scheduler
type Job func(ctx context.Context) error

// Scheduler re-runs a command on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewScheduler creates a new scheduler
func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Run executes job immediately, then on every tick of expr until ctx is
// done. Runs never overlap; a tick that fires while a run is in progress is
// skipped. Job errors are logged and do not stop the schedule.
func (s *Scheduler) Run(ctx context.Context, name, expr string, job Job) error {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	log := s.logger.WithFields(logrus.Fields{"job": name, "schedule": expr})

	s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.runJob(ctx, log, job)
	}))

	s.runJob(ctx, log, job)

	s.cron.Start()
	log.WithField("next", schedule.Next(time.Now())).Info("Scheduler started")

	<-ctx.Done()
	log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

func (s *Scheduler) runJob(ctx context.Context, log *logrus.Entry, job Job) {
	if ctx.Err() != nil {
		return
	}
	if !s.mu.TryLock() {
		log.Warn("Previous run still in progress, skipping")
		return
	}
	defer s.mu.Unlock()

	log.Info("Running scheduled job")
	if err := job(ctx); err != nil {
		log.WithError(err).Error("Scheduled job failed")
		return
	}
	log.Info("Scheduled job completed successfully")
}
