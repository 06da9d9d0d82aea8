// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"opendesk/internal/shared/biztime"
	"opendesk/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterAutoCloseJob registers the inactivity sweep. Each run walks
// every department with auto-close configured and closes eligible
// tickets.
func (m *SchedulerManager) RegisterAutoCloseJob(sweep BatchJob, intervalMinutes int) error {
	interval := time.Duration(intervalMinutes) * time.Minute

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.runAutoCloseSweep(ctx, sweep)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("ticket", "auto-close"),
		gocron.WithName("ticket-auto-close"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered auto-close job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runAutoCloseSweep(ctx context.Context, sweep BatchJob) {
	m.logger.Debugw("auto-close sweep started")

	startTime := biztime.NowUTC()

	closedCount, err := sweep.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("auto-close sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if closedCount > 0 {
		m.logger.Infow("auto-close sweep completed",
			"closed", closedCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no tickets to auto-close",
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler. It waits for all running jobs to
// complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
