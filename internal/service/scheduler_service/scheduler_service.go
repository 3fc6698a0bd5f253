package scheduler_service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
)

// Start runs one refresh immediately and then starts the cron schedule.
// A failed first refresh is logged, not returned, so serve can come up
// while the remote api is down.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.Refresher == nil {
		return fmt.Errorf("%w, scheduler has nothing to refresh", algo_errors.ErrInternal)
	}
	if s.RunTimeout <= 0 {
		s.RunTimeout = DefaultRunTimeout
	}

	s.cron = cron.New(cron.WithLogger(cron.PrintfLogger(logrus.StandardLogger())))
	if s.Schedule != "" {
		logrus.Info("scheduling snapshot refresh with cron spec ", s.Schedule)
		_, err := s.cron.AddFunc(s.Schedule, func() {
			s.RunOnce(context.Background())
		})
		if err != nil {
			return fmt.Errorf("%w, invalid refresh schedule %q, %w", algo_errors.ErrInvalidInput, s.Schedule, err)
		}
	} else {
		logrus.Warn("refresh schedule is empty, snapshot refreshes only on request")
	}

	logrus.Info("running first snapshot refresh")
	s.RunOnce(ctx)

	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits briefly for an in-flight refresh.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(stopWaitDuration):
		logrus.Warn("refresh still running after stop timeout")
	}
	logrus.Info("scheduler stopped")
}

// Status returns the outcome of the latest run.
func (s *Scheduler) Status() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
