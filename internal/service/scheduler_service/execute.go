package scheduler_service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// RunOnce refreshes unless a refresh is already in flight, and reports
// whether it ran.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.mu.Lock()
		s.status.Skipped++
		s.mu.Unlock()
		logrus.Warn("previous snapshot refresh still running, skipping this one")
		return false
	}
	defer s.running.Store(false)

	timeout := s.RunTimeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.mu.Lock()
	s.status.State = StateRunning
	s.status.StartedAt = time.Now()
	s.mu.Unlock()

	snapshot, err := s.Refresher.Refresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Runs++
	s.status.FinishedAt = time.Now()
	s.status.Err = err
	if err != nil {
		s.status.State = StateFailed
		logrus.WithError(err).Error("scheduled snapshot refresh failed")
		return true
	}
	s.status.State = StateCompleted
	s.status.Problems = len(snapshot.Problems)
	logrus.WithField("status", s.status).Debug("scheduled snapshot refresh completed")
	return true
}
