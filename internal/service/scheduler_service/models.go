package scheduler_service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

const (
	DefaultSchedule   = "@every 5m"
	DefaultRunTimeout = 2 * time.Minute

	stopWaitDuration = 5 * time.Second
)

type TaskState int

const (
	StateIdle TaskState = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s TaskState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Refresher is what the scheduler keeps fresh, a *problem_service.ProblemService.
type Refresher interface {
	Refresh(ctx context.Context) (problem_service.Snapshot, error)
}

// Scheduler refreshes the snapshot once at start and then on Schedule.
// An empty Schedule leaves only the initial run. A run that would overlap
// one still in flight is skipped.
type Scheduler struct {
	Refresher  Refresher
	Schedule   string
	RunTimeout time.Duration

	cron    *cron.Cron
	running atomic.Bool
	mu      sync.RWMutex
	status  RunStatus
}

type RunStatus struct {
	State      TaskState
	Runs       int
	Skipped    int
	StartedAt  time.Time
	FinishedAt time.Time
	Problems   int
	Err        error
}

func (r RunStatus) String() string {
	return fmt.Sprintf(
		"[State=%v Runs=%d Skipped=%d StartedAt=%s FinishedAt=%s Problems=%d Err=%v]",
		r.State, r.Runs, r.Skipped, r.StartedAt, r.FinishedAt, r.Problems, r.Err,
	)
}
