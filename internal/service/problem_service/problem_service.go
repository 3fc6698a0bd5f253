package problem_service

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/metrics"
	"github.com/tcp_snm/algodex/internal/remote_api"
)

const DefaultDetailCacheSize = 128

func NewProblemService(
	remote *remote_api.Client,
	m *metrics.Metrics,
	detailCacheSize int,
) (*ProblemService, error) {
	if remote == nil {
		return nil, fmt.Errorf("%w, problem service needs a remote api client", algo_errors.ErrInternal)
	}
	if detailCacheSize <= 0 {
		detailCacheSize = DefaultDetailCacheSize
	}
	cache, err := lru.New[string, Problem](detailCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w, cannot create problem detail cache, %w", algo_errors.ErrInternal, err)
	}
	log.WithField("detail_cache_size", detailCacheSize).Info("problem service created")
	return &ProblemService{
		Remote:  remote,
		Metrics: m,
		details: cache,
	}, nil
}

// Snapshot returns a copy of the last fetched collection.
func (p *ProblemService) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Problems:   slices.Clone(p.snapshot.Problems),
		Categories: slices.Clone(p.snapshot.Categories),
		FetchedAt:  p.snapshot.FetchedAt,
	}
}

// ListProblems applies state to the current snapshot.
func (p *ProblemService) ListProblems(state FilterState) []Problem {
	p.mu.RLock()
	problems := p.snapshot.Problems
	p.mu.RUnlock()

	// the snapshot slice is never written after publication,
	// so filtering outside the lock is safe
	filtered := Filter(problems, state)
	p.Metrics.ObserveFilter(state.Active(), len(filtered))
	return filtered
}
