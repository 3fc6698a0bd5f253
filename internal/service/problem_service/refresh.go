package problem_service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Refresh fetches problems and categories together and replaces the snapshot.
// On failure the previous snapshot stays in place and is returned with the error.
func (p *ProblemService) Refresh(ctx context.Context) (Snapshot, error) {
	var (
		problems   []Problem
		categories []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		problems, err = p.fetchProblems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = p.fetchCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.Metrics.ObserveRefresh(err, 0, time.Time{})
		log.WithError(err).Error("failed to refresh problems, keeping previous snapshot")
		return p.Snapshot(), err
	}

	if problems == nil {
		problems = []Problem{}
	}
	if categories == nil {
		categories = []string{}
	}
	snapshot := Snapshot{
		Problems:   problems,
		Categories: categories,
		FetchedAt:  time.Now(),
	}

	p.mu.Lock()
	p.snapshot = snapshot
	p.mu.Unlock()
	p.details.Purge()

	p.Metrics.ObserveRefresh(nil, len(problems), snapshot.FetchedAt)
	log.WithFields(log.Fields{
		"problems":   len(problems),
		"categories": len(categories),
	}).Info("problems refreshed")

	return p.Snapshot(), nil
}

func (p *ProblemService) fetchProblems(ctx context.Context) ([]Problem, error) {
	var problems []Problem
	if err := p.Remote.Get(ctx, "list problems", "/problems/", &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func (p *ProblemService) fetchCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := p.Remote.Get(ctx, "list categories", "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
