package problem_service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/remote_api"
	"github.com/tcp_snm/algodex/internal/service"
)

// AddSolution posts a solution and returns the problem as it looks afterwards.
func (p *ProblemService) AddSolution(
	ctx context.Context,
	slug string,
	solution Solution,
) (Problem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Problem{}, fmt.Errorf("%w, problem slug is required", algo_errors.ErrInvalidInput)
	}
	solution.Name = strings.TrimSpace(solution.Name)
	if err := validateSolution(solution); err != nil {
		return Problem{}, err
	}

	var response Problem
	err := p.Remote.Post(
		ctx,
		"add solution",
		"/problems/"+remote_api.PathEscape(slug)+"/solutions",
		solution,
		&response,
	)
	if err != nil {
		return Problem{}, err
	}
	p.details.Remove(slug)

	var updated Problem
	var known bool
	p.patchSnapshot(func(problems []Problem) []Problem {
		if response.SlugID == slug {
			updated, known = response, true
			return upsert(problems, response)
		}
		existing, ok := find(problems, slug)
		if !ok {
			return problems
		}
		// copy so the published snapshot record is left untouched
		existing.Solutions = append(slices.Clone(existing.Solutions), solution)
		updated, known = existing, true
		return upsert(problems, existing)
	})
	if !known {
		updated = response
		if response.SlugID != slug {
			fetched, fetchErr := p.GetProblemBySlug(ctx, slug)
			if fetchErr != nil {
				// the solution is stored remotely, only the read back failed
				log.WithError(fetchErr).Warnf("solution added but problem %s could not be fetched", slug)
				fetched = Problem{SlugID: slug, Solutions: []Solution{solution}}
			}
			updated = fetched
		}
	}

	log.WithFields(log.Fields{
		"slug":     slug,
		"solution": solution.Name,
		"actor":    service.ActorFromContext(ctx),
	}).Info("added solution")

	return updated, nil
}
