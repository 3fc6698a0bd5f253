package problem_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/remote_api"
	"github.com/tcp_snm/algodex/internal/service"
)

func (p *ProblemService) UpdateProblem(
	ctx context.Context,
	slug string,
	problemRequest Problem,
) (Problem, error) {
	slug = strings.TrimSpace(slug)
	problemRequest = normalizeProblem(problemRequest)
	if problemRequest.SlugID == "" {
		problemRequest.SlugID = slug
	}
	if problemRequest.SlugID != slug {
		return Problem{}, fmt.Errorf(
			"%w, slug_id %q does not match the problem being updated (%q)",
			algo_errors.ErrInvalidInput,
			problemRequest.SlugID,
			slug,
		)
	}
	if err := validateProblem(problemRequest); err != nil {
		return Problem{}, err
	}

	var problemResponse Problem
	err := p.Remote.Put(
		ctx,
		"update problem",
		"/problems/"+remote_api.PathEscape(slug),
		problemRequest,
		&problemResponse,
	)
	if err != nil {
		return Problem{}, err
	}
	if problemResponse.SlugID == "" {
		problemResponse = problemRequest
	}

	p.patchSnapshot(func(problems []Problem) []Problem {
		return upsert(problems, problemResponse)
	})
	p.details.Remove(slug)

	log.WithFields(log.Fields{
		"slug":  slug,
		"actor": service.ActorFromContext(ctx),
	}).Info("updated problem")

	return problemResponse, nil
}

func (p *ProblemService) DeleteProblem(
	ctx context.Context,
	slug string,
) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return fmt.Errorf("%w, problem slug is required", algo_errors.ErrInvalidInput)
	}

	err := p.Remote.Delete(ctx, "delete problem", "/problems/"+remote_api.PathEscape(slug))
	if err != nil {
		return err
	}

	p.patchSnapshot(func(problems []Problem) []Problem {
		return remove(problems, slug)
	})
	p.details.Remove(slug)

	log.WithFields(log.Fields{
		"slug":  slug,
		"actor": service.ActorFromContext(ctx),
	}).Info("deleted problem")

	return nil
}
