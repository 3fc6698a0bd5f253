package problem_service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/remote_api"
)

func (p *ProblemService) GetProblemBySlug(
	ctx context.Context,
	slug string,
) (Problem, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Problem{}, fmt.Errorf("%w, problem slug is required", algo_errors.ErrInvalidInput)
	}

	if problem, ok := p.details.Get(slug); ok {
		log.WithField("slug", slug).Debug("problem served from cache")
		return problem, nil
	}

	var problem Problem
	err := p.Remote.Get(
		ctx,
		"get problem",
		"/problems/"+remote_api.PathEscape(slug),
		&problem,
	)
	if err != nil {
		return Problem{}, err
	}
	if problem.SlugID == "" {
		problem.SlugID = slug
	}

	p.details.Add(slug, problem)
	return problem, nil
}

// Categories returns the category labels of the current snapshot.
func (p *ProblemService) Categories() []string {
	return p.Snapshot().Categories
}
