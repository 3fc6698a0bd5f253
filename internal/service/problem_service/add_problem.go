package problem_service

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/service"
)

func (p *ProblemService) CreateProblem(
	ctx context.Context,
	problemRequest Problem,
) (Problem, error) {
	problemRequest = normalizeProblem(problemRequest)
	if err := validateProblem(problemRequest); err != nil {
		return Problem{}, err
	}

	var problemResponse Problem
	err := p.Remote.Post(ctx, "create problem", "/problems", problemRequest, &problemResponse)
	if err != nil {
		return Problem{}, err
	}
	// the api may answer with an empty body or a bare acknowledgement
	if problemResponse.SlugID == "" {
		problemResponse = problemRequest
	}

	p.patchSnapshot(func(problems []Problem) []Problem {
		return upsert(problems, problemResponse)
	})
	p.details.Remove(problemResponse.SlugID)

	log.WithFields(log.Fields{
		"slug":  problemResponse.SlugID,
		"actor": service.ActorFromContext(ctx),
	}).Info("created problem")

	return problemResponse, nil
}
