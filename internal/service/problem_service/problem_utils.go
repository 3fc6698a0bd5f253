package problem_service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/service"
)

// normalizeProblem trims the free text fields a form may have padded.
func normalizeProblem(problem Problem) Problem {
	problem.SlugID = strings.TrimSpace(problem.SlugID)
	problem.Title = strings.TrimSpace(problem.Title)
	problem.Difficulty = Difficulty(strings.TrimSpace(string(problem.Difficulty)))

	categories := make([]string, 0, len(problem.Categories))
	for _, category := range problem.Categories {
		categories = append(categories, strings.TrimSpace(category))
	}
	problem.Categories = categories

	return problem
}

func validateProblem(problem Problem) error {
	// perform validation using validator first
	if err := service.ValidateInput(problem); err != nil {
		return err
	}

	// -- extra validations --

	// examples need both sides, the validator reports only the first field
	for i, example := range problem.Examples {
		if strings.TrimSpace(example.Input) == "" || strings.TrimSpace(example.Output) == "" {
			return fmt.Errorf(
				"%w, input and output are required for all examples, example %d is incomplete",
				algo_errors.ErrInvalidInput,
				i+1,
			)
		}
	}

	return nil
}

func validateSolution(solution Solution) error {
	return service.ValidateInput(solution)
}

// ParseDifficulty accepts a difficulty in any letter case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf(
		"%w, difficulty must be one of %v",
		algo_errors.ErrInvalidInput,
		Difficulties,
	)
}

// ParseDifficultySelector is ParseDifficulty that also accepts All.
func ParseDifficultySelector(s string) (string, error) {
	if isAll(strings.TrimSpace(s)) {
		return SelectorAll, nil
	}
	d, err := ParseDifficulty(s)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// upsert returns a new slice with problem replacing the record of the same
// slug in place, or appended when the slug is new.
func upsert(problems []Problem, problem Problem) []Problem {
	updated := slices.Clone(problems)
	idx := slices.IndexFunc(updated, func(existing Problem) bool {
		return existing.SlugID == problem.SlugID
	})
	if idx < 0 {
		return append(updated, problem)
	}
	updated[idx] = problem
	return updated
}

func remove(problems []Problem, slug string) []Problem {
	return slices.DeleteFunc(slices.Clone(problems), func(existing Problem) bool {
		return existing.SlugID == slug
	})
}

func find(problems []Problem, slug string) (Problem, bool) {
	idx := slices.IndexFunc(problems, func(existing Problem) bool {
		return existing.SlugID == slug
	})
	if idx < 0 {
		return Problem{}, false
	}
	return problems[idx], true
}

// patchSnapshot swaps in a locally patched copy of the problems so readers
// never observe a half written slice. Nothing happens before the first refresh.
func (p *ProblemService) patchSnapshot(patch func([]Problem) []Problem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.snapshot.Loaded() {
		return
	}
	p.snapshot.Problems = patch(p.snapshot.Problems)
}
