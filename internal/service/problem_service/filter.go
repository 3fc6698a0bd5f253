package problem_service

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter returns the problems matching every active predicate of state,
// in their original order. The input slice is never modified.
func Filter(problems []Problem, state FilterState) []Problem {
	filtered := make([]Problem, 0, len(problems))

	matchSearch := strings.TrimSpace(state.Search) != ""
	// plain lowercasing, not full folding, so "ss" does not match "ß".
	// a caser keeps internal state, so one per call
	lower := cases.Lower(language.Und)
	query := lower.String(state.Search)

	for _, problem := range problems {
		if !isAll(state.Difficulty) && string(problem.Difficulty) != state.Difficulty {
			continue
		}
		if !isAll(state.Category) && !slices.Contains(problem.Categories, state.Category) {
			continue
		}
		if matchSearch && !matchesSearch(problem, query, lower) {
			continue
		}
		filtered = append(filtered, problem)
	}

	return filtered
}

func matchesSearch(problem Problem, query string, lower cases.Caser) bool {
	contains := func(s string) bool {
		return s != "" && strings.Contains(lower.String(s), query)
	}

	if contains(problem.Title) || contains(problem.Description) {
		return true
	}
	for _, category := range problem.Categories {
		if contains(category) {
			return true
		}
	}
	for _, app := range problem.RealWorldApplications {
		if contains(app.Industry) || contains(app.Description) {
			return true
		}
	}
	return false
}
