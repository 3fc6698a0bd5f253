// Package forms holds the interactive create, update, and delete flows
// for problems, solutions, and categories.
package forms

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/service"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

// exampleSeparator splits input, output and explanation on one example line.
const exampleSeparator = "=>"

// ProblemForm collects a new or edited problem.
type ProblemForm struct {
	Slug        string
	Title       string
	Difficulty  string
	Categories  []string
	Description string
	Constraints string
	Examples    string
	Questions   string

	editing    bool
	categories []string
}

// NewProblemForm prepares a form with the known categories as choices.
// A non-nil initial problem pre-fills every field and locks the slug.
func NewProblemForm(categories []string, initial *problem_service.Problem) *ProblemForm {
	f := &ProblemForm{
		Difficulty: string(problem_service.DifficultyEasy),
		categories: slices.Clone(categories),
	}
	if initial == nil {
		return f
	}

	f.editing = true
	f.Slug = initial.SlugID
	f.Title = initial.Title
	f.Difficulty = string(initial.Difficulty)
	f.Categories = slices.Clone(initial.Categories)
	f.Description = initial.Description
	f.Constraints = string(initial.Constraints)
	f.Examples = FormatExamples(initial.Examples)
	f.Questions = strings.Join(initial.ClarifyingQuestions, "\n")
	// labels on the problem stay selectable even if the list is stale
	for _, c := range initial.Categories {
		if !slices.Contains(f.categories, c) {
			f.categories = append(f.categories, c)
		}
	}
	return f
}

func (f *ProblemForm) Form() *huh.Form {
	difficulties := make([]string, 0, len(problem_service.Difficulties))
	for _, d := range problem_service.Difficulties {
		difficulties = append(difficulties, string(d))
	}

	identity := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&f.Title).
			Validate(ValidateTitle),
		huh.NewSelect[string]().
			Title("Difficulty").
			Options(huh.NewOptions(difficulties...)...).
			Value(&f.Difficulty),
		huh.NewMultiSelect[string]().
			Title("Categories").
			Options(huh.NewOptions(f.categories...)...).
			Value(&f.Categories).
			Validate(func(selected []string) error {
				if len(selected) == 0 {
					return fmt.Errorf("pick at least one category")
				}
				return nil
			}),
	}
	if !f.editing {
		slug := huh.NewInput().
			Title("Slug").
			Description("lowercase words separated by hyphens, e.g. two-sum").
			Value(&f.Slug).
			Validate(ValidateSlug)
		identity = append([]huh.Field{slug}, identity...)
	}

	return huh.NewForm(
		huh.NewGroup(identity...),
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				Description("markdown").
				Value(&f.Description).
				Validate(required("description")),
			huh.NewText().
				Title("Constraints").
				Description("one per line").
				Value(&f.Constraints),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Examples").
				Description("one per line: input => output => optional explanation").
				Value(&f.Examples).
				Validate(func(s string) error {
					_, err := ParseExamples(s)
					return err
				}),
			huh.NewText().
				Title("Clarifying questions").
				Description("one per line").
				Value(&f.Questions),
		),
	)
}

// Problem builds the problem from the collected values.
func (f *ProblemForm) Problem() (problem_service.Problem, error) {
	examples, err := ParseExamples(f.Examples)
	if err != nil {
		return problem_service.Problem{}, err
	}
	return problem_service.Problem{
		SlugID:              strings.TrimSpace(f.Slug),
		Title:               strings.TrimSpace(f.Title),
		Difficulty:          problem_service.Difficulty(f.Difficulty),
		Categories:          slices.Clone(f.Categories),
		Description:         strings.TrimSpace(f.Description),
		Constraints:         problem_service.Text(strings.TrimSpace(f.Constraints)),
		ClarifyingQuestions: lines(f.Questions),
		Examples:            examples,
	}, nil
}

// ParseExamples reads one example per non-empty line in the form
// "input => output" or "input => output => explanation".
func ParseExamples(text string) ([]problem_service.Example, error) {
	var examples []problem_service.Example
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, exampleSeparator, 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf(
				"%w, example on line %d needs input %s output",
				algo_errors.ErrInvalidInput, i+1, exampleSeparator,
			)
		}
		example := problem_service.Example{
			Input:  strings.TrimSpace(parts[0]),
			Output: strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			example.Explanation = strings.TrimSpace(parts[2])
		}
		if example.Input == "" || example.Output == "" {
			return nil, fmt.Errorf(
				"%w, input and output are required for all examples, line %d is incomplete",
				algo_errors.ErrInvalidInput, i+1,
			)
		}
		examples = append(examples, example)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w, at least one example is required", algo_errors.ErrInvalidInput)
	}
	return examples, nil
}

// FormatExamples is the inverse of ParseExamples for pre-filling a form.
func FormatExamples(examples []problem_service.Example) string {
	out := make([]string, 0, len(examples))
	for _, ex := range examples {
		line := ex.Input + " " + exampleSeparator + " " + ex.Output
		if ex.Explanation != "" {
			line += " " + exampleSeparator + " " + ex.Explanation
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// SolutionForm collects a solution for an existing problem.
type SolutionForm struct {
	Name            string
	Description     string
	Code            string
	TimeComplexity  string
	SpaceComplexity string
}

func (f *SolutionForm) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					return service.ValidateVar("name", strings.TrimSpace(s), "notblank,max=100")
				}),
			huh.NewInput().
				Title("Time complexity").
				Placeholder("O(n)").
				Value(&f.TimeComplexity).
				Validate(required("time complexity")),
			huh.NewInput().
				Title("Space complexity").
				Placeholder("O(1)").
				Value(&f.SpaceComplexity).
				Validate(required("space complexity")),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Description").
				Value(&f.Description),
			huh.NewText().
				Title("Code").
				Value(&f.Code),
		),
	)
}

func (f *SolutionForm) Solution() problem_service.Solution {
	return problem_service.Solution{
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		Code:            f.Code,
		TimeComplexity:  strings.TrimSpace(f.TimeComplexity),
		SpaceComplexity: strings.TrimSpace(f.SpaceComplexity),
	}
}

// CategoryForm asks for a category name, pre-filled when renaming.
func CategoryForm(title string, name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(name).
				Validate(ValidateCategory),
		),
	)
}

// ConfirmForm asks a yes/no question, defaulting to no.
func ConfirmForm(question string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Delete").
				Negative("Cancel").
				Value(confirmed),
		),
	)
}

func ValidateSlug(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("slug is required")
	}
	if !service.IsSlug(s) {
		return fmt.Errorf("slug must be lowercase words separated by hyphens (e.g. two-sum)")
	}
	return nil
}

func ValidateTitle(s string) error {
	return service.ValidateVar("title", strings.TrimSpace(s), fmt.Sprintf("notblank,max=%d", service.MaxTitleLength))
}

func ValidateCategory(s string) error {
	return service.ValidateVar("name", strings.TrimSpace(s), fmt.Sprintf("notblank,max=%d", service.MaxCategoryLength))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
