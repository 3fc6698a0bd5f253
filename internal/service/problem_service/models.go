package problem_service

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tcp_snm/algodex/internal/metrics"
	"github.com/tcp_snm/algodex/internal/remote_api"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"

	// selector value that disables a difficulty or category predicate
	SelectorAll = "All"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

type ProblemService struct {
	Remote  *remote_api.Client
	Metrics *metrics.Metrics

	mu       sync.RWMutex
	snapshot Snapshot
	details  *lru.Cache[string, Problem]
}

// Snapshot is the last successfully fetched collection.
type Snapshot struct {
	Problems   []Problem `json:"problems"`
	Categories []string  `json:"categories"`
	FetchedAt  time.Time `json:"fetched_at"`
}

func (s Snapshot) Loaded() bool {
	return !s.FetchedAt.IsZero()
}

type Solution struct {
	Name            string `json:"name" validate:"notblank,max=100"`
	Description     string `json:"description"`
	Code            string `json:"code"`
	TimeComplexity  string `json:"time_complexity" validate:"notblank"`
	SpaceComplexity string `json:"space_complexity" validate:"notblank"`
}

type RealWorldApplication struct {
	Industry    string `json:"industry"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

type Example struct {
	Input       string `json:"input" validate:"notblank"`
	Output      string `json:"output" validate:"notblank"`
	Explanation string `json:"explanation,omitempty"`
}

// older records carry examples as bare strings
func (e *Example) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*e = Example{Explanation: text}
		return nil
	}
	type plain Example
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Example(p)
	return nil
}

// Text accepts either a JSON string or a list of strings (joined by newlines).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*t = Text(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*t = Text(strings.Join(lines, "\n"))
	return nil
}

type Problem struct {
	SlugID                string                 `json:"slug_id" validate:"required,slug"`
	Title                 string                 `json:"title" validate:"notblank,max=200"`
	Difficulty            Difficulty             `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Categories            []string               `json:"categories" validate:"required,min=1,unique,dive,notblank"`
	Description           string                 `json:"description" validate:"notblank"`
	Constraints           Text                   `json:"constraints"`
	ClarifyingQuestions   []string               `json:"clarifying_questions"`
	SolutionApproach      *string                `json:"solution_approach,omitempty"`
	Solutions             []Solution             `json:"solutions,omitempty" validate:"dive"`
	RealWorldApplications []RealWorldApplication `json:"real_world_applications,omitempty"`
	Examples              []Example              `json:"examples" validate:"required,min=1,dive"`
	BestTimeComplexity    *string                `json:"best_time_complexity,omitempty"`
	BestSpaceComplexity   *string                `json:"best_space_complexity,omitempty"`
}

// FilterState holds the active search text and selectors of a list view.
// Empty selectors behave like SelectorAll.
type FilterState struct {
	Search     string `json:"search"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

// DefaultFilterState has every selector set to All and no search text.
func DefaultFilterState() FilterState {
	return FilterState{
		Difficulty: SelectorAll,
		Category:   SelectorAll,
	}
}

// Reset returns all filters to their defaults.
func (f *FilterState) Reset() {
	*f = DefaultFilterState()
}

// Active reports whether any predicate would be applied.
func (f FilterState) Active() bool {
	return !isAll(f.Difficulty) || !isAll(f.Category) || strings.TrimSpace(f.Search) != ""
}

func isAll(selector string) bool {
	return selector == "" || strings.EqualFold(selector, SelectorAll)
}
