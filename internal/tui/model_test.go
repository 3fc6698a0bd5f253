package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

type fakeSource struct {
	snapshot problem_service.Snapshot
	err      error
}

func (f *fakeSource) Refresh(ctx context.Context) (problem_service.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeSource) GetProblemBySlug(ctx context.Context, slug string) (problem_service.Problem, error) {
	for _, p := range f.snapshot.Problems {
		if p.SlugID == slug {
			return p, nil
		}
	}
	return problem_service.Problem{}, errors.New("not found")
}

func testSnapshot() problem_service.Snapshot {
	return problem_service.Snapshot{
		Problems: []problem_service.Problem{
			{SlugID: "two-sum", Title: "Two Sum", Difficulty: "Easy", Categories: []string{"Array", "Hash Table"}},
			{SlugID: "valid-parentheses", Title: "Valid Parentheses", Difficulty: "Easy", Categories: []string{"Stack"}},
			{SlugID: "3sum", Title: "3Sum", Difficulty: "Medium", Categories: []string{"Array"}},
			{SlugID: "trapping-rain-water", Title: "Trapping Rain Water", Difficulty: "Hard", Categories: []string{"Array", "Stack"}},
		},
		Categories: []string{"Array", "Hash Table", "Stack"},
		FetchedAt:  time.Now().Add(-3 * time.Minute),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func loaded(t *testing.T) (Model, *fakeSource) {
	t.Helper()
	source := &fakeSource{snapshot: testSnapshot()}
	m := New(source, time.Second)
	msg := m.loadCmd()()
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40}, msg)
	return m, source
}

func slugs(problems []problem_service.Problem) []string {
	out := []string{}
	for _, p := range problems {
		out = append(out, p.SlugID)
	}
	return out
}

func TestLoadShowsEverything(t *testing.T) {
	m, _ := loaded(t)
	assert.Len(t, m.Visible(), 4)
	assert.NoError(t, m.Err())

	view := m.View()
	assert.Contains(t, view, "Showing 4 problems")
	assert.Contains(t, view, "Two Sum")
	assert.Contains(t, view, "3 minutes ago")
}

func TestDifficultyCycle(t *testing.T) {
	m, _ := loaded(t)

	m = send(t, m, key("d"))
	assert.Equal(t, "Easy", m.Filter().Difficulty)
	assert.Equal(t, []string{"two-sum", "valid-parentheses"}, slugs(m.Visible()))

	m = send(t, m, key("d"), key("d"))
	assert.Equal(t, "Hard", m.Filter().Difficulty)
	assert.Equal(t, []string{"trapping-rain-water"}, slugs(m.Visible()))

	m = send(t, m, key("d"))
	assert.Equal(t, problem_service.SelectorAll, m.Filter().Difficulty)
	assert.Len(t, m.Visible(), 4)
}

func TestCategoryCycleAndReset(t *testing.T) {
	m, _ := loaded(t)

	m = send(t, m, key("c"))
	assert.Equal(t, "Array", m.Filter().Category)
	assert.Equal(t, []string{"two-sum", "3sum", "trapping-rain-water"}, slugs(m.Visible()))

	m = send(t, m, key("c"), key("c"))
	assert.Equal(t, "Stack", m.Filter().Category)

	m = send(t, m, key("r"))
	assert.Equal(t, problem_service.DefaultFilterState(), m.Filter())
	assert.Len(t, m.Visible(), 4)
}

func TestSearchTyping(t *testing.T) {
	m, _ := loaded(t)

	m = send(t, m, key("/"), key("s"), key("u"), key("m"))
	assert.Equal(t, "sum", m.Filter().Search)
	assert.Equal(t, []string{"two-sum", "3sum"}, slugs(m.Visible()))

	// keys typed while searching do not trigger list shortcuts
	m = send(t, m, key("q"))
	assert.Equal(t, "sumq", m.Filter().Search)
	assert.Empty(t, m.Visible())
	assert.Contains(t, m.View(), "No problems match your filters")

	m = send(t, m, key("esc"), key("r"))
	assert.Equal(t, "", m.Filter().Search)
	assert.Len(t, m.Visible(), 4)
}

func TestCursorClampsToFilteredList(t *testing.T) {
	m, _ := loaded(t)
	m = send(t, m, key("down"), key("down"), key("down"))
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "trapping-rain-water", selected.SlugID)

	m = send(t, m, key("d"))
	selected, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "valid-parentheses", selected.SlugID)
}

func TestOpenDetailAndSwitchTabs(t *testing.T) {
	m, _ := loaded(t)

	updated, cmd := m.Update(key("enter"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	// the batch holds the spinner tick and the fetch, run the fetch directly
	m = send(t, m, m.detailCmd("two-sum")())

	assert.True(t, m.InDetail())
	assert.Equal(t, TabDescription, m.ActiveTab())
	assert.Contains(t, m.View(), "Description")

	m = send(t, m, key("tab"))
	assert.Equal(t, TabSolutions, m.ActiveTab())
	m = send(t, m, key("3"))
	assert.Equal(t, TabApplications, m.ActiveTab())
	m = send(t, m, key("tab"))
	assert.Equal(t, TabDescription, m.ActiveTab())

	m = send(t, m, key("esc"))
	assert.False(t, m.InDetail())
}

func TestDetailErrorStaysOnList(t *testing.T) {
	m, _ := loaded(t)
	m = send(t, m, m.detailCmd("missing")())
	assert.False(t, m.InDetail())
	assert.Error(t, m.Err())
}

func TestFailedReloadKeepsSnapshot(t *testing.T) {
	m, source := loaded(t)
	source.snapshot = problem_service.Snapshot{}
	source.err = errors.New("remote down")

	m = send(t, m, m.loadCmd()())
	assert.Len(t, m.Visible(), 4)
	assert.True(t, strings.Contains(m.View(), "remote down"))
}

func TestProblemMarkdown(t *testing.T) {
	approach := "Use a hash map."
	p := problem_service.Problem{
		Title:       "Two Sum",
		Difficulty:  "Easy",
		Categories:  []string{"Array"},
		Description: "Find two numbers.",
		Constraints: "2 <= n\n-10^9 <= x",
		Examples:    []problem_service.Example{{Input: "[2,7], 9", Output: "[0,1]"}},
		Solutions: []problem_service.Solution{
			{Name: "Hash map", TimeComplexity: "O(n)", SpaceComplexity: "O(n)", Code: "return seen"},
		},
		SolutionApproach: &approach,
		RealWorldApplications: []problem_service.RealWorldApplication{
			{Industry: "Finance", Description: "Matching trades.", Impact: "faster reconciliation"},
		},
	}

	description := ProblemMarkdown(p, TabDescription)
	assert.Contains(t, description, "# Two Sum")
	assert.Contains(t, description, "Input: [2,7], 9")
	assert.Contains(t, description, "- -10^9 <= x")

	solutions := ProblemMarkdown(p, TabSolutions)
	assert.Contains(t, solutions, "## Hash map")
	assert.Contains(t, solutions, "Use a hash map.")

	apps := ProblemMarkdown(p, TabApplications)
	assert.Contains(t, apps, "## Finance")
	assert.Contains(t, apps, "**Impact:** faster reconciliation")

	empty := problem_service.Problem{Title: "Bare"}
	assert.Contains(t, ProblemMarkdown(empty, TabSolutions), "No solutions yet")
	assert.Contains(t, ProblemMarkdown(empty, TabApplications), "No applications recorded")
}

func TestDifficultyBadge(t *testing.T) {
	assert.Equal(t, emerald, DifficultyColor("Easy"))
	assert.Equal(t, amber, DifficultyColor("Medium"))
	assert.Equal(t, rose, DifficultyColor("Hard"))
	assert.Contains(t, DifficultyBadge("Medium"), "Medium")
}
