// Package tui is the interactive problem browser: a filtered list with a
// search box and selectors, and a tabbed detail view.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

const (
	headerHeight = 6
	footerHeight = 2
)

// Source is where the browser reads problems from, a *problem_service.ProblemService.
type Source interface {
	Refresh(ctx context.Context) (problem_service.Snapshot, error)
	GetProblemBySlug(ctx context.Context, slug string) (problem_service.Problem, error)
}

type viewMode int

const (
	viewList viewMode = iota
	viewDetail
)

type snapshotMsg struct {
	snapshot problem_service.Snapshot
	err      error
}

type detailMsg struct {
	problem problem_service.Problem
	err     error
}

type Model struct {
	source  Source
	timeout time.Duration

	snapshot problem_service.Snapshot
	filter   problem_service.FilterState
	visible  []problem_service.Problem
	cursor   int

	search    textinput.Model
	searching bool
	spinner   spinner.Model
	loading   bool
	err       error

	mode     viewMode
	detail   problem_service.Problem
	tab      Tab
	viewport viewport.Model

	width  int
	height int
	ready  bool
}

// New returns a browser reading from source. Each remote call is bounded by timeout.
func New(source Source, timeout time.Duration) Model {
	search := textinput.New()
	search.Placeholder = "search title, description, category, application"
	search.Prompt = "/ "
	search.CharLimit = 100

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		source:  source,
		timeout: timeout,
		filter:  problem_service.DefaultFilterState(),
		visible: []problem_service.Problem{},
		search:  search,
		spinner: s,
		loading: true,
	}
}

// Filter returns the active filter state.
func (m Model) Filter() problem_service.FilterState {
	return m.filter
}

// Visible returns the problems currently listed.
func (m Model) Visible() []problem_service.Problem {
	return m.visible
}

// Selected returns the problem under the cursor.
func (m Model) Selected() (problem_service.Problem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return problem_service.Problem{}, false
	}
	return m.visible[m.cursor], true
}

func (m Model) InDetail() bool {
	return m.mode == viewDetail
}

func (m Model) ActiveTab() Tab {
	return m.tab
}

func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) context() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		snapshot, err := m.source.Refresh(ctx)
		return snapshotMsg{snapshot: snapshot, err: err}
	}
}

func (m Model) detailCmd(slug string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.context()
		defer cancel()
		problem, err := m.source.GetProblemBySlug(ctx, slug)
		return detailMsg{problem: problem, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewportHeight := max(m.height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		if m.mode == viewDetail {
			m.renderDetail()
		}
		return m, nil

	case snapshotMsg:
		m.loading = false
		m.err = msg.err
		// a failed refresh keeps whatever was loaded before
		if msg.snapshot.Loaded() {
			m.snapshot = msg.snapshot
		}
		m.applyFilter()
		return m, nil

	case detailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.detail = msg.problem
		m.mode = viewDetail
		m.tab = TabDescription
		m.renderDetail()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == viewDetail {
			return m.updateDetail(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.filter.Search {
		m.filter.Search = m.search.Value()
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "d":
		m.filter.Difficulty = next(difficultyOptions(), m.filter.Difficulty)
		m.applyFilter()
	case "c":
		m.filter.Category = next(m.categoryOptions(), m.filter.Category)
		m.applyFilter()
	case "r":
		m.filter.Reset()
		m.search.SetValue("")
		m.applyFilter()
	case "ctrl+r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if problem, ok := m.Selected(); ok {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.detailCmd(problem.SlugID))
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = viewList
		return m, nil
	case "tab", "right", "l":
		m.tab = Tabs[(int(m.tab)+1)%len(Tabs)]
		m.renderDetail()
		return m, nil
	case "shift+tab", "left", "h":
		m.tab = Tabs[(int(m.tab)+len(Tabs)-1)%len(Tabs)]
		m.renderDetail()
		return m, nil
	case "1", "2", "3":
		m.tab = Tabs[int(msg.String()[0]-'1')]
		m.renderDetail()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applyFilter recomputes the visible list from the whole snapshot.
func (m *Model) applyFilter() {
	m.visible = problem_service.Filter(m.snapshot.Problems, m.filter)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m *Model) renderDetail() {
	if !m.ready {
		return
	}
	content := RenderMarkdown(ProblemMarkdown(m.detail, m.tab), m.width-2)
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func difficultyOptions() []string {
	options := []string{problem_service.SelectorAll}
	for _, d := range problem_service.Difficulties {
		options = append(options, string(d))
	}
	return options
}

func (m Model) categoryOptions() []string {
	return append([]string{problem_service.SelectorAll}, m.snapshot.Categories...)
}

// next cycles through options, starting over when current is not among them.
func next(options []string, current string) string {
	idx := slices.Index(options, current)
	return options[(idx+1)%len(options)]
}

func (m Model) View() string {
	if m.mode == viewDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("algodex"))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d problems", len(m.visible))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "difficulty: %s   category: %s\n",
		selectedStyle.Render(m.filter.Difficulty), selectedStyle.Render(m.filter.Category))
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.loading {
		fmt.Fprintf(&b, "%s loading problems...\n", m.spinner.View())
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.visible) == 0 && !m.loading {
		if m.filter.Active() {
			b.WriteString(mutedStyle.Render("No problems match your filters. Press r to reset them."))
		} else {
			b.WriteString(mutedStyle.Render("No problems yet."))
		}
		b.WriteString("\n")
	}

	start, end := m.page()
	for i := start; i < end; i++ {
		p := m.visible[i]
		cursor := "  "
		title := p.Title
		if i == m.cursor {
			cursor = "> "
			title = selectedStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s %s\n",
			cursor, DifficultyBadge(p.Difficulty), title,
			mutedStyle.Render(strings.Join(p.Categories, ", ")))
	}

	b.WriteString("\n")
	b.WriteString(m.footer("/ search · d difficulty · c category · r reset · enter open · ctrl+r reload · q quit"))
	return b.String()
}

// page returns the window of rows that fits the terminal around the cursor.
func (m Model) page() (int, int) {
	rows := len(m.visible)
	if m.height > 0 {
		rows = max(m.height-headerHeight-footerHeight, 1)
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, min(start+rows, len(m.visible))
}

func (m Model) detailView() string {
	var tabs []string
	for _, t := range Tabs {
		style := tabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", int(t)+1, t)))
	}

	var b strings.Builder
	b.WriteString(DifficultyBadge(m.detail.Difficulty))
	b.WriteString(titleStyle.Render(m.detail.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer("tab/1-3 switch · j/k scroll · esc back · q quit"))
	return b.String()
}

func (m Model) footer(help string) string {
	line := help
	if m.snapshot.Loaded() {
		line = fmt.Sprintf("fetched %s · %s", humanize.Time(m.snapshot.FetchedAt), help)
	}
	return mutedStyle.Render(line)
}
