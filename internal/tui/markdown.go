package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

type Tab int

const (
	TabDescription Tab = iota
	TabSolutions
	TabApplications
)

var Tabs = []Tab{TabDescription, TabSolutions, TabApplications}

func (t Tab) String() string {
	switch t {
	case TabDescription:
		return "Description"
	case TabSolutions:
		return "Solutions"
	case TabApplications:
		return "Applications"
	default:
		return "Unknown"
	}
}

// ProblemMarkdown builds the markdown shown for one detail tab.
func ProblemMarkdown(p problem_service.Problem, tab Tab) string {
	switch tab {
	case TabSolutions:
		return solutionsMarkdown(p)
	case TabApplications:
		return applicationsMarkdown(p)
	default:
		return descriptionMarkdown(p)
	}
}

func descriptionMarkdown(p problem_service.Problem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	fmt.Fprintf(&b, "**%s**", p.Difficulty)
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, " · %s", strings.Join(p.Categories, ", "))
	}
	b.WriteString("\n\n")

	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString("\n\n")
	}

	if len(p.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for i, ex := range p.Examples {
			fmt.Fprintf(&b, "**Example %d**\n\n", i+1)
			if ex.Input != "" || ex.Output != "" {
				fmt.Fprintf(&b, "```\nInput: %s\nOutput: %s\n```\n\n", ex.Input, ex.Output)
			}
			if ex.Explanation != "" {
				fmt.Fprintf(&b, "%s\n\n", ex.Explanation)
			}
		}
	}

	if p.Constraints != "" {
		b.WriteString("## Constraints\n\n")
		for _, line := range strings.Split(string(p.Constraints), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(&b, "- %s\n", line)
			}
		}
		b.WriteString("\n")
	}

	if len(p.ClarifyingQuestions) > 0 {
		b.WriteString("## Clarifying questions\n\n")
		for _, q := range p.ClarifyingQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func solutionsMarkdown(p problem_service.Problem) string {
	var b strings.Builder
	b.WriteString("# Solutions\n\n")

	if p.SolutionApproach != nil && *p.SolutionApproach != "" {
		fmt.Fprintf(&b, "## Approach\n\n%s\n\n", *p.SolutionApproach)
	}
	if p.BestTimeComplexity != nil || p.BestSpaceComplexity != nil {
		b.WriteString("Best known: ")
		if p.BestTimeComplexity != nil {
			fmt.Fprintf(&b, "time `%s` ", *p.BestTimeComplexity)
		}
		if p.BestSpaceComplexity != nil {
			fmt.Fprintf(&b, "space `%s`", *p.BestSpaceComplexity)
		}
		b.WriteString("\n\n")
	}

	if len(p.Solutions) == 0 {
		b.WriteString("_No solutions yet._\n")
		return b.String()
	}
	for _, s := range p.Solutions {
		fmt.Fprintf(&b, "## %s\n\n", s.Name)
		fmt.Fprintf(&b, "Time `%s` · Space `%s`\n\n", s.TimeComplexity, s.SpaceComplexity)
		if s.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Description)
		}
		if s.Code != "" {
			fmt.Fprintf(&b, "```\n%s\n```\n\n", strings.TrimRight(s.Code, "\n"))
		}
	}
	return b.String()
}

func applicationsMarkdown(p problem_service.Problem) string {
	var b strings.Builder
	b.WriteString("# Real-world applications\n\n")
	if len(p.RealWorldApplications) == 0 {
		b.WriteString("_No applications recorded._\n")
		return b.String()
	}
	for _, app := range p.RealWorldApplications {
		fmt.Fprintf(&b, "## %s\n\n", app.Industry)
		if app.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", app.Description)
		}
		if app.Impact != "" {
			fmt.Fprintf(&b, "**Impact:** %s\n\n", app.Impact)
		}
	}
	return b.String()
}

// RenderMarkdown renders markdown for a terminal of the given width. The raw
// markdown is returned when rendering fails.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithEmoji(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

// ParseTab matches a tab by name in any letter case.
func ParseTab(name string) (Tab, bool) {
	for _, t := range Tabs {
		if strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			return t, true
		}
	}
	return 0, false
}
