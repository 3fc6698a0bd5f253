package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/forms"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
	"github.com/tcp_snm/algodex/internal/tui"
)

// interactive reports whether forms and the browser can take over the terminal.
var interactive = func() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes command output, styled only when the writer is a terminal.
type printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	tty      bool
}

func newPrinter(cmd *cobra.Command) printer {
	w := cmd.OutOrStdout()
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isTerminal(f)
	}
	return printer{
		w:        w,
		renderer: lipgloss.NewRenderer(w),
		tty:      tty,
	}
}

func (p printer) muted(format string, args ...any) {
	style := p.renderer.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

func (p printer) success(format string, args ...any) {
	style := p.renderer.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

func (p printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) problemTable(problems []problem_service.Problem) {
	slugWidth := len("SLUG")
	titleWidth := len("TITLE")
	for _, problem := range problems {
		slugWidth = max(slugWidth, len(problem.SlugID))
		titleWidth = max(titleWidth, len(problem.Title))
	}

	header := p.renderer.NewStyle().Bold(true)
	column := p.renderer.NewStyle().PaddingRight(2)
	fmt.Fprintln(p.w,
		header.Inherit(column).Width(slugWidth+2).Render("SLUG")+
			header.Inherit(column).Width(10).Render("DIFFICULTY")+
			header.Inherit(column).Width(titleWidth+2).Render("TITLE")+
			header.Render("CATEGORIES"))

	for _, problem := range problems {
		difficulty := column.Foreground(tui.DifficultyColor(problem.Difficulty)).Width(10)
		fmt.Fprintln(p.w,
			column.Width(slugWidth+2).Render(problem.SlugID)+
				difficulty.Render(string(problem.Difficulty))+
				column.Width(titleWidth+2).Render(problem.Title)+
				strings.Join(problem.Categories, ", "))
	}
}

func (p printer) markdown(content string) {
	if !p.tty {
		fmt.Fprintln(p.w, content)
		return
	}
	fmt.Fprint(p.w, tui.RenderMarkdown(content, 100))
}

// readJSONInput decodes a JSON document from path, or from stdin when path is "-".
func readJSONInput(cmd *cobra.Command, path string, out any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w, cannot open %s, %w", algo_errors.ErrInvalidInput, path, err)
		}
		defer file.Close()
		r = file
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("%w, invalid json in %s, %w", algo_errors.ErrInvalidInput, path, err)
	}
	return nil
}

// runForm runs an interactive form, failing outside a terminal so scripts
// get an error instead of a hang.
func runForm(ctx context.Context, form *huh.Form, hint string) error {
	if !interactive() {
		return fmt.Errorf("%w, not running in a terminal, %s", algo_errors.ErrInvalidInput, hint)
	}
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("%w, form cancelled, %w", algo_errors.ErrInvalidInput, err)
	}
	return nil
}

// confirm asks before a destructive change unless yes is already set.
func confirm(ctx context.Context, yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	confirmed := false
	if err := runForm(ctx, forms.ConfirmForm(question, &confirmed), "pass --yes to confirm"); err != nil {
		return false, err
	}
	return confirmed, nil
}
