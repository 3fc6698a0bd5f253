package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/forms"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
	"github.com/tcp_snm/algodex/internal/tui"
)

func newProblemsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "problems",
		Aliases: []string{"problem", "p"},
		Short:   "List, show, and edit problems",
	}
	cmd.AddCommand(
		newProblemsListCmd(c),
		newProblemsShowCmd(c),
		newProblemsCreateCmd(c),
		newProblemsUpdateCmd(c),
		newProblemsDeleteCmd(c),
	)
	return cmd
}

type listFlags struct {
	search     string
	difficulty string
	category   string
	json       bool
}

type listOutput struct {
	Count    int                         `json:"count"`
	Total    int                         `json:"total"`
	Filters  problem_service.FilterState `json:"filters"`
	Problems []problem_service.Problem   `json:"problems"`
}

func newProblemsListCmd(c *cli) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List problems matching a search and difficulty/category selectors",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulty, err := problem_service.ParseDifficultySelector(flags.difficulty)
			if err != nil {
				return err
			}
			state := problem_service.FilterState{
				Search:     flags.search,
				Difficulty: difficulty,
				Category:   strings.TrimSpace(flags.category),
			}
			if state.Category == "" {
				state.Category = problem_service.SelectorAll
			}

			s, err := c.services()
			if err != nil {
				return err
			}
			snapshot, err := s.problems.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			problems := s.problems.ListProblems(state)

			out := newPrinter(cmd)
			if flags.json {
				return out.json(listOutput{
					Count:    len(problems),
					Total:    len(snapshot.Problems),
					Filters:  state,
					Problems: problems,
				})
			}

			if len(problems) == 0 {
				if !state.Active() {
					out.muted("No problems yet.")
					return nil
				}
				out.muted("No problems match your filters.")
				if state.Category != problem_service.SelectorAll && !s.categories.Known(state.Category) {
					if suggestion := s.categories.Suggest(state.Category); suggestion != "" {
						out.muted("Did you mean %q?", suggestion)
					}
				}
				return nil
			}

			out.problemTable(problems)
			out.muted("Showing %d of %d problems, fetched %s",
				len(problems), len(snapshot.Problems), humanize.Time(snapshot.FetchedAt))
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "case-insensitive text matched against title, description, categories, and applications")
	cmd.Flags().StringVarP(&flags.difficulty, "difficulty", "d", problem_service.SelectorAll, "Easy, Medium, Hard, or All")
	cmd.Flags().StringVar(&flags.category, "category", problem_service.SelectorAll, "exact category name, or All")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print JSON instead of a table")
	return cmd
}

func newProblemsShowCmd(c *cli) *cobra.Command {
	var (
		tab     string
		asJSON  bool
		noStyle bool
	)
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.services()
			if err != nil {
				return err
			}
			problem, err := s.problems.GetProblemBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := newPrinter(cmd)
			if asJSON {
				return out.json(problem)
			}

			tabs := tui.Tabs
			if tab != "all" {
				t, ok := tui.ParseTab(tab)
				if !ok {
					return fmt.Errorf("%w, tab must be description, solutions, applications, or all", algo_errors.ErrInvalidInput)
				}
				tabs = []tui.Tab{t}
			}

			var parts []string
			for _, t := range tabs {
				parts = append(parts, tui.ProblemMarkdown(problem, t))
			}
			content := strings.Join(parts, "\n\n")
			if noStyle {
				out.tty = false
			}
			out.markdown(content)
			return nil
		},
	}
	cmd.Flags().StringVarP(&tab, "tab", "t", "description", "description, solutions, applications, or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the problem as JSON")
	cmd.Flags().BoolVar(&noStyle, "raw", false, "print markdown without rendering it")
	return cmd
}

func newProblemsCreateCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a problem from a JSON file or an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.services()
			if err != nil {
				return err
			}
			snapshot := loadSnapshot(cmd.Context(), s)

			var problem problem_service.Problem
			if file != "" {
				if err := readJSONInput(cmd, file, &problem); err != nil {
					return err
				}
			} else {
				form := forms.NewProblemForm(knownCategories(cmd.Context(), s, snapshot), nil)
				if err := runForm(cmd.Context(), form.Form(), "pass --file"); err != nil {
					return err
				}
				if problem, err = form.Problem(); err != nil {
					return err
				}
			}

			created, err := s.problems.CreateProblem(cmd.Context(), problem)
			if err != nil {
				return err
			}
			newPrinter(cmd).success("created %s", created.SlugID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "problem JSON file, - for stdin")
	return cmd
}

func newProblemsUpdateCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <slug>",
		Short: "Replace a problem from a JSON file or an interactive form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			s, err := c.services()
			if err != nil {
				return err
			}
			snapshot := loadSnapshot(cmd.Context(), s)

			var problem problem_service.Problem
			if file != "" {
				if err := readJSONInput(cmd, file, &problem); err != nil {
					return err
				}
			} else {
				current, err := s.problems.GetProblemBySlug(cmd.Context(), slug)
				if err != nil {
					return err
				}
				form := forms.NewProblemForm(knownCategories(cmd.Context(), s, snapshot), &current)
				if err := runForm(cmd.Context(), form.Form(), "pass --file"); err != nil {
					return err
				}
				edited, err := form.Problem()
				if err != nil {
					return err
				}
				// the form only edits these fields, the rest is kept as is
				current.Title = edited.Title
				current.Difficulty = edited.Difficulty
				current.Categories = edited.Categories
				current.Description = edited.Description
				current.Constraints = edited.Constraints
				current.Examples = edited.Examples
				current.ClarifyingQuestions = edited.ClarifyingQuestions
				problem = current
			}

			updated, err := s.problems.UpdateProblem(cmd.Context(), slug, problem)
			if err != nil {
				return err
			}
			newPrinter(cmd).success("updated %s", updated.SlugID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "problem JSON file, - for stdin")
	return cmd
}

func newProblemsDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <slug>",
		Aliases: []string{"rm"},
		Short:   "Delete a problem",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			ok, err := confirm(cmd.Context(), yes, fmt.Sprintf("Delete problem %s?", slug))
			if err != nil || !ok {
				return err
			}

			s, err := c.services()
			if err != nil {
				return err
			}
			loadSnapshot(cmd.Context(), s)
			if err := s.problems.DeleteProblem(cmd.Context(), slug); err != nil {
				return err
			}
			newPrinter(cmd).success("deleted %s", slug)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// loadSnapshot refreshes before a write so the local snapshot can be
// patched. The write itself does not need it, so a failure is only logged.
func loadSnapshot(ctx context.Context, s *services) problem_service.Snapshot {
	snapshot, err := s.problems.Refresh(ctx)
	if err != nil {
		log.WithError(err).Warn("could not refresh problems, continuing without them")
	}
	return snapshot
}

// knownCategories offers the snapshot categories to a form, asking the
// categories endpoint directly when the snapshot has none.
func knownCategories(ctx context.Context, s *services, snapshot problem_service.Snapshot) []string {
	if len(snapshot.Categories) > 0 {
		return snapshot.Categories
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		log.WithError(err).Warn("could not list categories")
		return nil
	}
	return categories
}
