package main

import (
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/forms"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

func newSolutionsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "solutions",
		Aliases: []string{"solution"},
		Short:   "Add solutions to problems",
	}
	cmd.AddCommand(newSolutionsAddCmd(c))
	return cmd
}

func newSolutionsAddCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "add <slug>",
		Short: "Add a solution from a JSON file or an interactive form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var solution problem_service.Solution
			if file != "" {
				if err := readJSONInput(cmd, file, &solution); err != nil {
					return err
				}
			} else {
				form := &forms.SolutionForm{}
				if err := runForm(cmd.Context(), form.Form(), "pass --file"); err != nil {
					return err
				}
				solution = form.Solution()
			}

			s, err := c.services()
			if err != nil {
				return err
			}
			loadSnapshot(cmd.Context(), s)
			problem, err := s.problems.AddSolution(cmd.Context(), args[0], solution)
			if err != nil {
				return err
			}
			newPrinter(cmd).success("added solution %q to %s, %d solutions now",
				solution.Name, problem.SlugID, len(problem.Solutions))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "solution JSON file, - for stdin")
	return cmd
}
