package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/tui"
)

func newBrowseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse problems interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive() {
				return fmt.Errorf("%w, browse needs a terminal, use problems list instead", algo_errors.ErrInvalidInput)
			}
			s, err := c.services()
			if err != nil {
				return err
			}

			program := tea.NewProgram(
				tui.New(s.problems, c.cfg.APITimeout),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("%w, browser stopped, %w", algo_errors.ErrInternal, err)
			}
			if m, ok := final.(tui.Model); ok && m.Err() != nil && len(m.Visible()) == 0 {
				return m.Err()
			}
			return nil
		},
	}
}
