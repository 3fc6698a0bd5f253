package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/config"
)

type rootFlags struct {
	ConfigFile string
	Verbose    bool
}

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	flags rootFlags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "algodex",
		Short:         "Browse and manage algorithm practice problems",
		Long:          "algodex browses, creates, and edits problems, solutions, and categories\nof a remote problem catalogue, and can serve filtered views of it over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(c.flags.ConfigFile)
			if err != nil {
				return err
			}
			switch {
			case c.flags.Verbose:
				log.SetLevel(log.DebugLevel)
			case cmd.Name() != serveCmdName && log.GetLevel() > log.WarnLevel:
				// only serve logs at info, everything else keeps the terminal clean
				log.SetLevel(log.WarnLevel)
			}
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.flags.ConfigFile, "config", "c", "", fmt.Sprintf("configuration file (default %s)", config.DefaultPath))
	root.PersistentFlags().BoolVarP(&c.flags.Verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(
		newServeCmd(c),
		newProblemsCmd(c),
		newSolutionsCmd(c),
		newCategoriesCmd(c),
		newBrowseCmd(c),
		newTokenCmd(c),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func (c *cli) services() (*services, error) {
	return initServices(c.cfg, nil)
}
