package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/service"
	"github.com/tcp_snm/algodex/middleware"
)

func newTokenCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage session tokens for the write endpoints of serve",
	}
	cmd.AddCommand(newTokenIssueCmd(c))
	return cmd
}

func newTokenIssueCmd(c *cli) *cobra.Command {
	var (
		user string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.JWTSecret == "" {
				return fmt.Errorf("%w, %s is not set", algo_errors.ErrInvalidInput, service.KeyJWTSecret)
			}
			auth := middleware.JWTAuth{Secret: []byte(c.cfg.JWTSecret)}
			token, expiry, err := auth.IssueToken(user, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s (%s)\n", humanize.Time(expiry), expiry.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user name carried by the token")
	cmd.Flags().DurationVar(&ttl, "ttl", middleware.DefaultTokenTTL, "how long the token stays valid")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
