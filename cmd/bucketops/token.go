package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/saransh1220/bucket-events/internal/gateway/middleware"
	"github.com/spf13/cobra"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the serve invoke endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Server.JWTSecret == "" {
				return errors.New("SERVE_JWT_SECRET is not set")
			}
			token, err := middleware.GenerateToken(opts.cfg.Server.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "scheduler", "Caller name stored in the token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
