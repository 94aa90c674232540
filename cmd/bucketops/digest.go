package main

import (
	"github.com/saransh1220/bucket-events/internal/bootstrap"
	"github.com/saransh1220/bucket-events/internal/modules/digest/domain"
	"github.com/spf13/cobra"
)

func newDigestCmd(opts *rootOptions) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Email the objects added under the digest prefix during the current day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := bootstrap.NewDigest(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			svc := module.Service()

			if day == "" {
				return writeJSON(cmd.OutOrStdout(), svc.RunToday(cmd.Context()))
			}
			parsed, err := domain.ParseDay(day, svc.Location())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), svc.Run(cmd.Context(), parsed))
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Report on objects added on YYYY-MM-DD instead of today")
	return cmd
}
