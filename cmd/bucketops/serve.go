package main

import (
	"log"

	"github.com/saransh1220/bucket-events/internal/bootstrap"
	"github.com/saransh1220/bucket-events/internal/gateway"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the digest and thumbnail handlers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			if port == "" {
				port = opts.cfg.Server.Port
			}
			if opts.cfg.Server.JWTSecret == "" {
				log.Printf("[serve] SERVE_JWT_SECRET is empty, invoke endpoints are open")
			}
			return gateway.NewServer(port, app.Handler()).Start(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default PORT or 8080)")
	return cmd
}
