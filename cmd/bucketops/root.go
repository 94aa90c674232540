package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
	"github.com/spf13/cobra"
)

// rootOptions carries what the persistent flags resolve to
type rootOptions struct {
	configPath string
	envFile    string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "bucketops",
		Short:         "Daily upload digests and image thumbnails for object storage buckets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (yaml, toml, json or env)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file (default .env when present)")

	root.AddCommand(
		newDigestCmd(opts),
		newThumbnailCmd(opts),
		newServeCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

func (o *rootOptions) load() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[bucketops] failed to load .env: %v", err)
	}

	if o.configPath == "" {
		o.cfg = config.Load()
		return nil
	}
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
