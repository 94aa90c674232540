package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/saransh1220/bucket-events/internal/bootstrap"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/interfaces/event"
	"github.com/spf13/cobra"
)

func newThumbnailCmd(opts *rootOptions) *cobra.Command {
	var bucket, key, eventPath string

	cmd := &cobra.Command{
		Use:   "thumbnail",
		Short: "Derive thumbnails for one object or for every record of an S3 event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			evt, err := thumbnailEvent(cmd.InOrStdin(), bucket, key, eventPath)
			if err != nil {
				return err
			}

			module, err := bootstrap.NewThumbnail(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			res := module.Service().ProcessBatch(cmd.Context(), event.Records(evt))
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Source bucket")
	cmd.Flags().StringVar(&key, "key", "", "Source object key (not URL-encoded)")
	cmd.Flags().StringVar(&eventPath, "event", "", "Path to an S3 event notification JSON file, - for stdin")
	cmd.MarkFlagsRequiredTogether("bucket", "key")
	cmd.MarkFlagsMutuallyExclusive("event", "key")
	return cmd
}

func thumbnailEvent(stdin io.Reader, bucket, key, eventPath string) (events.S3Event, error) {
	if eventPath == "" {
		if key == "" {
			return events.S3Event{}, errors.New("either --event or --bucket and --key is required")
		}
		return event.Single(bucket, key), nil
	}

	var r io.Reader = stdin
	if eventPath != "-" {
		f, err := os.Open(eventPath)
		if err != nil {
			return events.S3Event{}, fmt.Errorf("failed to open event file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var evt events.S3Event
	if err := json.NewDecoder(r).Decode(&evt); err != nil {
		return events.S3Event{}, fmt.Errorf("invalid S3 event payload: %w", err)
	}
	return evt, nil
}
