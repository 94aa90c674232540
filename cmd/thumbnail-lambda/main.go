package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/saransh1220/bucket-events/internal/bootstrap"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/application"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/domain"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/interfaces/event"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

type batchProcessor interface {
	ProcessBatch(ctx context.Context, records []domain.Record) application.Result
}

// handler never returns an error so S3 does not redeliver a batch whose
// failures are already reported per record
type handler struct {
	processor batchProcessor
}

func (h handler) handle(ctx context.Context, evt events.S3Event) (application.Result, error) {
	return h.processor.ProcessBatch(ctx, event.Records(evt)), nil
}

func main() {
	cfg := config.Load()

	module, err := bootstrap.NewThumbnail(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize thumbnails: %v", err)
	}

	lambda.Start(handler{processor: module.Service()}.handle)
}
