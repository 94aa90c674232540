package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/saransh1220/bucket-events/internal/bootstrap"
	"github.com/saransh1220/bucket-events/internal/modules/digest/application"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
)

type digestRunner interface {
	Run(ctx context.Context, day time.Time) application.Result
	RunToday(ctx context.Context) application.Result
}

// handler runs on the daily schedule. The event time, when present, decides
// which day is reported so retried invocations report the same day.
type handler struct {
	runner digestRunner
}

func (h handler) handle(ctx context.Context, evt events.CloudWatchEvent) (application.Result, error) {
	if evt.Time.IsZero() {
		return h.runner.RunToday(ctx), nil
	}
	return h.runner.Run(ctx, evt.Time), nil
}

func main() {
	cfg := config.Load()

	module, err := bootstrap.NewDigest(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize digest: %v", err)
	}

	lambda.Start(handler{runner: module.Service()}.handle)
}
