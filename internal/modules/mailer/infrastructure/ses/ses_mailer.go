package ses

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/saransh1220/bucket-events/internal/modules/mailer/domain"
)

const charset = "UTF-8"

// SESConfig holds configuration for Amazon SES
type SESConfig struct {
	Region   string
	Endpoint string // Custom endpoint (e.g., localstack:4566); empty for AWS
}

// SESMailer implements Mailer with the SES SendEmail API
type SESMailer struct {
	client *ses.Client
}

// NewSESMailer creates a new SES mailer
func NewSESMailer(ctx context.Context, cfg SESConfig) (*SESMailer, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSESMailerFromConfig(awsCfg, cfg), nil
}

// NewSESMailerFromConfig builds the mailer from an already loaded AWS config
func NewSESMailerFromConfig(awsCfg aws.Config, cfg SESConfig) *SESMailer {
	client := ses.NewFromConfig(awsCfg, func(o *ses.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &SESMailer{client: client}
}

// Send delivers msg to its single recipient
func (m *SESMailer) Send(ctx context.Context, msg domain.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String(charset)},
			},
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
		},
		Source: aws.String(msg.From),
	})
	if err != nil {
		return fmt.Errorf("%w: ses: %w", domain.ErrSendFailed, err)
	}

	log.Printf("[SESMailer.Send] sent %q to %s (message id %s)", msg.Subject, msg.To, aws.ToString(out.MessageId))
	return nil
}
